package gtfs

import (
	"fmt"
	"sort"

	remoteGtfs "github.com/jamespfennell/gtfs"
	"tripassistant.ucmerced.edu/internal/models"
)

// ImportCatalog turns a static GTFS bundle into a route catalog with one
// loop route per GTFS route, in feed order.
//
// Each route's stop order comes from its representative trip: the trip with
// the most stop times, the first one in feed order on ties. A closing stop
// that repeats the first stop is dropped since the loop wraps anyway, and a
// stop visited twice keeps only its first visit. Routes without trips are
// skipped.
//
// The anchor is anchorStopID when the route serves it, otherwise the
// route's first stop.
func ImportCatalog(static *remoteGtfs.Static, anchorStopID string) (*models.RouteCatalog, error) {
	if static == nil {
		return nil, fmt.Errorf("static data is nil")
	}

	representative := make(map[string]*remoteGtfs.ScheduledTrip)
	for i := range static.Trips {
		trip := &static.Trips[i]
		if trip.Route == nil {
			continue
		}
		if best, ok := representative[trip.Route.Id]; !ok || len(trip.StopTimes) > len(best.StopTimes) {
			representative[trip.Route.Id] = trip
		}
	}

	routes := make([]models.Route, 0, len(static.Routes))
	for _, route := range static.Routes {
		trip, ok := representative[route.Id]
		if !ok {
			continue
		}
		stops := tripStops(trip)
		if len(stops) == 0 {
			continue
		}

		anchor := stops[0].ID
		for _, stop := range stops {
			if anchorStopID != "" && stop.ID == anchorStopID {
				anchor = anchorStopID
				break
			}
		}

		routes = append(routes, models.Route{
			ID:           route.Id,
			Label:        routeLabel(route),
			Direction:    trip.Headsign,
			AnchorStopID: anchor,
			Stops:        stops,
		})
	}

	if len(routes) == 0 {
		return nil, fmt.Errorf("GTFS bundle has no routes with scheduled trips")
	}
	return models.NewRouteCatalog(routes), nil
}

func tripStops(trip *remoteGtfs.ScheduledTrip) []models.Stop {
	stopTimes := append([]remoteGtfs.ScheduledStopTime(nil), trip.StopTimes...)
	sort.SliceStable(stopTimes, func(i, j int) bool {
		return stopTimes[i].StopSequence < stopTimes[j].StopSequence
	})

	seen := make(map[string]bool, len(stopTimes))
	stops := make([]models.Stop, 0, len(stopTimes))
	for _, st := range stopTimes {
		if st.Stop == nil || seen[st.Stop.Id] {
			continue
		}
		seen[st.Stop.Id] = true
		stops = append(stops, convertStop(st.Stop))
	}
	return stops
}

func convertStop(stop *remoteGtfs.Stop) models.Stop {
	converted := models.Stop{
		ID:      stop.Id,
		Name:    stop.Name,
		Address: stop.Description,
		Kind:    models.StopKindRegular,
	}
	if stop.Latitude != nil && stop.Longitude != nil {
		converted.Coordinates = &models.Coordinates{Lat: *stop.Latitude, Lng: *stop.Longitude}
	}
	return converted
}

func routeLabel(route remoteGtfs.Route) string {
	switch {
	case route.ShortName != "" && route.LongName != "":
		return route.ShortName + " " + route.LongName
	case route.ShortName != "":
		return route.ShortName
	case route.LongName != "":
		return route.LongName
	default:
		return route.Id
	}
}
