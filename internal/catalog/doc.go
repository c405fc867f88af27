// Package catalog reads route catalog documents.
//
// A document lists routes in the order they should be tried in auto mode:
//
//	routes:
//	  - id: c1
//	    label: C1
//	    direction: Counterclockwise
//	    anchor_stop_id: utc
//	    stops:
//	      - id: utc
//	        name: University Transit Center (UTC)
//	        coordinates: {lat: 37.3614, lng: -120.4281}
//
// The same shape is accepted as JSON.
package catalog
