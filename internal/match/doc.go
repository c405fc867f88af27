// Package match picks the route and stop that get a rider closest to a
// destination, and extracts the corridor of stops from a route's anchor to
// that stop.
//
// Every function here is pure. Routes and catalogs are read, never written,
// so any number of queries can share one catalog concurrently.
package match
