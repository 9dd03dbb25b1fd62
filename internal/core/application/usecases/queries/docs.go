// Package queries contains read operations over the in-process collections
// and the decision journal. Queries never call a mutating upstream endpoint.
package queries
