// Package services provides domain services that span more than one entity or
// that bind domain entities to the generic query layer.
//
// The package includes:
//   - OrderSchema, ProductSchema, PendingGroupSchema: the searchable, filterable and
//     sortable fields of each collection, used by query.DeriveView and the stores
//
// Field names double as the names accepted by the HTTP API (filter and sortBy
// parameters) and as the sortBy values forwarded to the marketplace API.
package services
