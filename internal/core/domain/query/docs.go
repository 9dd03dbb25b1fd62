// Package query derives displayable views from entity collections.
//
// A view is a pure function of a collection snapshot and four descriptors:
// a search term, a FilterDescriptor, a SortDescriptor and a PageRequest.
// Which fields can be searched, filtered and sorted is declared per entity
// type by a Schema.
//
// Example:
//
//	schema := query.NewSchema(func(o *order.Order) int64 { return o.ID().Int64() }).
//	    Search("customer", func(o *order.Order) []string { return []string{o.Customer().Name} }).
//	    Equality("status", func(o *order.Order) string { return o.Status().String() })
//
//	view, err := query.DeriveView(orders, schema, "ann", filter, query.SortDescriptor{Field: "id"})
//	page := query.Paginate(view, query.PageRequest{Index: 0, Size: 20})
package query
