// Package pipeline bulk-imports rows into the store.
//
// An import file is a YAML document listing records, each naming a table
// and its column values:
//
//	records:
//	  - table: geo
//	    values: {id: "1", city: "Test City", country_code: "TC"}
//	  - table: clicks
//	    values: {id: "1", site: "example.com", date: "2024-01-01"}
//
// Records are checked against the fixed schema, turned into parameterized
// INSERT statements and executed concurrently with errgroup. The store
// serializes the actual writes; a failed record never stops the batch.
package pipeline
