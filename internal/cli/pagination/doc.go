// Package pagination parses the paging and sort parameters shared by the
// list command and the HTTP API, and turns them into an engine query.
//
// The CLI binds them as --page, --page-size and --sort flags; the API reads
// the same names from the query string (page, page_size, sort).
package pagination
