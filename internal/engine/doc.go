// Package engine is the trip query engine: it filters, sorts and paginates
// a trip list, computes the page-number window shown by pagination controls,
// and renders result pages for non-interactive output.
//
// Compute is a pure function of its inputs. It never clamps the requested
// page; callers reset to page 1 when the search term or sort flag changes.
package engine
