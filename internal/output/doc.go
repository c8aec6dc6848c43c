// Package output renders a merged review collection as a terminal table,
// JSON, or a standalone HTML document.
//
// The Report is the boundary artifact between the core and the caller:
// writers sort a copy of its items, never the collection itself, so a
// report can be rendered to several formats from one aggregation pass.
package output
