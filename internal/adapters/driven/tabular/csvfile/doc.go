// Package csvfile implements the table ports over CSV files: the
// metadata and fungal-fragment readers and the result writer.
//
// Readers are deliberately forgiving about cell contents: an
// unparseable number or unknown label degrades to a missing value plus
// a warning, so one bad cell never sinks the rest of the sheet. Only a
// structurally broken file (missing key columns, unreadable CSV) is an
// error.
package csvfile
