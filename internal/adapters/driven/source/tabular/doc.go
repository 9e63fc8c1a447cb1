// Package tabular converts between header-plus-rows tables and applicant
// record sets. It is shared by the CSV and XLSX backing sources, which only
// differ in how rows are read from and written to disk.
//
// The package also provides atomic file replacement, content fingerprints
// and a Watcher that reports edits made to a source file by other programs.
package tabular
