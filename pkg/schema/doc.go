// Package schema defines the field catalog (the Schema Model) that drives
// visibility, dependent vocabularies, validation, and the workbook layout.
//
// A catalog is an ordered list of Field definitions loaded once from a JSON or
// YAML document and never mutated afterwards. Project-scope fields are entered
// once per document; sample-scope fields form the columns of the sample grid.
// Records (project metadata and sample rows) are plain field_id -> string maps
// keyed by the catalog's field set rather than fixed structs, since the catalog
// itself is externally supplied data.
package schema
