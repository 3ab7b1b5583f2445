// Package validation compiles a catalog into reusable per-scope rule sets and
// executes them against project metadata and sample rows.
//
// Rules apply only while their field is visible. Every violated rule yields
// one message attached to a path: a project field_id, or
// `samples[idx].field_id` where idx is the sample's 0-based position in the
// slice handed to the validator (row number minus one for a sample store).
// Execution never panics out of the package and never stops at the first
// failure, so callers can display every violation at once.
package validation
