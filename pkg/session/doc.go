// Package session ties the engine together for one metadata document: the
// field catalog, project metadata, the sample grid, shared visibility and
// option caches, the drag-fill controller, workbook import/export and the
// hand-off to a submission layer. A Session is single-threaded.
package session
