// Package workbook converts between (project metadata, samples) and xlsx
// workbooks laid out after the fixed submission template:
//
//	row 1      title (merged)
//	rows 3-9   project block and three contact blocks at fixed addresses
//	row 10     header: sample_id followed by the sample field ids
//	rows 11+   one row per sample
//
// Import is heuristic: it tolerates templates whose header slipped to row 11
// and ignores unknown columns with a warning. Both directions are single-shot
// transforms over in-memory buffers; failures are returned as values.
package workbook
