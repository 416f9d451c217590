// Package exporter writes cleaned application files and renders summaries.
//
// CSVWriter: writes the cleaned file in the fixed Columns order with an
// optional UTF-8 BOM for Excel, and returns the written bytes so callers can
// digest them.
//
// EncodeRecord: renders one record. Categorical and text columns are never
// empty; a missing value is NA. Coordinates, age and days to support are left
// empty when unknown.
//
// TableWriter: aligned plain-text tables for terminal output.
//
// Example usage:
//
//	w := exporter.NewCSVWriter(cfg.Pipeline.BOM)
//	res, err := w.WriteRecords("intake_CLEANED.csv", records)
//	if err != nil {
//		return err
//	}
//	fmt.Println(res.Rows, res.NACounts["gender"])
package exporter
