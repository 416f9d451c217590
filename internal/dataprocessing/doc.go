// Package dataprocessing turns intake spreadsheets into cleaned application
// records and computes the dashboard views over cleaned files.
//
// # Components
//
//  1. Loader: reads an intake workbook sheet or CSV into a Table with
//     normalized headers (LoadTable, NormalizeHeader).
//  2. Transformer: runs the column step plan over every row
//     (NewStepRegistry, Transformer.Transform).
//  3. Cleaned files: decodes *_CLEANED.csv files back into records, reading
//     several files concurrently (LoadCleanedFiles).
//  4. Analyzer: read-only aggregates for review, support breakdowns, the zip
//     map, response times, grant utilization and impact.
//  5. Summarizer: grouped-sum tables for the terminal and for CSV or JSON files.
//
// # Data Flow
//
//	intake file → LoadTable → Transformer → records → exporter → *_CLEANED.csv
//	*_CLEANED.csv... → LoadCleanedFiles → Analyzer → views
//
// # Usage
//
//	table, err := dataprocessing.LoadTable("intake.xlsx", "Support_Application_Data")
//	if err != nil {
//		return err
//	}
//	t := dataprocessing.NewTransformer(dataprocessing.NewStepRegistry(enricher), tracer,
//		dataprocessing.TransformOptions{})
//	result, err := t.Transform(ctx, table)
package dataprocessing
