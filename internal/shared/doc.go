// Package shared holds helpers used across the grant cleaner's packages.
//
// The testutil subpackage provides:
//
//   - a buffered slog handler for asserting on log output
//   - intake fixtures (raw header and rows) mirroring a real export
//   - builders that write those fixtures as xlsx workbooks or CSV files
//
// Example usage:
//
//	func TestLoad(t *testing.T) {
//	    path := testutil.WriteWorkbook(t, t.TempDir(), "intake.xlsx",
//	        testutil.ApplicationSheet, testutil.ApplicationTable())
//	    // load path ...
//	}
package shared
