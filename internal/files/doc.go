// Package files finds intake files and cleaned outputs on disk.
//
// Discovery lists files in a directory, resolving relative directories
// against a base path. Results are sorted by file name so that loading
// cleaned files concatenates them in a stable order.
//
// Example usage:
//
//	discovery := files.NewDiscovery(".")
//	cleaned, err := discovery.FindCleanedFiles("data")
//	if err != nil {
//		return err
//	}
//	paths := files.Paths(cleaned)
package files
