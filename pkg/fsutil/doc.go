// Package fsutil provides utilities for filesystem operations.
//
// Key functionality:
//   - File reading: ReadFileOrDefault
//   - File writing: WriteFileAtomic
//   - Path operations: ExpandHomePath
package fsutil
