// Package testutil provides helpers shared by blocktext tests.
//
// Key components:
//   - MemFS: an afero in-memory file system seeded from a name to content map
//   - CreateFile: real files under a test's temporary directory
//   - Isolate: clears BLOCKTEXT_* variables and points the XDG state and
//     config dirs at temporary directories
//
// All test data should be defined inline, not in external files.
package testutil
