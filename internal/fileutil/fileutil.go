// Package fileutil holds file mode constants for files the CLI writes.
package fileutil

import "os"

// OwnerReadWrite is the mode for report files written with --output. Diff
// reports quote API details, so they are readable by the owner only.
const OwnerReadWrite os.FileMode = 0o600
