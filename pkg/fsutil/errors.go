package fsutil

import "errors"

// ErrEmptyOutputPath is returned when a write is requested without a destination.
var ErrEmptyOutputPath = errors.New("output path cannot be empty")

const (
	dirPermUserGroupRX = 0o750
	// FilePermUserRW is for files only the current user reads.
	FilePermUserRW = 0o600
	// FilePermWorldRead is for files read by processes running as another user, such as a
	// bind-mounted container volume.
	FilePermWorldRead = 0o644
)
