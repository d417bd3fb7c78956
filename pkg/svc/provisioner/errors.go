package provisioner

import "errors"

// ErrCleanerRequired is returned when a pre-clean is requested without a cleaner.
var ErrCleanerRequired = errors.New("clean requested but no cleaner configured")

// ErrControllerNotFound is returned when no controller container is listed.
var ErrControllerNotFound = errors.New("controller container not found")
