// Package netretry classifies Docker Engine API errors as transient (worth polling again) or
// permanent (the container is gone, the request is invalid).
package netretry

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/containerd/errdefs"
)

// daemonStatusPattern matches HTTP 5xx codes at word boundaries so ports such as ":5000"
// do not count.
var daemonStatusPattern = regexp.MustCompile(`\b50[0-4]\b`)

// transientMessages are fragments of socket or proxy errors seen while the daemon is busy.
//
//nolint:gochecknoglobals // read-only lookup table
var transientMessages = []string{
	"connection reset by peer",
	"connection refused",
	"i/o timeout",
	"unexpected EOF",
	"Service Unavailable",
	"Bad Gateway",
	"Gateway Timeout",
	"Internal Server Error",
}

// IsRetryable reports whether err is a transient Docker daemon or transport failure.
// Context cancellation and missing objects are never retryable.
func IsRetryable(err error) bool {
	switch {
	case err == nil,
		errors.Is(err, context.Canceled),
		errdefs.IsNotFound(err),
		errdefs.IsInvalidArgument(err),
		errdefs.IsPermissionDenied(err):
		return false
	case errdefs.IsUnavailable(err),
		errdefs.IsDeadlineExceeded(err),
		errdefs.IsInternal(err):
		return true
	}

	msg := err.Error()
	for _, fragment := range transientMessages {
		if strings.Contains(msg, fragment) {
			return true
		}
	}

	return daemonStatusPattern.MatchString(msg)
}
