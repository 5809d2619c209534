//go:build windows

package stream

import (
	"errors"
	"fmt"
	"syscall"

	"golang.org/x/sys/windows"

	"github.com/go-sw/streamfs/w32api"
)

// MapSysError wraps an OS failure into an *Error with the matching kind.
// Failures that map to no kind keep the raw errno and get the localized
// system message attached for diagnostics.
func MapSysError(op, path string, err error) error {
	if err == nil {
		return nil
	}

	var errno syscall.Errno
	if !errors.As(err, &errno) {
		return newError(KindUnknown, op, path, err)
	}

	kind := errnoKind(errno)
	wrapped := error(errno)
	if kind == KindUnknown {
		if msg, msgErr := w32api.FormatSystemMessage(uint32(errno)); msgErr == nil {
			wrapped = fmt.Errorf("%s (errno %d)", msg, uint32(errno))
		}
	}

	return newError(kind, op, path, wrapped)
}

func errnoKind(errno syscall.Errno) Kind {
	switch errno {
	case windows.ERROR_FILE_NOT_FOUND, windows.ERROR_PATH_NOT_FOUND,
		windows.ERROR_INVALID_DRIVE, windows.ERROR_BAD_NETPATH,
		windows.ERROR_NOT_READY:
		return KindNotFound
	case windows.ERROR_ACCESS_DENIED, windows.ERROR_WRITE_PROTECT:
		return KindPermissionDenied
	case windows.ERROR_SHARING_VIOLATION, windows.ERROR_LOCK_VIOLATION:
		return KindInUse
	case windows.ERROR_FILE_EXISTS, windows.ERROR_ALREADY_EXISTS:
		return KindAlreadyExists
	case windows.ERROR_INVALID_FUNCTION, windows.ERROR_INVALID_PARAMETER,
		windows.ERROR_NOT_SUPPORTED:
		return KindNotSupported
	case windows.ERROR_FILENAME_EXCED_RANGE, windows.ERROR_BUFFER_OVERFLOW:
		return KindPathTooLong
	case windows.ERROR_INVALID_NAME:
		return KindInvalidArgument
	default:
		return KindUnknown
	}
}
