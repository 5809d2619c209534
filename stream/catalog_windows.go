//go:build windows

package stream

import (
	"errors"
	"io"

	"golang.org/x/sys/windows"

	"github.com/go-sw/streamfs/w32api"
)

// rawBackup is a cursor over the backup representation of one file or
// directory, implemented with BackupRead and BackupSeek. It is scoped to
// a single enumeration.
type rawBackup struct {
	h    windows.Handle
	ctx  uintptr
	path string
}

func openRawBackup(path string) (*rawBackup, error) {
	u16Path, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return nil, newError(KindInvalidArgument, "open", path, err)
	}

	// backup semantics so directories open too, reparse points are read
	// as themselves instead of being resolved
	hnd, err := windows.CreateFile(
		u16Path,
		windows.GENERIC_READ,
		windows.FILE_SHARE_READ|windows.FILE_SHARE_WRITE,
		nil,
		windows.OPEN_EXISTING,
		windows.FILE_FLAG_BACKUP_SEMANTICS|windows.FILE_FLAG_OPEN_REPARSE_POINT,
		0,
	)
	if err != nil {
		return nil, MapSysError("CreateFile", path, err)
	}

	return &rawBackup{h: hnd, path: path}, nil
}

func (r *rawBackup) Read(p []byte) (int, error) {
	n, err := w32api.BackupRead(r.h, p, false, false, &r.ctx)
	if err != nil {
		return int(n), MapSysError("BackupRead", r.path, err)
	}

	if n == 0 {
		return 0, io.EOF
	}

	return int(n), nil
}

func (r *rawBackup) skip(n int64) error {
	_, err := w32api.BackupSeek(r.h, uint64(n), &r.ctx)
	switch err {
	case nil:
		return nil
	case windows.ERROR_SEEK:
		// less payload than the header promised, but the cursor still
		// advanced to the next stream header
		return nil
	default:
		return MapSysError("BackupSeek", r.path, err)
	}
}

// close aborts the in-flight backup context and releases the handle. It
// runs on every exit path of an enumeration.
func (r *rawBackup) close() error {
	var err error

	if r.ctx != 0 {
		if _, finErr := w32api.BackupRead(r.h, nil, true, false, &r.ctx); finErr != nil {
			err = MapSysError("BackupRead", r.path, finErr)
		} else {
			r.ctx = 0
		}
	}
	if r.h != 0 {
		if closeErr := windows.CloseHandle(r.h); closeErr != nil {
			err = errors.Join(err, MapSysError("CloseHandle", r.path, closeErr))
		} else {
			r.h = 0
		}
	}

	return err
}

// ListAlternateStreams enumerates the named data streams attached to the
// file or directory at path. A target without alternate streams yields an
// empty result, not an error. Nothing is cached: every call reopens the
// target and rewalks its backup representation, so the result tracks the
// file system, size included.
func ListAlternateStreams(path string) ([]AlternateStream, error) {
	if err := ValidatePath(path); err != nil {
		return nil, err
	}

	src, err := openRawBackup(path)
	if err != nil {
		return nil, err
	}
	defer src.close()

	return collectStreams(src, path)
}
