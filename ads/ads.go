//go:build windows

// Package ads exposes create, open, rename and delete operations over the
// alternate data streams of a single file or directory.
package ads

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/puzpuzpuz/xsync/v4"
	"golang.org/x/sys/windows"

	"github.com/go-sw/streamfs/stream"
	"github.com/go-sw/streamfs/w32api"
)

const (
	adsRename = 0x100000 // rename access, used alone as the open flag
)

// OpenStream opens the named stream of the file or directory at path with
// an os.OpenFile-style flag, addressing it through its derived
// ":name:$DATA" form. The returned file should be closed with
// (*os.File).Close after use.
//
// Creation-mode semantics follow os.OpenFile: plain open of a missing
// stream fails with KindNotFound, O_CREATE opens or creates, and
// O_CREATE|O_EXCL fails with KindAlreadyExists on a conflict.
func OpenStream(path, name string, flag int) (*os.File, error) {
	if err := stream.ValidatePath(path); err != nil {
		return nil, err
	}
	if err := stream.ValidateStreamName(name); err != nil {
		return nil, err
	}

	streamPath := stream.BuildStreamPath(path, name)

	u16Path, err := windows.UTF16PtrFromString(streamPath)
	if err != nil {
		return nil, &stream.Error{Kind: stream.KindInvalidArgument, Op: "open", Path: streamPath, Err: err}
	}

	var access, share, createmode uint32

	switch flag & (os.O_RDONLY | os.O_WRONLY | os.O_RDWR | adsRename) {
	case os.O_RDONLY:
		access = windows.FILE_READ_DATA | windows.SYNCHRONIZE
		share = windows.FILE_SHARE_READ
	case os.O_WRONLY:
		access = windows.FILE_WRITE_DATA | windows.SYNCHRONIZE
		share = windows.FILE_SHARE_WRITE
	case os.O_RDWR:
		access = windows.FILE_READ_DATA | windows.FILE_WRITE_DATA | windows.SYNCHRONIZE
		share = windows.FILE_SHARE_READ | windows.FILE_SHARE_WRITE
	case adsRename:
		access = windows.DELETE | windows.SYNCHRONIZE
		share = windows.FILE_SHARE_DELETE
	}

	switch flag & (os.O_CREATE | os.O_TRUNC | os.O_EXCL) {
	case os.O_CREATE | os.O_EXCL:
		createmode = windows.CREATE_NEW
	case os.O_CREATE | os.O_TRUNC:
		createmode = windows.CREATE_ALWAYS
	case os.O_CREATE:
		createmode = windows.OPEN_ALWAYS
	case os.O_TRUNC:
		createmode = windows.TRUNCATE_EXISTING
	default:
		createmode = windows.OPEN_EXISTING
	}

	if flag&os.O_APPEND != 0 {
		access &^= windows.FILE_WRITE_DATA
		access |= windows.FILE_APPEND_DATA
	}

	hnd, err := windows.CreateFile(
		u16Path,
		access,
		share,
		nil,
		createmode,
		windows.FILE_FLAG_BACKUP_SEMANTICS|windows.FILE_FLAG_OPEN_REPARSE_POINT,
		0,
	)
	if err != nil {
		return nil, stream.MapSysError("CreateFile", streamPath, err)
	}

	return os.NewFile(uintptr(hnd), streamPath), nil
}

// FileStreams is the stream collection of one file or directory. The
// snapshot it holds rebuilds from the file system on Refresh; the file
// system stays the source of truth between calls.
type FileStreams struct {
	Path string

	info *xsync.Map[string, stream.AlternateStream]
}

// Open normalizes path and loads the current stream set of the target. A
// target with no alternate streams yields an empty collection, not an
// error.
func Open(path string) (*FileStreams, error) {
	absPath, err := normalizePath(path)
	if err != nil {
		return nil, err
	}

	f := &FileStreams{
		Path: absPath,
		info: xsync.NewMap[string, stream.AlternateStream](),
	}

	if err = f.Refresh(); err != nil {
		return nil, err
	}

	return f, nil
}

func normalizePath(path string) (string, error) {
	if err := stream.ValidatePath(path); err != nil {
		return "", err
	}

	if len(path) >= 4 && (path[:4] == `\\?\` || path[:4] == `\??\`) {
		// extended-namespace paths are absolute already
		return path, nil
	}

	return filepath.Abs(path)
}

// Refresh rebuilds the collection from the file system.
func (f *FileStreams) Refresh() error {
	streams, err := stream.ListAlternateStreams(f.Path)
	if err != nil {
		return err
	}

	f.info.Clear()
	for _, s := range streams {
		f.info.Store(stream.FoldName(s.Name), s)
	}

	return nil
}

// List returns the streams of the current snapshot sorted by folded name.
func (f *FileStreams) List() []stream.AlternateStream {
	out := make([]stream.AlternateStream, 0, f.info.Size())
	f.info.Range(func(_ string, s stream.AlternateStream) bool {
		out = append(out, s)
		return true
	})

	slices.SortFunc(out, func(a, b stream.AlternateStream) int {
		return strings.Compare(stream.FoldName(a.Name), stream.FoldName(b.Name))
	})

	return out
}

// Lookup returns the descriptor of the named stream from the current
// snapshot. Lookup is case-insensitive.
func (f *FileStreams) Lookup(name string) (stream.AlternateStream, bool) {
	return f.info.Load(stream.FoldName(name))
}

// Exists reports whether the current snapshot contains the named stream.
func (f *FileStreams) Exists(name string) bool {
	_, ok := f.Lookup(name)
	return ok
}

// Open opens the named stream with an os.OpenFile-style flag.
func (f *FileStreams) Open(name string, flag int) (*os.File, error) {
	return OpenStream(f.Path, name, flag)
}

// Create creates a zero-length stream, failing with KindAlreadyExists
// when a stream of that name is already attached.
func (f *FileStreams) Create(name string) (stream.AlternateStream, error) {
	h, err := OpenStream(f.Path, name, os.O_WRONLY|os.O_CREATE|os.O_EXCL)
	if err != nil {
		return stream.AlternateStream{}, err
	}
	if err = h.Close(); err != nil {
		return stream.AlternateStream{}, err
	}

	s := stream.AlternateStream{
		FilePath:   f.Path,
		Name:       name,
		StreamPath: stream.BuildStreamPath(f.Path, name),
		Exists:     true,
		Type:       stream.TypeAlternateData,
	}
	f.info.Store(stream.FoldName(name), s)

	return s, nil
}

// Remove deletes the named stream as a single OS call.
func (f *FileStreams) Remove(name string) error {
	if err := stream.ValidateStreamName(name); err != nil {
		return err
	}

	streamPath := stream.BuildStreamPath(f.Path, name)
	if err := os.Remove(streamPath); err != nil {
		return stream.MapSysError("remove", streamPath, err)
	}

	f.info.Delete(stream.FoldName(name))

	return nil
}

// RemoveAll deletes every named stream of the target, leaving only the
// unnamed data stream. The streams are re-enumerated first so the file
// system, not the snapshot, decides what gets deleted. Deletion keeps
// going past individual failures and reports them joined.
func (f *FileStreams) RemoveAll() error {
	if err := f.Refresh(); err != nil {
		return err
	}

	var errs error
	f.info.Range(func(key string, s stream.AlternateStream) bool {
		if err := os.Remove(s.StreamPath); err != nil {
			errs = errors.Join(errs, stream.MapSysError("remove", s.StreamPath, err))
			return true
		}
		f.info.Delete(key)
		return true
	})

	return errs
}

// Rename renames the stream oldName to newName in place through
// FILE_RENAME_INFO. With overwrite false a conflicting target fails with
// KindAlreadyExists.
func (f *FileStreams) Rename(oldName, newName string, overwrite bool) error {
	if err := stream.ValidateStreamName(newName); err != nil {
		return err
	}

	s, ok := f.Lookup(oldName)
	if !ok {
		return &stream.Error{Kind: stream.KindNotFound, Op: "rename", Path: f.Path + ":" + oldName}
	}

	h, err := OpenStream(f.Path, oldName, adsRename)
	if err != nil {
		return err
	}
	defer h.Close()

	// the rename target of a stream is ":newname"
	// https://learn.microsoft.com/en-us/windows/win32/api/winbase/ns-winbase-file_rename_info
	renameInfo, err := w32api.NewFileRenameInfo(":"+newName, overwrite)
	if err != nil {
		return &stream.Error{Kind: stream.KindInvalidArgument, Op: "rename", Path: f.Path + ":" + newName, Err: err}
	}

	if err = windows.SetFileInformationByHandle(
		windows.Handle(h.Fd()),
		windows.FileRenameInfo,
		&renameInfo[0],
		uint32(len(renameInfo)),
	); err != nil {
		return stream.MapSysError("SetFileInformationByHandle", f.Path+":"+oldName, err)
	}
	runtime.KeepAlive(h)

	f.info.Delete(stream.FoldName(oldName))
	s.Name = newName
	s.StreamPath = stream.BuildStreamPath(f.Path, newName)
	f.info.Store(stream.FoldName(newName), s)

	return nil
}
