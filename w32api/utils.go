//go:build windows

package w32api

import (
	"bytes"
	"encoding/binary"
	"errors"
	"unsafe"

	"golang.org/x/sys/windows"
)

/*
	typedef struct _FILE_RENAME_INFO {
	#if _WIN32_WINNT >= _WIN32_WINNT_WIN10_RS1
		__C89_NAMELESS union {
			BOOLEAN ReplaceIfExists;
			DWORD Flags;
		};
	#else
		BOOLEAN ReplaceIfExists;
	#endif
		HANDLE RootDirectory;
		DWORD FileNameLength;
		WCHAR FileName[1];
	} FILE_RENAME_INFO,*PFILE_RENAME_INFO;
*/

// maximum stream rename target: ":" + 255 character stream name + NUL
const maxRenameTarget = 257

// NewFileRenameInfo builds the FILE_RENAME_INFO byte image passed to
// SetFileInformationByHandle when renaming an alternate data stream. The
// new name must start with ":".
//
// https://learn.microsoft.com/en-us/windows/win32/api/winbase/ns-winbase-file_rename_info
func NewFileRenameInfo(newName string, replace bool) ([]byte, error) {
	if len(newName) == 0 {
		return nil, errors.New("new stream name is empty")
	}

	u16Name, err := windows.UTF16FromString(newName)
	if err != nil {
		return nil, err
	}
	if len(u16Name) > maxRenameTarget {
		return nil, errors.New("new stream name exceeds 255 characters")
	}

	var replaceIfExists uint32
	if replace {
		replaceIfExists = 1
	}

	// pointer-sized padding keeps RootDirectory aligned as in the C struct
	handleSize := int(unsafe.Sizeof(windows.Handle(0)))

	var info bytes.Buffer
	binary.Write(&info, binary.LittleEndian, replaceIfExists)
	info.Write(make([]byte, handleSize-4))              // union padding
	info.Write(make([]byte, handleSize))                // RootDirectory = NULL
	nameBytes := uint32((len(u16Name) - 1) * 2)         // without NUL terminator
	binary.Write(&info, binary.LittleEndian, nameBytes) // FileNameLength
	binary.Write(&info, binary.LittleEndian, u16Name)   // FileName, NUL included

	return info.Bytes(), nil
}
