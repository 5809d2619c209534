//go:build windows

// Package w32api wraps the kernel32 backup and message-formatting calls
// used by the stream packages.
package w32api

//go:generate go run golang.org/x/sys/windows/mkwinsyscall -output zsyscall_windows.go syscall_windows.go

import (
	"strings"

	"github.com/nyaosorg/go-windows-mbcs"
	"golang.org/x/sys/windows"
)

// backup functions

//sys	backupRead(file windows.Handle, buffer *byte, numberOfBytesToRead uint32, numberOfBytesRead *uint32, abort bool, processSecurity bool, context *uintptr) (err error) = kernel32.BackupRead
//sys	backupSeek(file windows.Handle, lowBytesToSeek uint32, highBytesToSeek uint32, lowBytesSeeked *uint32, highBytesSeeked *uint32, context *uintptr) (err error) = kernel32.BackupSeek

// BackupRead reads the backup representation of a file or directory.
// An abort call (abort == true) may pass a nil buffer.
//
// https://learn.microsoft.com/en-us/windows/win32/api/winbase/nf-winbase-backupread
func BackupRead(file windows.Handle, buffer []byte, abort, processSecurity bool, context *uintptr) (bytesRead uint32, err error) {
	var p *byte
	if len(buffer) > 0 {
		p = &buffer[0]
	}
	err = backupRead(file, p, uint32(len(buffer)), &bytesRead, abort, processSecurity, context)
	return
}

/*
BackupSeek skips a portion of a data stream.

https://learn.microsoft.com/en-us/windows/win32/api/winbase/nf-winbase-backupseek

caveats:

If the current offset is inside a stream's data, the call succeeds if and
only if the remaining data is not smaller than the requested size, setting
the seeked size to the requested size.

If the current offset is inside a stream header, the call fails without
setting the last error value (so ERROR_SUCCESS(0x0) comes back) and the
offset does not move.

If the requested size exceeds the remaining data of the current stream,
the call fails with ERROR_SEEK(0x19) but the offset still advances to the
start of the next stream header, with the reported seeked size left 0.
*/
func BackupSeek(file windows.Handle, offset uint64, context *uintptr) (seeked uint64, err error) {
	var seekedLow, seekedHigh uint32
	err = backupSeek(file, uint32(offset), uint32(offset>>32), &seekedLow, &seekedHigh, context)
	return (uint64(seekedHigh) << 32) | uint64(seekedLow), err
}

// message formatting

//sys	formatMessageA(flags uint32, msgsrc uintptr, msgid uint32, langid uint32, buf *byte, nSize uint32, args uintptr) (n uint32, err error) = kernel32.FormatMessageA

// FormatSystemMessage returns the system-defined message text for a win32
// error code. FormatMessageA yields bytes in the active ANSI codepage, so
// the result goes through an MBCS to UTF-8 conversion before use.
func FormatSystemMessage(code uint32) (string, error) {
	var buf [512]byte

	n, err := formatMessageA(
		windows.FORMAT_MESSAGE_FROM_SYSTEM|windows.FORMAT_MESSAGE_IGNORE_INSERTS,
		0,
		code,
		0, // default language
		&buf[0],
		uint32(len(buf)),
		0,
	)
	if err != nil {
		return "", err
	}

	msg, err := mbcs.AtoU(buf[:n], mbcs.ACP)
	if err != nil {
		return "", err
	}

	return strings.TrimRight(msg, "\r\n "), nil
}
