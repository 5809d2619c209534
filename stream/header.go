// Package stream enumerates NTFS alternate data streams by walking the
// stream headers of a file's backup representation.
//
// https://learn.microsoft.com/en-us/openspecs/windows_protocols/ms-bkup
package stream

import (
	"encoding/binary"
	"errors"
	"io"
	"strings"
	"unicode/utf16"
)

// StreamType indicates the type of data in a backup stream.
type StreamType uint32

const (
	TypeUnknown StreamType = iota
	TypeData
	TypeExtendedAttributes
	TypeSecurityData
	TypeAlternateData
	TypeLink
	TypePropertyData
	TypeObjectID
	TypeReparseData
	TypeSparseBlock
	TypeTxfsData
)

func (t StreamType) String() string {
	switch t {
	case TypeData:
		return "data"
	case TypeExtendedAttributes:
		return "extended attributes"
	case TypeSecurityData:
		return "security data"
	case TypeAlternateData:
		return "alternate data"
	case TypeLink:
		return "link"
	case TypePropertyData:
		return "property data"
	case TypeObjectID:
		return "object id"
	case TypeReparseData:
		return "reparse data"
	case TypeSparseBlock:
		return "sparse block"
	case TypeTxfsData:
		return "transaction data"
	default:
		return "unknown"
	}
}

// StreamAttributes indicates properties of a backup stream.
type StreamAttributes uint32

const (
	AttrNone             StreamAttributes = 0
	AttrModifiedWhenRead StreamAttributes = 1 << (iota - 1)
	AttrContainsSecurity
	AttrContainsProperties
	AttrSparse
)

func (a StreamAttributes) String() string {
	if a == AttrNone {
		return "none"
	}

	var names []string
	if a&AttrModifiedWhenRead != 0 {
		names = append(names, "modified-when-read")
	}
	if a&AttrContainsSecurity != 0 {
		names = append(names, "contains-security")
	}
	if a&AttrContainsProperties != 0 {
		names = append(names, "contains-properties")
	}
	if a&AttrSparse != 0 {
		names = append(names, "sparse")
	}
	if len(names) == 0 {
		return "unknown"
	}

	return strings.Join(names, "+")
}

// Fixed portion of a WIN32_STREAM_ID as it appears on the wire, all
// fields little-endian:
//
//	offset  0  uint32  stream type
//	offset  4  uint32  attribute flags
//	offset  8  uint32  size, low half
//	offset 12  uint32  size, high half
//	offset 16  uint32  name length in bytes
//
// The UTF-16LE name follows immediately, then the payload.
const headerSize = 20

var errOddNameLength = errors.New("stream name byte length is odd")

// StreamRecord is one decoded stream header. Name is empty for records
// that carry no name, such as the unnamed primary data stream.
type StreamRecord struct {
	Type       StreamType
	Attributes StreamAttributes
	Size       int64
	Name       string
}

// readRecord decodes the next stream header from r. The name bytes are
// staged in the caller-owned scratch buffer. A short read, on the header
// itself or on the name, is clean end of stream and comes back as io.EOF;
// any other failure is an error. The record's payload is not consumed;
// the caller skips Size bytes before the next call.
func readRecord(r io.Reader, scratch *nameBuffer) (*StreamRecord, error) {
	var hdr [headerSize]byte

	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, io.EOF
		}
		return nil, err
	}

	// combine the size halves as unsigned to keep the high bit of the
	// low half from sign-corrupting the result
	low := binary.LittleEndian.Uint32(hdr[8:12])
	high := binary.LittleEndian.Uint32(hdr[12:16])

	rec := &StreamRecord{
		Type:       StreamType(binary.LittleEndian.Uint32(hdr[0:4])),
		Attributes: StreamAttributes(binary.LittleEndian.Uint32(hdr[4:8])),
		Size:       int64(uint64(high)<<32 | uint64(low)),
	}

	nameLen := binary.LittleEndian.Uint32(hdr[16:20])
	if nameLen > 0 {
		if nameLen&1 != 0 {
			return nil, errOddNameLength
		}

		buf := scratch.grow(int(nameLen))
		if _, err := io.ReadFull(r, buf); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return nil, io.EOF
			}
			return nil, err
		}

		rec.Name = extractStreamName(decodeUTF16(buf))
	}

	return rec, nil
}

func decodeUTF16(b []byte) string {
	u := make([]uint16, len(b)/2)
	for i := range u {
		u[i] = binary.LittleEndian.Uint16(b[2*i:])
	}
	return string(utf16.Decode(u))
}

// extractStreamName pulls the stream name out of its wire form
// ":NAME:$DATA\x00". The name sits between position 1 and the next colon.
// A record missing the second colon should not occur, but NUL termination
// still recovers the name; with neither the record has no name.
func extractStreamName(s string) string {
	if len(s) < 2 {
		return ""
	}

	rest := s[1:]
	if i := strings.IndexByte(rest, ':'); i >= 0 {
		return rest[:i]
	}
	if i := strings.IndexByte(rest, 0); i >= 0 {
		return rest[:i]
	}

	return ""
}
