package stream

import (
	"io"
	"strings"
)

// AlternateStream describes one named data stream attached to a file or
// directory.
type AlternateStream struct {
	// host file or directory the stream is attached to
	FilePath string
	// stream name without separators or the type suffix
	Name string
	// derived address used to open the stream directly, see BuildStreamPath
	StreamPath string
	Exists     bool
	Size       int64
	Type       StreamType
	Attributes StreamAttributes
}

// Equal reports whether two descriptors address the same stream. Stream
// names are case-insensitive on NTFS, so identity is the case-folded
// (FilePath, Name) pair; StreamPath, Size and Exists are derived state
// and take no part in it.
func (s AlternateStream) Equal(o AlternateStream) bool {
	return strings.EqualFold(s.FilePath, o.FilePath) && strings.EqualFold(s.Name, o.Name)
}

// FoldName returns the case-folded form of a stream name, usable as a
// case-insensitive map key.
func FoldName(name string) string {
	return strings.ToUpper(name)
}

// backupSource yields the raw backup representation of one file and can
// position its cursor past payload regions without copying them.
type backupSource interface {
	io.Reader
	skip(n int64) error
}

// collectStreams drives the header decoder across src and materializes
// the named data streams it describes. Records with no usable name, the
// unnamed primary data stream included, are passed over silently; their
// payloads are still skipped so the walk continues. A failure mid-walk
// discards everything collected so far.
func collectStreams(src backupSource, filePath string) ([]AlternateStream, error) {
	scratch := newNameBuffer()
	defer scratch.release()

	var streams []AlternateStream
	for {
		rec, err := readRecord(src, scratch)
		if err == io.EOF {
			return streams, nil
		}
		if err != nil {
			return nil, err
		}

		if rec.Name != "" && (rec.Type == TypeAlternateData || rec.Type == TypeData) {
			streams = append(streams, AlternateStream{
				FilePath:   filePath,
				Name:       rec.Name,
				StreamPath: BuildStreamPath(filePath, rec.Name),
				Exists:     true,
				Size:       rec.Size,
				Type:       rec.Type,
				Attributes: rec.Attributes,
			})
		}

		// zero-length streams have no payload to skip, keep walking
		if rec.Size > 0 {
			if err := src.skip(rec.Size); err != nil {
				if err == io.EOF {
					return streams, nil
				}
				return nil, err
			}
		}
	}
}
