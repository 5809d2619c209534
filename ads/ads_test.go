//go:build windows

package ads

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-sw/streamfs/stream"
)

func newHostFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "host.txt")
	require.NoError(t, os.WriteFile(path, []byte("primary"), 0o644))
	return path
}

func TestOpenStreamMissingFailsNotFound(t *testing.T) {
	t.Parallel()

	path := newHostFile(t)

	_, err := OpenStream(path, "absent", os.O_RDONLY)
	require.Error(t, err)
	assert.Equal(t, stream.KindNotFound, stream.KindOf(err))
}

func TestOpenStreamCreateIfMissing(t *testing.T) {
	t.Parallel()

	path := newHostFile(t)

	f, err := OpenStream(path, "created", os.O_WRONLY|os.O_CREATE)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	streams, err := stream.ListAlternateStreams(path)
	require.NoError(t, err)
	require.Len(t, streams, 1)
	assert.Equal(t, "created", streams[0].Name)
	assert.Zero(t, streams[0].Size)
}

func TestOpenStreamRoundTrip(t *testing.T) {
	t.Parallel()

	path := newHostFile(t)
	content := []byte("stream payload")

	w, err := OpenStream(path, "payload", os.O_WRONLY|os.O_CREATE|os.O_TRUNC)
	require.NoError(t, err)
	_, err = w.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r, err := OpenStream(path, "payload", os.O_RDONLY)
	require.NoError(t, err)
	defer r.Close()

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestOpenStreamExclusiveCreateConflict(t *testing.T) {
	t.Parallel()

	path := newHostFile(t)

	f, err := OpenStream(path, "once", os.O_WRONLY|os.O_CREATE|os.O_EXCL)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	_, err = OpenStream(path, "once", os.O_WRONLY|os.O_CREATE|os.O_EXCL)
	require.Error(t, err)
	assert.Equal(t, stream.KindAlreadyExists, stream.KindOf(err))
}

func TestOpenStreamInvalidName(t *testing.T) {
	t.Parallel()

	_, err := OpenStream(newHostFile(t), "bad:name", os.O_RDONLY)
	require.Error(t, err)
	assert.Equal(t, stream.KindInvalidArgument, stream.KindOf(err))
}

func TestFileStreamsLifecycle(t *testing.T) {
	t.Parallel()

	path := newHostFile(t)

	fs, err := Open(path)
	require.NoError(t, err)
	assert.Empty(t, fs.List())

	_, err = fs.Create("Zone.Identifier")
	require.NoError(t, err)
	assert.True(t, fs.Exists("Zone.Identifier"))
	assert.True(t, fs.Exists("zone.identifier"), "lookup is case-insensitive")

	w, err := fs.Open("Zone.Identifier", os.O_WRONLY|os.O_TRUNC)
	require.NoError(t, err)
	_, err = w.Write([]byte("[ZoneTransfer]\r\nZoneId=3\r\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	require.NoError(t, fs.Refresh())
	s, ok := fs.Lookup("zone.IDENTIFIER")
	require.True(t, ok)
	assert.Equal(t, int64(26), s.Size)

	require.NoError(t, fs.Remove("Zone.Identifier"))
	assert.False(t, fs.Exists("Zone.Identifier"))

	streams, err := stream.ListAlternateStreams(path)
	require.NoError(t, err)
	assert.Empty(t, streams)
}

func TestFileStreamsCreateConflict(t *testing.T) {
	t.Parallel()

	fs, err := Open(newHostFile(t))
	require.NoError(t, err)

	_, err = fs.Create("dup")
	require.NoError(t, err)

	_, err = fs.Create("dup")
	require.Error(t, err)
	assert.Equal(t, stream.KindAlreadyExists, stream.KindOf(err))
}

func TestFileStreamsRemoveAll(t *testing.T) {
	t.Parallel()

	path := newHostFile(t)

	fs, err := Open(path)
	require.NoError(t, err)

	for _, name := range []string{"one", "two", "three"} {
		_, err = fs.Create(name)
		require.NoError(t, err)
	}

	require.NoError(t, fs.RemoveAll())

	streams, err := stream.ListAlternateStreams(path)
	require.NoError(t, err)
	assert.Empty(t, streams, "only the unnamed data stream remains")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("primary"), content, "primary stream untouched")
}

func TestFileStreamsRename(t *testing.T) {
	t.Parallel()

	path := newHostFile(t)

	fs, err := Open(path)
	require.NoError(t, err)

	_, err = fs.Create("before")
	require.NoError(t, err)

	require.NoError(t, fs.Rename("before", "after", false))
	assert.False(t, fs.Exists("before"))
	assert.True(t, fs.Exists("after"))

	require.NoError(t, fs.Refresh())
	assert.True(t, fs.Exists("after"), "rename visible to re-enumeration")

	err = fs.Rename("missing", "whatever", false)
	require.Error(t, err)
	assert.Equal(t, stream.KindNotFound, stream.KindOf(err))
}

func TestFileStreamsList(t *testing.T) {
	t.Parallel()

	fs, err := Open(newHostFile(t))
	require.NoError(t, err)

	for _, name := range []string{"bbb", "AAA", "ccc"} {
		_, err = fs.Create(name)
		require.NoError(t, err)
	}

	list := fs.List()
	require.Len(t, list, 3)
	assert.Equal(t, "AAA", list[0].Name)
	assert.Equal(t, "bbb", list[1].Name)
	assert.Equal(t, "ccc", list[2].Name)
}

func TestOpenDirectoryCollection(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	fs, err := Open(dir + `\`)
	require.NoError(t, err)

	_, err = fs.Create("dirstream")
	require.NoError(t, err)
	assert.True(t, fs.Exists("dirstream"))
}
