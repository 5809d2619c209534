package stream

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildStreamPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		base, name string
		want       string
	}{
		{`C:\file.txt`, "Zone.Identifier", `C:\file.txt:Zone.Identifier:$DATA`},
		{`C:\dir\`, "notes", `C:\dir:notes:$DATA`},
		{`C:\dir\\`, "notes", `C:\dir:notes:$DATA`},
		{`relative\path`, "s", `relative\path:s:$DATA`},
		{`\`, "s", `.:s:$DATA`},
		{`/`, "s", `.:s:$DATA`},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, BuildStreamPath(tc.base, tc.name), "base %q", tc.base)
	}
}

func TestBuildStreamPathLongLocalPrefix(t *testing.T) {
	t.Parallel()

	base := `C:\` + strings.Repeat("a", 300)
	got := BuildStreamPath(base, "s")

	assert.True(t, strings.HasPrefix(got, `\\?\C:\`), "got %q", got)
	assert.True(t, strings.HasSuffix(got, `:s:$DATA`))
}

func TestBuildStreamPathLongUNCPrefix(t *testing.T) {
	t.Parallel()

	base := `\\server\share\` + strings.Repeat("a", 300)
	got := BuildStreamPath(base, "s")

	assert.True(t, strings.HasPrefix(got, `\\?\UNC\server\share\`), "got %q", got)
	assert.False(t, strings.HasPrefix(got, `\\?\UNC\\\`), "double separator survived: %q", got)
}

func TestBuildStreamPathShortPathUnprefixed(t *testing.T) {
	t.Parallel()

	assert.False(t, strings.HasPrefix(BuildStreamPath(`C:\f`, "s"), `\\?\`))
}

func TestBuildStreamPathIdempotent(t *testing.T) {
	t.Parallel()

	bases := []string{
		`C:\file.txt`,
		`C:\dir\`,
		`C:\` + strings.Repeat("a", 300),
		`\\server\share\` + strings.Repeat("a", 300),
		`\\?\C:\already\extended`,
	}
	for _, base := range bases {
		once := BuildStreamPath(base, "stream")
		twice := BuildStreamPath(once, "stream")
		assert.Equal(t, once, twice, "base %q", base)
	}
}

func TestSplitStreamPathRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		base, name string
	}{
		{`C:\file.txt`, "Zone.Identifier"},
		{`C:\` + strings.Repeat("a", 300), "long"},
		{`\\server\share\` + strings.Repeat("a", 300), "unc"},
		{`relative`, "s"},
	}
	for _, tc := range tests {
		base, name, ok := SplitStreamPath(BuildStreamPath(tc.base, tc.name))
		require.True(t, ok, "base %q", tc.base)
		assert.Equal(t, tc.base, base)
		assert.Equal(t, tc.name, name)
	}
}

func TestSplitStreamPathRejectsNonStreamPaths(t *testing.T) {
	t.Parallel()

	for _, p := range []string{`C:\file.txt`, `:$DATA`, ``, `name:$DATA`} {
		_, _, ok := SplitStreamPath(p)
		assert.False(t, ok, "input %q", p)
	}
}

func TestValidatePath(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidatePath(`C:\file.txt`))
	assert.NoError(t, ValidatePath(`\\?\C:\extended`))

	for _, p := range []string{"", "bad<path", "bad>path", "bad|path", "ctrl\x01path"} {
		err := ValidatePath(p)
		require.Error(t, err, "input %q", p)
		assert.Equal(t, KindInvalidArgument, KindOf(err))
	}
}

func TestValidateStreamName(t *testing.T) {
	t.Parallel()

	// control characters 1-31 are legal in stream names
	assert.NoError(t, ValidateStreamName("Zone.Identifier"))
	assert.NoError(t, ValidateStreamName("ctrl\x01\x1fname"))

	for _, n := range []string{"", "a:b", `a\b`, "a/b", "a*b", "a?b", "a\x00b"} {
		err := ValidateStreamName(n)
		require.Error(t, err, "input %q", n)
		assert.Equal(t, KindInvalidArgument, KindOf(err))
	}
}
