package stream

import (
	"errors"
	"fmt"
	"strings"
)

// dataTypeSuffix mirrors the on-disk stream type. Opening a stream by
// name needs it so the call resolves to the $DATA attribute stream rather
// than the security or index streams.
const dataTypeSuffix = ":$DATA"

const (
	longPathPrefix    = `\\?\`
	ntNamespacePrefix = `\??\`
	uncLongPathPrefix = `\\?\UNC\`

	// conventional MAX_PATH ceiling past which the extended-length
	// prefix is required
	maxConventionalPath = 260
)

// BuildStreamPath returns the address used to open the named stream of
// base directly: base + ":" + name + ":$DATA". Trailing path separators
// on base are trimmed first, so directories given with one still address
// correctly; a base that trims to nothing becomes the current directory.
// Addresses reaching the conventional path-length ceiling get the
// extended-length prefix, `\\?\UNC\` for UNC roots and `\\?\` otherwise.
//
// The function is pure and idempotent: applying it to its own output
// changes nothing.
func BuildStreamPath(base, name string) string {
	p := strings.TrimRight(base, `\/`)
	if p == "" {
		p = "."
	}

	if !strings.HasSuffix(p, ":"+name+dataTypeSuffix) {
		p = p + ":" + name + dataTypeSuffix
	}

	if len(p) >= maxConventionalPath && !isExtendedPath(p) {
		if strings.HasPrefix(p, `\\`) {
			p = uncLongPathPrefix + p[2:]
		} else {
			p = longPathPrefix + p
		}
	}

	return p
}

// SplitStreamPath decomposes an address produced by BuildStreamPath back
// into its base path and stream name. ok is false when p does not carry
// the ":name:$DATA" form.
func SplitStreamPath(p string) (base, name string, ok bool) {
	switch {
	case strings.HasPrefix(p, uncLongPathPrefix):
		p = `\\` + p[len(uncLongPathPrefix):]
	case strings.HasPrefix(p, longPathPrefix):
		p = p[len(longPathPrefix):]
	case strings.HasPrefix(p, ntNamespacePrefix):
		p = p[len(ntNamespacePrefix):]
	}

	if !strings.HasSuffix(p, dataTypeSuffix) {
		return "", "", false
	}
	p = p[:len(p)-len(dataTypeSuffix)]

	i := strings.LastIndexByte(p, ':')
	if i <= 0 {
		return "", "", false
	}

	return p[:i], p[i+1:], true
}

func isExtendedPath(p string) bool {
	return strings.HasPrefix(p, longPathPrefix) || strings.HasPrefix(p, ntNamespacePrefix)
}

// characters illegal anywhere in a path, besides the control characters
const invalidPathChars = `"<>|`

// ValidatePath rejects empty paths and paths containing characters that
// are illegal in any path.
func ValidatePath(path string) error {
	if path == "" {
		return newError(KindInvalidArgument, "validate", path, errors.New("empty path"))
	}

	for i := 0; i < len(path); i++ {
		c := path[i]
		if c < 32 || strings.IndexByte(invalidPathChars, c) >= 0 {
			return newError(KindInvalidArgument, "validate", path,
				fmt.Errorf("invalid character %q in path", c))
		}
	}

	return nil
}

// characters illegal in a stream name; unlike ordinary file names the
// control characters 1-31 are legal here
const invalidStreamNameChars = "<>:\"/\\|?*\x00"

// ValidateStreamName rejects empty names and names containing characters
// NTFS does not allow in stream names.
func ValidateStreamName(name string) error {
	if name == "" {
		return newError(KindInvalidArgument, "validate", name, errors.New("empty stream name"))
	}

	if i := strings.IndexAny(name, invalidStreamNameChars); i >= 0 {
		return newError(KindInvalidArgument, "validate", name,
			fmt.Errorf("invalid character %q in stream name", name[i]))
	}

	return nil
}
