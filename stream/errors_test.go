package stream

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorFormatting(t *testing.T) {
	t.Parallel()

	e := &Error{Kind: KindNotFound, Op: "open", Path: `C:\missing.txt`}
	assert.Equal(t, `open C:\missing.txt: not found`, e.Error())

	cause := errors.New("errno 2")
	e = &Error{Kind: KindNotFound, Op: "open", Path: `C:\missing.txt`, Err: cause}
	assert.Equal(t, `open C:\missing.txt: not found: errno 2`, e.Error())
	assert.ErrorIs(t, e, cause)
}

func TestKindOf(t *testing.T) {
	t.Parallel()

	err := newError(KindInUse, "open", `C:\locked`, nil)
	assert.Equal(t, KindInUse, KindOf(err))

	// wrapped errors still report their kind
	assert.Equal(t, KindInUse, KindOf(errors.Join(errors.New("outer"), err)))

	assert.Equal(t, KindUnknown, KindOf(errors.New("foreign")))
	assert.Equal(t, KindUnknown, KindOf(nil))
}

func TestKindString(t *testing.T) {
	t.Parallel()

	kinds := map[Kind]string{
		KindUnknown:          "unknown error",
		KindInvalidArgument:  "invalid argument",
		KindNotFound:         "not found",
		KindPermissionDenied: "permission denied",
		KindInUse:            "in use",
		KindAlreadyExists:    "already exists",
		KindNotSupported:     "not supported",
		KindPathTooLong:      "path too long",
	}
	for k, want := range kinds {
		require.Equal(t, want, k.String())
	}
}
