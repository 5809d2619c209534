package stream

const initialNameBufferSize = 128

// nameBuffer stages the raw UTF-16 name bytes of stream headers. One
// enumeration owns one buffer; it is never shared and is released when
// the enumeration ends.
type nameBuffer struct {
	buf []byte
}

func newNameBuffer() *nameBuffer {
	return &nameBuffer{buf: make([]byte, initialNameBufferSize)}
}

// grow returns a slice of exactly n bytes, doubling the backing array
// when the current capacity falls short. The content of the returned
// slice is unspecified.
func (b *nameBuffer) grow(n int) []byte {
	if n <= len(b.buf) {
		return b.buf[:n]
	}

	size := len(b.buf)
	if size == 0 {
		size = initialNameBufferSize
	}
	for size < n {
		size *= 2
	}
	b.buf = make([]byte, size)

	return b.buf[:n]
}

func (b *nameBuffer) release() {
	b.buf = nil
}
