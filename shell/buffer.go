package shell

import "bytes"

// bufferSize is the capacity of a line buffer, including the terminating NUL.
const bufferSize = 128

// lineBuffer is a fixed-capacity byte buffer. At most bufferSize-1 bytes can be
// stored so that there is always room for the terminator.
type lineBuffer struct {
	data   [bufferSize]byte
	length int
}

func (buf *lineBuffer) full() bool {
	return buf.length == bufferSize-1
}

// append stores ch and reports whether there was room for it.
func (buf *lineBuffer) append(ch byte) bool {
	if buf.full() {
		return false
	}
	buf.data[buf.length] = ch
	buf.length++
	return true
}

func (buf *lineBuffer) terminate() {
	buf.data[buf.length] = 0
}

func (buf *lineBuffer) reset() {
	buf.length = 0
	buf.terminate()
}

func (buf *lineBuffer) bytes() []byte {
	return buf.data[:buf.length]
}

// String returns the contents up to the first NUL, the way the line is seen by
// anything treating it as a C string.
func (buf *lineBuffer) String() string {
	content := buf.bytes()
	if i := bytes.IndexByte(content, 0); i >= 0 {
		content = content[:i]
	}
	return string(content)
}
