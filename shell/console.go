package shell

import (
	"bufio"
	"fmt"
	"io"
)

// Console is a character device.
type Console interface {
	// GetChar blocks until a character is available.
	GetChar() (byte, error)
	PutChar(ch byte) error
}

// StreamConsole is a Console backed by a byte stream, such as a terminal in raw
// mode or an SSH session channel. It does not echo input.
type StreamConsole struct {
	reader *bufio.Reader
	writer io.Writer
	crlf   bool
}

// NewStreamConsole returns a console reading from r and writing to w. When crlf
// is set, every '\n' written is sent as "\r\n".
func NewStreamConsole(r io.Reader, w io.Writer, crlf bool) *StreamConsole {
	return &StreamConsole{bufio.NewReader(r), w, crlf}
}

func (console *StreamConsole) GetChar() (byte, error) {
	return console.reader.ReadByte()
}

func (console *StreamConsole) PutChar(ch byte) error {
	var err error
	if console.crlf && ch == '\n' {
		_, err = console.writer.Write([]byte{'\r', '\n'})
	} else {
		_, err = console.writer.Write([]byte{ch})
	}
	return err
}

// Write lets syscalls print to the console with the same newline translation
// as PutChar.
func (console *StreamConsole) Write(p []byte) (int, error) {
	for i, ch := range p {
		if err := console.PutChar(ch); err != nil {
			return i, err
		}
	}
	return len(p), nil
}

func printf(console Console, format string, args ...interface{}) error {
	for _, ch := range []byte(fmt.Sprintf(format, args...)) {
		if err := console.PutChar(ch); err != nil {
			return err
		}
	}
	return nil
}
