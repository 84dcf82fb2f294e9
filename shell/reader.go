package shell

import "errors"

var errLineTooLong = errors.New("command line too long")

func isLineEnd(ch byte) bool {
	return ch == '\r' || ch == '\n'
}

// readLine reads a command line into buf, echoing every character it consumes.
// If a character arrives while buf is already full it is echoed and dropped,
// and errLineTooLong is returned with the line discarded.
func readLine(console Console, buf *lineBuffer) error {
	buf.reset()
	for {
		ch, err := console.GetChar()
		if err != nil {
			return err
		}
		if err := console.PutChar(ch); err != nil {
			return err
		}
		if buf.full() {
			buf.reset()
			return errLineTooLong
		}
		if isLineEnd(ch) {
			buf.terminate()
			return console.PutChar('\n')
		}
		buf.append(ch)
	}
}

// readContent reads file content into buf until a line end or until buf is
// full. The line end is neither echoed nor stored; a character read once buf
// is full is dropped silently.
func readContent(console Console, buf *lineBuffer) error {
	buf.reset()
	for {
		ch, err := console.GetChar()
		if err != nil {
			return err
		}
		if isLineEnd(ch) || buf.full() {
			buf.terminate()
			return nil
		}
		if err := console.PutChar(ch); err != nil {
			return err
		}
		buf.append(ch)
	}
}
