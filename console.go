package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/jaksi/ushell/kernel"
	"github.com/jaksi/ushell/shell"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

// runLocalShell runs a shell on the process's own stdin and stdout. A terminal
// is switched to raw mode so that echo and line handling are left to the shell.
func runLocalShell(k *kernel.Kernel, stdin *os.File, stdout io.Writer) error {
	fd := int(stdin.Fd())
	crlf := false
	if term.IsTerminal(fd) {
		oldState, err := term.MakeRaw(fd)
		if err != nil {
			return fmt.Errorf("failed to put terminal in raw mode: %w", err)
		}
		defer term.Restore(fd, oldState)
		crlf = true
	}
	console := shell.NewStreamConsole(stdin, stdout, crlf)
	process := k.Spawn(console)
	logger := logrus.WithFields(logrus.Fields{
		"session_id": uuid.New().String(),
		"pid":        process.PID(),
	})
	err := shell.New(console, process, logger).Run()
	process.Exit()
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
