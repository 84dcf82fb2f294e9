// Package shell implements the userland command shell: a loop that reads a
// line from a console, dispatches it to one of a few built-in commands and
// reports the result of the system call behind it.
package shell

import (
	"github.com/sirupsen/logrus"
)

// Syscalls is the system call interface used by the shell. Return codes follow
// the kernel ABI rather than Go errors.
type Syscalls interface {
	// ReadF prints the file to the console. Negative means not found.
	ReadF(filename string) int
	// AddF creates an empty file. Zero means success.
	AddF(filename string) int
	// WriteF replaces the file content with the first length bytes of content
	// and returns the number of bytes written, or a negative value on failure.
	WriteF(filename string, content []byte, length int) int
	// Ls prints the directory listing to the console.
	Ls() int
	// Exit terminates the calling process. No syscalls follow it.
	Exit()
}

type Shell struct {
	console Console
	sys     Syscalls
	logger  logrus.FieldLogger
}

// New returns a shell reading from console and calling into sys. A nil logger
// means the standard logrus logger.
func New(console Console, sys Syscalls, logger logrus.FieldLogger) *Shell {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Shell{console, sys, logger}
}

// Run prompts for and executes commands until exit is entered, in which case
// it returns nil. Console errors end the loop and are returned as is.
func (shell *Shell) Run() error {
	for {
		var line lineBuffer
		if err := shell.readCommandLine(&line); err != nil {
			return err
		}
		next, err := shell.dispatch(line.String())
		if err != nil {
			return err
		}
		if next == actionExit {
			return nil
		}
	}
}

func (shell *Shell) readCommandLine(line *lineBuffer) error {
	for {
		if err := shell.printf("> "); err != nil {
			return err
		}
		err := readLine(shell.console, line)
		if err != errLineTooLong {
			return err
		}
		lineOverflowsTotal.Inc()
		shell.logger.Infoln("Command line too long, discarded")
		if err := shell.printf("command line too long\n"); err != nil {
			return err
		}
	}
}

func (shell *Shell) printf(format string, args ...interface{}) error {
	return printf(shell.console, format, args...)
}
