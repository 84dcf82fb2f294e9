package shell

import (
	"strings"

	"github.com/sirupsen/logrus"
)

type action int

const (
	actionContinue action = iota
	actionExit
)

type handler func(shell *Shell, argument string) (action, error)

// rule maps a keyword to a handler. Prefix rules include the separating space
// in their keyword and pass the rest of the line as the argument.
type rule struct {
	keyword string
	prefix  bool
	handle  handler
}

func (r rule) name() string {
	return strings.TrimSuffix(r.keyword, " ")
}

func (r rule) match(line string) (string, bool) {
	if !r.prefix {
		return "", line == r.keyword
	}
	if !strings.HasPrefix(line, r.keyword) {
		return "", false
	}
	return line[len(r.keyword):], true
}

// rules are tried in order and the first match wins. No line matches more than
// one of them.
var rules = []rule{
	{"hello", false, (*Shell).hello},
	{"exit", false, (*Shell).exit},
	{"ls", false, (*Shell).ls},
	{"readf ", true, (*Shell).readFile},
	{"addf ", true, (*Shell).addFile},
	{"writef ", true, (*Shell).writeFile},
}

func lookup(line string) (rule, string, bool) {
	for _, r := range rules {
		if argument, ok := r.match(line); ok {
			return r, argument, true
		}
	}
	return rule{}, "", false
}

func (shell *Shell) dispatch(line string) (action, error) {
	r, argument, ok := lookup(line)
	if !ok {
		commandsTotal.WithLabelValues(unknownCommand).Inc()
		shell.logger.WithField("command", line).Debugln("Unknown command")
		return actionContinue, shell.printf("unknown command: %s\n", line)
	}
	commandsTotal.WithLabelValues(r.name()).Inc()
	shell.logger.WithFields(logrus.Fields{
		"command":  r.name(),
		"argument": argument,
	}).Debugln("Command dispatched")
	return r.handle(shell, argument)
}

func (shell *Shell) hello(string) (action, error) {
	return actionContinue, shell.printf("Hello world from shell!\n")
}

func (shell *Shell) exit(string) (action, error) {
	shell.sys.Exit()
	return actionExit, nil
}

func (shell *Shell) ls(string) (action, error) {
	shell.sys.Ls()
	return actionContinue, nil
}

func (shell *Shell) readFile(filename string) (action, error) {
	if shell.sys.ReadF(filename) < 0 {
		shell.syscallFailed("readf", filename)
		return actionContinue, shell.printf("file not found: %s\n", filename)
	}
	return actionContinue, nil
}

func (shell *Shell) addFile(filename string) (action, error) {
	if shell.sys.AddF(filename) != 0 {
		shell.syscallFailed("addf", filename)
		return actionContinue, shell.printf("failed to add file \"%s\"\n", filename)
	}
	return actionContinue, shell.printf("file \"%s\" added successfully!\n", filename)
}

func (shell *Shell) writeFile(filename string) (action, error) {
	if err := shell.printf("Enter content (end with ENTER): "); err != nil {
		return actionContinue, err
	}
	var content lineBuffer
	if err := readContent(shell.console, &content); err != nil {
		return actionContinue, err
	}
	written := shell.sys.WriteF(filename, content.bytes(), content.length)
	if written < 0 {
		shell.syscallFailed("writef", filename)
		return actionContinue, shell.printf("failed to write to %s\n", filename)
	}
	return actionContinue, shell.printf("written %d bytes to %s\n", written, filename)
}

func (shell *Shell) syscallFailed(command, filename string) {
	syscallFailuresTotal.WithLabelValues(command).Inc()
	shell.logger.WithFields(logrus.Fields{
		"command":  command,
		"filename": filename,
	}).Debugln("Syscall failed")
}
