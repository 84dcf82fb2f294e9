package kernel

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// Process is a userland process. Its methods are the system calls available to
// it; they return negative values on failure and after Exit.
type Process struct {
	kernel *Kernel
	out    io.Writer
	pid    int
	exited bool
	logger logrus.FieldLogger
}

func (process *Process) PID() int {
	return process.pid
}

func (process *Process) Exited() bool {
	return process.exited
}

func (process *Process) failed(syscall, name string, err error) int {
	process.logger.WithFields(logrus.Fields{
		"syscall":  syscall,
		"filename": name,
	}).Debugf("Syscall failed: %v", err)
	return -1
}

func (process *Process) ReadF(filename string) int {
	if process.exited {
		return -1
	}
	content, err := process.kernel.read(filename)
	if err != nil {
		return process.failed("readf", filename, err)
	}
	if _, err := fmt.Fprintf(process.out, "%s\n", content); err != nil {
		return process.failed("readf", filename, err)
	}
	return len(content)
}

func (process *Process) AddF(filename string) int {
	if process.exited {
		return -1
	}
	if err := process.kernel.add(filename); err != nil {
		return process.failed("addf", filename, err)
	}
	process.logger.WithField("filename", filename).Infoln("File added")
	return 0
}

func (process *Process) WriteF(filename string, content []byte, length int) int {
	if process.exited || length < 0 || length > len(content) {
		return -1
	}
	written, err := process.kernel.write(filename, content[:length])
	if err != nil {
		return process.failed("writef", filename, err)
	}
	process.logger.WithFields(logrus.Fields{
		"filename": filename,
		"bytes":    written,
	}).Infoln("File written")
	return written
}

func (process *Process) Ls() int {
	if process.exited {
		return -1
	}
	process.kernel.mu.Lock()
	files, err := process.kernel.list()
	process.kernel.mu.Unlock()
	if err != nil {
		return process.failed("ls", "", err)
	}
	for _, file := range files {
		if _, err := fmt.Fprintf(process.out, "%s (%d bytes)\n", file.name, file.size); err != nil {
			return process.failed("ls", file.name, err)
		}
	}
	return len(files)
}

func (process *Process) Exit() {
	if process.exited {
		return
	}
	process.exited = true
	process.logger.Infoln("Process exited")
}
