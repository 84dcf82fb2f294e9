// Package kernel provides the file and process system calls behind the shell.
// Files live in a flat table stored at the root of an afero filesystem, shared
// by every process spawned from the same Kernel.
package kernel

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

const (
	DefaultMaxFiles    = 16
	DefaultMaxFileSize = 1024
)

var (
	errInvalidName = errors.New("invalid file name")
	errExists      = errors.New("file exists")
	errTableFull   = errors.New("file table full")
)

type Options struct {
	MaxFiles    int
	MaxFileSize int
	Logger      logrus.FieldLogger
}

type Kernel struct {
	mu      sync.Mutex
	fs      afero.Fs
	opts    Options
	lastPID int32
}

// New returns a kernel storing files in fs. Zero limits are replaced by the
// defaults.
func New(fs afero.Fs, opts Options) *Kernel {
	if opts.MaxFiles <= 0 {
		opts.MaxFiles = DefaultMaxFiles
	}
	if opts.MaxFileSize <= 0 {
		opts.MaxFileSize = DefaultMaxFileSize
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	return &Kernel{fs: fs, opts: opts}
}

func validName(name string) bool {
	return name != "" && name != "." && name != ".." && !strings.ContainsAny(name, "/\\\x00")
}

func (kernel *Kernel) path(name string) string {
	return "/" + name
}

type fileInfo struct {
	name string
	size int64
}

func (kernel *Kernel) list() ([]fileInfo, error) {
	entries, err := afero.ReadDir(kernel.fs, "/")
	if err != nil {
		return nil, err
	}
	var files []fileInfo
	for _, entry := range entries {
		if !entry.Mode().IsRegular() {
			continue
		}
		files = append(files, fileInfo{entry.Name(), entry.Size()})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].name < files[j].name })
	return files, nil
}

func (kernel *Kernel) read(name string) ([]byte, error) {
	if !validName(name) {
		return nil, errInvalidName
	}
	kernel.mu.Lock()
	defer kernel.mu.Unlock()
	return afero.ReadFile(kernel.fs, kernel.path(name))
}

func (kernel *Kernel) add(name string) error {
	if !validName(name) {
		return errInvalidName
	}
	kernel.mu.Lock()
	defer kernel.mu.Unlock()
	exists, err := afero.Exists(kernel.fs, kernel.path(name))
	if err != nil {
		return err
	}
	if exists {
		return errExists
	}
	files, err := kernel.list()
	if err != nil {
		return err
	}
	if len(files) >= kernel.opts.MaxFiles {
		return errTableFull
	}
	file, err := kernel.fs.OpenFile(kernel.path(name), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	return file.Close()
}

func (kernel *Kernel) write(name string, content []byte) (int, error) {
	if !validName(name) {
		return 0, errInvalidName
	}
	if len(content) > kernel.opts.MaxFileSize {
		content = content[:kernel.opts.MaxFileSize]
	}
	kernel.mu.Lock()
	defer kernel.mu.Unlock()
	info, err := kernel.fs.Stat(kernel.path(name))
	if err != nil {
		return 0, err
	}
	if !info.Mode().IsRegular() {
		return 0, fmt.Errorf("%v: not a regular file", name)
	}
	if err := afero.WriteFile(kernel.fs, kernel.path(name), content, 0644); err != nil {
		return 0, err
	}
	return len(content), nil
}

// Spawn creates a process whose console output goes to out.
func (kernel *Kernel) Spawn(out io.Writer) *Process {
	pid := int(atomic.AddInt32(&kernel.lastPID, 1))
	process := &Process{
		kernel: kernel,
		out:    out,
		pid:    pid,
		logger: kernel.opts.Logger.WithField("pid", pid),
	}
	process.logger.Infoln("Process created")
	return process
}
