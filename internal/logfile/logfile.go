package logfile

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/hashicorp/go-multierror"
)

// Files keeps track of the log files opened during a run
type Files struct {
	lock  sync.Mutex
	files []*os.File
}

// Create opens the file at path in append mode, creating it and its parent
// directories if needed.
func (f *Files) Create(path string) (io.Writer, error) {
	f.lock.Lock()
	defer f.lock.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	file, err := os.OpenFile(path, os.O_RDWR|os.O_APPEND|os.O_CREATE, 0660)
	if err != nil {
		return nil, err
	}
	f.files = append(f.files, file)
	return file, nil
}

// Close closes every file, even if some of them fail
func (f *Files) Close() error {
	f.lock.Lock()
	defer f.lock.Unlock()

	var result error
	for _, file := range f.files {
		if err := file.Close(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	f.files = nil
	return result
}
