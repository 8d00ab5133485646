// Package multifs serves several hashed asset trees under one prefix.
package multifs

import (
	"io/fs"
	"net/http"

	"github.com/benbjohnson/hashfs"
)

type MultiHashFS []*hashfs.FS

func New(fsInstances ...*hashfs.FS) MultiHashFS {
	return MultiHashFS(fsInstances)
}

// Open returns the file from the first tree that has it. Hashed names are
// resolved back to their original file.
func (m MultiHashFS) Open(name string) (http.File, error) {
	for _, f := range m {
		file, err := http.FS(f).Open(name)
		if err == nil {
			return file, nil
		}
	}
	return nil, fs.ErrNotExist
}
