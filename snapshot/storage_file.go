package snapshot

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// FileStorage keeps the snapshot in a single JSON file.
type FileStorage struct {
	path string
}

var _ Storage = (*FileStorage)(nil)

// NewFileStorage creates a file storage for the given path. The file and its parent
// directories are created on the first Store.
func NewFileStorage(path string) (*FileStorage, error) {
	if path == "" {
		return nil, eris.New("settings file path cannot be empty")
	}
	return &FileStorage{path: path}, nil
}

// Path returns the file the storage reads from and writes to.
func (f *FileStorage) Path() string {
	return f.path
}

func (f *FileStorage) Load(_ context.Context) (*Snapshot, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, eris.Wrapf(ErrSnapshotNotFound, "no settings file at %s", f.path)
		}
		return nil, eris.Wrapf(err, "failed to read settings file %s", f.path)
	}

	s, err := Decode(data)
	if err != nil {
		return nil, eris.Wrapf(err, "malformed settings file %s", f.path)
	}
	return s, nil
}

// Store writes the snapshot to a temporary file next to the target and renames it into place,
// so a crash mid-write leaves the previous file intact.
func (f *FileStorage) Store(_ context.Context, s *Snapshot) error {
	data, err := Encode(s)
	if err != nil {
		return err
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return eris.Wrapf(err, "failed to create directory %s", dir)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return eris.Wrap(err, "failed to create temporary settings file")
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck // no-op once renamed

	if _, err := tmp.Write(data); err != nil {
		tmp.Close() //nolint:errcheck,gosec // already failing
		return eris.Wrap(err, "failed to write temporary settings file")
	}
	if err := tmp.Close(); err != nil {
		return eris.Wrap(err, "failed to close temporary settings file")
	}
	if err := os.Chmod(tmpName, filePerm); err != nil {
		return eris.Wrap(err, "failed to set settings file permissions")
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		return eris.Wrapf(err, "failed to move settings file into %s", f.path)
	}
	return nil
}
