package toggle

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	log "github.com/go-pkgz/lgr"
	"github.com/google/renameio/v2"
)

// fileTx stages file mutations and applies them together. If any step fails,
// the steps already applied are undone in reverse order.
type fileTx struct {
	steps []txStep
}

type txStep struct {
	name  string
	apply func() (undo func() error, err error)
}

// write stages an atomic write of data to path, creating missing parent directories.
// Existing file permissions are kept.
func (t *fileTx) write(path string, data []byte) {
	t.steps = append(t.steps, txStep{name: "write " + path, apply: func() (func() error, error) {
		prev, prevErr := snapshot(path)
		if prevErr != nil && !errors.Is(prevErr, os.ErrNotExist) {
			return nil, prevErr
		}

		created, err := mkdirs(filepath.Dir(path))
		if err != nil {
			return nil, err
		}
		undoDirs := func() error { return removeDirs(created) }

		perm := os.FileMode(0o644)
		if prevErr == nil {
			perm = prev.perm
		}
		if err := writeAtomic(path, data, perm); err != nil {
			return nil, errors.Join(err, undoDirs())
		}

		if prevErr != nil { // file did not exist before
			return func() error { return errors.Join(os.Remove(path), undoDirs()) }, nil
		}
		return func() error { return writeAtomic(path, prev.data, prev.perm) }, nil
	}})
}

// remove stages deletion of path. Missing file is not an error.
func (t *fileTx) remove(path string) {
	t.steps = append(t.steps, txStep{name: "remove " + path, apply: func() (func() error, error) {
		prev, err := snapshot(path)
		if errors.Is(err, os.ErrNotExist) {
			return func() error { return nil }, nil
		}
		if err != nil {
			return nil, err
		}
		if err := os.Remove(path); err != nil {
			return nil, fmt.Errorf("failed to remove %s: %w", path, err)
		}
		return func() error { return writeAtomic(path, prev.data, prev.perm) }, nil
	}})
}

// removeDirIfEmpty stages removal of dir, which silently stays if it is not empty or missing.
func (t *fileTx) removeDirIfEmpty(dir string) {
	t.steps = append(t.steps, txStep{name: "rmdir " + dir, apply: func() (func() error, error) {
		info, err := os.Stat(dir)
		if err != nil {
			return func() error { return nil }, nil //nolint:nilerr // nothing to remove
		}
		if err := os.Remove(dir); err != nil {
			log.Printf("[DEBUG] keep directory %s: %v", dir, err)
			return func() error { return nil }, nil
		}
		return func() error { return os.Mkdir(dir, info.Mode().Perm()) }, nil
	}})
}

// commit applies all staged steps in order. On failure it rolls back and returns the step error
// joined with any rollback errors.
func (t *fileTx) commit() error {
	undos := make([]func() error, 0, len(t.steps))
	for _, s := range t.steps {
		undo, err := s.apply()
		if err != nil {
			log.Printf("[WARN] %s failed, rolling back %d applied step(s)", s.name, len(undos))
			return errors.Join(fmt.Errorf("%s: %w", s.name, err), rollback(undos))
		}
		log.Printf("[DEBUG] %s", s.name)
		undos = append(undos, undo)
	}
	return nil
}

func rollback(undos []func() error) error {
	var errs []error
	for i := len(undos) - 1; i >= 0; i-- {
		if err := undos[i](); err != nil {
			errs = append(errs, fmt.Errorf("rollback: %w", err))
		}
	}
	return errors.Join(errs...)
}

type fileSnapshot struct {
	data []byte
	perm os.FileMode
}

func snapshot(path string) (fileSnapshot, error) {
	info, err := os.Stat(path)
	if err != nil {
		return fileSnapshot{}, err
	}
	if info.IsDir() {
		return fileSnapshot{}, fmt.Errorf("%s is a directory", path)
	}
	data, err := os.ReadFile(path) //nolint:gosec // path comes from config
	if err != nil {
		return fileSnapshot{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return fileSnapshot{data: data, perm: info.Mode().Perm()}, nil
}

// writeAtomic replaces path with data through a synced temp file and rename, setting perm exactly.
func writeAtomic(path string, data []byte, perm os.FileMode) error {
	if err := renameio.WriteFile(path, data, perm, renameio.WithStaticPermissions(perm)); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// mkdirs creates dir and missing parents, returning the created directories, deepest last.
func mkdirs(dir string) ([]string, error) {
	var missing []string
	for d := dir; ; d = filepath.Dir(d) {
		if _, err := os.Stat(d); err == nil {
			break
		}
		missing = append([]string{d}, missing...)
		if filepath.Dir(d) == d {
			break
		}
	}
	if len(missing) == 0 {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return missing, nil
}

// removeDirs removes directories deepest first, only if empty.
func removeDirs(dirs []string) error {
	var errs []error
	for i := len(dirs) - 1; i >= 0; i-- {
		if err := os.Remove(dirs[i]); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
