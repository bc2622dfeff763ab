// Package git inspects the git worktree a project lives in, used to warn before
// rewriting a source file with uncommitted changes.
package git

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
)

// ErrNotRepository is returned by Open when path is not inside a git worktree.
var ErrNotRepository = errors.New("not a git repository")

// FileState describes a single file in the worktree.
type FileState struct {
	Path     string // slash separated, relative to the worktree root
	Tracked  bool
	Modified bool // staged or unstaged changes, untracked files included
}

// Repo is an opened worktree
type Repo struct {
	repo *git.Repository
	root string
}

// Open finds the repository containing path, walking up to parent directories.
func Open(path string) (*Repo, error) {
	if path == "" {
		return nil, errors.New("git path is required")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	repo, err := git.PlainOpenWithOptions(abs, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, ErrNotRepository
		}
		return nil, fmt.Errorf("failed to open repo: %w", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to get worktree: %w", err)
	}
	return &Repo{repo: repo, root: wt.Filesystem.Root()}, nil
}

// Root returns the worktree root directory.
func (r *Repo) Root() string {
	return r.root
}

// Head returns the current HEAD commit hash as a short string
func (r *Repo) Head() (string, error) {
	ref, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to get HEAD: %w", err)
	}
	return ref.Hash().String()[:7], nil
}

// File reports the state of the file at path.
func (r *Repo) File(path string) (FileState, error) {
	rel, err := r.relPath(path)
	if err != nil {
		return FileState{}, err
	}

	wt, err := r.repo.Worktree()
	if err != nil {
		return FileState{}, fmt.Errorf("failed to get worktree: %w", err)
	}
	status, err := wt.Status()
	if err != nil {
		return FileState{}, fmt.Errorf("failed to get status: %w", err)
	}

	// status.File creates an untracked entry for unknown paths, look the map up directly
	fs, ok := status[rel]
	if !ok {
		return FileState{Path: rel, Tracked: true}, nil
	}
	untracked := fs.Worktree == git.Untracked && fs.Staging == git.Untracked
	modified := fs.Worktree != git.Unmodified || fs.Staging != git.Unmodified
	return FileState{Path: rel, Tracked: !untracked, Modified: modified}, nil
}

// IsClean returns true if the file at path has no uncommitted changes.
func (r *Repo) IsClean(path string) (bool, error) {
	st, err := r.File(path)
	if err != nil {
		return false, err
	}
	return !st.Modified, nil
}

// relPath converts path to a slash separated path relative to the worktree root.
func (r *Repo) relPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	// resolve symlinks on both sides, temp dirs are often behind one
	if resolved, err := filepath.EvalSymlinks(filepath.Dir(abs)); err == nil {
		abs = filepath.Join(resolved, filepath.Base(abs))
	}
	root := r.root
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}

	rel, err := filepath.Rel(root, abs)
	if err != nil {
		return "", fmt.Errorf("failed to make %s relative to %s: %w", path, root, err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s is outside of worktree %s", path, root)
	}
	return filepath.ToSlash(rel), nil
}
