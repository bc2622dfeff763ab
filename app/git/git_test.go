package git

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// prepRepo creates a repository with src/Backend.elm committed
func prepRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "src"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "src", "Backend.elm"), []byte("module Backend exposing (..)\n"), 0o600))

	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("src/Backend.elm")
	require.NoError(t, err)
	_, err = wt.Commit("initial commit", &git.CommitOptions{
		Author: &object.Signature{Name: "test", Email: "test@localhost", When: time.Now()},
	})
	require.NoError(t, err)
	return dir
}

func TestOpen(t *testing.T) {
	t.Run("opens repo root", func(t *testing.T) {
		dir := prepRepo(t)
		r, err := Open(dir)
		require.NoError(t, err)
		assert.NotEmpty(t, r.Root())
	})

	t.Run("detects repo from subdirectory", func(t *testing.T) {
		dir := prepRepo(t)
		r, err := Open(filepath.Join(dir, "src"))
		require.NoError(t, err)
		head, err := r.Head()
		require.NoError(t, err)
		assert.Len(t, head, 7)
	})

	t.Run("not a repo", func(t *testing.T) {
		_, err := Open(t.TempDir())
		require.ErrorIs(t, err, ErrNotRepository)
	})

	t.Run("fails with empty path", func(t *testing.T) {
		_, err := Open("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "path is required")
	})
}

func TestRepo_File(t *testing.T) {
	t.Run("committed file is clean", func(t *testing.T) {
		dir := prepRepo(t)
		r, err := Open(dir)
		require.NoError(t, err)

		st, err := r.File(filepath.Join(dir, "src", "Backend.elm"))
		require.NoError(t, err)
		assert.Equal(t, FileState{Path: "src/Backend.elm", Tracked: true, Modified: false}, st)

		clean, err := r.IsClean(filepath.Join(dir, "src", "Backend.elm"))
		require.NoError(t, err)
		assert.True(t, clean)
	})

	t.Run("modified file is dirty", func(t *testing.T) {
		dir := prepRepo(t)
		fname := filepath.Join(dir, "src", "Backend.elm")
		require.NoError(t, os.WriteFile(fname, []byte("module Backend exposing (app)\n"), 0o600))
		r, err := Open(dir)
		require.NoError(t, err)

		st, err := r.File(fname)
		require.NoError(t, err)
		assert.True(t, st.Tracked)
		assert.True(t, st.Modified)

		clean, err := r.IsClean(fname)
		require.NoError(t, err)
		assert.False(t, clean)
	})

	t.Run("untracked file", func(t *testing.T) {
		dir := prepRepo(t)
		fname := filepath.Join(dir, "src", "Extra.elm")
		require.NoError(t, os.WriteFile(fname, []byte("module Extra exposing (..)\n"), 0o600))
		r, err := Open(dir)
		require.NoError(t, err)

		st, err := r.File(fname)
		require.NoError(t, err)
		assert.False(t, st.Tracked)
		assert.True(t, st.Modified)
	})

	t.Run("other file changes do not matter", func(t *testing.T) {
		dir := prepRepo(t)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("readme"), 0o600))
		r, err := Open(dir)
		require.NoError(t, err)

		clean, err := r.IsClean(filepath.Join(dir, "src", "Backend.elm"))
		require.NoError(t, err)
		assert.True(t, clean)
	})

	t.Run("outside of worktree", func(t *testing.T) {
		dir := prepRepo(t)
		r, err := Open(dir)
		require.NoError(t, err)
		_, err = r.File(filepath.Join(t.TempDir(), "x.elm"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "outside of worktree")
	})
}
