package platform_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/notes"
	"github.com/aretw0/notes/pkg/adapters/fs"
	"github.com/aretw0/notes/pkg/git"
)

func TestInit(t *testing.T) {
	t.Run("AutoInit=true Creates Directory and Git Repo", func(t *testing.T) {
		if !git.IsInstalled() {
			t.Skip("git not installed")
		}
		t.Setenv("GIT_AUTHOR_NAME", "Notes Test")
		t.Setenv("GIT_AUTHOR_EMAIL", "notes@example.com")
		t.Setenv("GIT_COMMITTER_NAME", "Notes Test")
		t.Setenv("GIT_COMMITTER_EMAIL", "notes@example.com")

		path := filepath.Join(t.TempDir(), "notebook", "notes.txt")
		repo, err := notes.Init(path, notes.WithAutoInit(true), notes.WithVersioning(true), notes.WithForceTemp(true))
		require.NoError(t, err)

		fsRepo, ok := repo.(*fs.Repository)
		require.True(t, ok, "expected fs repository")
		assert.Equal(t, path, fsRepo.Path)

		_, err = os.Stat(filepath.Join(filepath.Dir(path), ".git"))
		assert.NoError(t, err)
	})

	t.Run("AutoInit=false Fails if File Missing", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing.txt")
		_, err := notes.Init(path, notes.WithAutoInit(false), notes.WithMustExist(true), notes.WithForceTemp(true))
		assert.Error(t, err)
	})

	t.Run("Gitless Does Not Initialize Git", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "gitless", "notes.txt")
		repo, err := notes.Init(path, notes.WithAutoInit(true), notes.WithVersioning(false), notes.WithForceTemp(true))
		require.NoError(t, err)

		state := repo.(*fs.Repository).State().(fs.RepositoryState)
		assert.True(t, state.Gitless)

		_, err = os.Stat(filepath.Join(filepath.Dir(path), ".git"))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("Versioning Is Detected When Unset", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "notes.txt")
		repo, err := notes.Init(path, notes.WithAutoInit(true), notes.WithForceTemp(true))
		require.NoError(t, err)
		assert.True(t, repo.(*fs.Repository).State().(fs.RepositoryState).Gitless)
	})

	t.Run("Injected Repository Is Used", func(t *testing.T) {
		injected := fs.NewRepository(fs.Config{Path: filepath.Join(t.TempDir(), "x.txt"), Gitless: true})
		repo, err := notes.Init("ignored", notes.WithRepository(injected))
		require.NoError(t, err)
		assert.Same(t, injected, repo)
	})
}
