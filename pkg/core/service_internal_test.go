package core

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryRepository struct {
	mu   sync.Mutex
	data []byte
}

func (m *memoryRepository) Load(context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data, nil
}

func (m *memoryRepository) Save(_ context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = data
	return nil
}

func (m *memoryRepository) Stat(context.Context) (FileInfo, error) { return FileInfo{}, nil }

func (m *memoryRepository) Initialize(context.Context) error { return nil }

func TestHandleExternalUpdate_RejectedMergeClearsUnsaved(t *testing.T) {
	ctx := context.Background()
	repo := &memoryRepository{data: []byte("<section=Work>\nold")}
	svc := NewService(repo)
	require.NoError(t, svc.Load(ctx))

	// Local text that would turn into a section of its own once merged.
	svc.mu.Lock()
	svc.doc.sections[0].Content = "<section=Other>"
	svc.unsaved = 1
	svc.mu.Unlock()

	require.NoError(t, repo.Save(ctx, []byte("<section=Work>\nnew")))
	require.NoError(t, svc.HandleExternalUpdate(ctx))

	assert.False(t, svc.IsUnsaved())
	content, err := svc.Content(SeparatorFromName("Work"))
	require.NoError(t, err)
	assert.Equal(t, "new", content)
}
