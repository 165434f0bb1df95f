package platform_test

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/notes/pkg/core"
)

// TestConcurrency_ExternalVsInternal has another program rewrite the notes
// file while the session keeps saving. The session must not panic, the file
// must stay parseable, and the last external write must win once both stop.
func TestConcurrency_ExternalVsInternal(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping stress test in short mode")
	}

	service, path := setupService(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	work, err := service.AddSection(ctx, "Work")
	require.NoError(t, err)
	require.NoError(t, service.Select(ctx, work))
	require.NoError(t, service.Watch(ctx))

	runCtx, stop := context.WithTimeout(ctx, 2*time.Second)
	defer stop()

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; runCtx.Err() == nil; i++ {
			text := fmt.Sprintf("<section=first>\n\n<section=Work>\nnoise %d", i)
			_ = os.WriteFile(path, []byte(text), 0644)
			time.Sleep(time.Duration(rand.Intn(10)) * time.Millisecond)
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; runCtx.Err() == nil; i++ {
			if err := service.Select(ctx, work); err != nil {
				continue
			}
			if err := service.SetContent(fmt.Sprintf("saved %d", i)); err != nil {
				continue
			}
			_ = service.Save(ctx)
			time.Sleep(time.Duration(rand.Intn(10)) * time.Millisecond)
		}
	}()

	wg.Wait()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, core.Parse(string(data)).Has(work), "file lost its sections:\n%s", data)

	final := "<section=first>\n\n<section=Work>\nfinal"
	require.NoError(t, os.WriteFile(path, []byte(final), 0644))

	assert.Eventually(t, func() bool {
		content, err := service.Content(work)
		return err == nil && content == "final" && !service.IsUnsaved()
	}, 3*time.Second, 20*time.Millisecond)
}
