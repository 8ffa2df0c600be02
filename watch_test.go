package notes

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatcher_Relevant(t *testing.T) {
	f := newFixture(t, "")
	s := New(f.cfg, WithLogger(quietLogger()))
	w := NewWatcher(s)

	require.True(t, w.relevant(f.cfg.Content.Articles))
	require.True(t, w.relevant(filepath.Join(f.cfg.Content.Dir, "new-post.md")))
	require.False(t, w.relevant(filepath.Join(f.out, "index.html")))
	require.ElementsMatch(t, []string{filepath.Dir(f.cfg.Content.Articles), f.cfg.Content.Dir}, w.watchDirs())
}

func TestWatcher_RebuildsOnChange(t *testing.T) {
	f := newFixture(t, "")
	f.cfg.Remote.Disabled = true
	f.cfg.Preview.Debounce = 20 * time.Millisecond
	s := New(f.cfg, WithLogger(quietLogger()))
	defer s.Close()

	_, err := s.Build(context.Background())
	require.NoError(t, err)

	built := make(chan Result, 1)
	w := NewWatcher(s)
	w.OnBuild = func(res Result, err error) {
		if err == nil {
			select {
			case built <- res:
			default:
			}
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	added := `[{"id":3,"Section":"Go","slug":"articles/post-b.html","name":"Post B","contentFile":"post-b.md","publishedDate":"2024-04-01"}]`
	require.Eventually(t, func() bool {
		_ = os.WriteFile(f.cfg.Content.Articles, []byte(added), 0o644)
		select {
		case res := <-built:
			return len(res.Routes) == 4 && res.Routes[2] == "/blog/post-b"
		case <-time.After(100 * time.Millisecond):
			return false
		}
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}
