// FILE: internal/service/music_service_test.go
package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"heartgift-be/internal/entity"
	"heartgift-be/pkg/music"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// blockingProvider lets a test hold a search in flight while newer ones run.
type blockingProvider struct {
	mu      sync.Mutex
	release chan struct{}
	calls   int
}

func (p *blockingProvider) Search(ctx context.Context, query string, limit int) ([]music.Track, error) {
	p.mu.Lock()
	p.calls++
	release := p.release
	p.mu.Unlock()

	if release != nil {
		<-release
	}
	return []music.Track{{Id: "t-" + query, Title: query}}, nil
}

func TestSearchReturnsTracks(t *testing.T) {
	s := NewMusicService(music.NewMemoryProvider(), nopLogger{})

	res, err := s.Search(context.Background(), "perfect", 10)
	require.NoError(t, err)

	assert.Equal(t, "perfect", res.Query)
	assert.NotZero(t, res.Seq)
	require.NotEmpty(t, res.Tracks)
	assert.Equal(t, "Perfect", res.Tracks[0].Title)
	assert.Equal(t, "Ed Sheeran", res.Tracks[0].Artist)
}

func TestSearchRespectsLimit(t *testing.T) {
	s := NewMusicService(music.NewMemoryProvider(), nopLogger{})

	res, err := s.Search(context.Background(), "", 3)
	require.NoError(t, err)
	assert.Len(t, res.Tracks, 3)
}

func TestSearchMemoizesResults(t *testing.T) {
	provider := &blockingProvider{}
	s := NewMusicService(provider, nopLogger{})

	_, err := s.Search(context.Background(), "love", 10)
	require.NoError(t, err)

	_, err = s.Search(context.Background(), "love", 10)
	require.NoError(t, err)

	assert.Equal(t, 1, provider.calls, "second identical search must hit the cache")
}

func TestSearchSequenceMonotonic(t *testing.T) {
	s := NewMusicService(music.NewMemoryProvider(), nopLogger{})

	first, err := s.Search(context.Background(), "a", 5)
	require.NoError(t, err)
	second, err := s.Search(context.Background(), "b", 5)
	require.NoError(t, err)

	assert.Greater(t, second.Seq, first.Seq)
}

func TestSearchLastResultWins(t *testing.T) {
	provider := &blockingProvider{release: make(chan struct{})}
	s := NewMusicService(provider, nopLogger{})

	staleErr := make(chan error, 1)
	go func() {
		_, err := s.Search(context.Background(), "slow", 5)
		staleErr <- err
	}()

	// Wait for the slow search to take its ticket.
	for {
		provider.mu.Lock()
		started := provider.calls > 0
		provider.mu.Unlock()
		if started {
			break
		}
		time.Sleep(time.Millisecond)
	}

	// A newer search supersedes it.
	provider.mu.Lock()
	release := provider.release
	provider.release = nil
	provider.mu.Unlock()

	res, err := s.Search(context.Background(), "fast", 5)
	require.NoError(t, err)
	assert.Equal(t, "fast", res.Query)

	close(release)
	err = <-staleErr
	assert.True(t, errors.Is(err, entity.ErrSearchResultDiscard), "superseded result must be discarded")
}
