// FILE: internal/service/music_service.go
package service

import (
	"context"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"heartgift-be/internal/dto"
	"heartgift-be/internal/entity"
	"heartgift-be/internal/pkg/logger"
	"heartgift-be/pkg/music"

	gocache "github.com/patrickmn/go-cache"
)

const (
	musicCacheTTL     = 5 * time.Minute
	musicCacheCleanup = 10 * time.Minute

	defaultSearchLimit = 10
)

type IMusicService interface {
	Search(ctx context.Context, query string, limit int) (*dto.MusicSearchResponse, error)
}

// musicService wraps the catalog provider with memoization and last-result-
// wins sequencing: each search takes a ticket, and a result whose ticket is
// no longer the newest is discarded instead of overtaking a fresher one.
type musicService struct {
	provider music.Provider
	cache    *gocache.Cache
	seq      atomic.Uint64
	logger   logger.ILogger
}

func NewMusicService(provider music.Provider, log logger.ILogger) IMusicService {
	return &musicService{
		provider: provider,
		cache:    gocache.New(musicCacheTTL, musicCacheCleanup),
		logger:   log,
	}
}

func (s *musicService) Search(ctx context.Context, query string, limit int) (*dto.MusicSearchResponse, error) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	query = strings.TrimSpace(query)

	seq := s.seq.Add(1)

	key := cacheKey(query, limit)
	if cached, ok := s.cache.Get(key); ok {
		return s.respond(seq, query, cached.([]music.Track)), nil
	}

	tracks, err := s.provider.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}

	// A newer search started while this one was in flight; its result is
	// the one the client is waiting for, not ours.
	if s.seq.Load() != seq {
		return nil, entity.ErrSearchResultDiscard
	}

	s.cache.Set(key, tracks, gocache.DefaultExpiration)
	return s.respond(seq, query, tracks), nil
}

func (s *musicService) respond(seq uint64, query string, tracks []music.Track) *dto.MusicSearchResponse {
	out := make([]dto.TrackDTO, 0, len(tracks))
	for _, t := range tracks {
		out = append(out, dto.TrackDTO{
			Id:         t.Id,
			Title:      t.Title,
			Artist:     t.Artist,
			Album:      t.Album,
			AlbumArt:   t.AlbumArt,
			PreviewURL: t.PreviewURL,
			SpotifyURL: t.ExternalURL,
		})
	}
	return &dto.MusicSearchResponse{Seq: seq, Query: query, Tracks: out}
}

func cacheKey(query string, limit int) string {
	return strings.ToLower(query) + "|" + strconv.Itoa(limit)
}
