// Package music exposes the external music catalog behind a small search
// contract so the editor's track picker never couples to a vendor API.
package music

import "context"

type Track struct {
	Id          string `json:"id"`
	Title       string `json:"title"`
	Artist      string `json:"artist"`
	Album       string `json:"album,omitempty"`
	AlbumArt    string `json:"album_art,omitempty"`
	PreviewURL  string `json:"preview_url,omitempty"`
	ExternalURL string `json:"external_url,omitempty"`
}

type Provider interface {
	Search(ctx context.Context, query string, limit int) ([]Track, error)
}
