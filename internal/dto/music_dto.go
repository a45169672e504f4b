// FILE: internal/dto/music_dto.go
package dto

type MusicSearchResponse struct {
	// Seq echoes the request sequence number so clients can drop responses
	// that arrive out of order (last-result-wins).
	Seq    uint64     `json:"seq"`
	Query  string     `json:"query"`
	Tracks []TrackDTO `json:"tracks"`
}

type TrackDTO struct {
	Id         string `json:"id"`
	Title      string `json:"title"`
	Artist     string `json:"artist"`
	Album      string `json:"album,omitempty"`
	AlbumArt   string `json:"album_art,omitempty"`
	PreviewURL string `json:"preview_url,omitempty"`
	SpotifyURL string `json:"spotify_url,omitempty"`
}
