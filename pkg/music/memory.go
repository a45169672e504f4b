package music

import (
	"context"
	"strings"
)

// MemoryProvider serves a fixed catalog. Used when no Spotify credentials are
// configured and by tests that need deterministic search results.
type MemoryProvider struct {
	catalog []Track
}

func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{catalog: defaultCatalog()}
}

func NewMemoryProviderWithCatalog(catalog []Track) *MemoryProvider {
	return &MemoryProvider{catalog: catalog}
}

func (p *MemoryProvider) Search(_ context.Context, query string, limit int) ([]Track, error) {
	if limit <= 0 {
		limit = 10
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	results := make([]Track, 0, limit)
	for _, t := range p.catalog {
		if needle == "" ||
			strings.Contains(strings.ToLower(t.Title), needle) ||
			strings.Contains(strings.ToLower(t.Artist), needle) ||
			strings.Contains(strings.ToLower(t.Album), needle) {
			results = append(results, t)
		}
		if len(results) == limit {
			break
		}
	}

	return results, nil
}

func defaultCatalog() []Track {
	return []Track{
		{Id: "4uLU6hMCjMI75M1A2tKUQC", Title: "Perfect", Artist: "Ed Sheeran", Album: "÷ (Deluxe)"},
		{Id: "0tgVpDi06FyKpA1z0VMD4v", Title: "All of Me", Artist: "John Legend", Album: "Love in the Future"},
		{Id: "1mea3bSkSGXuIRvnydlB5b", Title: "Thinking Out Loud", Artist: "Ed Sheeran", Album: "x (Deluxe Edition)"},
		{Id: "6nGeLlakfzlBcFdZXteDq7", Title: "A Thousand Years", Artist: "Christina Perri", Album: "The Twilight Saga: Breaking Dawn"},
		{Id: "44AyOl4qVkzS48vBsbNXaC", Title: "Can't Help Falling in Love", Artist: "Elvis Presley", Album: "Blue Hawaii"},
		{Id: "3CeCwYWvdfXbZLXFhBrbnf", Title: "Just the Way You Are", Artist: "Bruno Mars", Album: "Doo-Wops & Hooligans"},
		{Id: "0JmnkIqdlnUzPaf8sqBRs3", Title: "Make You Feel My Love", Artist: "Adele", Album: "19"},
		{Id: "2tUBqZG2AbRi7Q0BIrVrEj", Title: "I Wanna Dance with Somebody", Artist: "Whitney Houston", Album: "Whitney"},
	}
}
