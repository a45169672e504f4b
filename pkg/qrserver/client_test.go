package qrserver

import (
	"net/url"
	"testing"

	"heartgift-be/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShareURL(t *testing.T) {
	c := NewClient("https://heartgift.app/")
	assert.Equal(t, "https://heartgift.app/presente/abc-123", c.ShareURL("abc-123"))
}

func TestImageURLSizes(t *testing.T) {
	c := NewClient("https://heartgift.app")

	cases := []struct {
		size   Size
		pixels string
		margin string
	}{
		{SizeSmall, "300x300", "10"},
		{SizeMedium, "400x400", "10"},
		{SizeLarge, "600x600", "15"},
	}

	for _, tc := range cases {
		raw, err := c.ImageURL("gift-1", tc.size)
		require.NoError(t, err)

		u, err := url.Parse(raw)
		require.NoError(t, err)

		q := u.Query()
		assert.Equal(t, tc.pixels, q.Get("size"))
		assert.Equal(t, tc.margin, q.Get("margin"))
		assert.Equal(t, "png", q.Get("format"))
		assert.Equal(t, "https://heartgift.app/presente/gift-1", q.Get("data"))
	}
}

func TestImageURLUnsupportedSize(t *testing.T) {
	c := NewClient("https://heartgift.app")
	_, err := c.ImageURL("gift-1", Size("huge"))
	assert.ErrorIs(t, err, entity.ErrUnsupportedQRSize)
}

func TestAllImageURLs(t *testing.T) {
	c := NewClient("https://heartgift.app")
	urls := c.AllImageURLs("gift-1")

	assert.Len(t, urls, 3)
	assert.Contains(t, urls, "small")
	assert.Contains(t, urls, "medium")
	assert.Contains(t, urls, "large")
}
