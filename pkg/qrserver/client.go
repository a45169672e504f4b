// Package qrserver builds share links and QR image URLs against the
// api.qrserver.com rendering service.
package qrserver

import (
	"fmt"
	"net/url"
	"strings"

	"heartgift-be/internal/entity"
)

type Size string

const (
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
)

// Pixel dimensions and quiet-zone margins per supported size.
var sizeTable = map[Size]struct {
	pixels int
	margin int
}{
	SizeSmall:  {300, 10},
	SizeMedium: {400, 10},
	SizeLarge:  {600, 15},
}

const apiBase = "https://api.qrserver.com/v1/create-qr-code/"

type Client struct {
	origin string
}

// NewClient takes the public origin embedded into share links, e.g.
// "https://heartgift.app".
func NewClient(origin string) *Client {
	return &Client{origin: strings.TrimRight(origin, "/")}
}

// ShareURL is the sole contract between the QR/link artifact and the viewing
// flow: <origin>/presente/<id>.
func (c *Client) ShareURL(giftId string) string {
	return fmt.Sprintf("%s/presente/%s", c.origin, giftId)
}

// ImageURL returns the QR image URL for the gift's share link.
func (c *Client) ImageURL(giftId string, size Size) (string, error) {
	dims, ok := sizeTable[size]
	if !ok {
		return "", entity.ErrUnsupportedQRSize
	}

	params := url.Values{}
	params.Set("size", fmt.Sprintf("%dx%d", dims.pixels, dims.pixels))
	params.Set("format", "png")
	params.Set("margin", fmt.Sprintf("%d", dims.margin))
	params.Set("data", c.ShareURL(giftId))

	return apiBase + "?" + params.Encode(), nil
}

// AllImageURLs returns every supported size keyed by name.
func (c *Client) AllImageURLs(giftId string) map[string]string {
	out := make(map[string]string, len(sizeTable))
	for size := range sizeTable {
		u, _ := c.ImageURL(giftId, size)
		out[string(size)] = u
	}
	return out
}
