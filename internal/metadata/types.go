package metadata

import (
	"context"
	"net/url"
)

// Field names a value the extractor knows how to locate.
type Field string

// Fields recognised by the built-in profiles.
const (
	FieldTitle       Field = "title"
	FieldDescription Field = "description"
	FieldImage       Field = "image"
	FieldFavicon     Field = "favicon"
	FieldSiteURL     Field = "siteUrl"
	FieldImageWidth  Field = "ogImageWidth"
	FieldImageHeight Field = "ogImageHeight"
	FieldImageAlt    Field = "ogImageAlt"
	FieldVideo       Field = "video"
)

// Record is the canonical metadata handed to preview renderers.
//
// Optional values are pointers: the external flow leaves unmatched fields nil so
// they are omitted from JSON, the local flow always sets them to a value or default.
type Record struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	SiteURL     *string `json:"siteUrl,omitempty"`
	Image       *string `json:"image,omitempty"`
	ImageWidth  *int    `json:"ogImageWidth,omitempty"`
	ImageHeight *int    `json:"ogImageHeight,omitempty"`
	ImageAlt    *string `json:"ogImageAlt,omitempty"`
	Video       *string `json:"video,omitempty"`
	Favicon     *string `json:"favicon,omitempty"`
	Hostname    *string `json:"hostname,omitempty"`
}

// Document is a successfully fetched remote page.
type Document struct {
	Text     string
	FinalURL string
}

// Fetcher retrieves a remote document. Implementations classify failures with
// ErrFetchTimeout, ErrConnectionFailed or *HTTPStatusError; anything else is
// treated as a generic upstream failure.
type Fetcher interface {
	Fetch(ctx context.Context, target *url.URL) (Document, error)
}

// AssetStore exposes the site's working tree (layout sources and public assets).
// Paths are slash separated and relative to the site root.
type AssetStore interface {
	Exists(ctx context.Context, path string) bool
	Read(ctx context.Context, path string) ([]byte, error)
	Write(ctx context.Context, path string, data []byte) error
}

// Origin is the scheme and host (with port) used to absolutize references.
type Origin struct {
	Scheme string
	Host   string
}

// OriginOf returns the origin of u.
func OriginOf(u *url.URL) Origin {
	return Origin{Scheme: u.Scheme, Host: u.Host}
}

// String renders the origin as scheme://host.
func (o Origin) String() string {
	return o.Scheme + "://" + o.Host
}

func strPtr(s string) *string {
	return &s
}

func intPtr(n int) *int {
	return &n
}
