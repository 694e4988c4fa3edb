package apod

import "strings"

// MediaType is the feed's media_type value.
type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
)

// Entry mirrors one APOD record as returned by the feed.
type Entry struct {
	Date           string    `json:"date"`
	Title          string    `json:"title"`
	Explanation    string    `json:"explanation"`
	URL            string    `json:"url"`
	HDURL          string    `json:"hdurl,omitempty"`
	ThumbnailURL   string    `json:"thumbnail_url,omitempty"`
	MediaType      MediaType `json:"media_type"`
	Copyright      string    `json:"copyright,omitempty"`
	ServiceVersion string    `json:"service_version,omitempty"`
}

// IsImage reports whether the entry can be shown in the gallery.
// Anything other than "image" (videos, unknown or missing types) is not.
func (e Entry) IsImage() bool {
	return MediaType(strings.ToLower(strings.TrimSpace(string(e.MediaType)))) == MediaImage
}

// Thumbnail returns the best small preview locator for the entry.
func (e Entry) Thumbnail() string {
	if thumb := strings.TrimSpace(e.ThumbnailURL); thumb != "" {
		return thumb
	}
	return e.URL
}
