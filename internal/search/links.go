package search

import (
	"math"
	"strconv"
)

// Defaults point at YouTube; the source id is appended to either base.
const (
	DefaultEmbedBaseURL     = "https://www.youtube.com/embed/"
	DefaultThumbnailBaseURL = "https://img.youtube.com/vi/"
)

// Links builds playback and thumbnail URLs from a source id.
type Links struct {
	EmbedBase     string
	ThumbnailBase string
}

// DefaultLinks points at YouTube embeds and thumbnails.
func DefaultLinks() Links {
	return Links{EmbedBase: DefaultEmbedBaseURL, ThumbnailBase: DefaultThumbnailBaseURL}
}

// Video returns the embed URL starting at the whole second containing start.
func (l Links) Video(sourceID string, start float64) string {
	return l.EmbedBase + sourceID + "?start=" + strconv.FormatFloat(math.Floor(start), 'f', -1, 64)
}

// Thumbnail returns the still image URL of the video.
func (l Links) Thumbnail(sourceID string) string {
	return l.ThumbnailBase + sourceID + "/0.jpg"
}
