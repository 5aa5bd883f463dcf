package models

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// Image is a picture attached to a venue. At most one image per venue carries
// IsThumbnail; stores enforce that when flagging a new one.
type Image struct {
	ID          uuid.UUID
	VenueID     uuid.UUID
	URL         string
	IsThumbnail bool
	Order       int
	CreatedAt   time.Time
}

// ThumbnailURL returns the URL of the first thumbnail-flagged image.
func ThumbnailURL(images []*Image) *string {
	for _, img := range images {
		if img.IsThumbnail {
			url := img.URL
			return &url
		}
	}
	return nil
}

// SortImages orders images by position, breaking ties by creation time.
func SortImages(images []*Image) {
	sort.SliceStable(images, func(i, j int) bool {
		if images[i].Order != images[j].Order {
			return images[i].Order < images[j].Order
		}
		return images[i].CreatedAt.Before(images[j].CreatedAt)
	})
}
