package models

// Media kinds known to the external catalog
const (
	MediaTypeMovie  = "movie"
	MediaTypeSeries = "series"
)

// MediaRef identifies an item in the external catalog. Nothing about the
// item itself is stored locally beyond a denormalized title/poster for
// display.
type MediaRef struct {
	MediaID   int    `json:"media_id" validate:"required,min=1"`
	MediaType string `json:"media_type" validate:"required,oneof=movie series"`
	Title     string `json:"title,omitempty" validate:"omitempty,max=300"`
	PosterURL string `json:"poster_url,omitempty"`
}
