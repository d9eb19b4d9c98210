package models

import "time"

// Rating is unique per user+media with upsert semantics: rating the same
// item twice overwrites the value and bumps UpdatedAt.
type Rating struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_rating_user_media"`
	MediaID   int       `json:"media_id" gorm:"uniqueIndex:idx_rating_user_media"`
	MediaType string    `json:"media_type" gorm:"size:10;uniqueIndex:idx_rating_user_media"`
	Value     int       `json:"value"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type RateMediaRequest struct {
	MediaID   int    `json:"media_id" validate:"required,min=1"`
	MediaType string `json:"media_type" validate:"required,oneof=movie series"`
	Value     int    `json:"value" validate:"required,min=1,max=10"`
	Title     string `json:"title,omitempty" validate:"omitempty,max=300"`
}
