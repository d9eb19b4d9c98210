package models

import "time"

// Wall post kinds
const (
	PostTypeText         = "text"
	PostTypeMediaAdded   = "media_added"
	PostTypeRating       = "rating"
	PostTypeReview       = "review"
	PostTypeStatusUpdate = "status_update"
)

// WallPost lives on the wall owner's feed; the author may differ from the
// owner when wall privacy allows it.
type WallPost struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	UserID      uint       `json:"user_id" gorm:"index"`      // author
	WallOwnerID uint       `json:"wall_owner_id" gorm:"index"` // whose wall it appears on
	Type        string     `json:"type" gorm:"size:20"`
	Content     string     `json:"content,omitempty"`
	MediaID     int        `json:"media_id,omitempty"`
	MediaType   string     `json:"media_type,omitempty" gorm:"size:10"`
	MediaTitle  string     `json:"media_title,omitempty"`
	Rating      int        `json:"rating,omitempty"`
	CreatedAt   time.Time  `json:"created_at" gorm:"index"`
	EditedAt    *time.Time `json:"edited_at,omitempty"`
}

// Reaction is unique per post+user; a second reaction overwrites the emoji.
type Reaction struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    uint      `json:"post_id" gorm:"index;uniqueIndex:idx_post_user_reaction"`
	UserID    uint      `json:"user_id" gorm:"uniqueIndex:idx_post_user_reaction"`
	Emoji     string    `json:"emoji" gorm:"size:16"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateWallPostRequest struct {
	Type       string `json:"type" validate:"required,oneof=text media_added rating review status_update"`
	Content    string `json:"content,omitempty" validate:"omitempty,max=2000"`
	MediaID    int    `json:"media_id,omitempty" validate:"omitempty,min=1"`
	MediaType  string `json:"media_type,omitempty" validate:"omitempty,oneof=movie series"`
	MediaTitle string `json:"media_title,omitempty" validate:"omitempty,max=300"`
	Rating     int    `json:"rating,omitempty" validate:"omitempty,min=1,max=10"`
}

type UpdateWallPostRequest struct {
	Content string `json:"content" validate:"required,min=1,max=2000"`
}

type ReactRequest struct {
	Emoji string `json:"emoji" validate:"required,min=1,max=16"`
}
