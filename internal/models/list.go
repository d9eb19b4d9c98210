package models

import "time"

// WatchlistItem is the implicit "want to watch" list entry, unique per
// user+media. Adding the same media to a custom list evicts it (promotion).
type WatchlistItem struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_watchlist_user_media"`
	MediaID   int       `json:"media_id" gorm:"uniqueIndex:idx_watchlist_user_media"`
	MediaType string    `json:"media_type" gorm:"size:10;uniqueIndex:idx_watchlist_user_media"`
	Title     string    `json:"title"`
	PosterURL string    `json:"poster_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CustomList is a user-named collection holding only movies or only series.
type CustomList struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	UserID    uint       `json:"user_id" gorm:"index"`
	Name      string     `json:"name" gorm:"size:100"`
	MediaType string     `json:"media_type" gorm:"size:10"` // movie or series, never both
	CreatedAt time.Time  `json:"created_at"`
	Items     []ListItem `json:"items,omitempty" gorm:"foreignKey:ListID;constraint:OnDelete:CASCADE"`
}

// ListItem is a (list, media) pair, unique within a list.
type ListItem struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ListID    uint      `json:"list_id" gorm:"index;uniqueIndex:idx_list_media"`
	MediaID   int       `json:"media_id" gorm:"uniqueIndex:idx_list_media"`
	MediaType string    `json:"media_type" gorm:"size:10"`
	Title     string    `json:"title"`
	PosterURL string    `json:"poster_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateListRequest struct {
	Name      string `json:"name" validate:"required,min=1,max=100"`
	MediaType string `json:"media_type" validate:"required,oneof=movie series"`
}

type RenameListRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

type AddMediaRequest struct {
	MediaID   int    `json:"media_id" validate:"required,min=1"`
	MediaType string `json:"media_type" validate:"required,oneof=movie series"`
	Title     string `json:"title,omitempty" validate:"omitempty,max=300"`
	PosterURL string `json:"poster_url,omitempty"`
}
