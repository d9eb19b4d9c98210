package models

import "time"

// Notification types
const (
	NotificationTypeReaction       = "reaction"
	NotificationTypeFriendActivity = "friend_activity"
	NotificationTypeWallPost       = "wall_post"
)

// Notification represents an in-app notification row. Rows are created by
// the fan-out service only and mutated (mark read) or deleted by the
// recipient.
type Notification struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	RecipientID   uint      `json:"recipient_id" gorm:"index"`
	Type          string    `json:"type" gorm:"size:30;index"`
	Content       string    `json:"content"`
	RelatedUserID uint      `json:"related_user_id,omitempty" gorm:"index"`
	RelatedPostID uint      `json:"related_post_id,omitempty"`
	IsRead        bool      `json:"is_read" gorm:"default:false;index"`
	CreatedAt     time.Time `json:"created_at" gorm:"index"`
}
