package models

import "time"

// Message is a direct message between two users. Delivery to online
// recipients additionally goes over the WebSocket hub.
type Message struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	SenderID    uint       `json:"sender_id" gorm:"index"`
	RecipientID uint       `json:"recipient_id" gorm:"index"`
	Content     string     `json:"content"`
	CreatedAt   time.Time  `json:"created_at" gorm:"index"`
	ReadAt      *time.Time `json:"read_at,omitempty"`
}

type SendMessageRequest struct {
	RecipientID uint   `json:"recipient_id" validate:"required,min=1"`
	Content     string `json:"content" validate:"required,min=1,max=4000"`
}

// Conversation summarizes the latest exchange with one peer.
type Conversation struct {
	PeerID      uint      `json:"peer_id"`
	LastMessage string    `json:"last_message"`
	LastAt      time.Time `json:"last_at"`
	UnreadCount int64     `json:"unread_count"`
}
