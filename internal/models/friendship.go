package models

import "time"

// Friend is a directed edge: UserID follows FriendID's activity. Edges may
// exist in one or both directions; wall privacy accepts either direction,
// activity fan-out only follows the edge pointing at the actor.
type Friend struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_user_friend"`
	FriendID  uint      `json:"friend_id" gorm:"index;uniqueIndex:idx_user_friend"`
	CreatedAt time.Time `json:"created_at"`
}
