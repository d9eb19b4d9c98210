package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

// Wall privacy settings
const (
	WallPrivacyAll     = "all"
	WallPrivacyFriends = "friends"
	WallPrivacyNone    = "none"
)

type User struct {
	gorm.Model     `json:"-"`
	ID             uint       `json:"id" gorm:"primaryKey"`
	Name           string     `json:"name"`
	Email          string     `json:"email" gorm:"uniqueIndex"` // Ensure email is unique across all users
	Password       string     `json:"-"`                        // Store hashed password, ignore for JSON serialization
	FirebaseUID    string     `json:"firebase_uid,omitempty" gorm:"uniqueIndex"` // Link to Firebase User UID
	TelegramChatID string     `json:"telegram_chat_id,omitempty"`                // Chat for push delivery, empty when unlinked
	AvatarURL      string     `json:"avatar_url,omitempty"`
	Bio            string     `json:"bio,omitempty"`
	WallPrivacy    string     `json:"wall_privacy" gorm:"size:10;default:'all'"` // all, friends, none
	IsAdmin        bool       `json:"is_admin" gorm:"default:false"`
	IsBlocked      bool       `json:"is_blocked" gorm:"default:false"`
	BanReason      string     `json:"ban_reason,omitempty"`
	PostBanUntil   *time.Time `json:"post_ban_until,omitempty"` // nil means no active post ban
}

// CanPost reports whether a timed post ban is currently in effect.
func (u *User) CanPost(now time.Time) bool {
	return u.PostBanUntil == nil || now.After(*u.PostBanUntil)
}

// UserCompact is the minimal user shape embedded in feed/notification payloads
type UserCompact struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

func (u *User) ToCompact() UserCompact {
	return UserCompact{ID: u.ID, Name: u.Name, AvatarURL: u.AvatarURL}
}

type CreateLocalUserRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type UpdateUserRequest struct {
	Name           string `json:"name,omitempty" validate:"omitempty,min=2,max=50"`
	Bio            string `json:"bio,omitempty" validate:"omitempty,max=500"`
	AvatarURL      string `json:"avatar_url,omitempty" validate:"omitempty,url"`
	WallPrivacy    string `json:"wall_privacy,omitempty" validate:"omitempty,oneof=all friends none"`
	TelegramChatID string `json:"telegram_chat_id,omitempty"`
}

// NotificationSetting holds the per-user notification preference set.
// A missing row is treated as everything enabled.
type NotificationSetting struct {
	ID                 uint `json:"-" gorm:"primaryKey"`
	UserID             uint `json:"user_id" gorm:"uniqueIndex"`
	FriendAddedToList  bool `json:"friend_added_to_list" gorm:"default:true"`
	FriendRatedMedia   bool `json:"friend_rated_media" gorm:"default:true"`
	FriendPostedReview bool `json:"friend_posted_review" gorm:"default:true"`
	Reactions          bool `json:"reactions" gorm:"default:true"`
	WallPosts          bool `json:"wall_posts" gorm:"default:true"`
}

type UpdateNotificationSettingsRequest struct {
	FriendAddedToList  *bool `json:"friend_added_to_list,omitempty"`
	FriendRatedMedia   *bool `json:"friend_rated_media,omitempty"`
	FriendPostedReview *bool `json:"friend_posted_review,omitempty"`
	Reactions          *bool `json:"reactions,omitempty"`
	WallPosts          *bool `json:"wall_posts,omitempty"`
}

type BlockUserRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

type PostBanRequest struct {
	DurationHours int    `json:"duration_hours" validate:"required,min=1,max=8760"`
	Reason        string `json:"reason" validate:"omitempty,max=500"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
