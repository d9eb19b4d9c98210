package services

import (
	"context"
	"fmt"
	"log"

	"github.com/watchrebel/backend/internal/models"
	"github.com/watchrebel/backend/internal/repositories"
	"gorm.io/gorm"
)

// Activity kinds that fan out to friends
const (
	ActivityAddedToList = "added_to_list"
	ActivityRated       = "rated"
	ActivityReviewed    = "reviewed"
)

// Catalog resolves display titles for notification content. Lookup failures
// are swallowed and a placeholder is substituted.
type Catalog interface {
	GetTitle(ctx context.Context, mediaType string, mediaID int) (string, error)
}

// Pusher delivers a message to a user's linked Telegram chat.
type Pusher interface {
	Send(ctx context.Context, chatID, text string) error
}

// LivePusher delivers a payload to a user's open WebSocket connections.
type LivePusher interface {
	Push(userID uint, payload interface{})
	IsOnline(userID uint) bool
}

// ActivityMedia describes the media item behind a fan-out event.
type ActivityMedia struct {
	MediaID   int
	MediaType string
	Title     string // may be empty, resolved via the catalog
	Rating    int    // only for ActivityRated
}

// FanoutFailure records one recipient whose notification insert failed.
type FanoutFailure struct {
	RecipientID uint   `json:"recipient_id"`
	Reason      string `json:"reason"`
}

// FanoutResult summarizes one fan-out run. Skips by preference are counted
// separately from failures.
type FanoutResult struct {
	Attempted int             `json:"attempted"`
	Delivered int             `json:"delivered"`
	Skipped   int             `json:"skipped"`
	Failed    []FanoutFailure `json:"failed,omitempty"`
}

// FanoutNotifier materializes one notification row per eligible recipient of
// an activity, then pushes best-effort to Telegram and the WebSocket hub.
// Calling it twice for the same logical activity produces two notifications;
// callers invoke it exactly once per real-world event.
type FanoutNotifier struct {
	users         repositories.UserRepository
	friends       repositories.FriendshipRepository
	notifications repositories.NotificationRepository
	catalog       Catalog    // optional
	telegram      Pusher     // optional
	hub           LivePusher // optional
}

// NewFanoutNotifier creates a FanoutNotifier. catalog, telegram and hub may
// be nil; the corresponding side channel is then skipped.
func NewFanoutNotifier(
	users repositories.UserRepository,
	friends repositories.FriendshipRepository,
	notifications repositories.NotificationRepository,
	catalog Catalog,
	telegram Pusher,
	hub LivePusher,
) *FanoutNotifier {
	return &FanoutNotifier{
		users:         users,
		friends:       friends,
		notifications: notifications,
		catalog:       catalog,
		telegram:      telegram,
		hub:           hub,
	}
}

// NotifyFriends fans an activity out to every user holding an edge pointing
// at the actor. Recipients are processed sequentially in query order; one
// recipient's failure does not abort the rest.
func (s *FanoutNotifier) NotifyFriends(ctx context.Context, actorID uint, kind string, media ActivityMedia) (*FanoutResult, error) {
	actor, err := s.users.GetUserByID(actorID)
	if err != nil {
		return nil, fmt.Errorf("fanout: actor lookup: %w", err)
	}

	recipientIDs, err := s.friends.GetFollowerIDs(actorID)
	if err != nil {
		return nil, fmt.Errorf("fanout: recipient query: %w", err)
	}

	title := s.resolveTitle(ctx, media)
	content := activityContent(actor.Name, kind, title, media.Rating)

	result := &FanoutResult{Attempted: len(recipientIDs)}
	for _, recipientID := range recipientIDs {
		enabled, err := s.preferenceEnabled(recipientID, kind)
		if err != nil {
			result.Failed = append(result.Failed, FanoutFailure{RecipientID: recipientID, Reason: err.Error()})
			continue
		}
		if !enabled {
			result.Skipped++
			continue
		}

		notification := &models.Notification{
			RecipientID:   recipientID,
			Type:          models.NotificationTypeFriendActivity,
			Content:       content,
			RelatedUserID: actorID,
		}
		if err := s.notifications.CreateNotification(notification); err != nil {
			result.Failed = append(result.Failed, FanoutFailure{RecipientID: recipientID, Reason: err.Error()})
			continue
		}
		result.Delivered++
		s.push(ctx, recipientID, notification)
	}
	return result, nil
}

// NotifyReaction notifies the post author about a reaction. Self-reactions
// still create a notification, with a distinct template.
func (s *FanoutNotifier) NotifyReaction(ctx context.Context, reactorID uint, post *models.WallPost, emoji string) error {
	enabled, err := s.preferenceEnabled(post.UserID, "reaction")
	if err != nil {
		return err
	}
	if !enabled {
		return nil
	}

	var content string
	if reactorID == post.UserID {
		content = fmt.Sprintf("Самолайк активирован %s", emoji)
	} else {
		reactor, err := s.users.GetUserByID(reactorID)
		if err != nil {
			return fmt.Errorf("fanout: reactor lookup: %w", err)
		}
		content = fmt.Sprintf("%s отреагировал на вашу запись: %s", reactor.Name, emoji)
	}

	notification := &models.Notification{
		RecipientID:   post.UserID,
		Type:          models.NotificationTypeReaction,
		Content:       content,
		RelatedUserID: reactorID,
		RelatedPostID: post.ID,
	}
	if err := s.notifications.CreateNotification(notification); err != nil {
		return err
	}
	s.push(ctx, post.UserID, notification)
	return nil
}

// NotifyWallPost notifies a wall owner that someone else posted on their
// wall. Distinct from the friend-activity path: exactly one recipient.
func (s *FanoutNotifier) NotifyWallPost(ctx context.Context, actorID uint, post *models.WallPost) error {
	if actorID == post.WallOwnerID {
		return nil
	}
	enabled, err := s.preferenceEnabled(post.WallOwnerID, "wall_post")
	if err != nil {
		return err
	}
	if !enabled {
		return nil
	}

	actor, err := s.users.GetUserByID(actorID)
	if err != nil {
		return fmt.Errorf("fanout: actor lookup: %w", err)
	}
	notification := &models.Notification{
		RecipientID:   post.WallOwnerID,
		Type:          models.NotificationTypeWallPost,
		Content:       fmt.Sprintf("%s оставил запись на вашей стене", actor.Name),
		RelatedUserID: actorID,
		RelatedPostID: post.ID,
	}
	if err := s.notifications.CreateNotification(notification); err != nil {
		return err
	}
	s.push(ctx, post.WallOwnerID, notification)
	return nil
}

// activityContent renders the exact notification templates.
func activityContent(actorName, kind, title string, rating int) string {
	switch kind {
	case ActivityRated:
		return fmt.Sprintf("%s оценил \"%s\" на %d/10", actorName, title, rating)
	case ActivityReviewed:
		return fmt.Sprintf("%s написал отзыв на \"%s\"", actorName, title)
	default:
		return fmt.Sprintf("%s добавил \"%s\" в свой список", actorName, title)
	}
}

func (s *FanoutNotifier) resolveTitle(ctx context.Context, media ActivityMedia) string {
	if media.Title != "" {
		return media.Title
	}
	if s.catalog != nil {
		if title, err := s.catalog.GetTitle(ctx, media.MediaType, media.MediaID); err == nil && title != "" {
			return title
		} else if err != nil {
			log.Printf("catalog lookup failed for %s/%d: %v", media.MediaType, media.MediaID, err)
		}
	}
	if media.MediaType == models.MediaTypeSeries {
		return "сериал"
	}
	return "фильм"
}

// preferenceEnabled maps an activity kind to the recipient's preference
// flag. A missing settings row means everything is enabled.
func (s *FanoutNotifier) preferenceEnabled(recipientID uint, kind string) (bool, error) {
	settings, err := s.users.GetSettings(recipientID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return true, nil
		}
		return false, err
	}
	switch kind {
	case ActivityAddedToList:
		return settings.FriendAddedToList, nil
	case ActivityRated:
		return settings.FriendRatedMedia, nil
	case ActivityReviewed:
		return settings.FriendPostedReview, nil
	case "reaction":
		return settings.Reactions, nil
	case "wall_post":
		return settings.WallPosts, nil
	}
	return true, nil
}

// push delivers best-effort to Telegram and the WebSocket hub. Failures are
// logged and never surfaced; the notification row is already persisted.
func (s *FanoutNotifier) push(ctx context.Context, recipientID uint, notification *models.Notification) {
	if s.hub != nil && s.hub.IsOnline(recipientID) {
		s.hub.Push(recipientID, notification)
	}
	if s.telegram == nil {
		return
	}
	recipient, err := s.users.GetUserByID(recipientID)
	if err != nil || recipient.TelegramChatID == "" {
		return
	}
	if err := s.telegram.Send(ctx, recipient.TelegramChatID, notification.Content); err != nil {
		log.Printf("telegram push to user %d failed: %v", recipientID, err)
	}
}
