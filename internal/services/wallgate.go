package services

import (
	"github.com/watchrebel/backend/internal/apperror"
	"github.com/watchrebel/backend/internal/models"
	"github.com/watchrebel/backend/internal/repositories"
	"gorm.io/gorm"
)

// WallGate decides whether an actor may post to a given wall. A stateless
// three-way classifier over the owner's privacy setting and the friendship
// relation; the friendship edge is accepted in either direction here, unlike
// the fan-out path.
type WallGate struct {
	users   repositories.UserRepository
	friends repositories.FriendshipRepository
}

// NewWallGate creates a WallGate.
func NewWallGate(users repositories.UserRepository, friends repositories.FriendshipRepository) *WallGate {
	return &WallGate{users: users, friends: friends}
}

// Authorize returns nil when actor may post to wallOwner's wall.
func (g *WallGate) Authorize(actorID, wallOwnerID uint) error {
	if actorID == wallOwnerID {
		return nil
	}

	owner, err := g.users.GetUserByID(wallOwnerID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperror.NotFound(apperror.CodeNotFound, "user")
		}
		return apperror.Internal(err)
	}

	switch owner.WallPrivacy {
	case models.WallPrivacyNone:
		return apperror.Forbidden(apperror.CodeWallPrivacyNone, "this wall is closed for posts")
	case models.WallPrivacyFriends:
		connected, err := g.friends.AreConnected(actorID, wallOwnerID)
		if err != nil {
			return apperror.Internal(err)
		}
		if !connected {
			return apperror.Forbidden(apperror.CodeWallPrivacyFriends, "only friends can post on this wall")
		}
		return nil
	default: // all
		return nil
	}
}
