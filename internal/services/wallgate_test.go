package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/watchrebel/backend/internal/apperror"
	"github.com/watchrebel/backend/internal/models"
	"github.com/watchrebel/backend/internal/repositories"
	"gorm.io/gorm"
)

func newWallGateFixture(t *testing.T) (*WallGate, *gorm.DB) {
	db := newTestDB(t)
	gate := NewWallGate(
		repositories.NewSQLiteUserRepository(db),
		repositories.NewSQLiteFriendshipRepository(db),
	)
	return gate, db
}

func setWallPrivacy(t *testing.T, db *gorm.DB, userID uint, privacy string) {
	t.Helper()
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", userID).Update("wall_privacy", privacy).Error)
}

func TestWallGateAuthorize(t *testing.T) {
	tests := []struct {
		name     string
		privacy  string
		friends  bool
		wantCode string
	}{
		{name: "open wall admits strangers", privacy: models.WallPrivacyAll},
		{name: "open wall admits friends", privacy: models.WallPrivacyAll, friends: true},
		{name: "friends-only rejects strangers", privacy: models.WallPrivacyFriends, wantCode: apperror.CodeWallPrivacyFriends},
		{name: "friends-only admits friends", privacy: models.WallPrivacyFriends, friends: true},
		{name: "closed wall rejects strangers", privacy: models.WallPrivacyNone, wantCode: apperror.CodeWallPrivacyNone},
		{name: "closed wall rejects friends too", privacy: models.WallPrivacyNone, friends: true, wantCode: apperror.CodeWallPrivacyNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gate, db := newWallGateFixture(t)
			owner := createUser(t, db, "alice")
			actor := createUser(t, db, "bob")
			setWallPrivacy(t, db, owner.ID, tt.privacy)
			if tt.friends {
				follow(t, db, actor.ID, owner.ID)
			}

			err := gate.Authorize(actor.ID, owner.ID)
			if tt.wantCode == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, apperror.ErrForbidden))

			var appErr *apperror.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, tt.wantCode, appErr.Code)
		})
	}
}

func TestWallGateSelfAlwaysAllowed(t *testing.T) {
	gate, db := newWallGateFixture(t)
	owner := createUser(t, db, "alice")
	setWallPrivacy(t, db, owner.ID, models.WallPrivacyNone)

	assert.NoError(t, gate.Authorize(owner.ID, owner.ID))
}

// The friendship check accepts the edge in either direction: the owner
// following the actor is enough, even when the actor never followed back.
func TestWallGateAcceptsReverseEdge(t *testing.T) {
	gate, db := newWallGateFixture(t)
	owner := createUser(t, db, "alice")
	actor := createUser(t, db, "bob")
	setWallPrivacy(t, db, owner.ID, models.WallPrivacyFriends)
	follow(t, db, owner.ID, actor.ID)

	assert.NoError(t, gate.Authorize(actor.ID, owner.ID))
}

func TestWallGateUnknownOwner(t *testing.T) {
	gate, db := newWallGateFixture(t)
	actor := createUser(t, db, "bob")

	err := gate.Authorize(actor.ID, 9999)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}
