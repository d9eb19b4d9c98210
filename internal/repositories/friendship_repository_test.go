package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/watchrebel/backend/internal/models"
)

func TestFriendshipEdgesAreDirected(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteFriendshipRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	require.NoError(t, repo.CreateFriend(&models.Friend{UserID: alice.ID, FriendID: bob.ID}))

	has, err := repo.HasEdge(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, has)

	// the reverse edge does not exist
	has, err = repo.HasEdge(bob.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, has)

	// but the undirected check sees the pair as connected
	connected, err := repo.AreConnected(bob.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, connected)
}

func TestGetFollowerIDs(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteFriendshipRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	carol := seedUser(t, db, "carol")

	// bob and carol follow alice; alice follows bob
	require.NoError(t, repo.CreateFriend(&models.Friend{UserID: bob.ID, FriendID: alice.ID}))
	require.NoError(t, repo.CreateFriend(&models.Friend{UserID: carol.ID, FriendID: alice.ID}))
	require.NoError(t, repo.CreateFriend(&models.Friend{UserID: alice.ID, FriendID: bob.ID}))

	ids, err := repo.GetFollowerIDs(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{bob.ID, carol.ID}, ids)

	ids, err = repo.GetFollowerIDs(carol.ID)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestDeleteFriend(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteFriendshipRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	require.NoError(t, repo.CreateFriend(&models.Friend{UserID: alice.ID, FriendID: bob.ID}))

	existed, err := repo.DeleteFriend(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, existed)

	existed, err = repo.DeleteFriend(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, existed)
}

func TestGetFriends(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteFriendshipRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	carol := seedUser(t, db, "carol")

	require.NoError(t, repo.CreateFriend(&models.Friend{UserID: alice.ID, FriendID: bob.ID}))
	require.NoError(t, repo.CreateFriend(&models.Friend{UserID: carol.ID, FriendID: alice.ID}))

	friends, err := repo.GetFriends(alice.ID)
	require.NoError(t, err)
	require.Len(t, friends, 1)
	assert.Equal(t, bob.ID, friends[0].ID)
}
