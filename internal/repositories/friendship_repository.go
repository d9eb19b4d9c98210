package repositories

import (
	"github.com/watchrebel/backend/internal/models"
	"gorm.io/gorm"
)

// FriendshipRepository defines the interface for friendship data operations
type FriendshipRepository interface {
	CreateFriend(friend *models.Friend) error
	DeleteFriend(userID, friendID uint) (bool, error)
	HasEdge(userID, friendID uint) (bool, error)
	AreConnected(a, b uint) (bool, error)
	GetFriends(userID uint) ([]models.User, error)
	GetFollowerIDs(userID uint) ([]uint, error)
}

// SQLiteFriendshipRepository implements FriendshipRepository
type SQLiteFriendshipRepository struct {
	db *gorm.DB
}

// NewSQLiteFriendshipRepository creates a new SQLiteFriendshipRepository
func NewSQLiteFriendshipRepository(db *gorm.DB) *SQLiteFriendshipRepository {
	return &SQLiteFriendshipRepository{db: db}
}

// CreateFriend creates a directed friendship edge
func (r *SQLiteFriendshipRepository) CreateFriend(friend *models.Friend) error {
	return r.db.Create(friend).Error
}

// DeleteFriend removes the edge userID -> friendID, reporting whether it existed
func (r *SQLiteFriendshipRepository) DeleteFriend(userID, friendID uint) (bool, error) {
	res := r.db.Where("user_id = ? AND friend_id = ?", userID, friendID).Delete(&models.Friend{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// HasEdge checks for the directed edge userID -> friendID
func (r *SQLiteFriendshipRepository) HasEdge(userID, friendID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Friend{}).Where("user_id = ? AND friend_id = ?", userID, friendID).Count(&count).Error
	return count > 0, err
}

// AreConnected checks for an edge in either direction between two users.
// This is the wall-privacy check; activity fan-out deliberately uses only
// GetFollowerIDs.
func (r *SQLiteFriendshipRepository) AreConnected(a, b uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Friend{}).
		Where("(user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)", a, b, b, a).
		Count(&count).Error
	return count > 0, err
}

// GetFriends retrieves the users this user follows
func (r *SQLiteFriendshipRepository) GetFriends(userID uint) ([]models.User, error) {
	var friends []models.User
	sub := r.db.Table("friends").Select("friend_id").Where("user_id = ?", userID)
	if err := r.db.Where("id IN (?)", sub).Find(&friends).Error; err != nil {
		return nil, err
	}
	return friends, nil
}

// GetFollowerIDs returns users u with an edge u -> userID, i.e. everyone who
// sees this user's activity in their feed. Ordered by edge id; no secondary
// order is defined.
func (r *SQLiteFriendshipRepository) GetFollowerIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.Friend{}).Where("friend_id = ?", userID).Order("id").Pluck("user_id", &ids).Error
	return ids, err
}
