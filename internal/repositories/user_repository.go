package repositories

import (
	"time"

	"github.com/watchrebel/backend/internal/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	CreateUser(user *models.User) error
	GetUserByID(id uint) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByFirebaseUID(firebaseUID string) (*models.User, error)
	GetUsers() ([]models.User, error)
	UpdateUser(user *models.User) error
	DeleteUser(id uint) error
	SearchUsers(query string) ([]models.User, error)
	SetBlocked(id uint, blocked bool, reason string) error
	SetPostBan(id uint, until *time.Time, reason string) error
	GetSettings(userID uint) (*models.NotificationSetting, error)
	SaveSettings(settings *models.NotificationSetting) error
}

// SQLiteUserRepository implements UserRepository on the shared SQLite database
type SQLiteUserRepository struct {
	db *gorm.DB
}

// NewSQLiteUserRepository creates a new SQLiteUserRepository
func NewSQLiteUserRepository(db *gorm.DB) *SQLiteUserRepository {
	return &SQLiteUserRepository{db: db}
}

// CreateUser creates a new user together with its default notification settings
func (r *SQLiteUserRepository) CreateUser(user *models.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		settings := &models.NotificationSetting{
			UserID:             user.ID,
			FriendAddedToList:  true,
			FriendRatedMedia:   true,
			FriendPostedReview: true,
			Reactions:          true,
			WallPosts:          true,
		}
		return tx.Create(settings).Error
	})
}

// GetUserByID retrieves a user by ID
func (r *SQLiteUserRepository) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by email
func (r *SQLiteUserRepository) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByFirebaseUID retrieves a user by Firebase UID
func (r *SQLiteUserRepository) GetUserByFirebaseUID(firebaseUID string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("firebase_uid = ?", firebaseUID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUsers retrieves all users
func (r *SQLiteUserRepository) GetUsers() ([]models.User, error) {
	var users []models.User
	if err := r.db.Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateUser updates an existing user
func (r *SQLiteUserRepository) UpdateUser(user *models.User) error {
	return r.db.Save(user).Error
}

// DeleteUser hard-deletes a user and everything the user owns. Admin-only;
// runs in one transaction so a partial cascade never survives.
func (r *SQLiteUserRepository) DeleteUser(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var listIDs []uint
		if err := tx.Model(&models.CustomList{}).Where("user_id = ?", id).Pluck("id", &listIDs).Error; err != nil {
			return err
		}
		if len(listIDs) > 0 {
			if err := tx.Where("list_id IN ?", listIDs).Delete(&models.ListItem{}).Error; err != nil {
				return err
			}
		}
		for _, m := range []interface{}{
			&models.CustomList{}, &models.WatchlistItem{}, &models.Rating{},
		} {
			if err := tx.Where("user_id = ?", id).Delete(m).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("user_id = ? OR wall_owner_id = ?", id, id).Delete(&models.WallPost{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Reaction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ? OR friend_id = ?", id, id).Delete(&models.Friend{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipient_id = ?", id).Delete(&models.Notification{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.NotificationSetting{}).Error; err != nil {
			return err
		}
		if err := tx.Where("sender_id = ? OR recipient_id = ?", id, id).Delete(&models.Message{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&models.User{}, id).Error
	})
}

// SearchUsers searches for users by name or email (case-insensitive)
func (r *SQLiteUserRepository) SearchUsers(query string) ([]models.User, error) {
	var users []models.User
	if err := r.db.Where("LOWER(name) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?)", "%"+query+"%", "%"+query+"%").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// SetBlocked toggles the moderation block flag
func (r *SQLiteUserRepository) SetBlocked(id uint, blocked bool, reason string) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).
		Updates(map[string]interface{}{"is_blocked": blocked, "ban_reason": reason}).Error
}

// SetPostBan sets or clears the timed posting ban
func (r *SQLiteUserRepository) SetPostBan(id uint, until *time.Time, reason string) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).
		Updates(map[string]interface{}{"post_ban_until": until, "ban_reason": reason}).Error
}

// GetSettings retrieves the notification preference row for a user
func (r *SQLiteUserRepository) GetSettings(userID uint) (*models.NotificationSetting, error) {
	var settings models.NotificationSetting
	if err := r.db.Where("user_id = ?", userID).First(&settings).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

// SaveSettings upserts the notification preference row
func (r *SQLiteUserRepository) SaveSettings(settings *models.NotificationSetting) error {
	return r.db.Save(settings).Error
}
