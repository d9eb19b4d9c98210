package repositories

import (
	"time"

	"github.com/watchrebel/backend/internal/models"
	"gorm.io/gorm"
)

// WallRepository defines the interface for wall post and reaction operations
type WallRepository interface {
	CreatePost(post *models.WallPost) error
	GetPostByID(id uint) (*models.WallPost, error)
	GetWall(wallOwnerID uint, page, limit int) ([]models.WallPost, int64, error)
	UpdatePostContent(id uint, content string, editedAt time.Time) error
	DeletePost(id uint) error

	// UpsertReaction writes the reaction and reports whether it is new;
	// a repeated reaction from the same user overwrites the emoji.
	UpsertReaction(reaction *models.Reaction) (created bool, err error)
	DeleteReaction(postID, userID uint) (bool, error)
	GetReactions(postID uint) ([]models.Reaction, error)
}

// SQLiteWallRepository implements WallRepository
type SQLiteWallRepository struct {
	db *gorm.DB
}

// NewSQLiteWallRepository creates a new SQLiteWallRepository
func NewSQLiteWallRepository(db *gorm.DB) *SQLiteWallRepository {
	return &SQLiteWallRepository{db: db}
}

func (r *SQLiteWallRepository) CreatePost(post *models.WallPost) error {
	return r.db.Create(post).Error
}

func (r *SQLiteWallRepository) GetPostByID(id uint) (*models.WallPost, error) {
	var post models.WallPost
	if err := r.db.First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *SQLiteWallRepository) GetWall(wallOwnerID uint, page, limit int) ([]models.WallPost, int64, error) {
	var posts []models.WallPost
	var total int64

	r.db.Model(&models.WallPost{}).Where("wall_owner_id = ?", wallOwnerID).Count(&total)

	offset := (page - 1) * limit
	err := r.db.Where("wall_owner_id = ?", wallOwnerID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&posts).Error

	return posts, total, err
}

func (r *SQLiteWallRepository) UpdatePostContent(id uint, content string, editedAt time.Time) error {
	return r.db.Model(&models.WallPost{}).Where("id = ?", id).
		Updates(map[string]interface{}{"content": content, "edited_at": editedAt}).Error
}

// DeletePost removes a post and its reactions
func (r *SQLiteWallRepository) DeletePost(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Reaction{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.WallPost{}, id).Error
	})
}

func (r *SQLiteWallRepository) UpsertReaction(reaction *models.Reaction) (bool, error) {
	created := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Reaction
		err := tx.Where("post_id = ? AND user_id = ?", reaction.PostID, reaction.UserID).First(&existing).Error
		if err == gorm.ErrRecordNotFound {
			created = true
			return tx.Create(reaction).Error
		}
		if err != nil {
			return err
		}
		existing.Emoji = reaction.Emoji
		if err := tx.Save(&existing).Error; err != nil {
			return err
		}
		*reaction = existing
		return nil
	})
	return created, err
}

func (r *SQLiteWallRepository) DeleteReaction(postID, userID uint) (bool, error) {
	res := r.db.Where("post_id = ? AND user_id = ?", postID, userID).Delete(&models.Reaction{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *SQLiteWallRepository) GetReactions(postID uint) ([]models.Reaction, error) {
	var reactions []models.Reaction
	err := r.db.Where("post_id = ?", postID).Order("created_at").Find(&reactions).Error
	return reactions, err
}
