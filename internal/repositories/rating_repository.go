package repositories

import (
	"github.com/watchrebel/backend/internal/models"
	"gorm.io/gorm"
)

// RatingRepository defines the interface for rating operations
type RatingRepository interface {
	// Upsert writes the rating and reports whether a row already existed.
	// The second rate of the same media overwrites the first.
	Upsert(rating *models.Rating) (created bool, err error)
	GetByUser(userID uint) ([]models.Rating, error)
	Get(userID uint, mediaID int, mediaType string) (*models.Rating, error)
	GetForMedia(mediaID int, mediaType string) ([]models.Rating, float64, error)
}

// SQLiteRatingRepository implements RatingRepository
type SQLiteRatingRepository struct {
	db *gorm.DB
}

// NewSQLiteRatingRepository creates a new SQLiteRatingRepository
func NewSQLiteRatingRepository(db *gorm.DB) *SQLiteRatingRepository {
	return &SQLiteRatingRepository{db: db}
}

func (r *SQLiteRatingRepository) Upsert(rating *models.Rating) (bool, error) {
	created := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Rating
		err := tx.Where("user_id = ? AND media_id = ? AND media_type = ?",
			rating.UserID, rating.MediaID, rating.MediaType).First(&existing).Error
		if err == gorm.ErrRecordNotFound {
			created = true
			return tx.Create(rating).Error
		}
		if err != nil {
			return err
		}
		existing.Value = rating.Value
		if rating.Title != "" {
			existing.Title = rating.Title
		}
		if err := tx.Save(&existing).Error; err != nil {
			return err
		}
		*rating = existing
		return nil
	})
	return created, err
}

func (r *SQLiteRatingRepository) GetByUser(userID uint) ([]models.Rating, error) {
	var ratings []models.Rating
	err := r.db.Where("user_id = ?", userID).Order("updated_at DESC").Find(&ratings).Error
	return ratings, err
}

func (r *SQLiteRatingRepository) Get(userID uint, mediaID int, mediaType string) (*models.Rating, error) {
	var rating models.Rating
	if err := r.db.Where("user_id = ? AND media_id = ? AND media_type = ?", userID, mediaID, mediaType).First(&rating).Error; err != nil {
		return nil, err
	}
	return &rating, nil
}

func (r *SQLiteRatingRepository) GetForMedia(mediaID int, mediaType string) ([]models.Rating, float64, error) {
	var ratings []models.Rating
	if err := r.db.Where("media_id = ? AND media_type = ?", mediaID, mediaType).Order("updated_at DESC").Find(&ratings).Error; err != nil {
		return nil, 0, err
	}
	if len(ratings) == 0 {
		return ratings, 0, nil
	}
	sum := 0
	for _, rt := range ratings {
		sum += rt.Value
	}
	return ratings, float64(sum) / float64(len(ratings)), nil
}
