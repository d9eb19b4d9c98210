package repositories

import (
	"github.com/watchrebel/backend/internal/models"
	"gorm.io/gorm"
)

// ListRepository defines the interface for watchlist and custom list operations
type ListRepository interface {
	// Watchlist
	GetWatchlist(userID uint) ([]models.WatchlistItem, error)
	GetWatchlistItem(userID uint, mediaID int, mediaType string) (*models.WatchlistItem, error)
	CreateWatchlistItem(item *models.WatchlistItem) error
	DeleteWatchlistItem(userID, itemID uint) (bool, error)

	// Custom lists
	CreateList(list *models.CustomList) error
	GetListByID(id uint) (*models.CustomList, error)
	GetListWithItems(id uint) (*models.CustomList, error)
	GetListsByUser(userID uint) ([]models.CustomList, error)
	RenameList(id uint, name string) error
	DeleteList(id uint) error
	DeleteListItem(listID, itemID uint) (bool, error)

	// Membership invariant support: check -> evict -> insert inside one
	// transaction, supplied by the membership service.
	WithTx(fn func(tx ListTx) error) error
}

// ListTx exposes the membership-relevant operations bound to one transaction.
type ListTx interface {
	FindMembership(userID uint, mediaID int, mediaType string) (*models.ListItem, error)
	DeleteMembership(itemID uint) error
	DeleteWatchlistMembership(userID uint, mediaID int, mediaType string) error
	InsertItem(item *models.ListItem) error
}

// SQLiteListRepository implements ListRepository
type SQLiteListRepository struct {
	db *gorm.DB
}

// NewSQLiteListRepository creates a new SQLiteListRepository
func NewSQLiteListRepository(db *gorm.DB) *SQLiteListRepository {
	return &SQLiteListRepository{db: db}
}

func (r *SQLiteListRepository) GetWatchlist(userID uint) ([]models.WatchlistItem, error) {
	var items []models.WatchlistItem
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&items).Error
	return items, err
}

func (r *SQLiteListRepository) GetWatchlistItem(userID uint, mediaID int, mediaType string) (*models.WatchlistItem, error) {
	var item models.WatchlistItem
	if err := r.db.Where("user_id = ? AND media_id = ? AND media_type = ?", userID, mediaID, mediaType).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *SQLiteListRepository) CreateWatchlistItem(item *models.WatchlistItem) error {
	return r.db.Create(item).Error
}

func (r *SQLiteListRepository) DeleteWatchlistItem(userID, itemID uint) (bool, error) {
	res := r.db.Where("id = ? AND user_id = ?", itemID, userID).Delete(&models.WatchlistItem{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *SQLiteListRepository) CreateList(list *models.CustomList) error {
	return r.db.Create(list).Error
}

func (r *SQLiteListRepository) GetListByID(id uint) (*models.CustomList, error) {
	var list models.CustomList
	if err := r.db.First(&list, id).Error; err != nil {
		return nil, err
	}
	return &list, nil
}

func (r *SQLiteListRepository) GetListWithItems(id uint) (*models.CustomList, error) {
	var list models.CustomList
	if err := r.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("list_items.created_at DESC")
	}).First(&list, id).Error; err != nil {
		return nil, err
	}
	return &list, nil
}

func (r *SQLiteListRepository) GetListsByUser(userID uint) ([]models.CustomList, error) {
	var lists []models.CustomList
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&lists).Error
	return lists, err
}

func (r *SQLiteListRepository) RenameList(id uint, name string) error {
	return r.db.Model(&models.CustomList{}).Where("id = ?", id).Update("name", name).Error
}

// DeleteList deletes a list and cascades to its entries
func (r *SQLiteListRepository) DeleteList(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("list_id = ?", id).Delete(&models.ListItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.CustomList{}, id).Error
	})
}

func (r *SQLiteListRepository) DeleteListItem(listID, itemID uint) (bool, error) {
	res := r.db.Where("id = ? AND list_id = ?", itemID, listID).Delete(&models.ListItem{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

type sqliteListTx struct {
	tx *gorm.DB
}

// FindMembership returns the first list entry of any of the user's lists for
// the given media, ordered by entry id. Secondary order is undefined by
// contract; the invariant keeps this to at most one row anyway.
func (t *sqliteListTx) FindMembership(userID uint, mediaID int, mediaType string) (*models.ListItem, error) {
	var item models.ListItem
	sub := t.tx.Table("custom_lists").Select("id").Where("user_id = ?", userID)
	err := t.tx.Where("media_id = ? AND media_type = ? AND list_id IN (?)", mediaID, mediaType, sub).
		Order("id").First(&item).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (t *sqliteListTx) DeleteMembership(itemID uint) error {
	return t.tx.Delete(&models.ListItem{}, itemID).Error
}

func (t *sqliteListTx) DeleteWatchlistMembership(userID uint, mediaID int, mediaType string) error {
	return t.tx.Where("user_id = ? AND media_id = ? AND media_type = ?", userID, mediaID, mediaType).
		Delete(&models.WatchlistItem{}).Error
}

func (t *sqliteListTx) InsertItem(item *models.ListItem) error {
	return t.tx.Create(item).Error
}

// WithTx runs fn inside a database transaction
func (r *SQLiteListRepository) WithTx(fn func(tx ListTx) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&sqliteListTx{tx: tx})
	})
}
