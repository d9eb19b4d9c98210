package repositories

import (
	"time"

	"github.com/watchrebel/backend/internal/models"
	"gorm.io/gorm"
)

// MessageRepository defines the interface for direct message operations
type MessageRepository interface {
	CreateMessage(message *models.Message) error
	GetConversation(userID, peerID uint, page, limit int) ([]models.Message, int64, error)
	GetConversations(userID uint) ([]models.Conversation, error)
	MarkConversationRead(userID, peerID uint) error
}

type sqliteMessageRepository struct {
	db *gorm.DB
}

func NewSQLiteMessageRepository(db *gorm.DB) MessageRepository {
	return &sqliteMessageRepository{db: db}
}

func (r *sqliteMessageRepository) CreateMessage(message *models.Message) error {
	return r.db.Create(message).Error
}

func (r *sqliteMessageRepository) GetConversation(userID, peerID uint, page, limit int) ([]models.Message, int64, error) {
	var messages []models.Message
	var total int64

	scope := r.db.Model(&models.Message{}).
		Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
			userID, peerID, peerID, userID)
	scope.Count(&total)

	offset := (page - 1) * limit
	err := scope.Order("created_at DESC").Offset(offset).Limit(limit).Find(&messages).Error
	return messages, total, err
}

// GetConversations builds the peer summary list from the raw message table.
// One query per peer is fine at this scale; peers are ordered by last
// activity.
func (r *sqliteMessageRepository) GetConversations(userID uint) ([]models.Conversation, error) {
	var peerIDs []uint
	err := r.db.Raw(`
		SELECT peer FROM (
			SELECT CASE WHEN sender_id = ? THEN recipient_id ELSE sender_id END AS peer,
			       MAX(created_at) AS last_at
			FROM messages
			WHERE sender_id = ? OR recipient_id = ?
			GROUP BY peer
		) ORDER BY last_at DESC`, userID, userID, userID).Scan(&peerIDs).Error
	if err != nil {
		return nil, err
	}

	conversations := make([]models.Conversation, 0, len(peerIDs))
	for _, peerID := range peerIDs {
		var last models.Message
		if err := r.db.
			Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
				userID, peerID, peerID, userID).
			Order("created_at DESC").First(&last).Error; err != nil {
			return nil, err
		}
		var unread int64
		if err := r.db.Model(&models.Message{}).
			Where("sender_id = ? AND recipient_id = ? AND read_at IS NULL", peerID, userID).
			Count(&unread).Error; err != nil {
			return nil, err
		}
		conversations = append(conversations, models.Conversation{
			PeerID:      peerID,
			LastMessage: last.Content,
			LastAt:      last.CreatedAt,
			UnreadCount: unread,
		})
	}
	return conversations, nil
}

func (r *sqliteMessageRepository) MarkConversationRead(userID, peerID uint) error {
	now := time.Now()
	return r.db.Model(&models.Message{}).
		Where("sender_id = ? AND recipient_id = ? AND read_at IS NULL", peerID, userID).
		Update("read_at", now).Error
}
