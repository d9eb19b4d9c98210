package services

import (
	"context"
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"github.com/watchrebel/backend/internal/models"
	"github.com/watchrebel/backend/internal/repositories"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// in-memory SQLite is per-connection, keep the pool at one
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.NotificationSetting{},
		&models.WatchlistItem{},
		&models.CustomList{},
		&models.ListItem{},
		&models.Rating{},
		&models.WallPost{},
		&models.Reaction{},
		&models.Friend{},
		&models.Notification{},
		&models.Message{},
	))
	return db
}

func createUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()
	user := &models.User{Name: name, Email: name + "@example.com"}
	require.NoError(t, repositories.NewSQLiteUserRepository(db).CreateUser(user))
	return user
}

// follow creates the directed edge follower -> followee
func follow(t *testing.T, db *gorm.DB, followerID, followeeID uint) {
	t.Helper()
	require.NoError(t, db.Create(&models.Friend{UserID: followerID, FriendID: followeeID}).Error)
}

// fakeCatalog serves titles from a fixed map
type fakeCatalog struct {
	titles map[int]string
	err    error
	calls  int
}

func (c *fakeCatalog) GetTitle(_ context.Context, _ string, mediaID int) (string, error) {
	c.calls++
	if c.err != nil {
		return "", c.err
	}
	return c.titles[mediaID], nil
}

// fakePusher records sent Telegram messages
type fakePusher struct {
	mu   sync.Mutex
	sent []string
	err  error
}

func (p *fakePusher) Send(_ context.Context, chatID, text string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.sent = append(p.sent, chatID+": "+text)
	return nil
}

// fakeHub records live pushes for a configurable online set
type fakeHub struct {
	online map[uint]bool
	pushed map[uint]int
}

func newFakeHub(online ...uint) *fakeHub {
	h := &fakeHub{online: make(map[uint]bool), pushed: make(map[uint]int)}
	for _, id := range online {
		h.online[id] = true
	}
	return h
}

func (h *fakeHub) IsOnline(userID uint) bool { return h.online[userID] }

func (h *fakeHub) Push(userID uint, _ interface{}) { h.pushed[userID]++ }
