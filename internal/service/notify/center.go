package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockdesk/internal/domain/models"
)

// Notifier receives toast notifications raised by the screens.
type Notifier interface {
	Notify(screen string, level models.NotificationLevel, message string)
}

// Center keeps the most recent notifications in memory and logs each one.
type Center struct {
	mu     sync.RWMutex
	items  []models.Notification
	keep   int
	logger *zap.Logger
	now    func() time.Time
}

// NewCenter builds a Center retaining at most keep notifications.
func NewCenter(keep int, logger *zap.Logger) *Center {
	if logger == nil {
		logger = zap.NewNop()
	}
	if keep <= 0 {
		keep = 50
	}
	return &Center{keep: keep, logger: logger, now: time.Now}
}

// Notify records a notification.
func (c *Center) Notify(screen string, level models.NotificationLevel, message string) {
	n := models.Notification{
		ID:        uuid.NewString(),
		Screen:    screen,
		Level:     level,
		Message:   message,
		CreatedAt: c.now().UTC(),
	}

	fields := []zap.Field{zap.String("screen", screen), zap.String("message", message)}
	if level == models.LevelError {
		c.logger.Warn("notification", fields...)
	} else {
		c.logger.Info("notification", fields...)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, n)
	if over := len(c.items) - c.keep; over > 0 {
		c.items = append([]models.Notification(nil), c.items[over:]...)
	}
}

// Recent returns up to limit notifications for a screen, newest first. An
// empty screen matches every screen.
func (c *Center) Recent(screen string, limit int) []models.Notification {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := []models.Notification{}
	for i := len(c.items) - 1; i >= 0; i-- {
		if limit > 0 && len(out) >= limit {
			break
		}
		if screen == "" || c.items[i].Screen == screen {
			out = append(out, c.items[i])
		}
	}
	return out
}
