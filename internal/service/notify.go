package service

import (
	"log"
	"sync"

	"guardian-vault-api/internal/stores"
)

// notificationHistory bounds the in-memory notification ring.
const notificationHistory = 50

// NotificationCenter is the notification sink of the loading pipeline: it
// logs telemetry reports and keeps a bounded history of user-visible
// notifications for the API to serve.
type NotificationCenter struct {
	mu     sync.Mutex
	recent []stores.Notification
}

// NewNotificationCenter creates an empty notification center.
func NewNotificationCenter() *NotificationCenter {
	return &NotificationCenter{}
}

// Notify records a user-visible non-fatal failure.
func (c *NotificationCenter) Notify(n stores.Notification) {
	log.Printf("[NotificationCenter] %s: %s", n.Title, n.Body)

	c.mu.Lock()
	c.recent = append(c.recent, n)
	if len(c.recent) > notificationHistory {
		c.recent = c.recent[len(c.recent)-notificationHistory:]
	}
	c.mu.Unlock()
}

// ReportError records a telemetry report with cycle context.
func (c *NotificationCenter) ReportError(cycle string, err error) {
	log.Printf("[NotificationCenter] Error in %s: %v", cycle, err)
}

// Recent returns the notification history, newest last.
func (c *NotificationCenter) Recent() []stores.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]stores.Notification, len(c.recent))
	copy(out, c.recent)
	return out
}

var _ stores.Notifier = (*NotificationCenter)(nil)
