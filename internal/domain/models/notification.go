package models

import "time"

// NotificationLevel classifies a toast notification.
type NotificationLevel string

const (
	LevelSuccess NotificationLevel = "success"
	LevelError   NotificationLevel = "error"
	LevelInfo    NotificationLevel = "info"
)

// Notification is a transient user-visible message raised by a screen.
type Notification struct {
	ID        string            `json:"id"`
	Screen    string            `json:"screen"`
	Level     NotificationLevel `json:"level"`
	Message   string            `json:"message"`
	CreatedAt time.Time         `json:"created_at"`
}
