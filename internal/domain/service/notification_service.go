package service

import "context"

// NotificationService sends push notifications to driver devices. Dispatch
// notifications are best-effort: delivery failure never fails the operation
// that triggered them.
type NotificationService interface {
	// SendSingleNotification sends a push notification to a single device token.
	SendSingleNotification(ctx context.Context, token, title, body string, data map[string]string) error
}
