package purge_notifications

import "context"

type NotificationService interface {
	PurgeOldSent(ctx context.Context, ageInDays int) (int64, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
