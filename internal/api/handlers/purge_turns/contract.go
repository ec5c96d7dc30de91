package purge_turns

import "context"

type TurnService interface {
	PurgeOldCancelled(ctx context.Context, ageInDays int) (int64, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
