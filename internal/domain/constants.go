package domain

// Business validation constants
const (
	MinDurationMinutes = 1
	MaxDurationMinutes = 480 // 8 часов

	MaxNotesLength       = 500
	MaxMessageLength     = 1000
	MaxServiceTypeLength = 100
	MaxZoneLength        = 100
)

// Default retention thresholds
const (
	DefaultTurnRetentionDays         = 30
	DefaultNotificationRetentionDays = 90
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ValidStatuses список допустимых статусов турна
// Используется при валидации входных данных
var ValidStatuses = []TurnStatus{
	StatusPending,
	StatusConfirmed,
	StatusCancelled,
}

// ValidKinds список допустимых типов уведомлений
var ValidKinds = []NotificationKind{
	KindReminder,
	KindConfirmation,
	KindAlert,
}

// IsValidStatus проверяет, что статус входит в список допустимых
func IsValidStatus(s TurnStatus) bool {
	for _, valid := range ValidStatuses {
		if s == valid {
			return true
		}
	}
	return false
}

// IsValidKind проверяет, что тип уведомления входит в список допустимых
func IsValidKind(k NotificationKind) bool {
	for _, valid := range ValidKinds {
		if k == valid {
			return true
		}
	}
	return false
}
