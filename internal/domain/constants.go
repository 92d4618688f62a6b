package domain

// Default business configuration values; the effective values are
// injected from config
const (
	DefaultSlotDurationMinutes       = 60
	DefaultCancellationNoticeMinutes = 120
)

// Business validation constants
const (
	MinDayOfWeek = 1 // Monday
	MaxDayOfWeek = 7 // Sunday

	MaxNotesLength   = 500
	MaxCommentLength = 1000
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
