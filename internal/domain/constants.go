package domain

// Default business configuration
var DefaultOpenDays = []int{1, 2, 3, 4, 5, 6}

const (
	DefaultOpeningTime         = "09:00"
	DefaultClosingTime         = "20:00"
	DefaultSaturdayClosingTime = "18:00"
	DefaultSlotIntervalMinutes = 30
	DefaultMinOpeningTime      = "08:00"
	DefaultBookingHorizonDays  = 30
)

// Business validation constants
const (
	MinSlotIntervalMinutes  = 5
	MaxSlotIntervalMinutes  = 240
	MaxNoteLength           = 250
	MaxDescriptionLength    = 250
	MaxCancellationNoteLen  = 500
	MaxBulkDays             = 31
	MinRating               = 1
	MaxRating               = 5
	MaxReviewTextLength     = 500
	RejectedReviewRetention = 24 // часов
)

// Default reasons
const (
	DefaultCancelDayReason    = "Día cancelado desde panel de negocio"
	DefaultBlockReason        = "Bloqueado desde panel de negocio"
	DefaultGeneralBlockReason = "Bloqueado desde panel de negocio (General)"
	DefaultSundayReason       = "Día no laborable (domingo)"
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
