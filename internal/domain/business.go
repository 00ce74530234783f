package domain

import "time"

// ReviewOrder порядок отображения отзывов на витрине
type ReviewOrder string

const (
	ReviewOrderOldestFirst  ReviewOrder = "antigua-reciente"
	ReviewOrderNewestFirst  ReviewOrder = "reciente-antigua"
	ReviewOrderHighestFirst ReviewOrder = "mayor-menor"
	ReviewOrderLowestFirst  ReviewOrder = "menor-mayor"
)

// IsValid проверяет значение порядка
func (o ReviewOrder) IsValid() bool {
	switch o {
	case ReviewOrderOldestFirst, ReviewOrderNewestFirst, ReviewOrderHighestFirst, ReviewOrderLowestFirst:
		return true
	}
	return false
}

// Business арендатор (negocio)
type Business struct {
	ID   int64
	Code string // Уникальный код, используется в URL витрины
	Name string

	// Недельные рабочие дни: 0 = воскресенье ... 6 = суббота
	OpenDays []int

	OpeningTime         string // "09:00"
	ClosingTime         string // "20:00"
	SaturdayClosingTime string // "18:00"
	SlotIntervalMinutes int

	Categories  []string
	ReviewOrder ReviewOrder
	Active      bool
	OwnerEmail  string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOpenWeekday проверяет, входит ли день недели в рабочие дни
func (b *Business) IsOpenWeekday(wd time.Weekday) bool {
	for _, d := range b.OpenDays {
		if d == int(wd) {
			return true
		}
	}
	return false
}

// HasCategory проверяет, что категория есть в списке бизнеса
func (b *Business) HasCategory(category string) bool {
	for _, c := range b.Categories {
		if c == category {
			return true
		}
	}
	return false
}

// ApplyDefaults заполняет незаданные поля значениями по умолчанию
func (b *Business) ApplyDefaults() {
	if len(b.OpenDays) == 0 {
		b.OpenDays = append([]int(nil), DefaultOpenDays...)
	}
	if b.OpeningTime == "" {
		b.OpeningTime = DefaultOpeningTime
	}
	if b.ClosingTime == "" {
		b.ClosingTime = DefaultClosingTime
	}
	if b.SaturdayClosingTime == "" {
		b.SaturdayClosingTime = DefaultSaturdayClosingTime
	}
	if b.SlotIntervalMinutes <= 0 {
		b.SlotIntervalMinutes = DefaultSlotIntervalMinutes
	}
	if b.ReviewOrder == "" {
		b.ReviewOrder = ReviewOrderNewestFirst
	}
}
