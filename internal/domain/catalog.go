package domain

import "time"

// Service услуга бизнеса (servicio)
type Service struct {
	ID           int64
	BusinessCode string
	Name         string
	Category     string
	Duration     string // "30 min", "1:30"
	Price        string // "$2500"
	Description  string
	Position     int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Staff сотрудник бизнеса (personal)
type Staff struct {
	ID               int64
	BusinessCode     string
	Name             string
	Role             string
	Avatar           string // data URL или URL
	Specialties      []string
	CertificateTitle *string
	Position         int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
