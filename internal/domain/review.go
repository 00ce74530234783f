package domain

import "time"

// ModerationState состояние модерации отзыва
type ModerationState string

const (
	ModerationPending  ModerationState = "pending"
	ModerationApproved ModerationState = "approved"
	ModerationRejected ModerationState = "rejected"
)

// Review отзыв клиента (resena)
type Review struct {
	ID           int64
	BusinessCode string
	AuthorEmail  string
	AuthorName   string
	Rating       int
	Text         string
	Approved     *bool // nil = ожидает модерации
	ModeratedAt  *time.Time
	CreatedAt    time.Time
}

// State возвращает состояние модерации
func (r *Review) State() ModerationState {
	switch {
	case r.Approved == nil:
		return ModerationPending
	case *r.Approved:
		return ModerationApproved
	default:
		return ModerationRejected
	}
}
