package models

import (
	"time"

	"github.com/maxturnos/turnos-service/internal/domain"
)

// CreateReviewRequest новый отзыв клиента
type CreateReviewRequest struct {
	Rating int    `json:"rating"`
	Texto  string `json:"texto"`
}

// ModerateRequest решение модерации; null возвращает отзыв в ожидание
type ModerateRequest struct {
	Aprobada *bool `json:"aprobada"`
}

// ReviewResponse отзыв
type ReviewResponse struct {
	ID              int64   `json:"id"`
	NegocioCodigo   string  `json:"negocioCodigo"`
	UsuarioEmail    string  `json:"usuarioEmail"`
	UsuarioNombre   string  `json:"usuarioNombre"`
	Rating          int     `json:"rating"`
	Texto           string  `json:"texto"`
	Aprobada        *bool   `json:"aprobada"`
	Estado          string  `json:"estado"`
	FechaCreacion   string  `json:"fechaCreacion"`
	FechaAprobacion *string `json:"fechaAprobacion,omitempty"`
}

// FromDomainReview конвертирует доменную модель отзыва в ответ
func FromDomainReview(r *domain.Review) ReviewResponse {
	resp := ReviewResponse{
		ID:            r.ID,
		NegocioCodigo: r.BusinessCode,
		UsuarioEmail:  r.AuthorEmail,
		UsuarioNombre: r.AuthorName,
		Rating:        r.Rating,
		Texto:         r.Text,
		Aprobada:      r.Approved,
		Estado:        string(r.State()),
		FechaCreacion: r.CreatedAt.Format(time.RFC3339),
	}
	if r.ModeratedAt != nil {
		s := r.ModeratedAt.Format(time.RFC3339)
		resp.FechaAprobacion = &s
	}
	return resp
}

// FromDomainReviews конвертирует список отзывов
func FromDomainReviews(list []*domain.Review) []ReviewResponse {
	result := make([]ReviewResponse, 0, len(list))
	for _, r := range list {
		result = append(result, FromDomainReview(r))
	}
	return result
}
