package models

import (
	"github.com/maxturnos/turnos-service/internal/domain"
	catalogModels "github.com/maxturnos/turnos-service/internal/service/catalog/models"
	reviewModels "github.com/maxturnos/turnos-service/internal/service/reviews/models"
)

// Horarios рабочие часы бизнеса
type Horarios struct {
	Inicio    string `json:"inicio"`
	Fin       string `json:"fin"`
	FinSabado string `json:"finSabado"`
	Intervalo int    `json:"intervalo"`
}

// BusinessResponse публичные данные бизнеса
type BusinessResponse struct {
	Codigo          string   `json:"codigo"`
	Nombre          string   `json:"nombre"`
	Horarios        Horarios `json:"horarios"`
	DiasDisponibles []int    `json:"diasDisponibles"`
	OrdenResenas    string   `json:"ordenResenas"`
	Categorias      []string `json:"categorias"`
	Activo          bool     `json:"activo"`
}

// StorefrontResponse витрина: все, что нужно публичной странице бизнеса одним запросом
type StorefrontResponse struct {
	Negocio   BusinessResponse                `json:"negocio"`
	Servicios []catalogModels.ServiceResponse `json:"servicios"`
	Personal  []catalogModels.StaffResponse   `json:"personal"`
	Resenas   []reviewModels.ReviewResponse   `json:"resenas"`
}

// UpdateScheduleRequest новое расписание
type UpdateScheduleRequest struct {
	Horarios        Horarios `json:"horarios"`
	DiasDisponibles []int    `json:"diasDisponibles"`
}

// UpdateCategoriesRequest новый список категорий
type UpdateCategoriesRequest struct {
	Categorias []string `json:"categorias"`
}

// UpdateReviewOrderRequest новый порядок отзывов
type UpdateReviewOrderRequest struct {
	OrdenResenas string `json:"ordenResenas"`
}

// FromDomainBusiness конвертирует доменную модель бизнеса в ответ
func FromDomainBusiness(b *domain.Business) BusinessResponse {
	categories := b.Categories
	if categories == nil {
		categories = []string{}
	}
	return BusinessResponse{
		Codigo: b.Code,
		Nombre: b.Name,
		Horarios: Horarios{
			Inicio:    b.OpeningTime,
			Fin:       b.ClosingTime,
			FinSabado: b.SaturdayClosingTime,
			Intervalo: b.SlotIntervalMinutes,
		},
		DiasDisponibles: append([]int{}, b.OpenDays...),
		OrdenResenas:    string(b.ReviewOrder),
		Categorias:      categories,
		Activo:          b.Active,
	}
}
