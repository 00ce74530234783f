package models

import (
	"time"

	"github.com/maxturnos/turnos-service/internal/domain"
)

// CreateBusinessRequest новый бизнес
type CreateBusinessRequest struct {
	ID           string `json:"id"` // код бизнеса
	Nombre       string `json:"nombre"`
	MailAsociado string `json:"mailAsociado"`
}

// UpdateBusinessRequest изменение профиля бизнеса; nil = не менять
type UpdateBusinessRequest struct {
	Nombre       *string `json:"nombre,omitempty"`
	MailAsociado *string `json:"mailAsociado,omitempty"`
	Activo       *bool   `json:"activo,omitempty"`
}

// BusinessSummary бизнес в панели суперадмина
type BusinessSummary struct {
	ID            string    `json:"id"`
	Nombre        string    `json:"nombre"`
	MailAsociado  string    `json:"mailAsociado"`
	Activo        bool      `json:"activo"`
	FechaCreacion time.Time `json:"fechaCreacion"`
}

// CreateBusinessResponse созданный бизнес и размер стартового каталога
type CreateBusinessResponse struct {
	Negocio   BusinessSummary `json:"negocio"`
	Servicios int             `json:"servicios"`
	Personal  int             `json:"personal"`
}

// FromDomainBusiness конвертирует бизнес в строку панели
func FromDomainBusiness(b *domain.Business) BusinessSummary {
	return BusinessSummary{
		ID:            b.Code,
		Nombre:        b.Name,
		MailAsociado:  b.OwnerEmail,
		Activo:        b.Active,
		FechaCreacion: b.CreatedAt,
	}
}
