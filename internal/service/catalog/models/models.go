package models

import "github.com/maxturnos/turnos-service/internal/domain"

// Request модели

// ServiceRequest создание или изменение услуги
type ServiceRequest struct {
	Nombre      string `json:"nombre"`
	Categoria   string `json:"categoria"`
	Duracion    string `json:"duracion"` // "30 min", "1:30"
	Precio      string `json:"precio"`   // "$2500"
	Descripcion string `json:"descripcion"`
}

// StaffRequest создание или изменение сотрудника
type StaffRequest struct {
	Nombre            string   `json:"nombre"`
	Rol               string   `json:"rol"`
	Avatar            string   `json:"avatar"` // URL или data URL
	Specialties       []string `json:"specialties"`
	TituloCertificado *string  `json:"tituloCertificado,omitempty"`
}

// ReorderRequest новый порядок отображения
type ReorderRequest struct {
	IDs []int64 `json:"ids"`
}

// Response модели

// ServiceResponse услуга
type ServiceResponse struct {
	ID              int64  `json:"id"`
	Establecimiento string `json:"establecimiento"`
	Nombre          string `json:"nombre"`
	Categoria       string `json:"categoria"`
	Duracion        string `json:"duracion"`
	Precio          string `json:"precio"`
	Descripcion     string `json:"descripcion"`
	Orden           int    `json:"orden"`
}

// StaffResponse сотрудник
type StaffResponse struct {
	ID                int64    `json:"id"`
	Establecimiento   string   `json:"establecimiento"`
	Nombre            string   `json:"nombre"`
	Rol               string   `json:"rol"`
	Avatar            string   `json:"avatar"`
	Specialties       []string `json:"specialties"`
	TituloCertificado *string  `json:"tituloCertificado,omitempty"`
	Orden             int      `json:"orden"`
}

// FromDomainService конвертирует доменную модель услуги в ответ
func FromDomainService(s *domain.Service) ServiceResponse {
	return ServiceResponse{
		ID:              s.ID,
		Establecimiento: s.BusinessCode,
		Nombre:          s.Name,
		Categoria:       s.Category,
		Duracion:        s.Duration,
		Precio:          s.Price,
		Descripcion:     s.Description,
		Orden:           s.Position,
	}
}

// FromDomainServices конвертирует список услуг
func FromDomainServices(list []*domain.Service) []ServiceResponse {
	result := make([]ServiceResponse, 0, len(list))
	for _, s := range list {
		result = append(result, FromDomainService(s))
	}
	return result
}

// FromDomainStaff конвертирует доменную модель сотрудника в ответ
func FromDomainStaff(s *domain.Staff) StaffResponse {
	specialties := s.Specialties
	if specialties == nil {
		specialties = []string{}
	}
	return StaffResponse{
		ID:                s.ID,
		Establecimiento:   s.BusinessCode,
		Nombre:            s.Name,
		Rol:               s.Role,
		Avatar:            s.Avatar,
		Specialties:       specialties,
		TituloCertificado: s.CertificateTitle,
		Orden:             s.Position,
	}
}

// FromDomainStaffList конвертирует список сотрудников
func FromDomainStaffList(list []*domain.Staff) []StaffResponse {
	result := make([]StaffResponse, 0, len(list))
	for _, s := range list {
		result = append(result, FromDomainStaff(s))
	}
	return result
}
