package models

import "github.com/maxturnos/turnos-service/internal/domain"

// RegisterRequest регистрация клиента или владельца бизнеса
type RegisterRequest struct {
	Nombre        string `json:"nombre"`
	Apellido      string `json:"apellido"`
	NombreNegocio string `json:"nombreNegocio,omitempty"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	TipoRegistro  string `json:"tipoRegistro"` // "usuario" или "negocio"
}

// LoginRequest вход по email и паролю
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse данные пользователя сессии
type UserResponse struct {
	Email         string  `json:"email"`
	Nombre        string  `json:"nombre"`
	Apellido      string  `json:"apellido"`
	Rol           string  `json:"rol"`
	NombreNegocio *string `json:"nombreNegocio,omitempty"`
	CodigoNegocio *string `json:"codigoNegocio,omitempty"`
	IsSuperAdmin  bool    `json:"isSuperAdmin"`
}

// LoginResponse токен и пользователь
type LoginResponse struct {
	Token   string       `json:"token"`
	Usuario UserResponse `json:"usuario"`
}

// BusinessNotFoundResponse тело ответа при входе администратора без бизнеса
type BusinessNotFoundResponse struct {
	Message             string `json:"message"`
	NegocioNoEncontrado bool   `json:"negocioNoEncontrado"`
	Email               string `json:"email"`
	NombreNegocio       string `json:"nombreNegocio"`
}

// FromDomainUser конвертирует пользователя в ответ
func FromDomainUser(u *domain.User, superAdmin bool) UserResponse {
	return UserResponse{
		Email:         u.Email,
		Nombre:        u.FirstName,
		Apellido:      u.LastName,
		Rol:           string(u.Role),
		NombreNegocio: u.BusinessName,
		CodigoNegocio: u.BusinessCode,
		IsSuperAdmin:  superAdmin,
	}
}
