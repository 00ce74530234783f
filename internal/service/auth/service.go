package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"github.com/maxturnos/turnos-service/internal/domain"
	businessRepo "github.com/maxturnos/turnos-service/internal/infra/storage/business"
	userRepo "github.com/maxturnos/turnos-service/internal/infra/storage/user"
	"github.com/maxturnos/turnos-service/internal/service/auth/models"
)

const (
	minPasswordLength = 6
	registerBusiness  = "negocio"
)

// Service регистрация и вход
type Service struct {
	userRepo     UserRepository
	businessRepo BusinessRepository
	tokens       *TokenIssuer
	superAdmins  map[string]struct{}
	logger       Logger
}

// NewService создает новый экземпляр сервиса аутентификации
func NewService(
	userRepo UserRepository,
	businessRepo BusinessRepository,
	tokens *TokenIssuer,
	superAdminEmails []string,
	logger Logger,
) *Service {
	admins := make(map[string]struct{}, len(superAdminEmails))
	for _, e := range superAdminEmails {
		admins[normalizeEmail(e)] = struct{}{}
	}
	return &Service{
		userRepo:     userRepo,
		businessRepo: businessRepo,
		tokens:       tokens,
		superAdmins:  admins,
		logger:       logger,
	}
}

// Register создает пользователя. Владельцу бизнеса код бизнеса назначается из названия,
// сам бизнес создает суперадмин.
func (s *Service) Register(ctx context.Context, req *models.RegisterRequest) (*models.UserResponse, error) {
	email := normalizeEmail(req.Email)
	s.logger.Info("Register: %s, type=%s", email, req.TipoRegistro)

	// 1. Валидация
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: invalid email", ErrInvalidInput)
	}
	if strings.TrimSpace(req.Nombre) == "" || strings.TrimSpace(req.Apellido) == "" {
		return nil, fmt.Errorf("%w: nombre and apellido are required", ErrInvalidInput)
	}
	if len(req.Password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must have at least %d characters", ErrInvalidInput, minPasswordLength)
	}

	user := &domain.User{
		Email:     email,
		FirstName: NormalizeName(req.Nombre),
		LastName:  NormalizeName(req.Apellido),
		Role:      domain.RoleCustomer,
	}
	if strings.EqualFold(req.TipoRegistro, registerBusiness) {
		code := BusinessCode(req.NombreNegocio)
		if code == "" {
			return nil, fmt.Errorf("%w: nombreNegocio is required for business registration", ErrInvalidInput)
		}
		name := strings.TrimSpace(req.NombreNegocio)
		user.Role = domain.RoleAdmin
		user.BusinessName = &name
		user.BusinessCode = &code
	}

	// 2. Хеш пароля
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("%w: Register - hash password: %v", ErrInternal, err)
	}
	user.PasswordHash = string(hash)

	// 3. Сохраняем
	created, err := s.userRepo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, userRepo.ErrEmailTaken) {
			s.logger.Warn("Register: email %s already registered", email)
			return nil, ErrEmailTaken
		}
		s.logger.Error("Register: repository error: %v", err)
		return nil, fmt.Errorf("%w: Register - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Register: user id=%d created with role=%s", created.ID, created.Role)
	resp := models.FromDomainUser(created, s.isSuperAdmin(created.Email))
	return &resp, nil
}

// BusinessNotFoundError вход администратора, чей бизнес еще не создан
type BusinessNotFoundError struct {
	Email        string
	BusinessName string
}

func (e *BusinessNotFoundError) Error() string {
	return fmt.Sprintf("business %q not found for admin %s", e.BusinessName, e.Email)
}

func (e *BusinessNotFoundError) Unwrap() error { return ErrBusinessNotFound }

// Login проверяет пароль и выпускает токен
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	email := normalizeEmail(req.Email)
	s.logger.Info("Login: %s", email)

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("Login: repository error: %v", err)
		return nil, fmt.Errorf("%w: Login - repository error: %v", ErrInternal, err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("Login: wrong password for %s", email)
		return nil, ErrInvalidCredentials
	}

	superAdmin := s.isSuperAdmin(user.Email)
	principal := domain.Principal{
		Email:      user.Email,
		Name:       user.FullName(),
		Role:       user.Role,
		SuperAdmin: superAdmin,
	}

	// Администратор должен быть привязан к существующему бизнесу, где он владелец
	if user.Role == domain.RoleAdmin && !superAdmin {
		code, err := s.adminBusiness(ctx, user)
		if err != nil {
			return nil, err
		}
		principal.BusinessCode = code
		user.BusinessCode = &code
	}

	token, err := s.tokens.Issue(principal)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Login: %s signed in as %s", email, user.Role)
	return &models.LoginResponse{Token: token, Usuario: models.FromDomainUser(user, superAdmin)}, nil
}

// ParseToken пользователь из токена сессии
func (s *Service) ParseToken(raw string) (domain.Principal, error) {
	return s.tokens.Parse(raw)
}

func (s *Service) adminBusiness(ctx context.Context, user *domain.User) (string, error) {
	notFound := &BusinessNotFoundError{Email: user.Email, BusinessName: "No especificado"}
	if user.BusinessName != nil && *user.BusinessName != "" {
		notFound.BusinessName = *user.BusinessName
	}

	code := ""
	switch {
	case user.BusinessCode != nil && *user.BusinessCode != "":
		code = *user.BusinessCode
	case user.BusinessName != nil:
		code = BusinessCode(*user.BusinessName)
	}
	if code == "" {
		s.logger.Warn("Login: admin %s has no business", user.Email)
		return "", notFound
	}

	business, err := s.businessRepo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			s.logger.Warn("Login: business %s for admin %s not found", code, user.Email)
			return "", notFound
		}
		return "", fmt.Errorf("%w: Login - get business: %v", ErrInternal, err)
	}
	if business.OwnerEmail != "" && !strings.EqualFold(business.OwnerEmail, user.Email) {
		s.logger.Warn("Login: business %s belongs to %s, not %s", code, business.OwnerEmail, user.Email)
		return "", notFound
	}
	return business.Code, nil
}

func (s *Service) isSuperAdmin(email string) bool {
	_, ok := s.superAdmins[normalizeEmail(email)]
	return ok
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeName "maximo augusto" -> "Maximo Augusto"
func NormalizeName(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// BusinessCode код бизнеса из названия: "Barberia Clasica" -> "barberia_clasica"
func BusinessCode(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), "_"))
}
