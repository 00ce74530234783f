package superadmin

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/maxturnos/turnos-service/internal/domain"
	"github.com/maxturnos/turnos-service/internal/infra/cache"
	businessRepo "github.com/maxturnos/turnos-service/internal/infra/storage/business"
	userRepo "github.com/maxturnos/turnos-service/internal/infra/storage/user"
	"github.com/maxturnos/turnos-service/internal/service/superadmin/models"
)

var codePattern = regexp.MustCompile(`^[a-z0-9_]{2,64}$`)

// Service управление бизнесами платформы
type Service struct {
	businessRepo BusinessRepository
	serviceRepo  ServiceRepository
	staffRepo    StaffRepository
	userRepo     UserRepository
	template     Template
	txManager    TransactionManager
	cache        Cache
	logger       Logger
}

// NewService создает новый экземпляр сервиса. template может быть nil: тогда бизнес
// создается с настройками по умолчанию и пустым каталогом.
func NewService(
	businessRepo BusinessRepository,
	serviceRepo ServiceRepository,
	staffRepo StaffRepository,
	userRepo UserRepository,
	template Template,
	txManager TransactionManager,
	cache Cache,
	logger Logger,
) *Service {
	return &Service{
		businessRepo: businessRepo,
		serviceRepo:  serviceRepo,
		staffRepo:    staffRepo,
		userRepo:     userRepo,
		template:     template,
		txManager:    txManager,
		cache:        cache,
		logger:       logger,
	}
}

// List все бизнесы
func (s *Service) List(ctx context.Context, actor domain.Principal) ([]models.BusinessSummary, error) {
	if !actor.SuperAdmin {
		return nil, ErrForbidden
	}
	list, err := s.businessRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}
	result := make([]models.BusinessSummary, 0, len(list))
	for _, b := range list {
		result = append(result, models.FromDomainBusiness(b))
	}
	return result, nil
}

// Create создает бизнес со стартовым каталогом и привязывает владельца
func (s *Service) Create(ctx context.Context, actor domain.Principal, req *models.CreateBusinessRequest) (*models.CreateBusinessResponse, error) {
	code := strings.ToLower(strings.TrimSpace(req.ID))
	owner := strings.ToLower(strings.TrimSpace(req.MailAsociado))
	s.logger.Info("Create: business=%s, owner=%s by %s", code, owner, actor.Email)

	// 1. Валидация
	if !actor.SuperAdmin {
		return nil, ErrForbidden
	}
	if code == "" || owner == "" {
		return nil, fmt.Errorf("%w: id and mailAsociado are required", ErrInvalidInput)
	}
	if !codePattern.MatchString(code) {
		return nil, fmt.Errorf("%w: invalid business id %q", ErrInvalidInput, code)
	}
	name := strings.TrimSpace(req.Nombre)
	if name == "" {
		name = code
	}

	business := &domain.Business{Code: code, Name: name, OwnerEmail: owner, Active: true}
	if s.template != nil {
		s.template.ApplyTo(business)
	} else {
		business.ApplyDefaults()
	}

	resp := &models.CreateBusinessResponse{}

	// 2. Бизнес, каталог и владелец в одной транзакции
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		created, err := s.businessRepo.Create(ctx, business)
		if err != nil {
			if errors.Is(err, businessRepo.ErrDuplicateCode) {
				return ErrDuplicateCode
			}
			return fmt.Errorf("%w: Create - create business: %v", ErrInternal, err)
		}
		resp.Negocio = models.FromDomainBusiness(created)

		if s.template != nil {
			for _, svc := range s.template.ServicesFor(code) {
				if _, err := s.serviceRepo.Create(ctx, svc); err != nil {
					return fmt.Errorf("%w: Create - seed service %q: %v", ErrInternal, svc.Name, err)
				}
				resp.Servicios++
			}
			for _, st := range s.template.StaffFor(code) {
				if _, err := s.staffRepo.Create(ctx, st); err != nil {
					return fmt.Errorf("%w: Create - seed staff %q: %v", ErrInternal, st.Name, err)
				}
				resp.Personal++
			}
		}

		return s.attachOwner(ctx, owner, code, name)
	})
	if err != nil {
		s.logger.Error("Create: failed to create business=%s: %v", code, err)
		return nil, err
	}

	s.logger.Info("Create: business=%s created with %d services and %d staff", code, resp.Servicios, resp.Personal)
	return resp, nil
}

// Update меняет название, владельца или активность бизнеса
func (s *Service) Update(ctx context.Context, actor domain.Principal, code string, req *models.UpdateBusinessRequest) (*models.BusinessSummary, error) {
	s.logger.Info("Update: business=%s by %s", code, actor.Email)

	if !actor.SuperAdmin {
		return nil, ErrForbidden
	}

	business, err := s.businessRepo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			return nil, ErrBusinessNotFound
		}
		return nil, fmt.Errorf("%w: Update - get business: %v", ErrInternal, err)
	}

	if req.Nombre != nil {
		if strings.TrimSpace(*req.Nombre) == "" {
			return nil, fmt.Errorf("%w: nombre cannot be empty", ErrInvalidInput)
		}
		business.Name = strings.TrimSpace(*req.Nombre)
	}
	ownerChanged := false
	if req.MailAsociado != nil {
		owner := strings.ToLower(strings.TrimSpace(*req.MailAsociado))
		if owner == "" {
			return nil, fmt.Errorf("%w: mailAsociado cannot be empty", ErrInvalidInput)
		}
		ownerChanged = owner != business.OwnerEmail
		business.OwnerEmail = owner
	}
	if req.Activo != nil {
		business.Active = *req.Activo
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.businessRepo.UpdateProfile(ctx, business); err != nil {
			if errors.Is(err, businessRepo.ErrBusinessNotFound) {
				return ErrBusinessNotFound
			}
			return fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}
		if ownerChanged {
			return s.attachOwner(ctx, business.OwnerEmail, business.Code, business.Name)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, code)
	resp := models.FromDomainBusiness(business)
	return &resp, nil
}

// Delete удаляет бизнес со всеми данными
func (s *Service) Delete(ctx context.Context, actor domain.Principal, code string) error {
	s.logger.Info("Delete: business=%s by %s", code, actor.Email)

	if !actor.SuperAdmin {
		return ErrForbidden
	}
	if err := s.businessRepo.Delete(ctx, code); err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			return ErrBusinessNotFound
		}
		s.logger.Error("Delete: repository error: %v", err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}
	s.invalidate(ctx, code)
	return nil
}

// attachOwner владелец может еще не быть зарегистрирован: тогда привязка произойдет
// при регистрации по названию бизнеса
func (s *Service) attachOwner(ctx context.Context, email, code, name string) error {
	err := s.userRepo.AttachBusiness(ctx, email, code, name)
	if errors.Is(err, userRepo.ErrUserNotFound) {
		s.logger.Warn("attachOwner: user %s is not registered yet", email)
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: attach owner: %v", ErrInternal, err)
	}
	return nil
}

func (s *Service) invalidate(ctx context.Context, code string) {
	if err := s.cache.Delete(ctx, cache.StorefrontKey(code)); err != nil {
		s.logger.Warn("superadmin: failed to invalidate storefront cache for %s: %v", code, err)
	}
}
