package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/maxturnos/turnos-service/internal/availability"
	"github.com/maxturnos/turnos-service/internal/domain"
	"github.com/maxturnos/turnos-service/internal/infra/cache"
	businessRepo "github.com/maxturnos/turnos-service/internal/infra/storage/business"
	catalogRepo "github.com/maxturnos/turnos-service/internal/infra/storage/catalog"
	"github.com/maxturnos/turnos-service/internal/service/catalog/models"
)

// Service услуги и сотрудники бизнеса
type Service struct {
	businessRepo BusinessRepository
	serviceRepo  ServiceRepository
	staffRepo    StaffRepository
	cache        Cache
	logger       Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(
	businessRepo BusinessRepository,
	serviceRepo ServiceRepository,
	staffRepo StaffRepository,
	cache Cache,
	logger Logger,
) *Service {
	return &Service{
		businessRepo: businessRepo,
		serviceRepo:  serviceRepo,
		staffRepo:    staffRepo,
		cache:        cache,
		logger:       logger,
	}
}

// ListServices услуги бизнеса в порядке отображения
// Публичный метод - доступен всем
func (s *Service) ListServices(ctx context.Context, code string) ([]models.ServiceResponse, error) {
	list, err := s.serviceRepo.List(ctx, code)
	if err != nil {
		s.logger.Error("ListServices: repository error for business=%s: %v", code, err)
		return nil, fmt.Errorf("%w: ListServices - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainServices(list), nil
}

// CreateService добавляет услугу в конец списка
func (s *Service) CreateService(ctx context.Context, actor domain.Principal, code string, req *models.ServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("CreateService: business=%s, name=%q by %s", code, req.Nombre, actor.Email)

	// 1. Права и бизнес
	business, err := s.managedBusiness(ctx, "CreateService", actor, code)
	if err != nil {
		return nil, err
	}

	// 2. Валидация
	svc, err := buildService(business, req)
	if err != nil {
		s.logger.Warn("CreateService: validation failed: %v", err)
		return nil, err
	}

	// 3. Сохраняем
	created, err := s.serviceRepo.Create(ctx, svc)
	if err != nil {
		s.logger.Error("CreateService: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateService - repository error: %v", ErrInternal, err)
	}

	s.invalidate(ctx, code)
	s.logger.Info("CreateService: created service id=%d", created.ID)
	resp := models.FromDomainService(created)
	return &resp, nil
}

// UpdateService заменяет поля услуги
func (s *Service) UpdateService(ctx context.Context, actor domain.Principal, code string, id int64, req *models.ServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("UpdateService: business=%s, id=%d by %s", code, id, actor.Email)

	business, err := s.managedBusiness(ctx, "UpdateService", actor, code)
	if err != nil {
		return nil, err
	}

	svc, err := buildService(business, req)
	if err != nil {
		s.logger.Warn("UpdateService: validation failed: %v", err)
		return nil, err
	}
	svc.ID = id

	if err := s.serviceRepo.Update(ctx, svc); err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			return nil, ErrServiceNotFound
		}
		s.logger.Error("UpdateService: repository error: %v", err)
		return nil, fmt.Errorf("%w: UpdateService - repository error: %v", ErrInternal, err)
	}

	updated, err := s.serviceRepo.GetByID(ctx, code, id)
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateService - reload: %v", ErrInternal, err)
	}

	s.invalidate(ctx, code)
	resp := models.FromDomainService(updated)
	return &resp, nil
}

// DeleteService удаляет услугу. Снимки в бронированиях остаются.
func (s *Service) DeleteService(ctx context.Context, actor domain.Principal, code string, id int64) error {
	s.logger.Info("DeleteService: business=%s, id=%d by %s", code, id, actor.Email)

	if _, err := s.managedBusiness(ctx, "DeleteService", actor, code); err != nil {
		return err
	}
	if err := s.serviceRepo.Delete(ctx, code, id); err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			return ErrServiceNotFound
		}
		s.logger.Error("DeleteService: repository error: %v", err)
		return fmt.Errorf("%w: DeleteService - repository error: %v", ErrInternal, err)
	}
	s.invalidate(ctx, code)
	return nil
}

// ReorderServices сохраняет новый порядок услуг
func (s *Service) ReorderServices(ctx context.Context, actor domain.Principal, code string, ids []int64) error {
	if _, err := s.managedBusiness(ctx, "ReorderServices", actor, code); err != nil {
		return err
	}
	if err := validateIDs(ids); err != nil {
		return err
	}
	if err := s.serviceRepo.Reorder(ctx, code, ids); err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			return ErrServiceNotFound
		}
		s.logger.Error("ReorderServices: repository error: %v", err)
		return fmt.Errorf("%w: ReorderServices - repository error: %v", ErrInternal, err)
	}
	s.invalidate(ctx, code)
	return nil
}

// ListStaff сотрудники бизнеса в порядке отображения
// Публичный метод - доступен всем
func (s *Service) ListStaff(ctx context.Context, code string) ([]models.StaffResponse, error) {
	list, err := s.staffRepo.List(ctx, code)
	if err != nil {
		s.logger.Error("ListStaff: repository error for business=%s: %v", code, err)
		return nil, fmt.Errorf("%w: ListStaff - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainStaffList(list), nil
}

// CreateStaff добавляет сотрудника в конец списка
func (s *Service) CreateStaff(ctx context.Context, actor domain.Principal, code string, req *models.StaffRequest) (*models.StaffResponse, error) {
	s.logger.Info("CreateStaff: business=%s, name=%q by %s", code, req.Nombre, actor.Email)

	if _, err := s.managedBusiness(ctx, "CreateStaff", actor, code); err != nil {
		return nil, err
	}

	staff, err := buildStaff(code, req)
	if err != nil {
		s.logger.Warn("CreateStaff: validation failed: %v", err)
		return nil, err
	}

	created, err := s.staffRepo.Create(ctx, staff)
	if err != nil {
		s.logger.Error("CreateStaff: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateStaff - repository error: %v", ErrInternal, err)
	}

	s.invalidate(ctx, code)
	s.logger.Info("CreateStaff: created staff id=%d", created.ID)
	resp := models.FromDomainStaff(created)
	return &resp, nil
}

// UpdateStaff заменяет поля сотрудника
func (s *Service) UpdateStaff(ctx context.Context, actor domain.Principal, code string, id int64, req *models.StaffRequest) (*models.StaffResponse, error) {
	s.logger.Info("UpdateStaff: business=%s, id=%d by %s", code, id, actor.Email)

	if _, err := s.managedBusiness(ctx, "UpdateStaff", actor, code); err != nil {
		return nil, err
	}

	staff, err := buildStaff(code, req)
	if err != nil {
		s.logger.Warn("UpdateStaff: validation failed: %v", err)
		return nil, err
	}
	staff.ID = id

	if err := s.staffRepo.Update(ctx, staff); err != nil {
		if errors.Is(err, catalogRepo.ErrStaffNotFound) {
			return nil, ErrStaffNotFound
		}
		s.logger.Error("UpdateStaff: repository error: %v", err)
		return nil, fmt.Errorf("%w: UpdateStaff - repository error: %v", ErrInternal, err)
	}

	updated, err := s.staffRepo.GetByID(ctx, code, id)
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStaff - reload: %v", ErrInternal, err)
	}

	s.invalidate(ctx, code)
	resp := models.FromDomainStaff(updated)
	return &resp, nil
}

// DeleteStaff удаляет сотрудника
func (s *Service) DeleteStaff(ctx context.Context, actor domain.Principal, code string, id int64) error {
	s.logger.Info("DeleteStaff: business=%s, id=%d by %s", code, id, actor.Email)

	if _, err := s.managedBusiness(ctx, "DeleteStaff", actor, code); err != nil {
		return err
	}
	if err := s.staffRepo.Delete(ctx, code, id); err != nil {
		if errors.Is(err, catalogRepo.ErrStaffNotFound) {
			return ErrStaffNotFound
		}
		s.logger.Error("DeleteStaff: repository error: %v", err)
		return fmt.Errorf("%w: DeleteStaff - repository error: %v", ErrInternal, err)
	}
	s.invalidate(ctx, code)
	return nil
}

// ReorderStaff сохраняет новый порядок сотрудников
func (s *Service) ReorderStaff(ctx context.Context, actor domain.Principal, code string, ids []int64) error {
	if _, err := s.managedBusiness(ctx, "ReorderStaff", actor, code); err != nil {
		return err
	}
	if err := validateIDs(ids); err != nil {
		return err
	}
	if err := s.staffRepo.Reorder(ctx, code, ids); err != nil {
		if errors.Is(err, catalogRepo.ErrStaffNotFound) {
			return ErrStaffNotFound
		}
		s.logger.Error("ReorderStaff: repository error: %v", err)
		return fmt.Errorf("%w: ReorderStaff - repository error: %v", ErrInternal, err)
	}
	s.invalidate(ctx, code)
	return nil
}

func (s *Service) managedBusiness(ctx context.Context, op string, actor domain.Principal, code string) (*domain.Business, error) {
	if !actor.CanManage(code) {
		s.logger.Warn("%s: %s cannot manage business=%s", op, actor.Email, code)
		return nil, ErrAccessDenied
	}
	business, err := s.businessRepo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			return nil, ErrBusinessNotFound
		}
		s.logger.Error("%s: failed to get business=%s: %v", op, code, err)
		return nil, fmt.Errorf("%w: %s - get business: %v", ErrInternal, op, err)
	}
	return business, nil
}

func (s *Service) invalidate(ctx context.Context, code string) {
	if err := s.cache.Delete(ctx, cache.StorefrontKey(code)); err != nil {
		s.logger.Warn("catalog: failed to invalidate storefront cache for %s: %v", code, err)
	}
}

func buildService(business *domain.Business, req *models.ServiceRequest) (*domain.Service, error) {
	name := strings.TrimSpace(req.Nombre)
	if name == "" {
		return nil, fmt.Errorf("%w: nombre is required", ErrInvalidInput)
	}
	duration := strings.TrimSpace(req.Duracion)
	if availability.ParseDurationMinutes(duration, 0) <= 0 {
		return nil, fmt.Errorf("%w: duracion %q", ErrInvalidInput, req.Duracion)
	}
	if utf8.RuneCountInString(req.Descripcion) > domain.MaxDescriptionLength {
		return nil, fmt.Errorf("%w: descripcion exceeds %d characters", ErrInvalidInput, domain.MaxDescriptionLength)
	}
	category := strings.TrimSpace(req.Categoria)
	if category != "" && !business.HasCategory(category) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}

	return &domain.Service{
		BusinessCode: business.Code,
		Name:         name,
		Category:     category,
		Duration:     duration,
		Price:        strings.TrimSpace(req.Precio),
		Description:  strings.TrimSpace(req.Descripcion),
	}, nil
}

func buildStaff(code string, req *models.StaffRequest) (*domain.Staff, error) {
	name := strings.TrimSpace(req.Nombre)
	if name == "" {
		return nil, fmt.Errorf("%w: nombre is required", ErrInvalidInput)
	}
	avatar, err := normalizeAvatar(req.Avatar)
	if err != nil {
		return nil, err
	}

	specialties := make([]string, 0, len(req.Specialties))
	for _, sp := range req.Specialties {
		if sp = strings.TrimSpace(sp); sp != "" {
			specialties = append(specialties, sp)
		}
	}

	var certificate *string
	if req.TituloCertificado != nil && strings.TrimSpace(*req.TituloCertificado) != "" {
		c := strings.TrimSpace(*req.TituloCertificado)
		certificate = &c
	}

	return &domain.Staff{
		BusinessCode:     code,
		Name:             name,
		Role:             strings.TrimSpace(req.Rol),
		Avatar:           avatar,
		Specialties:      specialties,
		CertificateTitle: certificate,
	}, nil
}

func validateIDs(ids []int64) error {
	if len(ids) == 0 {
		return fmt.Errorf("%w: ids are required", ErrInvalidInput)
	}
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup || id <= 0 {
			return fmt.Errorf("%w: invalid or duplicate id %d", ErrInvalidInput, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}
