package business

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/maxturnos/turnos-service/internal/domain"
	"github.com/maxturnos/turnos-service/internal/infra/cache"
	businessRepo "github.com/maxturnos/turnos-service/internal/infra/storage/business"
	"github.com/maxturnos/turnos-service/internal/service/business/models"
	catalogModels "github.com/maxturnos/turnos-service/internal/service/catalog/models"
	reviewModels "github.com/maxturnos/turnos-service/internal/service/reviews/models"
	"github.com/maxturnos/turnos-service/pkg/types"
)

// Service настройки бизнеса и публичная витрина
type Service struct {
	businessRepo BusinessRepository
	serviceRepo  ServiceRepository
	staffRepo    StaffRepository
	reviewRepo   ReviewRepository
	cache        Cache
	logger       Logger
}

// NewService создает новый экземпляр сервиса бизнеса
func NewService(
	businessRepo BusinessRepository,
	serviceRepo ServiceRepository,
	staffRepo StaffRepository,
	reviewRepo ReviewRepository,
	cache Cache,
	logger Logger,
) *Service {
	return &Service{
		businessRepo: businessRepo,
		serviceRepo:  serviceRepo,
		staffRepo:    staffRepo,
		reviewRepo:   reviewRepo,
		cache:        cache,
		logger:       logger,
	}
}

// Get публичные данные бизнеса
func (s *Service) Get(ctx context.Context, code string) (*models.BusinessResponse, error) {
	business, err := s.getBusiness(ctx, "Get", code)
	if err != nil {
		return nil, err
	}
	resp := models.FromDomainBusiness(business)
	return &resp, nil
}

// GetStorefront витрина бизнеса; читается из кэша, при промахе собирается из БД
func (s *Service) GetStorefront(ctx context.Context, code string) (*models.StorefrontResponse, error) {
	key := cache.StorefrontKey(code)

	var cached models.StorefrontResponse
	hit, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		s.logger.Warn("GetStorefront: cache read failed for %s: %v", code, err)
	}
	if hit {
		return &cached, nil
	}

	business, err := s.getBusiness(ctx, "GetStorefront", code)
	if err != nil {
		return nil, err
	}

	services, err := s.serviceRepo.List(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: GetStorefront - list services: %v", ErrInternal, err)
	}
	staff, err := s.staffRepo.List(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: GetStorefront - list staff: %v", ErrInternal, err)
	}
	reviews, err := s.reviewRepo.List(ctx, code, business.ReviewOrder, true)
	if err != nil {
		return nil, fmt.Errorf("%w: GetStorefront - list reviews: %v", ErrInternal, err)
	}

	resp := &models.StorefrontResponse{
		Negocio:   models.FromDomainBusiness(business),
		Servicios: catalogModels.FromDomainServices(services),
		Personal:  catalogModels.FromDomainStaffList(staff),
		Resenas:   reviewModels.FromDomainReviews(reviews),
	}

	if err := s.cache.Set(ctx, key, resp); err != nil {
		s.logger.Warn("GetStorefront: cache write failed for %s: %v", code, err)
	}
	return resp, nil
}

// UpdateSchedule сохраняет рабочие дни и часы
func (s *Service) UpdateSchedule(ctx context.Context, actor domain.Principal, code string, req *models.UpdateScheduleRequest) (*models.BusinessResponse, error) {
	s.logger.Info("UpdateSchedule: business=%s by %s", code, actor.Email)

	if !actor.CanManage(code) {
		return nil, ErrAccessDenied
	}

	business, err := s.getBusiness(ctx, "UpdateSchedule", code)
	if err != nil {
		return nil, err
	}

	if err := applySchedule(business, req); err != nil {
		s.logger.Warn("UpdateSchedule: validation failed for business=%s: %v", code, err)
		return nil, err
	}

	if err := s.businessRepo.UpdateSchedule(ctx, business); err != nil {
		return nil, s.mapUpdateError("UpdateSchedule", err)
	}
	s.invalidate(ctx, code)

	resp := models.FromDomainBusiness(business)
	return &resp, nil
}

// UpdateCategories сохраняет категории услуг (без пустых и повторов, порядок сохраняется)
func (s *Service) UpdateCategories(ctx context.Context, actor domain.Principal, code string, req *models.UpdateCategoriesRequest) ([]string, error) {
	s.logger.Info("UpdateCategories: business=%s by %s", code, actor.Email)

	if !actor.CanManage(code) {
		return nil, ErrAccessDenied
	}

	seen := make(map[string]struct{}, len(req.Categorias))
	categories := make([]string, 0, len(req.Categorias))
	for _, c := range req.Categorias {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		categories = append(categories, c)
	}

	if err := s.businessRepo.UpdateCategories(ctx, code, categories); err != nil {
		return nil, s.mapUpdateError("UpdateCategories", err)
	}
	s.invalidate(ctx, code)
	return categories, nil
}

// UpdateReviewOrder сохраняет порядок отзывов на витрине
func (s *Service) UpdateReviewOrder(ctx context.Context, actor domain.Principal, code string, req *models.UpdateReviewOrderRequest) error {
	s.logger.Info("UpdateReviewOrder: business=%s, order=%s by %s", code, req.OrdenResenas, actor.Email)

	if !actor.CanManage(code) {
		return ErrAccessDenied
	}

	order := domain.ReviewOrder(req.OrdenResenas)
	if !order.IsValid() {
		return fmt.Errorf("%w: unknown review order %q", ErrInvalidInput, req.OrdenResenas)
	}

	if err := s.businessRepo.UpdateReviewOrder(ctx, code, order); err != nil {
		return s.mapUpdateError("UpdateReviewOrder", err)
	}
	s.invalidate(ctx, code)
	return nil
}

func applySchedule(b *domain.Business, req *models.UpdateScheduleRequest) error {
	opening, err := types.NewTimeStringFromString(req.Horarios.Inicio)
	if err != nil {
		return fmt.Errorf("%w: inicio: %v", ErrInvalidSchedule, err)
	}
	closing, err := types.NewTimeStringFromString(req.Horarios.Fin)
	if err != nil {
		return fmt.Errorf("%w: fin: %v", ErrInvalidSchedule, err)
	}
	if !opening.IsBefore(closing) {
		return fmt.Errorf("%w: opening %s must be before closing %s", ErrInvalidSchedule, opening, closing)
	}

	saturday := closing
	if req.Horarios.FinSabado != "" {
		saturday, err = types.NewTimeStringFromString(req.Horarios.FinSabado)
		if err != nil {
			return fmt.Errorf("%w: finSabado: %v", ErrInvalidSchedule, err)
		}
		if !opening.IsBefore(saturday) {
			return fmt.Errorf("%w: saturday closing %s must be after opening %s", ErrInvalidSchedule, saturday, opening)
		}
	}

	interval := req.Horarios.Intervalo
	if interval == 0 {
		interval = b.SlotIntervalMinutes
	}
	if interval < domain.MinSlotIntervalMinutes || interval > domain.MaxSlotIntervalMinutes {
		return fmt.Errorf("%w: interval must be between %d and %d minutes", ErrInvalidSchedule, domain.MinSlotIntervalMinutes, domain.MaxSlotIntervalMinutes)
	}

	if len(req.DiasDisponibles) == 0 {
		return fmt.Errorf("%w: at least one open day is required", ErrInvalidSchedule)
	}
	days := make([]int, 0, len(req.DiasDisponibles))
	seen := make(map[int]struct{}, 7)
	for _, d := range req.DiasDisponibles {
		if d < 0 || d > 6 {
			return fmt.Errorf("%w: weekday %d out of range 0..6", ErrInvalidSchedule, d)
		}
		if _, dup := seen[d]; dup {
			continue
		}
		seen[d] = struct{}{}
		days = append(days, d)
	}
	sort.Ints(days)

	b.OpeningTime = opening.String()
	b.ClosingTime = closing.String()
	b.SaturdayClosingTime = saturday.String()
	b.SlotIntervalMinutes = interval
	b.OpenDays = days
	return nil
}

func (s *Service) getBusiness(ctx context.Context, op, code string) (*domain.Business, error) {
	business, err := s.businessRepo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			s.logger.Warn("%s: business %s not found", op, code)
			return nil, ErrBusinessNotFound
		}
		s.logger.Error("%s: failed to get business %s: %v", op, code, err)
		return nil, fmt.Errorf("%w: %s - get business: %v", ErrInternal, op, err)
	}
	business.ApplyDefaults()
	return business, nil
}

func (s *Service) mapUpdateError(op string, err error) error {
	if errors.Is(err, businessRepo.ErrBusinessNotFound) {
		return ErrBusinessNotFound
	}
	s.logger.Error("%s: repository error: %v", op, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

func (s *Service) invalidate(ctx context.Context, code string) {
	if err := s.cache.Delete(ctx, cache.StorefrontKey(code)); err != nil {
		s.logger.Warn("business: failed to invalidate storefront cache for %s: %v", code, err)
	}
}
