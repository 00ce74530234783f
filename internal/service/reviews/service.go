package reviews

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/maxturnos/turnos-service/internal/domain"
	"github.com/maxturnos/turnos-service/internal/infra/cache"
	businessRepo "github.com/maxturnos/turnos-service/internal/infra/storage/business"
	reviewRepo "github.com/maxturnos/turnos-service/internal/infra/storage/review"
	"github.com/maxturnos/turnos-service/internal/service/reviews/models"
)

// Service отзывы клиентов и их модерация
type Service struct {
	reviewRepo   ReviewRepository
	businessRepo BusinessRepository
	cache        Cache
	logger       Logger
}

// NewService создает новый экземпляр сервиса отзывов
func NewService(reviewRepo ReviewRepository, businessRepo BusinessRepository, cache Cache, logger Logger) *Service {
	return &Service{
		reviewRepo:   reviewRepo,
		businessRepo: businessRepo,
		cache:        cache,
		logger:       logger,
	}
}

// ListApproved одобренные отзывы в порядке, выбранном владельцем
// Публичный метод - доступен всем
func (s *Service) ListApproved(ctx context.Context, code string) ([]models.ReviewResponse, error) {
	business, err := s.getBusiness(ctx, "ListApproved", code)
	if err != nil {
		return nil, err
	}
	list, err := s.reviewRepo.List(ctx, code, business.ReviewOrder, true)
	if err != nil {
		s.logger.Error("ListApproved: repository error for business=%s: %v", code, err)
		return nil, fmt.Errorf("%w: ListApproved - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainReviews(list), nil
}

// ListAll все отзывы, включая ожидающие и отклоненные (панель бизнеса)
func (s *Service) ListAll(ctx context.Context, actor domain.Principal, code string) ([]models.ReviewResponse, error) {
	if !actor.CanManage(code) {
		s.logger.Warn("ListAll: %s cannot manage business=%s", actor.Email, code)
		return nil, ErrAccessDenied
	}
	list, err := s.reviewRepo.List(ctx, code, domain.ReviewOrderNewestFirst, false)
	if err != nil {
		s.logger.Error("ListAll: repository error for business=%s: %v", code, err)
		return nil, fmt.Errorf("%w: ListAll - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainReviews(list), nil
}

// Create сохраняет отзыв клиента; виден на витрине только после одобрения
func (s *Service) Create(ctx context.Context, actor domain.Principal, code string, req *models.CreateReviewRequest) (*models.ReviewResponse, error) {
	s.logger.Info("Create: review for business=%s by %s", code, actor.Email)

	// 1. Валидация
	if actor.Email == "" {
		return nil, ErrLoginRequired
	}
	if req.Rating < domain.MinRating || req.Rating > domain.MaxRating {
		return nil, fmt.Errorf("%w: rating must be between %d and %d", ErrInvalidInput, domain.MinRating, domain.MaxRating)
	}
	text := strings.TrimSpace(req.Texto)
	if utf8.RuneCountInString(text) > domain.MaxReviewTextLength {
		return nil, fmt.Errorf("%w: texto exceeds %d characters", ErrInvalidInput, domain.MaxReviewTextLength)
	}

	// 2. Бизнес
	if _, err := s.getBusiness(ctx, "Create", code); err != nil {
		return nil, err
	}

	// 3. Сохраняем
	created, err := s.reviewRepo.Create(ctx, &domain.Review{
		BusinessCode: code,
		AuthorEmail:  actor.Email,
		AuthorName:   actor.Name,
		Rating:       req.Rating,
		Text:         text,
	})
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: review id=%d pending moderation", created.ID)
	resp := models.FromDomainReview(created)
	return &resp, nil
}

// Moderate одобряет, отклоняет или возвращает отзыв в ожидание (approved == nil)
func (s *Service) Moderate(ctx context.Context, actor domain.Principal, code string, id int64, approved *bool) error {
	s.logger.Info("Moderate: review id=%d, business=%s by %s", id, code, actor.Email)

	if !actor.CanManage(code) {
		return ErrAccessDenied
	}
	if err := s.reviewRepo.Moderate(ctx, code, id, approved); err != nil {
		if errors.Is(err, reviewRepo.ErrReviewNotFound) {
			return ErrReviewNotFound
		}
		s.logger.Error("Moderate: repository error: %v", err)
		return fmt.Errorf("%w: Moderate - repository error: %v", ErrInternal, err)
	}
	s.invalidate(ctx, code)
	return nil
}

// Delete удаляет отзыв
func (s *Service) Delete(ctx context.Context, actor domain.Principal, code string, id int64) error {
	s.logger.Info("Delete: review id=%d, business=%s by %s", id, code, actor.Email)

	if !actor.CanManage(code) {
		return ErrAccessDenied
	}
	if err := s.reviewRepo.Delete(ctx, code, id); err != nil {
		if errors.Is(err, reviewRepo.ErrReviewNotFound) {
			return ErrReviewNotFound
		}
		s.logger.Error("Delete: repository error: %v", err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}
	s.invalidate(ctx, code)
	return nil
}

// PurgeRejected удаляет отклоненные отзывы, промодерированные раньше чем
// RejectedReviewRetention часов назад
func (s *Service) PurgeRejected(ctx context.Context, now time.Time) (int64, error) {
	before := now.Add(-domain.RejectedReviewRetention * time.Hour)
	n, err := s.reviewRepo.PurgeRejected(ctx, before)
	if err != nil {
		return 0, fmt.Errorf("%w: PurgeRejected - repository error: %v", ErrInternal, err)
	}
	if n > 0 {
		s.logger.Info("PurgeRejected: removed %d rejected reviews moderated before %s", n, before.Format(time.RFC3339))
	}
	return n, nil
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

func (s *Service) invalidate(ctx context.Context, code string) {
	if err := s.cache.Delete(ctx, cache.StorefrontKey(code)); err != nil {
		s.logger.Warn("reviews: failed to invalidate storefront cache for %s: %v", code, err)
	}
}
