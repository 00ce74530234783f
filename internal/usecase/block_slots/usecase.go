package block_slots

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/maxturnos/turnos-service/internal/availability"
	"github.com/maxturnos/turnos-service/internal/domain"
)

const maxParallelRequests = 8

// UseCase блокировка времени владельцем
type UseCase struct {
	staffRepo    StaffRepository
	calendarRepo CalendarRepository
	metrics      Metrics
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(staffRepo StaffRepository, calendarRepo CalendarRepository, metrics Metrics, logger Logger) *UseCase {
	return &UseCase{
		staffRepo:    staffRepo,
		calendarRepo: calendarRepo,
		metrics:      metrics,
		logger:       logger,
	}
}

// Execute блокирует время на каждой дате. Блокировка хранится по сотруднику,
// поэтому в режиме General запрос расходится на каждого сотрудника.
// Ошибки отдельных пар не откатывают успешные.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BlockSlots: business=%s, time=%s, dates=%d, general=%t",
		req.BusinessCode, req.StartTime, len(req.Dates), req.StaffID == nil)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("BlockSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Сотрудники
	staffIDs, err := uc.resolveStaff(ctx, req)
	if err != nil {
		return nil, err
	}

	reason := domain.DefaultBlockReason
	if req.StaffID == nil {
		reason = domain.DefaultGeneralBlockReason
	}
	if req.Reason != nil && strings.TrimSpace(*req.Reason) != "" {
		reason = strings.TrimSpace(*req.Reason)
	}

	// 3. Fan-out, каждая горутина пишет только свой элемент results
	results := make([]Result, 0, len(staffIDs)*len(req.Dates))
	for _, date := range req.Dates {
		for _, id := range staffIDs {
			results = append(results, Result{Date: availability.StartOfDay(date), StaffID: id})
		}
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelRequests)
	for i := range results {
		r := &results[i]
		g.Go(func() error {
			created, err := uc.calendarRepo.BlockSlot(gCtx, &domain.BlockedSlot{
				BusinessCode: req.BusinessCode,
				Day:          r.Date,
				StartTime:    req.StartTime,
				StaffID:      r.StaffID,
				Reason:       &reason,
			})
			if err != nil {
				uc.logger.Warn("BlockSlots: staff=%d, date=%s: %v", r.StaffID, availability.FormatLocalDate(r.Date), err)
				r.Error = err.Error()
				return nil
			}
			r.Created = created
			return nil
		})
	}
	_ = g.Wait()

	resp := &Response{Results: results}
	created := 0
	for _, r := range results {
		if r.Error != "" {
			resp.Failed++
			continue
		}
		resp.Succeeded++
		if r.Created {
			created++
		}
	}
	uc.metrics.IncSlotsBlocked(req.BusinessCode, created)

	uc.logger.Info("BlockSlots: business=%s, time=%s, succeeded=%d, failed=%d",
		req.BusinessCode, req.StartTime, resp.Succeeded, resp.Failed)
	return resp, nil
}

func (uc *UseCase) resolveStaff(ctx context.Context, req *Request) ([]int64, error) {
	if req.StaffID != nil {
		return []int64{*req.StaffID}, nil
	}
	staff, err := uc.staffRepo.List(ctx, req.BusinessCode)
	if err != nil {
		uc.logger.Error("BlockSlots: failed to list staff: %v", err)
		return nil, fmt.Errorf("%w: failed to list staff: %v", ErrInternal, err)
	}
	if len(staff) == 0 {
		return nil, ErrNoStaff
	}
	ids := make([]int64, 0, len(staff))
	for _, s := range staff {
		ids = append(ids, s.ID)
	}
	return ids, nil
}
