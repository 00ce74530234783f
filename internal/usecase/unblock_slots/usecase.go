package unblock_slots

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/maxturnos/turnos-service/internal/availability"
)

const maxParallelRequests = 8

// UseCase снятие блокировки времени
type UseCase struct {
	staffRepo    StaffRepository
	calendarRepo CalendarRepository
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(staffRepo StaffRepository, calendarRepo CalendarRepository, logger Logger) *UseCase {
	return &UseCase{
		staffRepo:    staffRepo,
		calendarRepo: calendarRepo,
		logger:       logger,
	}
}

// Execute снимает блокировку на каждой дате; в режиме General у каждого сотрудника
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UnblockSlots: business=%s, time=%s, dates=%d, general=%t",
		req.BusinessCode, req.StartTime, len(req.Dates), req.StaffID == nil)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UnblockSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Сотрудники
	staffIDs := []int64{}
	if req.StaffID != nil {
		staffIDs = append(staffIDs, *req.StaffID)
	} else {
		staff, err := uc.staffRepo.List(ctx, req.BusinessCode)
		if err != nil {
			uc.logger.Error("UnblockSlots: failed to list staff: %v", err)
			return nil, fmt.Errorf("%w: failed to list staff: %v", ErrInternal, err)
		}
		for _, s := range staff {
			staffIDs = append(staffIDs, s.ID)
		}
	}
	if len(staffIDs) == 0 {
		return nil, ErrNoStaff
	}

	// 3. Fan-out
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
			removed, err := uc.calendarRepo.UnblockSlot(gCtx, req.BusinessCode, r.Date, req.StartTime, r.StaffID)
			if err != nil {
				uc.logger.Warn("UnblockSlots: staff=%d, date=%s: %v", r.StaffID, availability.FormatLocalDate(r.Date), err)
				r.Error = err.Error()
				return nil
			}
			r.Removed = removed
			return nil
		})
	}
	_ = g.Wait()

	resp := &Response{Results: results}
	for _, r := range results {
		if r.Error != "" {
			resp.Failed++
		} else {
			resp.Succeeded++
		}
	}

	uc.logger.Info("UnblockSlots: business=%s, time=%s, succeeded=%d, failed=%d",
		req.BusinessCode, req.StartTime, resp.Succeeded, resp.Failed)
	return resp, nil
}
