package get_common_slots

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/maxturnos/turnos-service/internal/availability"
	"github.com/maxturnos/turnos-service/internal/domain"
	businessRepo "github.com/maxturnos/turnos-service/internal/infra/storage/business"
	getAvailableSlots "github.com/maxturnos/turnos-service/internal/usecase/get_available_slots"
	"github.com/maxturnos/turnos-service/pkg/types"
)

const maxParallelRequests = 8

// UseCase use case для общего свободного времени
type UseCase struct {
	slots        AvailableSlotsUseCase
	businessRepo BusinessRepository
	staffRepo    StaffRepository
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slots AvailableSlotsUseCase,
	businessRepo BusinessRepository,
	staffRepo StaffRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		slots:        slots,
		businessRepo: businessRepo,
		staffRepo:    staffRepo,
		logger:       logger,
	}
}

// Execute запрашивает слоты по каждой паре (сотрудник, дата) параллельно и пересекает их.
// Ошибка отдельной пары логируется и пара пропускается.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetCommonSlots: business=%s, dates=%d, general=%t",
		req.BusinessCode, len(req.Dates), req.StaffID == nil)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetCommonSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем бизнес
	business, err := uc.businessRepo.GetByCode(ctx, req.BusinessCode)
	if err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			uc.logger.Warn("GetCommonSlots: business %s not found", req.BusinessCode)
			return nil, ErrBusinessNotFound
		}
		uc.logger.Error("GetCommonSlots: failed to get business %s: %v", req.BusinessCode, err)
		return nil, fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}

	// 3. Сотрудники: один или все (General)
	staffIDs, err := uc.resolveStaff(ctx, req)
	if err != nil {
		return nil, err
	}

	// 4. Fan-out по всем парам
	type pair struct {
		staffID int64
		index   int
	}
	pairs := make([]pair, 0, len(staffIDs)*len(req.Dates))
	for _, id := range staffIDs {
		for i := range req.Dates {
			pairs = append(pairs, pair{staffID: id, index: i})
		}
	}

	var (
		mu        sync.Mutex
		available = make([][]types.TimeString, 0, len(pairs))
		blocked   = make([][]types.TimeString, 0, len(pairs))
		failed    int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelRequests)
	for _, p := range pairs {
		p := p
		g.Go(func() error {
			date := req.Dates[p.index]
			resp, err := uc.slots.Execute(gctx, &getAvailableSlots.Request{
				BusinessCode: req.BusinessCode,
				Date:         date,
				StaffID:      p.staffID,
				ServiceID:    req.ServiceID,
			})

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				uc.logger.Warn("GetCommonSlots: skipping staff=%d date=%s: %v",
					p.staffID, date.Format(domain.DateFormat), err)
				failed++
				return nil
			}
			available = append(available, resp.Available)
			blocked = append(blocked, resp.Blocked)
			return nil
		})
	}
	_ = g.Wait()

	if len(available) == 0 {
		uc.logger.Error("GetCommonSlots: all %d slot requests failed", len(pairs))
		return nil, ErrAllRequestsFailed
	}

	// 5. Пересечение и окно [minOpening, closing(reference date)]
	minOpening := business.OpeningTime
	if req.MinOpening != nil {
		minOpening = req.MinOpening.String()
	}
	reference, _ := availability.ReferenceDate(req.Dates)
	closing := availability.NewClosingRule(business.ClosingTime, business.SaturdayClosingTime).For(reference.Weekday())

	response := &Response{
		General:   req.StaffID == nil,
		Available: availability.FilterWindow(availability.IntersectAcross(available), minOpening, closing),
		Blocked:   []types.TimeString{},
		Failed:    failed,
	}
	if !response.General {
		response.Blocked = availability.UnionSorted(blocked)
	}

	uc.logger.Info("GetCommonSlots: %d common slots for business=%s (failed=%d)",
		len(response.Available), req.BusinessCode, failed)
	return response, nil
}

func (uc *UseCase) resolveStaff(ctx context.Context, req *Request) ([]int64, error) {
	if req.StaffID != nil {
		return []int64{*req.StaffID}, nil
	}

	staff, err := uc.staffRepo.List(ctx, req.BusinessCode)
	if err != nil {
		uc.logger.Error("GetCommonSlots: failed to list staff: %v", err)
		return nil, fmt.Errorf("%w: failed to list staff: %v", ErrInternal, err)
	}
	if len(staff) == 0 {
		uc.logger.Warn("GetCommonSlots: business %s has no staff", req.BusinessCode)
		return nil, ErrNoStaff
	}

	ids := make([]int64, 0, len(staff))
	for _, s := range staff {
		ids = append(ids, s.ID)
	}
	return ids, nil
}
