package schedule

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	blockSlots "github.com/maxturnos/turnos-service/internal/api/handlers/block_slots"
	unblockSlots "github.com/maxturnos/turnos-service/internal/api/handlers/unblock_slots"
	"github.com/maxturnos/turnos-service/internal/availability"
	"github.com/maxturnos/turnos-service/internal/integrations/turnosapi"
)

// SlotsView время для выбранных дат и сотрудника
type SlotsView struct {
	General   bool     // пересечение по всем сотрудникам
	Available []string // свободно во всех запрошенных парах (сотрудник, дата)
	Blocked   []string // заблокировано хотя бы в одной дате; пусто в режиме General
	Requests  int
	Failed    int
}

type slotsKey struct {
	staffID int64
	date    time.Time
}

// Slots свободное время выбранных дат. В режиме General время должно быть
// свободно у каждого сотрудника в каждую дату.
func (p *Page) Slots(ctx context.Context) (*SlotsView, error) {
	p.mu.Lock()
	if !p.loaded {
		p.mu.Unlock()
		return nil, ErrNotLoaded
	}
	dates := p.selectedLocked()
	if len(dates) == 0 {
		p.mu.Unlock()
		return nil, ErrNoSelection
	}
	staffIDs := p.targetStaffLocked()
	general := p.staffID == nil
	minOpening := p.minOpening
	engine := p.engineLocked()
	generation := p.generation
	p.mu.Unlock()

	pairs := make([]slotsKey, 0, len(staffIDs)*len(dates))
	for _, id := range staffIDs {
		for _, d := range dates {
			pairs = append(pairs, slotsKey{staffID: id, date: d})
		}
	}

	var (
		mu        sync.Mutex
		available [][]string
		blocked   [][]string
		failed    int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fanOutLimit)
	for _, pair := range pairs {
		g.Go(func() error {
			resp, err := p.api.AvailableSlots(gctx, turnosapi.SlotsQuery{
				BusinessCode: p.code,
				Date:         pair.date,
				StaffID:      pair.staffID,
			})

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				failed++
				p.logger.Warn("schedule %s: slots staff=%d date=%s: %v",
					p.code, pair.staffID, availability.FormatLocalDate(pair.date), err)
				return nil
			}
			available = append(available, resp.HorariosDisponibles)
			blocked = append(blocked, resp.HorariosBloqueados)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(pairs) > 0 && failed == len(pairs) {
		return nil, ErrAllRequestsFailed
	}

	ref, _ := availability.ReferenceDate(dates)
	view := &SlotsView{
		General:   general,
		Available: availability.FilterWindow(availability.IntersectAcross(available), minOpening, engine.EffectiveClosingTime(ref)),
		Blocked:   []string{},
		Requests:  len(pairs),
		Failed:    failed,
	}
	if !general {
		view.Blocked = availability.UnionSorted(blocked)
	}

	p.mu.Lock()
	stale := p.generation != generation
	p.mu.Unlock()
	if stale {
		return nil, ErrStaleSelection
	}
	return view, nil
}

// SlotActionResult итог блокировки или разблокировки
type SlotActionResult struct {
	Succeeded int
	Failed    int
}

// BlockSlot блокирует время во всех выбранных датах. В режиме General запрос
// уходит отдельно для каждого сотрудника.
func (p *Page) BlockSlot(ctx context.Context, hhmm, reason string) (*SlotActionResult, error) {
	keys, staffIDs, general, err := p.slotActionInput(hhmm)
	if err != nil {
		return nil, err
	}
	if reason == "" {
		reason = defaultBlockReason
		if general {
			reason += " (General)"
		}
	}

	return p.fanOutStaff(ctx, "block", staffIDs, func(ctx context.Context, staffID int64) (int, int, error) {
		resp, err := p.api.BlockSlots(ctx, blockSlots.SlotsRequest{
			Establecimiento: p.code,
			Fechas:          keys,
			Hora:            hhmm,
			ProfesionalID:   &staffID,
			Motivo:          &reason,
		})
		if err != nil {
			return 0, 0, err
		}
		return resp.Exitosos, resp.Fallidos, nil
	})
}

// UnblockSlot снимает блокировку времени во всех выбранных датах
func (p *Page) UnblockSlot(ctx context.Context, hhmm string) (*SlotActionResult, error) {
	keys, staffIDs, _, err := p.slotActionInput(hhmm)
	if err != nil {
		return nil, err
	}

	return p.fanOutStaff(ctx, "unblock", staffIDs, func(ctx context.Context, staffID int64) (int, int, error) {
		resp, err := p.api.UnblockSlots(ctx, unblockSlots.SlotsRequest{
			Establecimiento: p.code,
			Fechas:          keys,
			Hora:            hhmm,
			ProfesionalID:   &staffID,
		})
		if err != nil {
			return 0, 0, err
		}
		return resp.Exitosos, resp.Fallidos, nil
	})
}

func (p *Page) slotActionInput(hhmm string) ([]string, []int64, bool, error) {
	if _, ok := availability.TimeToMinutes(hhmm); !ok {
		return nil, nil, false, ErrInvalidTime
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.loaded {
		return nil, nil, false, ErrNotLoaded
	}
	dates := p.selectedLocked()
	if len(dates) == 0 {
		return nil, nil, false, ErrNoSelection
	}
	keys := make([]string, 0, len(dates))
	for _, d := range dates {
		keys = append(keys, availability.FormatLocalDate(d))
	}
	return keys, p.targetStaffLocked(), p.staffID == nil, nil
}

func (p *Page) fanOutStaff(ctx context.Context, op string, staffIDs []int64,
	fn func(context.Context, int64) (int, int, error)) (*SlotActionResult, error) {
	var (
		mu       sync.Mutex
		result   SlotActionResult
		failures int
	)

	var g errgroup.Group
	g.SetLimit(fanOutLimit)
	for _, id := range staffIDs {
		g.Go(func() error {
			ok, bad, err := fn(ctx, id)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures++
				p.logger.Warn("schedule %s: %s staff=%d: %v", p.code, op, id, err)
				return nil
			}
			result.Succeeded += ok
			result.Failed += bad
			return nil
		})
	}
	_ = g.Wait()

	if len(staffIDs) > 0 && failures == len(staffIDs) {
		return nil, ErrAllRequestsFailed
	}
	p.logger.Info("schedule %s: %s %d ok, %d failed", p.code, op, result.Succeeded, result.Failed+failures)
	return &result, nil
}

// targetStaffLocked выбранный сотрудник или все сотрудники в режиме General
func (p *Page) targetStaffLocked() []int64 {
	if p.staffID != nil {
		return []int64{*p.staffID}
	}
	ids := make([]int64, 0, len(p.staff))
	for _, s := range p.staff {
		ids = append(ids, s.ID)
	}
	return ids
}
