package schedule

import (
	"context"
	"time"

	"github.com/maxturnos/turnos-service/internal/availability"
	businessModels "github.com/maxturnos/turnos-service/internal/service/business/models"
)

// SetMinOpeningTime сохраняет минимальное время начала слотов в настройках бизнеса.
// Вызов ждет паузу debounce; если за это время пришло новое значение, текущий
// вызов возвращает ErrSuperseded. После записи настройки перечитываются, пока
// сервер не вернет новое значение, и только затем пересчитываются слоты.
// Если даты не выбраны, возвращает nil вместо слотов.
func (p *Page) SetMinOpeningTime(ctx context.Context, hhmm string) (*SlotsView, error) {
	minutes, ok := availability.TimeToMinutes(hhmm)
	if !ok {
		return nil, ErrInvalidTime
	}
	hhmm = availability.MinutesToTime(minutes)

	p.mu.Lock()
	if !p.loaded {
		p.mu.Unlock()
		return nil, ErrNotLoaded
	}
	p.openingSeq++
	seq := p.openingSeq
	p.minOpening = hhmm
	p.mu.Unlock()

	if err := sleepCtx(ctx, p.debounce); err != nil {
		return nil, err
	}
	if !p.isLatestOpening(seq) {
		return nil, ErrSuperseded
	}

	current, err := p.api.Business(ctx, p.code)
	if err != nil {
		return nil, err
	}
	horarios := current.Horarios
	horarios.Inicio = hhmm
	if _, err := p.api.UpdateSchedule(ctx, p.code, businessModels.UpdateScheduleRequest{
		Horarios:        horarios,
		DiasDisponibles: current.DiasDisponibles,
	}); err != nil {
		p.logger.Error("schedule %s: save opening time %s: %v", p.code, hhmm, err)
		return nil, err
	}

	confirmed, err := p.confirmOpening(ctx, seq, minutes)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.business = confirmed
	hasSelection := len(p.selected) > 0
	p.mu.Unlock()

	p.logger.Info("schedule %s: opening time set to %s", p.code, hhmm)
	if !hasSelection {
		return nil, nil
	}
	return p.Slots(ctx)
}

// confirmOpening перечитывает бизнес, пока запись не станет видна; время сравнивается в минутах
func (p *Page) confirmOpening(ctx context.Context, seq uint64, minutes int) (*businessModels.BusinessResponse, error) {
	for attempt := 0; attempt < p.confirmRetries; attempt++ {
		if attempt > 0 {
			if err := sleepCtx(ctx, p.confirmEvery); err != nil {
				return nil, err
			}
		}
		if !p.isLatestOpening(seq) {
			return nil, ErrSuperseded
		}

		b, err := p.api.Business(ctx, p.code)
		if err != nil {
			p.logger.Warn("schedule %s: confirm opening time: %v", p.code, err)
			continue
		}
		if got, ok := availability.TimeToMinutes(b.Horarios.Inicio); ok && got == minutes {
			return b, nil
		}
	}
	p.logger.Error("schedule %s: opening time %s not confirmed after %d reads", p.code, availability.MinutesToTime(minutes), p.confirmRetries)
	return nil, ErrNotConfirmed
}

func (p *Page) isLatestOpening(seq uint64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.openingSeq == seq
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
