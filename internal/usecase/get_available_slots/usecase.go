package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	treatmentRepo "github.com/m04kA/SMC-BookingEngine/internal/infra/storage/treatment"
)

// Значения метки outcome для метрик
const (
	outcomeAvailable = "available"
	outcomeEmpty     = "empty"
)

// UseCase use case для получения доступных слотов
type UseCase struct {
	treatmentRepo   TreatmentRepository
	reservationRepo ReservationRepository
	workingHours    WorkingHoursSource
	resolver        DayResolver
	generator       SlotGenerator
	clock           Clock
	metrics         MetricsRecorder
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	treatmentRepo TreatmentRepository,
	reservationRepo ReservationRepository,
	workingHours WorkingHoursSource,
	resolver DayResolver,
	generator SlotGenerator,
	clock Clock,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		treatmentRepo:   treatmentRepo,
		reservationRepo: reservationRepo,
		workingHours:    workingHours,
		resolver:        resolver,
		generator:       generator,
		clock:           clock,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: treatment=%d, date=%s", req.TreatmentID, req.Date)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	if req.Date.Before(uc.clock.CalendarDay(now)) {
		uc.logger.Warn("GetAvailableSlots: date %s is in the past", req.Date)
		return nil, ErrDateInPast
	}

	// 3. Получаем процедуру и её длительность
	treatment, err := uc.treatmentRepo.GetByID(ctx, req.TreatmentID)
	if err != nil {
		if errors.Is(err, treatmentRepo.ErrTreatmentNotFound) {
			uc.logger.Warn("GetAvailableSlots: treatment id=%d not found", req.TreatmentID)
			return nil, ErrTreatmentNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get treatment id=%d: %v", req.TreatmentID, err)
		return nil, fmt.Errorf("%w: failed to get treatment: %v", ErrInternal, err)
	}

	if !treatment.IsActive {
		uc.logger.Warn("GetAvailableSlots: treatment id=%d is not active", req.TreatmentID)
		return nil, ErrTreatmentInactive
	}

	sel, err := treatment.Select(req.DurationID)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: failed to select duration for treatment id=%d: %v", req.TreatmentID, err)
		return nil, err
	}
	if sel.Minutes <= 0 {
		uc.logger.Warn("GetAvailableSlots: treatment id=%d has no duration", req.TreatmentID)
		return nil, ErrDurationUnknown
	}

	// 4. Определяем правило рабочего дня
	cfg, err := uc.workingHours.Get(ctx)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get working hours: %v", err)
		return nil, fmt.Errorf("%w: failed to get working hours: %v", ErrInternal, err)
	}
	rule := uc.resolver.ResolveDay(req.Date, cfg)

	// 5. Получаем активные резервы на этот день
	dayStart, dayEnd := uc.clock.DayBounds(req.Date)
	reservations, err := uc.reservationRepo.GetByWindow(ctx, domain.ReservationWindowFilter{
		From: dayStart,
		To:   dayEnd,
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	// 6. Генерируем слоты
	result, err := uc.generator.Generate(req.Date, sel.Minutes, rule, reservations, now)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	outcome := outcomeAvailable
	if len(result.Slots) == 0 {
		outcome = outcomeEmpty
	}
	uc.metrics.RecordSlots(outcome, len(result.Slots))

	uc.logger.Info("GetAvailableSlots: generated %d slots for treatment=%d, date=%s, duration=%dm",
		len(result.Slots), req.TreatmentID, req.Date, sel.Minutes)

	resp := &Response{
		Date:            req.Date,
		TreatmentID:     req.TreatmentID,
		DurationMinutes: sel.Minutes,
		Slots:           result.Slots,
		Note:            result.Note,
	}
	if rule != nil {
		origin := rule.Origin
		resp.RuleOrigin = &origin
	}

	return resp, nil
}
