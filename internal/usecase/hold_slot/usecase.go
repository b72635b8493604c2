package hold_slot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	treatmentRepo "github.com/m04kA/SMC-BookingEngine/internal/infra/storage/treatment"
)

// UUIDGenerator генерирует id удержаний через google/uuid
type UUIDGenerator struct{}

// NewID возвращает новый UUIDv4
func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}

// UseCase use case удержания слота до подтверждения
type UseCase struct {
	treatmentRepo   TreatmentRepository
	reservationRepo ReservationRepository
	holdStore       HoldStore
	workingHours    WorkingHoursSource
	resolver        DayResolver
	generator       SlotGenerator
	clock           Clock
	txManager       TransactionManager
	holdTTL         time.Duration
	ids             IDGenerator
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	treatmentRepo TreatmentRepository,
	reservationRepo ReservationRepository,
	holdStore HoldStore,
	workingHours WorkingHoursSource,
	resolver DayResolver,
	generator SlotGenerator,
	clock Clock,
	txManager TransactionManager,
	holdTTL time.Duration,
	logger Logger,
) *UseCase {
	return &UseCase{
		treatmentRepo:   treatmentRepo,
		reservationRepo: reservationRepo,
		holdStore:       holdStore,
		workingHours:    workingHours,
		resolver:        resolver,
		generator:       generator,
		clock:           clock,
		txManager:       txManager,
		holdTTL:         holdTTL,
		ids:             UUIDGenerator{},
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет удержание слота.
// Использует сериализуемую транзакцию: два запроса на одно время не могут оба
// увидеть слот свободным.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("HoldSlot: user=%d, treatment=%d, date=%s, time=%s",
		req.UserID, req.TreatmentID, req.Date, req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("HoldSlot: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	if req.Date.Before(uc.clock.CalendarDay(now)) {
		uc.logger.Warn("HoldSlot: date %s is in the past", req.Date)
		return nil, ErrDateInPast
	}

	// 3. Получаем процедуру и её длительность
	treatment, err := uc.treatmentRepo.GetByID(ctx, req.TreatmentID)
	if err != nil {
		if errors.Is(err, treatmentRepo.ErrTreatmentNotFound) {
			uc.logger.Warn("HoldSlot: treatment id=%d not found", req.TreatmentID)
			return nil, ErrTreatmentNotFound
		}
		uc.logger.Error("HoldSlot: failed to get treatment id=%d: %v", req.TreatmentID, err)
		return nil, fmt.Errorf("%w: failed to get treatment: %v", ErrInternal, err)
	}

	if !treatment.IsActive {
		uc.logger.Warn("HoldSlot: treatment id=%d is not active", req.TreatmentID)
		return nil, ErrTreatmentInactive
	}

	sel, err := treatment.Select(req.DurationID)
	if err != nil {
		uc.logger.Warn("HoldSlot: failed to select duration for treatment id=%d: %v", req.TreatmentID, err)
		return nil, err
	}
	if sel.Minutes <= 0 {
		uc.logger.Warn("HoldSlot: treatment id=%d has no duration", req.TreatmentID)
		return nil, ErrDurationUnknown
	}

	// 4. Правило рабочего дня
	cfg, err := uc.workingHours.Get(ctx)
	if err != nil {
		uc.logger.Error("HoldSlot: failed to get working hours: %v", err)
		return nil, fmt.Errorf("%w: failed to get working hours: %v", ErrInternal, err)
	}
	rule := uc.resolver.ResolveDay(req.Date, cfg)

	var result *Response

	// 5. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Получаем активные резервы дня с блокировкой (FOR UPDATE)
		dayStart, dayEnd := uc.clock.DayBounds(req.Date)
		reservations, err := uc.reservationRepo.GetByWindow(txCtx, domain.ReservationWindowFilter{
			From: dayStart,
			To:   dayEnd,
		})
		if err != nil {
			uc.logger.Error("HoldSlot: failed to get reservations: %v", err)
			return fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
		}

		// 5.2. Пересчитываем слоты и проверяем, что выбранное время среди них
		available, err := uc.generator.Generate(req.Date, sel.Minutes, rule, reservations, now)
		if err != nil {
			uc.logger.Error("HoldSlot: failed to generate slots: %v", err)
			return fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
		}
		if !available.Contains(req.StartTime) {
			uc.logger.Warn("HoldSlot: slot %s %s is not available for treatment=%d",
				req.Date, req.StartTime, req.TreatmentID)
			return ErrSlotNotAvailable
		}

		// 5.3. Создаем резерв в статусе pending
		created, err := uc.reservationRepo.Create(txCtx, &domain.Reservation{
			UserID:          req.UserID,
			TreatmentID:     req.TreatmentID,
			DurationID:      req.DurationID,
			StartAt:         uc.clock.At(req.Date, req.StartTime),
			DurationMinutes: sel.Minutes,
			Status:          domain.ReservationPending,
		})
		if err != nil {
			uc.logger.Error("HoldSlot: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		// 5.4. Сохраняем удержание; при ошибке Redis транзакция откатывается
		hold := &domain.Hold{
			ID:            uc.ids.NewID(),
			ReservationID: created.ID,
			UserID:        req.UserID,
			TreatmentID:   req.TreatmentID,
			StartAt:       created.StartAt,
			ExpiresAt:     now.Add(uc.holdTTL),
		}
		if err := uc.holdStore.Save(txCtx, hold, now); err != nil {
			uc.logger.Error("HoldSlot: failed to save hold for reservation id=%d: %v", created.ID, err)
			return fmt.Errorf("%w: failed to save hold: %v", ErrInternal, err)
		}

		result = &Response{
			HoldID:          hold.ID,
			ReservationID:   created.ID,
			TreatmentID:     req.TreatmentID,
			StartAt:         created.StartAt,
			DurationMinutes: created.DurationMinutes,
			ExpiresAt:       hold.ExpiresAt,
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("HoldSlot: hold %s created for reservation id=%d, expires at %s",
		result.HoldID, result.ReservationID, result.ExpiresAt.Format(time.RFC3339))

	return result, nil
}
