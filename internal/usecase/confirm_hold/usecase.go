package confirm_hold

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	"github.com/m04kA/SMC-BookingEngine/internal/infra/cache/holds"
	reservationRepo "github.com/m04kA/SMC-BookingEngine/internal/infra/storage/reservation"
)

// UseCase use case подтверждения удержания
type UseCase struct {
	reservationRepo ReservationRepository
	holdStore       HoldStore
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	holdStore HoldStore,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		holdStore:       holdStore,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute переводит резерв удержания из pending в confirmed
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ConfirmHold: user=%d, hold=%s", req.UserID, req.HoldID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ConfirmHold: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Получаем удержание
	hold, err := uc.holdStore.Get(ctx, req.HoldID, now)
	if err != nil {
		if errors.Is(err, holds.ErrHoldNotFound) {
			uc.logger.Warn("ConfirmHold: hold %s not found or expired", req.HoldID)
			return nil, ErrHoldNotFound
		}
		uc.logger.Error("ConfirmHold: failed to get hold %s: %v", req.HoldID, err)
		return nil, fmt.Errorf("%w: failed to get hold: %v", ErrInternal, err)
	}

	// 3. Чужое удержание не раскрываем
	if hold.UserID != req.UserID {
		uc.logger.Warn("ConfirmHold: user=%d is not the owner of hold %s", req.UserID, req.HoldID)
		return nil, ErrHoldNotFound
	}

	var result *domain.Reservation

	// 4. Подтверждаем резерв в транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		res, err := uc.reservationRepo.GetByID(txCtx, hold.ReservationID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				uc.logger.Warn("ConfirmHold: reservation id=%d not found", hold.ReservationID)
				return ErrReservationNotFound
			}
			uc.logger.Error("ConfirmHold: failed to get reservation id=%d: %v", hold.ReservationID, err)
			return fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
		}

		if res.Status != domain.ReservationPending {
			uc.logger.Warn("ConfirmHold: reservation id=%d has status %s", res.ID, res.Status)
			return ErrReservationNotPending
		}

		err = uc.reservationRepo.UpdateStatusIf(txCtx, res.ID, domain.ReservationPending, domain.ReservationConfirmed)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrStatusMismatch) {
				uc.logger.Warn("ConfirmHold: reservation id=%d changed status concurrently", res.ID)
				return ErrReservationNotPending
			}
			uc.logger.Error("ConfirmHold: failed to confirm reservation id=%d: %v", res.ID, err)
			return fmt.Errorf("%w: failed to confirm reservation: %v", ErrInternal, err)
		}

		res.Status = domain.ReservationConfirmed
		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 5. Удаляем удержание. Если не получилось, сборщик пропустит его: резерв уже не pending
	if err := uc.holdStore.Delete(ctx, req.HoldID); err != nil {
		uc.logger.Warn("ConfirmHold: failed to delete hold %s: %v", req.HoldID, err)
	}

	uc.logger.Info("ConfirmHold: reservation id=%d confirmed", result.ID)

	return &Response{
		ReservationID:   result.ID,
		TreatmentID:     result.TreatmentID,
		StartAt:         result.StartAt,
		DurationMinutes: result.DurationMinutes,
		Status:          result.Status,
	}, nil
}
