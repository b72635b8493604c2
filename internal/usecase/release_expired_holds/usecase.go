package release_expired_holds

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	reservationRepo "github.com/m04kA/SMC-BookingEngine/internal/infra/storage/reservation"
)

// UseCase use case освобождения слотов с истекшими удержаниями
type UseCase struct {
	reservationRepo ReservationRepository
	holdStore       HoldStore
	metrics         MetricsRecorder
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	holdStore HoldStore,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		holdStore:       holdStore,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute переводит pending резервы истекших удержаний в abandoned.
// Ошибка по одному удержанию не прерывает проход.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ReleaseExpiredHolds: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Получаем истекшие удержания
	expired, err := uc.holdStore.ListExpired(ctx, now, req.Limit)
	if err != nil {
		uc.logger.Error("ReleaseExpiredHolds: failed to list expired holds: %v", err)
		return nil, fmt.Errorf("%w: failed to list expired holds: %v", ErrInternal, err)
	}

	resp := &Response{}
	if len(expired) == 0 {
		return resp, nil
	}

	// 3. Освобождаем каждый резерв
	for _, hold := range expired {
		err := uc.reservationRepo.UpdateStatusIf(ctx, hold.ReservationID, domain.ReservationPending, domain.ReservationAbandoned)
		switch {
		case err == nil:
			resp.Released++
		case errors.Is(err, reservationRepo.ErrStatusMismatch), errors.Is(err, reservationRepo.ErrReservationNotFound):
			resp.Skipped++
		default:
			uc.logger.Error("ReleaseExpiredHolds: failed to abandon reservation id=%d (hold %s): %v",
				hold.ReservationID, hold.ID, err)
			resp.Failed++
			continue
		}

		if err := uc.holdStore.Delete(ctx, hold.ID); err != nil {
			uc.logger.Warn("ReleaseExpiredHolds: failed to delete hold %s: %v", hold.ID, err)
		}
	}

	uc.metrics.RecordHoldsReleased(resp.Released)

	uc.logger.Info("ReleaseExpiredHolds: released=%d, skipped=%d, failed=%d",
		resp.Released, resp.Skipped, resp.Failed)

	return resp, nil
}
