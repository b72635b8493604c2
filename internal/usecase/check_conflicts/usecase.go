package check_conflicts

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
)

// UseCase use case проверки пересечения интервала с существующими резервами
type UseCase struct {
	reservationRepo ReservationRepository
	detector        ConflictDetector
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(reservationRepo ReservationRepository, detector ConflictDetector, logger Logger) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		detector:        detector,
		logger:          logger,
	}
}

// Execute выполняет проверку
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckConflicts: start=%s, duration=%dm", req.StartAt.Format(time.RFC3339), req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckConflicts: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем активные резервы, пересекающие интервал
	end := req.StartAt.Add(time.Duration(req.DurationMinutes) * time.Minute)
	reservations, err := uc.reservationRepo.GetByWindow(ctx, domain.ReservationWindowFilter{
		From: req.StartAt,
		To:   end,
	})
	if err != nil {
		uc.logger.Error("CheckConflicts: failed to get reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	// 3. Проверяем пересечения тем же детектором, что и при резервировании
	result, err := uc.detector.Check(req.StartAt, req.DurationMinutes, reservations, req.ExcludeReservationID)
	if err != nil {
		uc.logger.Warn("CheckConflicts: check failed: %v", err)
		return nil, err
	}

	if result.HasConflict {
		uc.logger.Info("CheckConflicts: %d conflicting reservations", len(result.Conflicting))
	}

	return &Response{
		HasConflict: result.HasConflict,
		Conflicting: result.Conflicting,
	}, nil
}
