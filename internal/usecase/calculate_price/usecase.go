package calculate_price

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	"github.com/m04kA/SMC-BookingEngine/internal/engine/pricing"
	instrumentRepo "github.com/m04kA/SMC-BookingEngine/internal/infra/storage/instrument"
	treatmentRepo "github.com/m04kA/SMC-BookingEngine/internal/infra/storage/treatment"
)

// Значения метки outcome для метрик
const (
	outcomePaid     = "paid"
	outcomeCovered  = "covered"
	outcomeRejected = "rejected"
)

// UseCase use case расчета цены записи.
// Только читает данные - ничего не списывает и не резервирует.
type UseCase struct {
	treatmentRepo  TreatmentRepository
	instrumentRepo InstrumentRepository
	workingHours   WorkingHoursSource
	calculator     PriceCalculator
	metrics        MetricsRecorder
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	treatmentRepo TreatmentRepository,
	instrumentRepo InstrumentRepository,
	workingHours WorkingHoursSource,
	calculator PriceCalculator,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		treatmentRepo:  treatmentRepo,
		instrumentRepo: instrumentRepo,
		workingHours:   workingHours,
		calculator:     calculator,
		metrics:        metrics,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет расчет цены
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CalculatePrice: treatment=%d, bookingAt=%s", req.TreatmentID, req.BookingAt)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CalculatePrice: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Получаем процедуру
	treatment, err := uc.treatmentRepo.GetByID(ctx, req.TreatmentID)
	if err != nil {
		if errors.Is(err, treatmentRepo.ErrTreatmentNotFound) {
			uc.logger.Warn("CalculatePrice: treatment id=%d not found", req.TreatmentID)
			return nil, ErrTreatmentNotFound
		}
		uc.logger.Error("CalculatePrice: failed to get treatment id=%d: %v", req.TreatmentID, err)
		return nil, fmt.Errorf("%w: failed to get treatment: %v", ErrInternal, err)
	}

	// 3. Собираем скидочные инструменты
	instruments, err := uc.loadInstruments(ctx, req)
	if err != nil {
		return nil, err
	}

	// 4. Расписание нужно для надбавки за время
	cfg, err := uc.workingHours.Get(ctx)
	if err != nil {
		uc.logger.Error("CalculatePrice: failed to get working hours: %v", err)
		return nil, fmt.Errorf("%w: failed to get working hours: %v", ErrInternal, err)
	}

	// 5. Считаем
	breakdown, err := uc.calculator.Calculate(pricing.Input{
		Treatment:       treatment,
		DurationID:      req.DurationID,
		BookingAt:       req.BookingAt,
		WorkingHours:    cfg,
		Instruments:     instruments,
		RequesterUserID: req.RequesterUserID,
		Now:             now,
	})
	if err != nil {
		uc.metrics.RecordPriceCalculation(outcomeRejected)
		uc.logger.Warn("CalculatePrice: calculation rejected for treatment id=%d: %v", req.TreatmentID, err)
		return nil, err
	}

	outcome := outcomePaid
	if breakdown.FullyCovered {
		outcome = outcomeCovered
	}
	uc.metrics.RecordPriceCalculation(outcome)

	if breakdown.IsSubsidised() {
		uc.metrics.RecordSubsidised()
		uc.logger.Warn("CalculatePrice: operator subsidises treatment id=%d: final=%s, professional=%s, margin=%s",
			req.TreatmentID, breakdown.FinalAmount, breakdown.ProfessionalPayment, breakdown.OperatorMargin)
	}

	uc.logger.Info("CalculatePrice: treatment=%d final=%s (base=%s, surcharges=%s, coupon=%s, voucher=%s)",
		req.TreatmentID, breakdown.FinalAmount, breakdown.BasePrice, breakdown.TotalSurcharges,
		breakdown.CouponDiscount, breakdown.VoucherApplied)

	return &Response{
		TreatmentID: req.TreatmentID,
		DurationID:  req.DurationID,
		BookingAt:   req.BookingAt,
		Breakdown:   breakdown,
	}, nil
}

// loadInstruments загружает инструменты по идентификаторам из запроса.
// Неизвестный код сертификата передается калькулятору как есть - он вернет NotFound.
// Купон не используется вместе с сертификатом или абонементом, поэтому в этом
// случае он даже не загружается.
func (uc *UseCase) loadInstruments(ctx context.Context, req *Request) (domain.Instruments, error) {
	instruments := domain.Instruments{
		VoucherCode: req.VoucherCode,
		CouponCode:  req.CouponCode,
	}

	if req.SubscriptionID != nil {
		sub, err := uc.instrumentRepo.GetSubscription(ctx, *req.SubscriptionID)
		if err != nil {
			if errors.Is(err, instrumentRepo.ErrSubscriptionNotFound) {
				uc.logger.Warn("CalculatePrice: subscription id=%d not found", *req.SubscriptionID)
				return instruments, ErrSubscriptionNotFound
			}
			uc.logger.Error("CalculatePrice: failed to get subscription id=%d: %v", *req.SubscriptionID, err)
			return instruments, fmt.Errorf("%w: failed to get subscription: %v", ErrInternal, err)
		}
		instruments.Subscription = sub
	}

	if req.VoucherCode != nil {
		voucher, err := uc.instrumentRepo.GetVoucherByCode(ctx, *req.VoucherCode)
		switch {
		case errors.Is(err, instrumentRepo.ErrVoucherNotFound):
			uc.logger.Warn("CalculatePrice: voucher code=%s not found", *req.VoucherCode)
		case err != nil:
			uc.logger.Error("CalculatePrice: failed to get voucher: %v", err)
			return instruments, fmt.Errorf("%w: failed to get voucher: %v", ErrInternal, err)
		default:
			instruments.Voucher = voucher
		}
	}

	if req.CouponCode == nil || req.VoucherCode != nil || req.SubscriptionID != nil {
		return instruments, nil
	}

	coupon, err := uc.instrumentRepo.GetCouponByCode(ctx, *req.CouponCode)
	switch {
	case errors.Is(err, instrumentRepo.ErrCouponNotFound):
		uc.logger.Warn("CalculatePrice: coupon code=%s not found", *req.CouponCode)
		return instruments, nil
	case err != nil:
		uc.logger.Error("CalculatePrice: failed to get coupon: %v", err)
		return instruments, fmt.Errorf("%w: failed to get coupon: %v", ErrInternal, err)
	}
	instruments.Coupon = coupon

	if req.RequesterUserID != nil && coupon.PerUserLimit != nil {
		uses, err := uc.instrumentRepo.CountCouponRedemptions(ctx, coupon.ID, *req.RequesterUserID)
		if err != nil {
			uc.logger.Error("CalculatePrice: failed to count coupon redemptions: %v", err)
			return instruments, fmt.Errorf("%w: failed to count coupon redemptions: %v", ErrInternal, err)
		}
		instruments.CouponUsesByUser = uses
	}

	return instruments, nil
}
