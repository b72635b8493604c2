package instrument

import "errors"

var (
	// ErrSubscriptionNotFound возвращается, когда абонемент не найден
	ErrSubscriptionNotFound = errors.New("instrument.repository: subscription not found")

	// ErrVoucherNotFound возвращается, когда сертификат с таким кодом не найден
	ErrVoucherNotFound = errors.New("instrument.repository: voucher not found")

	// ErrCouponNotFound возвращается, когда купон с таким кодом не найден
	ErrCouponNotFound = errors.New("instrument.repository: coupon not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("instrument.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("instrument.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("instrument.repository: failed to scan row")
)
