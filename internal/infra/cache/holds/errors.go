package holds

import "errors"

var (
	// ErrHoldNotFound возвращается, когда удержание не найдено или уже истекло
	ErrHoldNotFound = errors.New("holds.store: hold not found")

	// ErrInvalidHold возвращается при попытке сохранить удержание без id или срока
	ErrInvalidHold = errors.New("holds.store: invalid hold")

	// ErrRedis возвращается при ошибках Redis
	ErrRedis = errors.New("holds.store: redis error")

	// ErrDecode возвращается, когда значение в Redis не разбирается
	ErrDecode = errors.New("holds.store: failed to decode hold")
)
