package workinghours

import "errors"

var (
	// ErrReadFile возвращается, когда файл с расписанием не читается
	ErrReadFile = errors.New("workinghours.source: failed to read file")

	// ErrDecode возвращается при некорректном YAML
	ErrDecode = errors.New("workinghours.source: failed to decode document")

	// ErrUnknownKind возвращается для правила с неизвестным kind
	ErrUnknownKind = errors.New("workinghours.source: unknown rule kind")

	// ErrInvalidRule возвращается для правила с некорректными полями
	ErrInvalidRule = errors.New("workinghours.source: invalid rule")
)
