package get_common_slots

import "errors"

var (
	// ErrBusinessNotFound возвращается, когда бизнес не найден
	ErrBusinessNotFound = errors.New("get_common_slots: business not found")

	// ErrNoStaff возвращается, когда у бизнеса нет сотрудников для режима General
	ErrNoStaff = errors.New("get_common_slots: business has no staff")

	// ErrAllRequestsFailed возвращается, когда не удалось получить ни одного набора слотов
	ErrAllRequestsFailed = errors.New("get_common_slots: every slot request failed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_common_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_common_slots: internal error")
)
