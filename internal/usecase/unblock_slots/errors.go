package unblock_slots

import "errors"

var (
	// ErrForbidden возвращается, когда пользователь не управляет бизнесом
	ErrForbidden = errors.New("unblock_slots: forbidden")

	// ErrNoStaff возвращается в режиме General, когда у бизнеса нет сотрудников
	ErrNoStaff = errors.New("unblock_slots: business has no staff")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("unblock_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("unblock_slots: internal error")
)
