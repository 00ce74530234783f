package modify_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("modify_booking: booking not found")

	// ErrStaffNotFound возвращается, когда новый сотрудник не найден
	ErrStaffNotFound = errors.New("modify_booking: staff not found")

	// ErrAccessDenied возвращается, когда бронирование чужое
	ErrAccessDenied = errors.New("modify_booking: access denied")

	// ErrCannotModify возвращается для отмененных бронирований
	ErrCannotModify = errors.New("modify_booking: booking cannot be modified")

	// ErrInvalidDate возвращается при дате в прошлом
	ErrInvalidDate = errors.New("modify_booking: invalid booking date")

	// ErrBusinessClosed возвращается, когда бизнес не работает в новую дату
	ErrBusinessClosed = errors.New("modify_booking: business is closed on this date")

	// ErrSlotNotAvailable возвращается, когда новое время занято или заблокировано
	ErrSlotNotAvailable = errors.New("modify_booking: slot is not available")

	// ErrInvalidTimeSlot возвращается, когда новое время вне сетки
	ErrInvalidTimeSlot = errors.New("modify_booking: invalid time slot")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("modify_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("modify_booking: internal error")
)
