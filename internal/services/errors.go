package services

import "errors"

// Типовые ошибки бизнес-логики. Слой обработчиков переводит их
// в ответы пользователю; частичных изменений за ними не стоит.
var (
	// ErrValidation — некорректные входные данные, операция отклонена до изменений
	ErrValidation = errors.New("validation error")

	// ErrInsufficientBalance — списание превышает баланс, баланс не изменён
	ErrInsufficientBalance = errors.New("insufficient coin balance")

	// ErrInvalidStateTransition — операция не разрешена в текущем состоянии
	// (повторный старт теста без права пересдачи, повторная оценка)
	ErrInvalidStateTransition = errors.New("invalid state transition")

	// ErrAlreadyEnrolled — ученик уже записан на курс
	ErrAlreadyEnrolled = errors.New("already enrolled")

	// ErrAccessDenied — действие недоступно для роли пользователя
	ErrAccessDenied = errors.New("access denied")

	// ErrOutOfStock — товар закончился
	ErrOutOfStock = errors.New("product out of stock")

	// ErrUserBlocked — пользователь заблокирован
	ErrUserBlocked = errors.New("user is blocked")
)
