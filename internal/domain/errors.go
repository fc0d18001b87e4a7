package domain

import "errors"

var (
	ErrNotFound           = errors.New("запись не найдена")
	ErrValidation         = errors.New("ошибка валидации")
	ErrSlotUnavailable    = errors.New("выбранное время недоступно")
	ErrInvalidTransition  = errors.New("недопустимая смена статуса")
	ErrInvalidCredentials = errors.New("неверный email или пароль")
	ErrForbidden          = errors.New("доступ запрещен")
	ErrAlreadyExists      = errors.New("запись уже существует")
	ErrStorageDisabled    = errors.New("файловое хранилище не настроено")
)
