package domain

import "errors"

var (
	// ErrMissingArgument: обязательная зависимость или dto равны nil.
	ErrMissingArgument = errors.New("missing argument")
	// ErrInvalidArgument: не прошла проверка.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotFound: строки нет или она удалена.
	ErrNotFound = errors.New("not found")
	// ErrConflict: операция сейчас недопустима
	// (есть активные зависимые строки, дубликат ключа).
	ErrConflict = errors.New("operation not permitted")
)
