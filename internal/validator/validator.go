// Package validator проверяет dto до обращения к репозиторию.
// Валидаторы не меняют вход и не хранят состояние.
package validator

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"dog_walking/internal/domain"
	"dog_walking/internal/dto"
)

const (
	MaxClientNameLen  = 100
	MaxClientPhoneLen = 20
	MaxDogNameLen     = 100
	MaxWalkMinutes    = 480
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{domain.ErrInvalidArgument}, args...)...)
}

func missing(name string) error {
	return fmt.Errorf("%w: %s", domain.ErrMissingArgument, name)
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func Client(d *dto.Client) error {
	if d == nil {
		return missing("client")
	}
	if blank(d.Name) {
		return invalid("client name is required")
	}
	if utf8.RuneCountInString(d.Name) > MaxClientNameLen {
		return invalid("client name must be at most %d characters", MaxClientNameLen)
	}
	if blank(d.Phone) {
		return invalid("phone number is required")
	}
	if utf8.RuneCountInString(d.Phone) > MaxClientPhoneLen {
		return invalid("phone number must be at most %d characters", MaxClientPhoneLen)
	}
	return nil
}

func Dog(d *dto.Dog) error {
	if d == nil {
		return missing("dog")
	}
	if blank(d.Name) {
		return invalid("dog name is required")
	}
	if utf8.RuneCountInString(d.Name) > MaxDogNameLen {
		return invalid("dog name must be at most %d characters", MaxDogNameLen)
	}
	if d.Age <= 0 {
		return invalid("dog age must be greater than zero")
	}
	if d.ClientID == 0 {
		return invalid("dog owner is required")
	}
	return nil
}

func Walk(d *dto.Walk) error {
	if d == nil {
		return missing("walk")
	}
	if d.DogID == 0 {
		return invalid("dog is required")
	}
	if d.WalkDate.IsZero() {
		return invalid("walk date is required")
	}
	if d.DurationMinutes <= 0 {
		return invalid("walk duration must be greater than zero")
	}
	if d.DurationMinutes > MaxWalkMinutes {
		return invalid("walk duration must be at most %d minutes", MaxWalkMinutes)
	}
	return nil
}

func Login(d *dto.Login) error {
	if d == nil {
		return missing("login")
	}
	if blank(d.Username) {
		return invalid("username is required")
	}
	if blank(d.Password) {
		return invalid("password is required")
	}
	return nil
}
