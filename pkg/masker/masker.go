// Package masker логирует структуры конфигурации со скрытыми секретами.
// Поле с тегом `masked:"true"` логируется первым и последним символом.
package masker

import (
	"errors"
	"reflect"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
)

var ErrConfigNotPointer = errors.New("config must be a pointer to a struct")

const maskFill = "****"

var durationType = reflect.TypeOf(time.Duration(0))

// LogConfigs логирует каждый конфиг одной строкой "config" с именем типа.
func LogConfigs(logger *zap.Logger, configs ...any) error {
	for _, cfg := range configs {
		masked, name, err := mask(cfg)
		if err != nil {
			return err
		}
		logger.Info("config", zap.Any(name, masked))
	}
	return nil
}

// Mask возвращает поля структуры cfg со скрытыми секретами.
func Mask(cfg any) (map[string]any, error) {
	masked, _, err := mask(cfg)
	return masked, err
}

func mask(cfg any) (map[string]any, string, error) {
	v := reflect.ValueOf(cfg)
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return nil, "", ErrConfigNotPointer
	}
	v = v.Elem()
	return maskStructFields(v, v.Type()), v.Type().Name(), nil
}

func maskStructFields(v reflect.Value, t reflect.Type) map[string]any {
	result := make(map[string]any, v.NumField())
	for i := 0; i < v.NumField(); i++ {
		fieldType := t.Field(i)
		if !fieldType.IsExported() {
			continue
		}
		field := v.Field(i)
		secret := fieldType.Tag.Get("masked") == "true"

		switch {
		case field.Kind() == reflect.Struct:
			result[fieldType.Name] = maskStructFields(field, field.Type())
		case field.Kind() == reflect.String && secret:
			result[fieldType.Name] = maskSensitiveData(field.String())
		case secret:
			if field.IsZero() {
				result[fieldType.Name] = ""
			} else {
				result[fieldType.Name] = maskFill
			}
		case field.Type() == durationType:
			result[fieldType.Name] = time.Duration(field.Int()).String()
		default:
			result[fieldType.Name] = field.Interface()
		}
	}
	return result
}

// maskSensitiveData оставляет первый и последний символ. Строки из двух
// символов и короче скрываются полностью; пустая строка остается пустой.
func maskSensitiveData(data string) string {
	n := utf8.RuneCountInString(data)
	switch {
	case n == 0:
		return ""
	case n <= 2:
		return maskFill
	}
	first, _ := utf8.DecodeRuneInString(data)
	last, _ := utf8.DecodeLastRuneInString(data)
	return string(first) + maskFill + string(last)
}
