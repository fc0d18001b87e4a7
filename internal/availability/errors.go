package availability

import (
	"errors"
	"fmt"
)

// ErrNoServices is returned when availability is requested without any service selected.
var ErrNoServices = errors.New("не выбрано ни одной услуги")

// ParseError reports a malformed "HH:MM" value.
type ParseError struct {
	Value  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("некорректное время %q: %s", e.Value, e.Reason)
}

// ConfigError reports a schedule or setting that cannot produce a valid slot grid.
type ConfigError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("ошибка конфигурации %s: %s: %v", e.Field, e.Reason, e.Err)
	}
	return fmt.Sprintf("ошибка конфигурации %s: %s", e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
