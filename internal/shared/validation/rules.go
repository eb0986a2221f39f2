package validation

import (
	"errors"
	"strings"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

var errRule = errors.New("rule violated")

// MinLength fails when a string has fewer than n characters
func MinLength(n int, message string) Check {
	return Check{Rule: ozzo.RuneLength(n, 0), Message: message}
}

// MaxLength fails when a string has more than n characters
func MaxLength(n int, message string) Check {
	return Check{Rule: ozzo.RuneLength(0, n), Message: message}
}

// MinInt is Min for integers. ozzo's Min skips zero values, which would
// let 0 through a Min(1).
func MinInt(n int64, message string) Check {
	return Check{
		Rule: ozzo.By(func(value interface{}) error {
			v, ok := value.(int64)
			if !ok || v < n {
				return errRule
			}
			return nil
		}),
		Message: message,
	}
}

// OneOf restricts a string to a closed set
func OneOf(message string, allowed ...string) Check {
	values := make([]interface{}, len(allowed))
	for i, a := range allowed {
		values[i] = a
	}
	return Check{Rule: ozzo.In(values...), Message: message}
}

// EmailFormat checks the address syntax only, without DNS lookups
func EmailFormat(message string) Check {
	return Check{Rule: is.EmailFormat, Message: message}
}

// ListMessage renders an allowed set for messages like
// "Le genre doit être l'un des suivants: A, B"
func ListMessage(prefix string, allowed []string) string {
	return prefix + strings.Join(allowed, ", ")
}
