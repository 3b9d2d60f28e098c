package validation

import (
	"context"
	"regexp"
	"unicode/utf8"

	"github.com/akinalp/masterblog/pkg"
)

var (
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

	// Requires at least one letter and one digit, ASCII alphanumerics only.
	passwordRegex = regexp.MustCompile(`(?i)((^[0-9]+[a-z]+)|(^[a-z]+[0-9]+))+[0-9a-z]+$`)
)

// Email fails with message unless value looks like an email address.
func Email(value, message string) Check {
	return func(ctx context.Context) error {
		if !emailRegex.MatchString(value) {
			return pkg.Validation(message)
		}
		return nil
	}
}

// Required fails with message when value is empty.
func Required(value, message string) Check {
	return func(ctx context.Context) error {
		if value == "" {
			return pkg.Validation(message)
		}
		return nil
	}
}

// Length fails with message unless the rune count of value is within
// [min, max] inclusive.
func Length(value string, min, max int, message string) Check {
	return func(ctx context.Context) error {
		n := utf8.RuneCountInString(value)
		if n < min || n > max {
			return pkg.Validation(message)
		}
		return nil
	}
}

// Alphanumeric fails with message unless value mixes letters and digits the
// way a valid password must.
func Alphanumeric(value, message string) Check {
	return func(ctx context.Context) error {
		if !passwordRegex.MatchString(value) {
			return pkg.Validation(message)
		}
		return nil
	}
}

// Equals fails with message unless value equals other.
func Equals(value, other, message string) Check {
	return func(ctx context.Context) error {
		if value != other {
			return pkg.Validation(message)
		}
		return nil
	}
}

// EmailChecker is the slice of the user repository the uniqueness rule needs.
type EmailChecker interface {
	EmailExists(ctx context.Context, email string) (bool, error)
}

// EmailNotTaken fails when another account already uses email. Lookup errors
// pass through untouched so Run classifies them as infrastructure failures.
func EmailNotTaken(users EmailChecker, email string) Check {
	return func(ctx context.Context) error {
		taken, err := users.EmailExists(ctx, email)
		if err != nil {
			return err
		}
		if taken {
			return pkg.Validation("Email address already exists!")
		}
		return nil
	}
}

// Optional skips check when value is empty.
func Optional(value string, check Check) Check {
	return func(ctx context.Context) error {
		if value == "" {
			return nil
		}
		return check(ctx)
	}
}
