package state

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// Rule checks one field of a draft. Check returns an empty string when the
// value is acceptable, otherwise the message to show next to the field.
type Rule[T any] struct {
	Field string
	Check func(T) string
}

// Validate runs every rule and collects the first failure per field.
func Validate[T any](draft T, rules []Rule[T]) map[string]string {
	var errs map[string]string
	for _, r := range rules {
		if _, seen := errs[r.Field]; seen {
			continue
		}
		if msg := r.Check(draft); msg != "" {
			if errs == nil {
				errs = map[string]string{}
			}
			errs[r.Field] = msg
		}
	}
	return errs
}

// Required fails when the string field is blank.
func Required[T any](field string, get func(T) string) Rule[T] {
	return Rule[T]{Field: field, Check: func(d T) string {
		if strings.TrimSpace(get(d)) == "" {
			return field + " is required"
		}
		return ""
	}}
}

// MinLen fails when the string field is shorter than n characters.
func MinLen[T any](field string, n int, get func(T) string) Rule[T] {
	return Rule[T]{Field: field, Check: func(d T) string {
		if len(strings.TrimSpace(get(d))) < n {
			return fmt.Sprintf("%s must be at least %d characters", field, n)
		}
		return ""
	}}
}

// Email fails when the field is not a parseable address. Blank values pass;
// combine with Required when the field is mandatory.
func Email[T any](field string, get func(T) string) Rule[T] {
	return Rule[T]{Field: field, Check: func(d T) string {
		v := strings.TrimSpace(get(d))
		if v == "" {
			return ""
		}
		if _, err := mail.ParseAddress(v); err != nil {
			return field + " must be a valid email"
		}
		return ""
	}}
}

// Positive fails when the numeric field is zero or negative.
func Positive[T any](field string, get func(T) float64) Rule[T] {
	return Rule[T]{Field: field, Check: func(d T) string {
		if get(d) <= 0 {
			return field + " must be greater than zero"
		}
		return ""
	}}
}

// NonNegative fails when the numeric field is negative.
func NonNegative[T any](field string, get func(T) float64) Rule[T] {
	return Rule[T]{Field: field, Check: func(d T) string {
		if get(d) < 0 {
			return field + " must not be negative"
		}
		return ""
	}}
}

// DateSet fails when the time field is the zero value.
func DateSet[T any](field string, get func(T) time.Time) Rule[T] {
	return Rule[T]{Field: field, Check: func(d T) string {
		if get(d).IsZero() {
			return field + " is required"
		}
		return ""
	}}
}

// OneOf fails when the field is not one of the allowed values.
func OneOf[T any](field string, get func(T) string, allowed ...string) Rule[T] {
	return Rule[T]{Field: field, Check: func(d T) string {
		v := get(d)
		for _, a := range allowed {
			if v == a {
				return ""
			}
		}
		return fmt.Sprintf("%s must be one of %s", field, strings.Join(allowed, ", "))
	}}
}

// NotEmptySlice fails when the sub-list has no rows.
func NotEmptySlice[T any, E any](field string, get func(T) []E) Rule[T] {
	return Rule[T]{Field: field, Check: func(d T) string {
		if len(get(d)) == 0 {
			return field + " must have at least one entry"
		}
		return ""
	}}
}

// Each applies element rules to every row of a sub-list. Failures are keyed
// by indexed path, e.g. "foods[2].name".
func Each[T any, E any](field string, get func(T) []E, rules ...Rule[E]) Rule[T] {
	return Rule[T]{Field: field, Check: func(d T) string {
		for i, e := range get(d) {
			for _, r := range rules {
				if msg := r.Check(e); msg != "" {
					return fmt.Sprintf("%s[%d].%s", field, i, msg)
				}
			}
		}
		return ""
	}}
}

// NewRowID mints a client-side identifier for a draft sub-list row, stable
// across edits until the server assigns a real id.
func NewRowID() string {
	return ulid.Make().String()
}

// InsertAt returns s with v inserted at index i. Out-of-range indexes clamp
// to the nearest end.
func InsertAt[E any](s []E, i int, v E) []E {
	if i < 0 {
		i = 0
	}
	if i > len(s) {
		i = len(s)
	}
	out := make([]E, 0, len(s)+1)
	out = append(out, s[:i]...)
	out = append(out, v)
	return append(out, s[i:]...)
}

// RemoveAt returns s without the element at index i. An out-of-range index
// returns s unchanged.
func RemoveAt[E any](s []E, i int) []E {
	if i < 0 || i >= len(s) {
		return s
	}
	out := make([]E, 0, len(s)-1)
	out = append(out, s[:i]...)
	return append(out, s[i+1:]...)
}

// ReplaceAt returns s with the element at index i replaced. An out-of-range
// index returns s unchanged.
func ReplaceAt[E any](s []E, i int, v E) []E {
	if i < 0 || i >= len(s) {
		return s
	}
	out := make([]E, len(s))
	copy(out, s)
	out[i] = v
	return out
}
