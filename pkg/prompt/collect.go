package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/goliatone/go-datefield/components/date"
)

// Result holds the answers for one date field.
type Result struct {
	// Values maps sub-field keys to the raw answers.
	Values map[string]string
	// Value is the composed date, empty when every part was left blank.
	Value    string
	Answered bool
}

// CollectParts asks for each part of field in day, month, year order. Stored
// is the current composite value, split into prompt defaults.
func CollectParts(ctx context.Context, driver Driver, field *date.Field, stored string) (Result, error) {
	if driver == nil {
		return Result{}, errors.New("prompt: driver is required")
	}
	if field == nil {
		return Result{}, errors.New("prompt: field is required")
	}

	opts := field.Options()
	subFields := field.SubFields()
	defaults := map[string]string{}
	if stored != "" {
		defaults = date.Split(stored, subFields)
	}

	label := field.Label()
	if label == "" {
		label = field.Key()
	}
	if err := driver.Info(ctx, label); err != nil {
		return Result{}, err
	}

	values := make(map[string]string, len(subFields))
	parts := make(date.Parts, len(subFields))
	for _, sub := range subFields {
		optional := partOptional(opts, sub.Part)
		answer, err := driver.Input(ctx, InputConfig{
			Message:   partMessage(sub.Part, optional),
			Default:   defaults[sub.Key],
			Validator: partValidator(sub.Part, optional || !opts.Required),
		})
		if err != nil {
			return Result{}, err
		}
		answer = strings.TrimSpace(answer)
		values[sub.Key] = answer
		parts[sub.Part] = answer
	}

	value, answered := date.Compose(parts, opts)
	if opts.Required && !answered {
		return Result{}, fmt.Errorf("prompt: %s is required", field.Key())
	}
	return Result{Values: values, Value: value, Answered: answered}, nil
}

func partOptional(opts date.Options, part date.Part) bool {
	switch part {
	case date.PartDay:
		return opts.DayOptional || opts.MonthOptional
	case date.PartMonth:
		return opts.MonthOptional
	default:
		return false
	}
}

func partMessage(part date.Part, optional bool) string {
	msg := strings.ToUpper(string(part[:1])) + string(part[1:])
	if optional {
		msg += " (optional)"
	}
	return msg
}

func partValidator(part date.Part, allowBlank bool) func(string) error {
	limit := 2
	if part == date.PartYear {
		limit = 4
	}
	return func(value string) error {
		value = strings.TrimSpace(value)
		if value == "" {
			if allowBlank {
				return nil
			}
			return fmt.Errorf("%s is required", part)
		}
		if len(value) > limit {
			return fmt.Errorf("%s must be at most %d digits", part, limit)
		}
		for _, r := range value {
			if !unicode.IsDigit(r) {
				return fmt.Errorf("%s must be numeric", part)
			}
		}
		return nil
	}
}
