package date

import (
	"strings"
)

// Part names a date component.
type Part string

const (
	PartDay   Part = "day"
	PartMonth Part = "month"
	PartYear  Part = "year"
)

// SubField pairs a part with its form key.
type SubField struct {
	Part Part   `json:"part"`
	Key  string `json:"key"`
}

// SubFields returns the declared sub-fields for key, ordered day, month, year.
func SubFields(key string) []SubField {
	return []SubField{
		{Part: PartDay, Key: subFieldKey(key, PartDay)},
		{Part: PartMonth, Key: subFieldKey(key, PartMonth)},
		{Part: PartYear, Key: subFieldKey(key, PartYear)},
	}
}

func subFieldKey(key string, part Part) string {
	return key + "-" + string(part)
}

// Parts holds bare part values. Missing parts read as empty strings.
type Parts map[Part]string

// Split decomposes a composite value into sub-field values. Segments are
// matched in reverse: the last "-" segment goes to the first sub-field (day),
// the one before to the second, and so on. Extra segments are ignored and
// missing ones leave their sub-field unset.
func Split(value string, subFields []SubField) map[string]string {
	segments := strings.Split(value, "-")
	out := make(map[string]string, len(subFields))
	for idx := 0; idx < len(subFields) && idx < len(segments); idx++ {
		out[subFields[idx].Key] = segments[len(segments)-1-idx]
	}
	return out
}

// PartsFromBody picks the sub-field values for key out of a submitted body
// and strips the key prefix.
func PartsFromBody(body map[string]string, key string) Parts {
	parts := make(Parts, 3)
	for _, sub := range SubFields(key) {
		value, ok := body[sub.Key]
		if !ok {
			continue
		}
		parts[sub.Part] = value
	}
	return parts
}

// Empty reports whether every part is blank.
func (p Parts) Empty() bool {
	for _, value := range p {
		if value != "" {
			return false
		}
	}
	return true
}

// Compose rebuilds the composite value. The second result is false when all
// parts are blank, meaning the field was not answered. Optional parts default
// to "01" when blank; otherwise day and month are padded. The year is never
// touched.
func Compose(parts Parts, opts Options) (string, bool) {
	if parts.Empty() {
		return "", false
	}
	day := parts[PartDay]
	month := parts[PartMonth]
	year := parts[PartYear]

	if opts.MonthOptional {
		opts.DayOptional = true
	}
	if opts.DayOptional && day == "" {
		day = "01"
	} else {
		day = Pad(day)
	}
	if opts.MonthOptional && month == "" {
		month = "01"
	} else {
		month = Pad(month)
	}
	return year + "-" + month + "-" + day, true
}

// Pad left-pads a single character part with "0". Empty strings and values
// of two or more characters pass through unchanged.
func Pad(value string) string {
	if value != "" && len(value) < 2 {
		return "0" + value
	}
	return value
}

// MergeValues copies each layer into dst in order, so later layers win.
func MergeValues(dst map[string]string, layers ...map[string]string) map[string]string {
	if dst == nil {
		dst = make(map[string]string)
	}
	for _, layer := range layers {
		for key, value := range layer {
			dst[key] = value
		}
	}
	return dst
}
