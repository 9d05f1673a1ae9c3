// Package date provides a wizard field plugin for dates entered as separate
// day, month and year inputs.
//
// The session stores a single canonical YYYY-MM-DD value under the field key.
// The five lifecycle hooks convert between that value and the sub-fields
// {key}-day, {key}-month and {key}-year:
//
//   - pre-getErrors expands a rejected composite value into sub-field values
//   - post-getErrors marks every sub-field when the composite is in error
//   - post-getValues splits the stored value, letting rejected input win
//   - pre-render renders the fragment and attaches it to the field view
//   - pre-process recombines and pads submitted sub-fields before validation
//
// Calendar validity (leap years, day-of-month bounds) is left to the host
// validator.
package date
