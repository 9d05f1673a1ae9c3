// Package sanitize cleans rendered field fragments before they are embedded in
// a page. Only form markup survives.
package sanitize

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	fragmentPolicyOnce sync.Once
	fragmentPolicy     *bluemonday.Policy
)

// Fragment strips everything but form markup from raw. Blank input yields an
// empty string.
func Fragment(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(Policy().Sanitize(trimmed))
}

// Policy returns the shared fragment policy.
func Policy() *bluemonday.Policy {
	fragmentPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("div", "fieldset", "legend", "label", "input", "span", "p")

		policy.AllowAttrs("id", "class").Globally()
		policy.AllowAttrs("aria-describedby", "aria-invalid", "aria-labelledby", "role").Globally()
		policy.AllowDataAttributes()

		policy.AllowAttrs(
			"type", "name", "value", "inputmode", "pattern", "maxlength",
			"autocomplete", "spellcheck", "required",
		).OnElements("input")
		policy.AllowAttrs("for").OnElements("label")

		fragmentPolicy = policy
	})
	return fragmentPolicy
}
