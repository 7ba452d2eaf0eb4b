package validation

import "strings"

type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Basic validators
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

func NonEmptyList(field string, values []string, v Violations) {
	if len(values) == 0 {
		v[field] = "must_not_be_empty"
		return
	}
	for _, value := range values {
		if strings.TrimSpace(value) == "" {
			v[field] = "contains_blank_id"
			return
		}
	}
}

// First returns one violation as "field: reason" for single-message bodies.
func (v Violations) First() string {
	for field, reason := range v {
		return field + ": " + reason
	}
	return ""
}
