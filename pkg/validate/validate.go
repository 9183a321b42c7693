// Package validate provides struct-tag validation for request inputs.
//
// Supported rules (comma-separated in the `validate` tag):
//
//	required            field must not be zero/empty
//	nullable            if empty, skip all remaining rules for this field
//	min=N               string: min char length | number: min value
//	max=N               string: max char length | number: max value
//	gte=N               number >= N
//	lte=N               number <= N
//	in=a,b,c            value must be one of the listed items
//	numeric             any number
//	integer             whole number
//	alpha_dash          letters, digits, hyphens, underscores
//	url                 valid URL (http/https)
//
// Example:
//
//	type SignupInput struct {
//	    Username string `json:"username" validate:"required,alpha_dash,min=3,max=50"`
//	    Password string `json:"password" validate:"required,min=6"`
//	    Role     string `json:"role"     validate:"required,in=buyer,seller"`
//	}
package validate

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Struct validates all exported fields of v that carry a `validate` tag.
// Returns a map of fieldName → error message; empty map means no errors.
func Struct(v interface{}) map[string]string {
	errs := make(map[string]string)
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return errs
	}
	rt := rv.Type()

	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		value := rv.Field(i)

		tag := field.Tag.Get("validate")
		if tag == "" {
			continue
		}

		name := jsonFieldName(field)
		rules := splitRules(tag)

		// `nullable` + empty field: skip all rules.
		if hasRule(rules, "nullable") && isEmpty(value) {
			continue
		}
		if value.Kind() == reflect.Ptr && !value.IsNil() {
			value = value.Elem()
		}

		for _, rule := range rules {
			if rule == "nullable" {
				continue
			}
			if msg := applyRule(rule, name, value); msg != "" {
				errs[name] = msg
				break // first failing rule per field
			}
		}
	}

	return errs
}

// HasErrors returns true when the errs map is non-empty.
func HasErrors(errs map[string]string) bool { return len(errs) > 0 }

func applyRule(rule, field string, v reflect.Value) string {
	raw := fmt.Sprintf("%v", v.Interface())
	key, param, _ := strings.Cut(rule, "=")

	switch key {
	case "required":
		if isEmpty(v) {
			return fmt.Sprintf("The %s field is required.", field)
		}

	case "min":
		n, _ := strconv.ParseFloat(param, 64)
		if num, ok := numericValue(v); ok {
			if num < n {
				return fmt.Sprintf("The %s must be at least %s.", field, param)
			}
		} else if utf8.RuneCountInString(raw) < int(n) {
			return fmt.Sprintf("The %s must be at least %s characters.", field, param)
		}

	case "max":
		n, _ := strconv.ParseFloat(param, 64)
		if num, ok := numericValue(v); ok {
			if num > n {
				return fmt.Sprintf("The %s may not be greater than %s.", field, param)
			}
		} else if utf8.RuneCountInString(raw) > int(n) {
			return fmt.Sprintf("The %s may not be greater than %s characters.", field, param)
		}

	case "gte":
		n, _ := strconv.ParseFloat(param, 64)
		if num, ok := numericValue(v); !ok || num < n {
			return fmt.Sprintf("The %s must be greater than or equal to %s.", field, param)
		}

	case "lte":
		n, _ := strconv.ParseFloat(param, 64)
		if num, ok := numericValue(v); !ok || num > n {
			return fmt.Sprintf("The %s must be less than or equal to %s.", field, param)
		}

	case "in":
		for _, opt := range strings.Split(param, ",") {
			if raw == opt {
				return ""
			}
		}
		return fmt.Sprintf("The selected %s is invalid.", field)

	case "numeric":
		if _, ok := numericValue(v); !ok {
			if _, err := strconv.ParseFloat(raw, 64); err != nil {
				return fmt.Sprintf("The %s must be a number.", field)
			}
		}

	case "integer":
		switch v.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		default:
			if _, err := strconv.ParseInt(raw, 10, 64); err != nil {
				return fmt.Sprintf("The %s must be an integer.", field)
			}
		}

	case "alpha_dash":
		for _, c := range raw {
			if !unicode.IsLetter(c) && !unicode.IsDigit(c) && c != '-' && c != '_' {
				return fmt.Sprintf("The %s may only contain letters, numbers, dashes, and underscores.", field)
			}
		}

	case "url":
		u, err := url.ParseRequestURI(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			return fmt.Sprintf("The %s must be a valid URL.", field)
		}
	}

	return ""
}

func numericValue(v reflect.Value) (float64, bool) {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint()), true
	case reflect.Float32, reflect.Float64:
		return v.Float(), true
	case reflect.Ptr:
		if v.IsNil() {
			return 0, false
		}
		return numericValue(v.Elem())
	default:
		return 0, false
	}
}

func isEmpty(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return strings.TrimSpace(v.String()) == ""
	case reflect.Slice, reflect.Map, reflect.Array:
		return v.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	default:
		return v.IsZero()
	}
}

func jsonFieldName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if tag == "" {
		return strings.ToLower(f.Name)
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" || name == "-" {
		return strings.ToLower(f.Name)
	}
	return name
}

func splitRules(tag string) []string {
	parts := strings.Split(tag, ",")
	rules := make([]string, 0, len(parts))
	for i := 0; i < len(parts); i++ {
		p := strings.TrimSpace(parts[i])
		if p == "" {
			continue
		}
		// "in=a,b,c" swallows the following comma-separated options.
		if strings.HasPrefix(p, "in=") {
			j := i + 1
			for ; j < len(parts); j++ {
				if strings.Contains(parts[j], "=") || isKnownRule(parts[j]) {
					break
				}
				p += "," + strings.TrimSpace(parts[j])
			}
			i = j - 1
		}
		rules = append(rules, p)
	}
	return rules
}

func isKnownRule(s string) bool {
	switch strings.TrimSpace(s) {
	case "required", "nullable", "numeric", "integer", "alpha_dash", "url":
		return true
	}
	return false
}

func hasRule(rules []string, name string) bool {
	for _, r := range rules {
		if r == name {
			return true
		}
	}
	return false
}
