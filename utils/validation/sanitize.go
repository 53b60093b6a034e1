package validation

import (
	"reflect"
	"strings"
)

// SanitizeString trims whitespace and strips NUL bytes
func SanitizeString(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "\x00", ""))
}

// SanitizeStrings walks a decoded payload and sanitizes every string it
// reaches through struct fields, pointers and slices. Fields tagged
// `sanitize:"-"` are left as sent; secrets must be compared byte for byte.
func SanitizeStrings(v interface{}) {
	sanitizeValue(reflect.ValueOf(v))
}

func sanitizeValue(v reflect.Value) {
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface:
		if !v.IsNil() {
			sanitizeValue(v.Elem())
		}
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			field := v.Type().Field(i)
			if field.IsExported() && field.Tag.Get("sanitize") != "-" {
				sanitizeValue(v.Field(i))
			}
		}
	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			sanitizeValue(v.Index(i))
		}
	case reflect.String:
		if v.CanSet() {
			v.SetString(SanitizeString(v.String()))
		}
	}
}
