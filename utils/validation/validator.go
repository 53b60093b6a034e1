package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sahilchouksey/academic-portfolio/utils/apperror"
)

var (
	// ObjectIDRegex matches the 24 hex character record id
	ObjectIDRegex = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

	indexPattern = regexp.MustCompile(`\[(\d+)\]`)
)

// DateLayouts are the accepted layouts for the isodate tag
var DateLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

// Defaulter is implemented by payloads whose optional fields have defaults.
// SetDefaults runs after decoding and before validation.
type Defaulter interface {
	SetDefaults()
}

// Validator wraps the go-playground validator
type Validator struct {
	validate *validator.Validate
	now      func() time.Time
}

// NewValidator creates a new validator instance with the portfolio tags
// registered.
func NewValidator() *Validator {
	v := &Validator{
		validate: validator.New(),
		now:      time.Now,
	}

	// Report json names so field paths match the request body
	v.validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	_ = v.validate.RegisterValidation("objectid", func(fl validator.FieldLevel) bool {
		return ObjectIDRegex.MatchString(fl.Field().String())
	})

	_ = v.validate.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, err := ParseDate(fl.Field().String())
		return err == nil
	})

	// max_year_ahead=N accepts integers up to the current year plus N
	_ = v.validate.RegisterValidation("max_year_ahead", func(fl validator.FieldLevel) bool {
		ahead, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return fl.Field().Int() <= int64(v.now().Year()+ahead)
	})

	// Optional pointer fields accept an explicit empty string
	_ = v.validate.RegisterValidation("email_or_empty", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		return value == "" || v.validate.Var(value, "email") == nil
	})
	_ = v.validate.RegisterValidation("url_or_empty", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		return value == "" || v.validate.Var(value, "url") == nil
	})

	return v
}

// ValidateStruct validates a struct using struct tags. The returned error is
// an *apperror.Error of kind ValidationFailed listing every failed field.
func (v *Validator) ValidateStruct(s interface{}) error {
	fields := v.fieldErrors(s)
	if len(fields) > 0 {
		return apperror.Validation(fields)
	}
	return nil
}

// Bind decodes a JSON body into dst, trims strings, applies defaults and
// validates. Unknown fields are dropped. An empty body is treated as {}.
func (v *Validator) Bind(body []byte, dst interface{}) error {
	if len(bytes.TrimSpace(body)) == 0 {
		body = []byte("{}")
	}

	var fields []apperror.FieldError
	if err := json.Unmarshal(body, dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			return apperror.Wrap(apperror.BadRequest, "Invalid request body", err)
		}
		// Unmarshal stops reporting after the first mismatch
		fields = typeErrors(body, reflect.TypeOf(dst), "")
		if len(fields) == 0 {
			fields = append(fields, apperror.FieldError{
				Field:   typeErr.Field,
				Message: fmt.Sprintf("%s must be of type %s", typeErr.Field, describeKind(typeErr.Type)),
			})
		}
	}

	SanitizeStrings(dst)
	if d, ok := dst.(Defaulter); ok {
		d.SetDefaults()
	}

	mistyped := make(map[string]bool, len(fields))
	for _, fe := range fields {
		mistyped[fe.Field] = true
	}
	for _, fe := range v.fieldErrors(dst) {
		if mistyped[fe.Field] {
			continue
		}
		fields = append(fields, fe)
	}

	if len(fields) > 0 {
		return apperror.Validation(fields)
	}
	return nil
}

var unmarshalerType = reflect.TypeOf((*json.Unmarshaler)(nil)).Elem()

// typeErrors walks raw alongside t and reports every value whose JSON type
// does not fit the Go type. Paths use the dotted form of FieldPath.
func typeErrors(raw json.RawMessage, t reflect.Type, path string) []apperror.FieldError {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil
	}

	if !reflect.PointerTo(t).Implements(unmarshalerType) {
		switch t.Kind() {
		case reflect.Struct:
			var obj map[string]json.RawMessage
			if json.Unmarshal(raw, &obj) == nil {
				return structTypeErrors(obj, t, path)
			}
		case reflect.Slice, reflect.Array:
			if t.Elem().Kind() == reflect.Uint8 {
				break
			}
			var items []json.RawMessage
			if json.Unmarshal(raw, &items) == nil {
				var fields []apperror.FieldError
				for i, item := range items {
					fields = append(fields, typeErrors(item, t.Elem(), joinPath(path, strconv.Itoa(i)))...)
				}
				return fields
			}
		case reflect.Map:
			var obj map[string]json.RawMessage
			if t.Key().Kind() == reflect.String && json.Unmarshal(raw, &obj) == nil {
				var fields []apperror.FieldError
				for key, item := range obj {
					fields = append(fields, typeErrors(item, t.Elem(), joinPath(path, key))...)
				}
				return fields
			}
		}
	}

	if err := json.Unmarshal(raw, reflect.New(t).Interface()); err != nil {
		return []apperror.FieldError{{
			Field:   path,
			Message: fmt.Sprintf("%s must be of type %s", path, describeKind(t)),
		}}
	}
	return nil
}

func structTypeErrors(obj map[string]json.RawMessage, t reflect.Type, path string) []apperror.FieldError {
	var fields []apperror.FieldError
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if tag == "-" {
			continue
		}
		if field.Anonymous && tag == "" {
			embedded := field.Type
			if embedded.Kind() == reflect.Ptr {
				embedded = embedded.Elem()
			}
			if embedded.Kind() == reflect.Struct {
				fields = append(fields, structTypeErrors(obj, embedded, path)...)
				continue
			}
		}
		if !field.IsExported() {
			continue
		}
		if tag == "" {
			tag = field.Name
		}

		// Keys match case-insensitively, as in encoding/json
		for key, raw := range obj {
			if strings.EqualFold(key, tag) {
				fields = append(fields, typeErrors(raw, field.Type, joinPath(path, tag))...)
				break
			}
		}
	}
	return fields
}

func joinPath(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

func (v *Validator) fieldErrors(s interface{}) []apperror.FieldError {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return []apperror.FieldError{{Field: "", Message: err.Error()}}
	}

	fields := make([]apperror.FieldError, 0, len(validationErrs))
	for _, e := range validationErrs {
		path := FieldPath(e.Namespace())
		fields = append(fields, apperror.FieldError{
			Field:   path,
			Message: v.message(path, e),
		})
	}
	return fields
}

// FieldPath turns a validator namespace such as
// "PersonalRequest.socialLinks[0].url" into "socialLinks.0.url"
func FieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		namespace = namespace[i+1:]
	}
	return indexPattern.ReplaceAllString(namespace, ".$1")
}

func (v *Validator) message(field string, e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email", "email_or_empty":
		return fmt.Sprintf("%s must be a valid email", field)
	case "url", "http_url", "url_or_empty":
		return fmt.Sprintf("%s must be a valid uri", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, strings.Join(strings.Fields(e.Param()), ", "))
	case "objectid":
		return fmt.Sprintf("%s must be a valid id", field)
	case "isodate":
		return fmt.Sprintf("%s must be a valid date", field)
	case "max_year_ahead":
		ahead, _ := strconv.Atoi(e.Param())
		return fmt.Sprintf("%s must be less than or equal to %d", field, v.now().Year()+ahead)
	case "min", "gte":
		return boundMessage(field, e, "at least")
	case "max", "lte":
		return boundMessage(field, e, "at most")
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

func boundMessage(field string, e validator.FieldError, bound string) string {
	switch e.Kind() {
	case reflect.String:
		return fmt.Sprintf("%s must be %s %s characters long", field, bound, e.Param())
	case reflect.Slice, reflect.Array, reflect.Map:
		return fmt.Sprintf("%s must contain %s %s items", field, bound, e.Param())
	default:
		return fmt.Sprintf("%s must be %s %s", field, bound, e.Param())
	}
}

func describeKind(t reflect.Type) string {
	if t == nil {
		return "unknown"
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Bool:
		return "boolean"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Struct, reflect.Map:
		return "object"
	default:
		return t.Kind().String()
	}
}

// ParseDate parses the layouts accepted by the isodate tag
func ParseDate(value string) (time.Time, error) {
	for _, layout := range DateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", value)
}

// ValidateEmail checks if an email is valid
func ValidateEmail(email string) bool {
	if len(email) < 3 || len(email) > 254 {
		return false
	}
	return EmailRegex.MatchString(email)
}

// EmailRegex is a simple email validation regex
var EmailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
