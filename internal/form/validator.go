// Package form validates and normalises submitted listing forms.  Each form
// is a declarative schema: a struct whose `form` tags name the submitted
// fields and whose `validate` tags list the rules applied to them.  One
// validator instance processes every schema and reports all failing
// fields at once.
package form

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/iliyamo/fyyur/internal/model"
)

var phonePattern = regexp.MustCompile(`^\d{3}-\d{3}-\d{4}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report fields under their submitted names, not the Go field names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	must(v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	}))
	must(v.RegisterValidation("state", func(fl validator.FieldLevel) bool {
		return model.IsState(fl.Field().String())
	}))
	must(v.RegisterValidation("genre", func(fl validator.FieldLevel) bool {
		return model.IsGenre(fl.Field().String())
	}))
	must(v.RegisterValidation("boolish", func(fl validator.FieldLevel) bool {
		_, ok := parseBool(fl.Field().String())
		return ok
	}))
	must(v.RegisterValidation("maxrunes", func(fl validator.FieldLevel) bool {
		n, err := strconv.Atoi(fl.Param())
		return err == nil && utf8.RuneCountInString(fl.Field().String()) <= n
	}))
	return v
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// ValidationError lists every submitted field that failed a rule,
// keyed by field name, with a human readable reason.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+e.Fields[name])
	}
	return "invalid form: " + strings.Join(parts, "; ")
}

// add records a failure for field, keeping the first reason reported.
func (e *ValidationError) add(field, reason string) {
	if e.Fields == nil {
		e.Fields = map[string]string{}
	}
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = reason
	}
}

func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// check runs the schema rules of s and collects the failures into ve.
func check(s any, ve *ValidationError) {
	err := validate.Struct(s)
	if err == nil {
		return
	}
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		ve.add("form", err.Error())
		return
	}
	for _, fe := range errs {
		field := fe.Field()
		// genres[2] -> genres
		if i := strings.IndexByte(field, '['); i >= 0 {
			field = field[:i]
		}
		ve.add(field, message(field, fe))
	}
}

func message(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return "select at least one " + strings.TrimSuffix(field, "s")
	case "max", "maxrunes":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "phone":
		return "phone is not in the correct format: xxx-xxx-xxxx"
	case "url":
		return field + " is not a valid URL"
	case "state":
		return fmt.Sprintf("%q is not a valid state", fe.Value())
	case "genre":
		return fmt.Sprintf("%q is not a valid genre", fe.Value())
	case "boolish":
		return field + " must be yes or no"
	case "number":
		return field + " must be a numeric id"
	default:
		return field + " is invalid"
	}
}

// parseBool accepts the spellings radio buttons and checkboxes submit.
// An empty value means false.
func parseBool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "0", "false", "n", "no", "off":
		return false, true
	case "1", "true", "y", "yes", "on":
		return true, true
	}
	return false, false
}

// cleanGenres trims each selected genre, drops blanks and removes
// duplicates while keeping the submitted order.
func cleanGenres(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, g := range in {
		g = strings.TrimSpace(g)
		if g == "" || seen[g] {
			continue
		}
		seen[g] = true
		out = append(out, g)
	}
	return out
}

func trimAll(ps ...*string) {
	for _, p := range ps {
		*p = strings.TrimSpace(*p)
	}
}
