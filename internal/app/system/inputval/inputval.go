// Package inputval validates decoded request bodies using struct tags.
//
// Field names in error messages use the json tag so they match what the
// client sent. Domain-specific tags are registered once at package init:
//
//	loginemail    – strict email address (IsValidEmail)
//	permission    – member of models.AllPermissions
//	ministryarea  – member of models.MinistryAreas
//	eventtype     – member of models.EventTypes
//	userstatus    – known user status
package inputval

import (
	"errors"
	"fmt"
	"net/mail"
	"reflect"
	"strings"

	"github.com/dalemusser/mediateam/internal/domain/models"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	mustRegister(v, "loginemail", func(fl validator.FieldLevel) bool {
		return IsValidEmail(fl.Field().String())
	})
	mustRegister(v, "permission", func(fl validator.FieldLevel) bool {
		return models.Permission(fl.Field().String()).IsValid()
	})
	mustRegister(v, "ministryarea", func(fl validator.FieldLevel) bool {
		return contains(models.MinistryAreas, fl.Field().String())
	})
	mustRegister(v, "eventtype", func(fl validator.FieldLevel) bool {
		return contains(models.EventTypes, fl.Field().String())
	})
	mustRegister(v, "userstatus", func(fl validator.FieldLevel) bool {
		return models.IsValidUserStatus(fl.Field().String())
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("inputval: register %s: %v", tag, err))
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// Error carries one message per invalid field.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for f, msg := range e.Fields {
		parts = append(parts, f+": "+msg)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Validate checks s against its `validate` tags. It returns *Error for
// field failures.
func Validate(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &Error{Fields: make(map[string]string, len(verrs))}
	for _, fe := range verrs {
		out.Fields[fieldPath(fe)] = message(fe)
	}
	return out
}

// fieldPath drops the top-level struct name from the namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "loginemail", "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of " + fe.Param()
	case "permission":
		return "is not a known permission"
	case "ministryarea":
		return "is not a known ministry area"
	case "eventtype":
		return "is not a known event type"
	case "userstatus":
		return "is not a known status"
	case "gtfield":
		return "must be after " + fe.Param()
	}
	return "is invalid"
}

// IsValidEmail reports whether s is a bare email address (no display name)
// with no empty or dotted-edge labels.
func IsValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsAny(s, " <>") {
		return false
	}
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return false
	}
	at := strings.LastIndex(s, "@")
	local, domain := s[:at], s[at+1:]
	for _, part := range []string{local, domain} {
		if part == "" || strings.HasPrefix(part, ".") || strings.HasSuffix(part, ".") || strings.Contains(part, "..") {
			return false
		}
	}
	return true
}
