// Package contact implements the contact form: binding rules, the form
// state shown to the visitor, and delivery of submitted messages.
package contact

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Form is the visitor input. Binding tags are enforced by gin.
type Form struct {
	Name    string `form:"name" binding:"required,max=120"`
	Email   string `form:"email" binding:"required,email,max=254"`
	Message string `form:"message" binding:"required,max=5000"`
}

// Normalize trims surrounding whitespace from every field.
func (f Form) Normalize() Form {
	return Form{
		Name:    strings.TrimSpace(f.Name),
		Email:   strings.TrimSpace(f.Email),
		Message: strings.TrimSpace(f.Message),
	}
}

// Complete reports whether every field has content after trimming.
func (f Form) Complete() bool {
	n := f.Normalize()
	return n.Name != "" && n.Email != "" && n.Message != ""
}

// Fingerprint identifies identical submissions regardless of letter case
// in the address or surrounding whitespace.
func (f Form) Fingerprint() string {
	n := f.Normalize()
	h := sha256.New()
	h.Write([]byte(strings.ToLower(n.Email)))
	h.Write([]byte{0})
	h.Write([]byte(n.Name))
	h.Write([]byte{0})
	h.Write([]byte(n.Message))
	return hex.EncodeToString(h.Sum(nil))
}

var fieldNames = map[string]string{
	"Name":    "name",
	"Email":   "email",
	"Message": "message",
}

// FieldErrors turns a binding error into per-field messages keyed by the
// form field name. Errors that are not validation failures are reported
// under the empty key.
func FieldErrors(err error) map[string]string {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"": "The form could not be read. Please try again."}
	}

	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		field, ok := fieldNames[fe.Field()]
		if !ok {
			field = strings.ToLower(fe.Field())
		}
		switch fe.Tag() {
		case "required":
			out[field] = "This field is required."
		case "email":
			out[field] = "Enter a valid email address."
		case "max":
			out[field] = "This is too long (max " + fe.Param() + " characters)."
		default:
			out[field] = "This value is not valid."
		}
	}
	return out
}
