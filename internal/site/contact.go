package site

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/Zachkp/pm-portfolio/internal/contact"
)

// Submitter delivers a validated contact form.
type Submitter interface {
	Submit(ctx context.Context, f contact.Form) contact.Result
}

// handleContact returns the contact form fragment in its new state.
// Validation problems and delivery failures are shown in the form, so
// the response is always 200 for HTMX to swap it in.
func (s *Server) handleContact(c *gin.Context) {
	var view contact.View
	form, err := bindContact(c)
	if err != nil {
		view.Invalid(form, contact.FieldErrors(err))
		c.HTML(http.StatusOK, "contact-form", &view)
		return
	}

	view.Begin(form)
	res := s.contact.Submit(c.Request.Context(), form)
	view.Complete(res)
	c.HTML(http.StatusOK, "contact-form", &view)
}

// bindContact maps the posted fields, trims them and only then applies
// the binding rules, so whitespace-only input fails "required".
func bindContact(c *gin.Context) (contact.Form, error) {
	var form contact.Form
	if err := c.Request.ParseForm(); err != nil {
		return form, err
	}
	if err := binding.MapFormWithTag(&form, c.Request.PostForm, "form"); err != nil {
		return form, err
	}
	form = form.Normalize()
	return form, binding.Validator.ValidateStruct(&form)
}
