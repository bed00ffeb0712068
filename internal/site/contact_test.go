package site

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/Zachkp/pm-portfolio/internal/contact"
)

func janeForm() url.Values {
	return url.Values{"name": {"Jane"}, "email": {"jane@x.com"}, "message": {"Hello"}}
}

func TestContactSuccessClearsForm(t *testing.T) {
	var got contact.Form
	sub := submitterFunc(func(_ context.Context, f contact.Form) contact.Result {
		got = f
		return contact.Success()
	})
	env := newTestEnv(t, testContent(), sub, testConfig())

	w := env.do(postForm("/contact", janeForm()))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := w.Body.String()

	if got != (contact.Form{Name: "Jane", Email: "jane@x.com", Message: "Hello"}) {
		t.Fatalf("submitted %+v", got)
	}
	if !strings.Contains(body, `data-state="idle"`) {
		t.Fatal("form did not return to idle")
	}
	for _, leaked := range []string{"Jane", "jane@x.com", "Hello"} {
		if strings.Contains(body, leaked) {
			t.Errorf("cleared form still contains %q", leaked)
		}
	}
	if strings.Count(body, `value=""`) != 2 || !strings.Contains(body, "></textarea>") {
		t.Fatalf("fields not empty:\n%s", body)
	}
	if !strings.Contains(body, "Thank you for your message") {
		t.Fatal("missing success notice")
	}
	if strings.Contains(body, " disabled>") {
		t.Fatal("submit button still disabled")
	}
}

func TestContactFailureOffersRetry(t *testing.T) {
	sub := submitterFunc(func(context.Context, contact.Form) contact.Result {
		return contact.Failure(contact.ReasonUnavailable, errors.New("smtp down"))
	})
	env := newTestEnv(t, testContent(), sub, testConfig())

	body := env.do(postForm("/contact", janeForm())).Body.String()

	if !strings.Contains(body, `data-state="failed"`) {
		t.Fatal("form not in failed state")
	}
	for _, kept := range []string{`value="Jane"`, `value="jane@x.com"`, ">Hello</textarea>"} {
		if !strings.Contains(body, kept) {
			t.Errorf("failed form lost input %s", kept)
		}
	}
	if !strings.Contains(body, "Retry") || !strings.Contains(body, "could not be sent") {
		t.Fatalf("missing retry action:\n%s", body)
	}
	if strings.Contains(body, "smtp down") {
		t.Fatal("internal error leaked to visitor")
	}
}

func TestContactValidationErrors(t *testing.T) {
	tests := []struct {
		name     string
		form     url.Values
		wantErrs []string
		kept     []string
	}{
		{
			name:     "bad email and empty message",
			form:     url.Values{"name": {"Jane"}, "email": {"not-an-email"}, "message": {""}},
			wantErrs: []string{"Enter a valid email address.", "This field is required."},
			kept:     []string{`value="Jane"`},
		},
		{
			name:     "whitespace only name and message",
			form:     url.Values{"name": {"   "}, "email": {"jane@x.com"}, "message": {"  \n "}},
			wantErrs: []string{"This field is required."},
			kept:     []string{`value="jane@x.com"`},
		},
		{
			name:     "all blank",
			form:     url.Values{"name": {"\t"}, "email": {" "}, "message": {" "}},
			wantErrs: []string{"This field is required."},
		},
		{
			name:     "padded email is trimmed before validation",
			form:     url.Values{"name": {" "}, "email": {"  jane@x.com  "}, "message": {"Hello"}},
			wantErrs: []string{"This field is required."},
			kept:     []string{`value="jane@x.com"`, ">Hello</textarea>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			sub := submitterFunc(func(context.Context, contact.Form) contact.Result {
				called = true
				return contact.Success()
			})
			env := newTestEnv(t, testContent(), sub, testConfig())

			w := env.do(postForm("/contact", tt.form))
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
			}
			body := w.Body.String()

			if called {
				t.Fatal("invalid form was submitted")
			}
			for _, want := range tt.wantErrs {
				if !strings.Contains(body, want) {
					t.Errorf("missing error %q", want)
				}
			}
			for _, want := range tt.kept {
				if !strings.Contains(body, want) {
					t.Errorf("input not kept: %s", want)
				}
			}
			if !strings.Contains(body, `data-state="idle"`) {
				t.Error("invalid form should stay idle")
			}
		})
	}
}

func TestContactWhitespaceOnlyFieldsAreEachFlagged(t *testing.T) {
	env := newTestEnv(t, testContent(), nil, testConfig())
	form := url.Values{"name": {"   "}, "email": {"jane@x.com"}, "message": {"  \n "}}

	body := env.do(postForm("/contact", form)).Body.String()

	if got := strings.Count(body, "This field is required."); got != 2 {
		t.Fatalf("required errors = %d, want 2", got)
	}
	if got := strings.Count(body, `aria-invalid="true"`); got != 2 {
		t.Fatalf("invalid fields = %d, want 2", got)
	}
}

func TestContactSectionStartsEmpty(t *testing.T) {
	env := newTestEnv(t, testContent(), nil, testConfig())
	body := env.get("/sections/contact").Body.String()

	if !strings.Contains(body, `id="contact-form"`) || !strings.Contains(body, `data-state="idle"`) {
		t.Fatal("contact section does not render an idle form")
	}
	if strings.Count(body, " required") != 3 {
		t.Fatalf("want three required fields:\n%s", body)
	}
	if !strings.Contains(body, "mailto:me@example.com") {
		t.Fatal("missing mail-to link")
	}
}
