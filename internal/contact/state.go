package contact

// State is the visible state of the contact form.
type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateSubmitting:
		return "submitting"
	case StateFailed:
		return "failed"
	default:
		return "idle"
	}
}

// View is everything the contact form template needs to render.
type View struct {
	State  State
	Form   Form
	Errors map[string]string
	// Sent is set after a successful delivery; the fields are empty then.
	Sent   bool
	Reason Reason
}

// Submitting reports whether a delivery is in flight.
func (v *View) Submitting() bool { return v.State == StateSubmitting }

// Begin moves the form into the submitting state for the given input.
func (v *View) Begin(f Form) {
	v.State = StateSubmitting
	v.Form = f
	v.Errors = nil
	v.Sent = false
	v.Reason = ""
}

// Complete applies a delivery result. Success clears every field and
// returns to idle; failure keeps the input so the visitor can retry.
func (v *View) Complete(res Result) {
	if res.OK {
		*v = View{State: StateIdle, Sent: true}
		return
	}
	v.State = StateFailed
	v.Reason = res.Reason
}

// Invalid returns to idle with field errors and the input kept.
func (v *View) Invalid(f Form, errs map[string]string) {
	*v = View{State: StateIdle, Form: f, Errors: errs}
}

// ErrorMessage is the visitor-facing text for a failed delivery.
func (v *View) ErrorMessage() string {
	switch v.Reason {
	case ReasonTimeout:
		return "Sending took too long. Please try again."
	case ReasonRejected:
		return "The mail server rejected this message. Please check your email address and try again."
	default:
		return "Sorry, the message could not be sent right now. Please try again later."
	}
}
