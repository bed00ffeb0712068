package contact

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/smtp"
	"net/textproto"
	"strings"
)

// SMTPSender delivers contact messages as plain-text mail. Reply-To is
// set to the visitor so the owner can answer directly.
type SMTPSender struct {
	Host string
	Port string
	User string
	Pass string
	To   string

	// sendMail is smtp.SendMail; replaced in tests.
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPSender(host, port, user, pass, to string) *SMTPSender {
	return &SMTPSender{Host: host, Port: port, User: user, Pass: pass, To: to, sendMail: smtp.SendMail}
}

func (s *SMTPSender) Send(ctx context.Context, f Form) Result {
	if s.User == "" || s.Pass == "" || s.To == "" {
		return Failure(ReasonUnavailable, ErrNotConfigured)
	}

	msg := s.compose(f)
	auth := smtp.PlainAuth("", s.User, s.Pass, s.Host)
	addr := net.JoinHostPort(s.Host, s.Port)

	// smtp.SendMail has no context; the result is abandoned on timeout.
	done := make(chan error, 1)
	go func() {
		done <- s.sendMail(addr, auth, s.User, []string{s.To}, msg)
	}()

	select {
	case <-ctx.Done():
		log.Printf("contact: smtp send to %s abandoned: %v", addr, ctx.Err())
		return Failure(ReasonTimeout, ctx.Err())
	case err := <-done:
		if err != nil {
			log.Printf("contact: smtp send failed: %v", err)
			return Failure(classifySMTPError(err), err)
		}
	}
	log.Printf("contact: message from %s delivered", f.Email)
	return Success()
}

func (s *SMTPSender) compose(f Form) []byte {
	subject := fmt.Sprintf("Portfolio Contact: %s", headerSafe(f.Name))
	body := fmt.Sprintf(`New contact form submission from your portfolio:

Name: %s
Email: %s
Message:
%s

---
Sent from your portfolio contact form
`, f.Name, f.Email, f.Message)

	var b strings.Builder
	b.WriteString("To: " + s.To + "\r\n")
	b.WriteString("From: " + s.User + "\r\n")
	b.WriteString("Reply-To: " + headerSafe(f.Email) + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	body = strings.ReplaceAll(body, "\r\n", "\n")
	b.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))
	return []byte(b.String())
}

// headerSafe strips line breaks so visitor input cannot inject headers.
func headerSafe(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
}

func classifySMTPError(err error) Reason {
	var protoErr *textproto.Error
	if errors.As(err, &protoErr) && protoErr.Code >= 500 {
		return ReasonRejected
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ReasonTimeout
	}
	return ReasonUnavailable
}
