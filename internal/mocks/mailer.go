package mocks

import "context"

// SentMail captures one message delivered through the MockMailer.
type SentMail struct {
	To      string
	Subject string
	Body    string
}

// MockMailer implements mail.Mailer for testing.
type MockMailer struct {
	// Custom behavior function
	SendFn func(ctx context.Context, to, subject, body string) error

	// Default response value
	Err error

	// Call tracking for verification
	Sent []SentMail
}

// Send implements the mail.Mailer interface.
func (m *MockMailer) Send(ctx context.Context, to, subject, body string) error {
	m.Sent = append(m.Sent, SentMail{To: to, Subject: subject, Body: body})
	if m.SendFn != nil {
		return m.SendFn(ctx, to, subject, body)
	}
	return m.Err
}
