// Package contact handles the public contact form: it stores one message
// per submission and tracks the form's status.
package contact

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/Zachkp/portfolio/internal/domain"
)

// Status is where a form is in its submit cycle.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

const (
	DefaultSuccessDelay = 3 * time.Second

	tablesMissingText = "Database tables not set up. Please run the SQL schema in the database dashboard."
	fallbackErrorText = "Failed to send message. Please try again."
)

// Form is the contact form's fields and state.
type Form struct {
	Name    string `form:"name" binding:"required"`
	Email   string `form:"email" binding:"required"`
	Message string `form:"message" binding:"required"`

	Status   Status    `form:"-"`
	Error    string    `form:"-"`
	RevertAt time.Time `form:"-"`
}

// StatusAt reports the status as seen at now. A successful form reads as
// idle again once RevertAt has passed.
func (f *Form) StatusAt(now time.Time) Status {
	if f.Status == StatusSuccess && !f.RevertAt.IsZero() && !now.Before(f.RevertAt) {
		return StatusIdle
	}
	if f.Status == "" {
		return StatusIdle
	}
	return f.Status
}

// Notifier is told about every stored message.
type Notifier interface {
	Notify(ctx context.Context, m domain.Message) error
}

// Service submits forms to a store.
type Service struct {
	SuccessDelay time.Duration
	Notifier     Notifier

	// onStatus, when set, sees every status the form moves through.
	onStatus func(Status)

	now func() time.Time
}

// NewService returns a service with the default success delay.
func NewService(notifier Notifier) *Service {
	return &Service{
		SuccessDelay: DefaultSuccessDelay,
		Notifier:     notifier,
		now:          time.Now,
	}
}

func (s *Service) clock() time.Time {
	if s.now == nil {
		return time.Now()
	}
	return s.now()
}

func (s *Service) set(f *Form, status Status) {
	f.Status = status
	if s.onStatus != nil {
		s.onStatus(status)
	}
}

// Submit stores the form as a message. On success the fields are cleared
// and the form reverts to idle after SuccessDelay; on failure the fields
// are kept and Error explains what went wrong. Nothing is retried.
func (s *Service) Submit(ctx context.Context, st domain.Store, f *Form) {
	s.set(f, StatusLoading)
	f.Error = ""
	f.RevertAt = time.Time{}

	msg := domain.Message{
		Name:      f.Name,
		Email:     f.Email,
		Message:   f.Message,
		CreatedAt: s.clock().UTC(),
	}

	stored, err := st.InsertMessage(ctx, msg)
	if err != nil {
		log.Printf("Error storing contact message: %v", err)
		f.Error = FriendlyError(err)
		s.set(f, StatusError)
		return
	}

	f.Name, f.Email, f.Message = "", "", ""
	f.RevertAt = s.clock().Add(s.SuccessDelay)
	s.set(f, StatusSuccess)

	if s.Notifier != nil {
		if err := s.Notifier.Notify(ctx, stored); err != nil {
			log.Printf("Error sending contact notification: %v", err)
		}
	}
}

// FriendlyError turns a store error into text for the form.
func FriendlyError(err error) string {
	if err == nil {
		return ""
	}
	text := rootMessage(err)
	if strings.Contains(text, "schema cache") || strings.Contains(text, "does not exist") {
		return tablesMissingText
	}
	if text == "" {
		return fallbackErrorText
	}
	return text
}

// rootMessage strips the wrapping added on the way up from the store so the
// backend's own message is shown.
func rootMessage(err error) string {
	for {
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		next := u.Unwrap()
		if next == nil {
			break
		}
		err = next
	}
	return err.Error()
}
