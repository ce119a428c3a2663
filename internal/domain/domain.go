// Package domain holds the content rows shown on the portfolio and the
// store interface every backend implements.
package domain

import (
	"context"
	"errors"
	"time"
)

// Collection names one group of rows in the store.
type Collection string

const (
	Projects    Collection = "projects"
	Experiences Collection = "experiences"
	Messages    Collection = "messages"
)

// Collections lists every collection in the order the verification check
// checks them.
var Collections = []Collection{Messages, Projects, Experiences}

// OrderColumn is the column a collection is listed by, newest first.
func (c Collection) OrderColumn() string {
	if c == Experiences {
		return "period"
	}
	return "created_at"
}

// Project is a portfolio entry. Seed projects have no ID.
type Project struct {
	ID          string    `json:"id,omitempty"`
	Title       string    `json:"title" form:"title" binding:"required" validate:"required"`
	Role        string    `json:"role" form:"role" binding:"required" validate:"required"`
	Description string    `json:"description" form:"description" binding:"required"`
	Tags        []string  `json:"tags" form:"tags"`
	Details     []string  `json:"details" form:"details"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}

// Normalize replaces nil list fields with empty ones.
func (p *Project) Normalize() {
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if p.Details == nil {
		p.Details = []string{}
	}
}

// Experience is one position in the work history.
type Experience struct {
	ID         string    `json:"id,omitempty"`
	Company    string    `json:"company" form:"company" binding:"required" validate:"required"`
	Role       string    `json:"role" form:"role" binding:"required" validate:"required"`
	Period     string    `json:"period" form:"period" binding:"required"`
	Summary    string    `json:"summary" form:"summary"`
	Highlights []string  `json:"highlights" form:"highlights"`
	Details    []string  `json:"details" form:"details"`
	CreatedAt  time.Time `json:"created_at,omitempty"`
}

// Normalize replaces nil list fields with empty ones.
func (e *Experience) Normalize() {
	if e.Highlights == nil {
		e.Highlights = []string{}
	}
	if e.Details == nil {
		e.Details = []string{}
	}
}

// Message is a contact form submission. Messages are never updated.
type Message struct {
	ID        string    `json:"id,omitempty"`
	Name      string    `json:"name" validate:"required"`
	Email     string    `json:"email" validate:"required"`
	Message   string    `json:"message" validate:"required"`
	CreatedAt time.Time `json:"created_at"`
}

// Store is the table-oriented backend behind the site. List methods return
// rows in the collection's OrderColumn, descending.
type Store interface {
	ListProjects(ctx context.Context) ([]Project, error)
	InsertProject(ctx context.Context, p Project) (Project, error)
	UpdateProject(ctx context.Context, id string, p Project) (Project, error)
	DeleteProject(ctx context.Context, id string) error

	ListExperiences(ctx context.Context) ([]Experience, error)
	InsertExperience(ctx context.Context, e Experience) (Experience, error)
	UpdateExperience(ctx context.Context, id string, e Experience) (Experience, error)
	DeleteExperience(ctx context.Context, id string) error

	ListMessages(ctx context.Context) ([]Message, error)
	InsertMessage(ctx context.Context, m Message) (Message, error)

	// Check selects at most one row from c to confirm it is reachable.
	Check(ctx context.Context, c Collection) error
}

// SessionResolver looks up the signed-in user behind an access token.
// ok is false when the token is empty or not a live session.
type SessionResolver interface {
	Session(ctx context.Context, accessToken string) (userID string, ok bool, err error)
}

// ErrNotFound is returned by update and delete when no row has the id.
var ErrNotFound = errors.New("row not found")
