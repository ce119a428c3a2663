// Package rest talks to the hosted database through its REST gateway and
// resolves sessions through its auth service.
package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/supabase-community/gotrue-go"
	"github.com/supabase-community/postgrest-go"

	"github.com/Zachkp/portfolio/internal/domain"
)

var _ domain.Store = (*Client)(nil)
var _ domain.SessionResolver = (*Client)(nil)

// Error is an error reported by the gateway.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// gatewayErr matches the "(code) message" errors postgrest-go returns.
var gatewayErr = regexp.MustCompile(`^\(([^)]*)\) (.*)$`)

func asError(err error) error {
	m := gatewayErr.FindStringSubmatch(err.Error())
	if m == nil {
		return err
	}
	return &Error{Code: m[1], Message: m[2]}
}

// Client is a thin accessor over the gateway's table endpoints.
type Client struct {
	db   *postgrest.Client
	auth gotrue.Client
}

// New returns a client for the project at baseURL using the public API key.
// httpClient may be nil.
func New(baseURL, apiKey string, httpClient *http.Client) (*Client, error) {
	base := strings.TrimRight(baseURL, "/")
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parsing store url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("store url %q must be absolute", baseURL)
	}

	db := postgrest.NewClient(base+"/rest/v1", "public", map[string]string{
		"apikey":        apiKey,
		"Authorization": "Bearer " + apiKey,
	})
	if db.ClientError != nil {
		return nil, fmt.Errorf("creating rest client: %w", db.ClientError)
	}

	// The project reference is unused once a custom URL is set.
	auth := gotrue.New("", apiKey).WithCustomGoTrueURL(base + "/auth/v1")
	if httpClient != nil {
		if httpClient.Transport != nil {
			db.Transport.Parent = httpClient.Transport
		}
		auth = auth.WithClient(*httpClient)
	}

	return &Client{db: db, auth: auth}, nil
}

// run executes a built query and decodes a JSON array response into out.
// An empty body leaves out untouched.
func run(ctx context.Context, q *postgrest.FilterBuilder, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	raw, _, err := q.Execute()
	if err != nil {
		return asError(err)
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func (c *Client) list(col domain.Collection) *postgrest.FilterBuilder {
	return c.db.From(string(col)).
		Select("*", "", false).
		Order(col.OrderColumn(), &postgrest.OrderOpts{Ascending: false})
}

type projectPayload struct {
	Title       string   `json:"title"`
	Role        string   `json:"role"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Details     []string `json:"details"`
}

func toProjectPayload(p domain.Project) projectPayload {
	p.Normalize()
	return projectPayload{Title: p.Title, Role: p.Role, Description: p.Description, Tags: p.Tags, Details: p.Details}
}

type experiencePayload struct {
	Company    string   `json:"company"`
	Role       string   `json:"role"`
	Period     string   `json:"period"`
	Summary    string   `json:"summary"`
	Highlights []string `json:"highlights"`
	Details    []string `json:"details"`
}

func toExperiencePayload(e domain.Experience) experiencePayload {
	e.Normalize()
	return experiencePayload{
		Company:    e.Company,
		Role:       e.Role,
		Period:     e.Period,
		Summary:    e.Summary,
		Highlights: e.Highlights,
		Details:    e.Details,
	}
}

type messagePayload struct {
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// single returns the only row of a representation response.
func single[T any](rows []T, op, id string) (T, error) {
	var zero T
	if len(rows) == 0 {
		return zero, fmt.Errorf("%s %s: %w", op, id, domain.ErrNotFound)
	}
	return rows[0], nil
}

// inserted returns the stored row, or sent when the table does not grant
// select on the new row to the public key.
func inserted[T any](rows []T, sent T) T {
	if len(rows) == 0 {
		return sent
	}
	return rows[0]
}

func (c *Client) ListProjects(ctx context.Context) ([]domain.Project, error) {
	var rows []domain.Project
	if err := run(ctx, c.list(domain.Projects), &rows); err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	for i := range rows {
		rows[i].Normalize()
	}
	return rows, nil
}

func (c *Client) InsertProject(ctx context.Context, p domain.Project) (domain.Project, error) {
	var rows []domain.Project
	q := c.db.From(string(domain.Projects)).Insert([]projectPayload{toProjectPayload(p)}, false, "", "representation", "")
	if err := run(ctx, q, &rows); err != nil {
		return domain.Project{}, fmt.Errorf("inserting project: %w", err)
	}
	p.Normalize()
	return inserted(rows, p), nil
}

func (c *Client) UpdateProject(ctx context.Context, id string, p domain.Project) (domain.Project, error) {
	var rows []domain.Project
	q := c.db.From(string(domain.Projects)).Update(toProjectPayload(p), "representation", "").Eq("id", id)
	if err := run(ctx, q, &rows); err != nil {
		return domain.Project{}, fmt.Errorf("updating project %s: %w", id, err)
	}
	return single(rows, "updating project", id)
}

func (c *Client) DeleteProject(ctx context.Context, id string) error {
	var rows []domain.Project
	q := c.db.From(string(domain.Projects)).Delete("representation", "").Eq("id", id)
	if err := run(ctx, q, &rows); err != nil {
		return fmt.Errorf("deleting project %s: %w", id, err)
	}
	_, err := single(rows, "deleting project", id)
	return err
}

func (c *Client) ListExperiences(ctx context.Context) ([]domain.Experience, error) {
	var rows []domain.Experience
	if err := run(ctx, c.list(domain.Experiences), &rows); err != nil {
		return nil, fmt.Errorf("listing experiences: %w", err)
	}
	for i := range rows {
		rows[i].Normalize()
	}
	return rows, nil
}

func (c *Client) InsertExperience(ctx context.Context, e domain.Experience) (domain.Experience, error) {
	var rows []domain.Experience
	q := c.db.From(string(domain.Experiences)).Insert([]experiencePayload{toExperiencePayload(e)}, false, "", "representation", "")
	if err := run(ctx, q, &rows); err != nil {
		return domain.Experience{}, fmt.Errorf("inserting experience: %w", err)
	}
	e.Normalize()
	return inserted(rows, e), nil
}

func (c *Client) UpdateExperience(ctx context.Context, id string, e domain.Experience) (domain.Experience, error) {
	var rows []domain.Experience
	q := c.db.From(string(domain.Experiences)).Update(toExperiencePayload(e), "representation", "").Eq("id", id)
	if err := run(ctx, q, &rows); err != nil {
		return domain.Experience{}, fmt.Errorf("updating experience %s: %w", id, err)
	}
	return single(rows, "updating experience", id)
}

func (c *Client) DeleteExperience(ctx context.Context, id string) error {
	var rows []domain.Experience
	q := c.db.From(string(domain.Experiences)).Delete("representation", "").Eq("id", id)
	if err := run(ctx, q, &rows); err != nil {
		return fmt.Errorf("deleting experience %s: %w", id, err)
	}
	_, err := single(rows, "deleting experience", id)
	return err
}

func (c *Client) ListMessages(ctx context.Context) ([]domain.Message, error) {
	var rows []domain.Message
	if err := run(ctx, c.list(domain.Messages), &rows); err != nil {
		return nil, fmt.Errorf("listing messages: %w", err)
	}
	return rows, nil
}

func (c *Client) InsertMessage(ctx context.Context, m domain.Message) (domain.Message, error) {
	var rows []domain.Message
	body := []messagePayload{{Name: m.Name, Email: m.Email, Message: m.Message, CreatedAt: m.CreatedAt.UTC()}}
	q := c.db.From(string(domain.Messages)).Insert(body, false, "", "representation", "")
	if err := run(ctx, q, &rows); err != nil {
		return domain.Message{}, fmt.Errorf("inserting message: %w", err)
	}
	return inserted(rows, m), nil
}

// Check selects at most one id from the collection.
func (c *Client) Check(ctx context.Context, col domain.Collection) error {
	var rows []json.RawMessage
	q := c.db.From(string(col)).Select("id", "", false).Limit(1, "")
	if err := run(ctx, q, &rows); err != nil {
		return fmt.Errorf("checking %s: %w", col, err)
	}
	return nil
}

// errNoSession matches the auth client's error for a rejected token.
var errNoSession = regexp.MustCompile(`^response status code (401|403)\b`)

// Session resolves an access token to a user id through the auth service.
func (c *Client) Session(ctx context.Context, accessToken string) (string, bool, error) {
	if accessToken == "" {
		return "", false, nil
	}
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	resp, err := c.auth.WithToken(accessToken).GetUser()
	if err != nil {
		if errNoSession.MatchString(err.Error()) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("resolving session: %w", err)
	}
	if resp == nil {
		return "", false, errors.New("resolving session: empty response")
	}
	if resp.ID == uuid.Nil {
		return "", false, nil
	}
	return resp.ID.String(), true, nil
}
