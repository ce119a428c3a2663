package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/portfolio/internal/domain"
)

type recorded struct {
	method string
	path   string
	query  string
	header http.Header
	body   string
}

func newTestClient(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) (*Client, *[]recorded) {
	t.Helper()

	var calls []recorded
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		calls = append(calls, recorded{
			method: r.Method,
			path:   r.URL.Path,
			query:  r.URL.RawQuery,
			header: r.Header.Clone(),
			body:   string(b),
		})
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	c, err := New(srv.URL+"/", "anon-key", srv.Client())
	require.NoError(t, err)
	return c, &calls
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func TestNew(t *testing.T) {
	_, err := New("not a url", "k", nil)
	assert.Error(t, err)

	_, err = New("https://abc.example.co/", "k", nil)
	require.NoError(t, err)
}

func TestListProjects(t *testing.T) {
	c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[
			{"id":"b","title":"B","role":"r","description":"d","tags":["Go"],"details":null,"created_at":"2025-02-01T00:00:00+00:00"},
			{"id":"a","title":"A","role":"r","description":"d","tags":[],"created_at":"2025-01-01T00:00:00+00:00"}
		]`)
	})

	got, err := c.ListProjects(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].ID)
	assert.Equal(t, []string{"Go"}, got[0].Tags)
	assert.Equal(t, []string{}, got[0].Details)
	assert.Equal(t, 2025, got[0].CreatedAt.Year())

	require.Len(t, *calls, 1)
	call := (*calls)[0]
	assert.Equal(t, http.MethodGet, call.method)
	assert.Equal(t, "/rest/v1/projects", call.path)
	assert.Equal(t, "order=created_at.desc.nullslast&select=%2A", call.query)
	assert.Equal(t, "anon-key", call.header.Get("apikey"))
	assert.Equal(t, "Bearer anon-key", call.header.Get("Authorization"))
}

func TestListExperiencesOrdersByPeriod(t *testing.T) {
	c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[]`)
	})

	got, err := c.ListExperiences(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, "order=period.desc.nullslast&select=%2A", (*calls)[0].query)
}

func TestInsertProject(t *testing.T) {
	c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusCreated, []map[string]any{
			{"id": "new-id", "title": "X", "role": "Y", "description": "Z", "tags": []string{}, "details": []string{}},
		})
	})

	got, err := c.InsertProject(context.Background(), domain.Project{Title: "X", Role: "Y", Description: "Z"})
	require.NoError(t, err)
	assert.Equal(t, "new-id", got.ID)

	call := (*calls)[0]
	assert.Equal(t, http.MethodPost, call.method)
	assert.Equal(t, "return=representation", call.header.Get("Prefer"))
	assert.JSONEq(t, `[{"title":"X","role":"Y","description":"Z","tags":[],"details":[]}]`, call.body)
}

func TestInsertWithoutRepresentation(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
	ctx := context.Background()

	p, err := c.InsertProject(ctx, domain.Project{Title: "X", Role: "Y", Description: "Z"})
	require.NoError(t, err)
	assert.Equal(t, "X", p.Title)
	assert.Equal(t, []string{}, p.Tags)

	e, err := c.InsertExperience(ctx, domain.Experience{Company: "C", Role: "R", Period: "2024"})
	require.NoError(t, err)
	assert.Equal(t, "C", e.Company)
	assert.Equal(t, []string{}, e.Highlights)
}

func TestUpdateProjectNotFound(t *testing.T) {
	c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[]`)
	})

	_, err := c.UpdateProject(context.Background(), "42", domain.Project{Title: "X", Role: "Y"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	call := (*calls)[0]
	assert.Equal(t, http.MethodPatch, call.method)
	assert.Equal(t, "id=eq.42", call.query)
}

func TestDeleteExperience(t *testing.T) {
	c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[{"id":"7","company":"c","role":"r"}]`)
	})

	require.NoError(t, c.DeleteExperience(context.Background(), "7"))
	assert.Equal(t, http.MethodDelete, (*calls)[0].method)
	assert.Equal(t, "/rest/v1/experiences", (*calls)[0].path)
}

func TestInsertMessage(t *testing.T) {
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	got, err := c.InsertMessage(context.Background(), domain.Message{Name: "Ada", Email: "a@b.c", Message: "hi", CreatedAt: at})
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.Name)
	assert.JSONEq(t, `[{"name":"Ada","email":"a@b.c","message":"hi","created_at":"2025-06-01T12:00:00Z"}]`, (*calls)[0].body)
}

func TestErrorBody(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]any{
			"code":    "PGRST205",
			"message": "Could not find the table 'public.messages' in the schema cache",
			"details": nil,
			"hint":    nil,
		})
	})

	err := c.Check(context.Background(), domain.Messages)
	require.Error(t, err)

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "PGRST205", apiErr.Code)
	assert.Equal(t, "Could not find the table 'public.messages' in the schema cache", apiErr.Message)
	assert.Contains(t, err.Error(), "schema cache")
}

func TestErrorBodyNotJSON(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		io.WriteString(w, "upstream down")
	})

	_, err := c.ListMessages(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listing messages")
}

func TestCheckQuery(t *testing.T) {
	c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[]`)
	})

	require.NoError(t, c.Check(context.Background(), domain.Experiences))
	assert.Equal(t, "limit=1&select=id", (*calls)[0].query)
}

func TestSession(t *testing.T) {
	const userID = "7c9e6679-7425-40de-944b-e07fc1f90ae7"
	c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "Bearer good" {
			writeJSON(w, http.StatusOK, map[string]string{"id": userID})
			return
		}
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "invalid JWT"})
	})
	ctx := context.Background()

	id, ok, err := c.Session(ctx, "good")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, userID, id)
	assert.Equal(t, "/auth/v1/user", (*calls)[0].path)
	assert.Equal(t, "anon-key", (*calls)[0].header.Get("apikey"))

	_, ok, err = c.Session(ctx, "bad")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = c.Session(ctx, "")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Len(t, *calls, 2)
}

func TestSessionServerError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, _, err := c.Session(context.Background(), "tok")
	assert.Error(t, err)
}
