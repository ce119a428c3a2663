// Package content decides which rows the public page and the admin
// dashboard show: remote rows when the store returns any, otherwise the
// bundled seed (public page) or nothing (admin).
package content

import (
	"context"
	"log"

	"github.com/Zachkp/portfolio/internal/domain"
	"github.com/Zachkp/portfolio/internal/seed"
)

// Source names where a collection's rows came from.
type Source string

const (
	SourceRemote Source = "remote"
	SourceSeed   Source = "seed"
)

// Page is what the public landing page renders.
type Page struct {
	Projects         []domain.Project
	Experiences      []domain.Experience
	ProjectSource    Source
	ExperienceSource Source
	InvalidRows      int
}

// Load reads projects then experiences. A collection that returns at least
// one row replaces the seed entirely, in store order; an empty result or a
// failed read keeps the seed. Read failures are logged and dropped.
func Load(ctx context.Context, st domain.Store) Page {
	page := Page{
		Projects:         seed.Projects(),
		Experiences:      seed.Experiences(),
		ProjectSource:    SourceSeed,
		ExperienceSource: SourceSeed,
	}

	projects, err := st.ListProjects(ctx)
	switch {
	case err != nil:
		log.Printf("Error loading projects, using static content: %v", err)
	case len(projects) > 0:
		valid, bad := domain.Valid(projects)
		logInvalid(domain.Projects, bad)
		page.Projects = valid
		page.ProjectSource = SourceRemote
		page.InvalidRows += len(bad)
	}

	experiences, err := st.ListExperiences(ctx)
	switch {
	case err != nil:
		log.Printf("Error loading experiences, using static content: %v", err)
	case len(experiences) > 0:
		valid, bad := domain.Valid(experiences)
		logInvalid(domain.Experiences, bad)
		page.Experiences = valid
		page.ExperienceSource = SourceRemote
		page.InvalidRows += len(bad)
	}

	return page
}

// Snapshot is the admin view of all three collections. There is no seed
// fallback here: an empty or failed read is an empty list.
type Snapshot struct {
	Projects    []domain.Project
	Experiences []domain.Experience
	Messages    []domain.Message
	Errors      map[domain.Collection]error
}

// LoadAll reads every collection for the admin dashboard.
func LoadAll(ctx context.Context, st domain.Store) Snapshot {
	snap := Snapshot{
		Projects:    []domain.Project{},
		Experiences: []domain.Experience{},
		Messages:    []domain.Message{},
		Errors:      make(map[domain.Collection]error),
	}

	projects, err := st.ListProjects(ctx)
	if err != nil {
		log.Printf("Error loading projects: %v", err)
		snap.Errors[domain.Projects] = err
	} else if len(projects) > 0 {
		snap.Projects = projects
	}

	experiences, err := st.ListExperiences(ctx)
	if err != nil {
		log.Printf("Error loading experiences: %v", err)
		snap.Errors[domain.Experiences] = err
	} else if len(experiences) > 0 {
		snap.Experiences = experiences
	}

	messages, err := st.ListMessages(ctx)
	if err != nil {
		log.Printf("Error loading messages: %v", err)
		snap.Errors[domain.Messages] = err
	} else if len(messages) > 0 {
		snap.Messages = messages
	}

	return snap
}

func logInvalid(c domain.Collection, errs []error) {
	for _, err := range errs {
		log.Printf("Skipping invalid %s %v", c, err)
	}
}
