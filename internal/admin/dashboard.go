package admin

import (
	"context"
	"time"

	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/domain"
)

// Tab is the dashboard's selected collection.
type Tab string

const (
	TabProjects    Tab = "projects"
	TabExperiences Tab = "experiences"
	TabMessages    Tab = "messages"
)

// ParseTab maps a query value to a Tab, defaulting to projects.
func ParseTab(s string) Tab {
	switch t := Tab(s); t {
	case TabExperiences, TabMessages:
		return t
	}
	return TabProjects
}

type projectRepo struct{ st domain.Store }

func (r projectRepo) Insert(ctx context.Context, p domain.Project) (domain.Project, error) {
	p.Normalize()
	return r.st.InsertProject(ctx, p)
}

func (r projectRepo) Update(ctx context.Context, id string, p domain.Project) (domain.Project, error) {
	p.Normalize()
	return r.st.UpdateProject(ctx, id, p)
}

func (r projectRepo) Delete(ctx context.Context, id string) error {
	return r.st.DeleteProject(ctx, id)
}

func (projectRepo) Blank() domain.Project {
	return domain.Project{Tags: []string{}, Details: []string{}}
}

func (projectRepo) Noun() string { return "project" }

type experienceRepo struct{ st domain.Store }

func (r experienceRepo) Insert(ctx context.Context, e domain.Experience) (domain.Experience, error) {
	e.Normalize()
	return r.st.InsertExperience(ctx, e)
}

func (r experienceRepo) Update(ctx context.Context, id string, e domain.Experience) (domain.Experience, error) {
	e.Normalize()
	return r.st.UpdateExperience(ctx, id, e)
}

func (r experienceRepo) Delete(ctx context.Context, id string) error {
	return r.st.DeleteExperience(ctx, id)
}

func (experienceRepo) Blank() domain.Experience {
	return domain.Experience{Highlights: []string{}, Details: []string{}}
}

func (experienceRepo) Noun() string { return "experience" }

// Stats are the counts shown at the top of the dashboard.
type Stats struct {
	Projects         int `json:"projects"`
	Experiences      int `json:"experiences"`
	Messages         int `json:"messages"`
	MessagesThisWeek int `json:"messages_this_week"`
}

// Dashboard holds one loaded copy of every collection plus an editor for
// projects and one for experiences. Messages are read-only.
type Dashboard struct {
	Tab         Tab
	Data        content.Snapshot
	Projects    *Editor[domain.Project]
	Experiences *Editor[domain.Experience]

	store domain.Store
	now   func() time.Time
}

// NewDashboard returns a dashboard over st. Call Reload before rendering.
func NewDashboard(st domain.Store) *Dashboard {
	d := &Dashboard{
		Tab:   TabProjects,
		store: st,
		now:   time.Now,
	}
	d.Projects = NewEditor[domain.Project](projectRepo{st}, d.Reload)
	d.Experiences = NewEditor[domain.Experience](experienceRepo{st}, d.Reload)
	return d
}

// Reload re-reads all three collections.
func (d *Dashboard) Reload(ctx context.Context) {
	d.Data = content.LoadAll(ctx, d.store)
}

// FindProject returns the loaded project with id.
func (d *Dashboard) FindProject(id string) (domain.Project, bool) {
	for _, p := range d.Data.Projects {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Project{}, false
}

// FindExperience returns the loaded experience with id.
func (d *Dashboard) FindExperience(id string) (domain.Experience, bool) {
	for _, e := range d.Data.Experiences {
		if e.ID == id {
			return e, true
		}
	}
	return domain.Experience{}, false
}

// Stats counts the loaded rows.
func (d *Dashboard) Stats() Stats {
	weekAgo := d.now().Add(-7 * 24 * time.Hour)
	s := Stats{
		Projects:    len(d.Data.Projects),
		Experiences: len(d.Data.Experiences),
		Messages:    len(d.Data.Messages),
	}
	for _, m := range d.Data.Messages {
		if m.CreatedAt.After(weekAgo) {
			s.MessagesThisWeek++
		}
	}
	return s
}

// Export is the downloadable backup of every collection.
type Export struct {
	ExportedAt  time.Time           `json:"exported_at"`
	Stats       Stats               `json:"stats"`
	Projects    []domain.Project    `json:"projects"`
	Experiences []domain.Experience `json:"experiences"`
	Messages    []domain.Message    `json:"messages"`
}

// Export snapshots the loaded collections.
func (d *Dashboard) Export() Export {
	return Export{
		ExportedAt:  d.now().UTC(),
		Stats:       d.Stats(),
		Projects:    d.Data.Projects,
		Experiences: d.Data.Experiences,
		Messages:    d.Data.Messages,
	}
}
