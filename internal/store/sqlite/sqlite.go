// Package sqlite stores the portfolio collections in a local SQLite file.
// It stands in for the hosted backend during development.
package sqlite

import (
	"context"
	"embed"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/Zachkp/portfolio/internal/domain"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

var _ domain.Store = (*Repository)(nil)

// Repository implements domain.Store over a SQLite connection.
type Repository struct {
	dbConn *sqlx.DB
	now    func() time.Time
}

// Open connects to the SQLite file at name and applies pending migrations.
func Open(name string) (*Repository, error) {
	db, err := sqlx.Connect("sqlite", fmt.Sprintf("%s?_journal=WAL&_timeout=5000", name))
	if err != nil {
		return nil, fmt.Errorf("connecting to db : %w", err)
	}

	db.SetMaxOpenConns(1)

	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(string(goose.DialectSQLite3)); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting dialect for migrations : %w", err)
	}

	if err := goose.Up(db.DB, "migrations"); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying migration : %w", err)
	}

	return &Repository{dbConn: db, now: time.Now}, nil
}

// Close terminates the database connection.
func (repo *Repository) Close() error {
	if err := repo.dbConn.Close(); err != nil {
		return fmt.Errorf("closing repo : %w", err)
	}
	return nil
}

func (repo *Repository) stamp() time.Time {
	return repo.now().UTC()
}

type dbProject struct {
	ID          string     `db:"id"`
	Title       string     `db:"title"`
	Role        string     `db:"role"`
	Description string     `db:"description"`
	Tags        StringList `db:"tags"`
	Details     StringList `db:"details"`
	CreatedAt   time.Time  `db:"created_at"`
}

func toDomainProject(p *dbProject) domain.Project {
	return domain.Project{
		ID:          p.ID,
		Title:       p.Title,
		Role:        p.Role,
		Description: p.Description,
		Tags:        []string(p.Tags),
		Details:     []string(p.Details),
		CreatedAt:   p.CreatedAt,
	}
}

func (repo *Repository) ListProjects(ctx context.Context) ([]domain.Project, error) {
	var rows []*dbProject
	query := `SELECT id, title, role, description, tags, details, created_at
		FROM projects ORDER BY created_at DESC, rowid DESC`

	if err := repo.dbConn.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("retrieving projects: %w", err)
	}

	out := make([]domain.Project, len(rows))
	for i, r := range rows {
		out[i] = toDomainProject(r)
	}
	return out, nil
}

func (repo *Repository) getProject(ctx context.Context, id string) (domain.Project, error) {
	var r dbProject
	query := `SELECT id, title, role, description, tags, details, created_at FROM projects WHERE id = ?`
	if err := repo.dbConn.GetContext(ctx, &r, query, id); err != nil {
		return domain.Project{}, fmt.Errorf("retrieving project %s: %w", id, err)
	}
	return toDomainProject(&r), nil
}

func (repo *Repository) InsertProject(ctx context.Context, p domain.Project) (domain.Project, error) {
	id := uuid.NewString()
	query := `INSERT INTO projects (id, title, role, description, tags, details, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := repo.dbConn.ExecContext(ctx, query, id, p.Title, p.Role, p.Description,
		StringList(p.Tags), StringList(p.Details), repo.stamp())
	if err != nil {
		return domain.Project{}, fmt.Errorf("inserting project: %w", err)
	}
	return repo.getProject(ctx, id)
}

func (repo *Repository) UpdateProject(ctx context.Context, id string, p domain.Project) (domain.Project, error) {
	query := `UPDATE projects SET title = ?, role = ?, description = ?, tags = ?, details = ? WHERE id = ?`

	result, err := repo.dbConn.ExecContext(ctx, query, p.Title, p.Role, p.Description,
		StringList(p.Tags), StringList(p.Details), id)
	if err != nil {
		return domain.Project{}, fmt.Errorf("updating project %s: %w", id, err)
	}
	if err := requireAffected(result, "updating project", id); err != nil {
		return domain.Project{}, err
	}
	return repo.getProject(ctx, id)
}

func (repo *Repository) DeleteProject(ctx context.Context, id string) error {
	result, err := repo.dbConn.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting project %s: %w", id, err)
	}
	return requireAffected(result, "deleting project", id)
}

type dbExperience struct {
	ID         string     `db:"id"`
	Company    string     `db:"company"`
	Role       string     `db:"role"`
	Period     string     `db:"period"`
	Summary    string     `db:"summary"`
	Highlights StringList `db:"highlights"`
	Details    StringList `db:"details"`
	CreatedAt  time.Time  `db:"created_at"`
}

func toDomainExperience(e *dbExperience) domain.Experience {
	return domain.Experience{
		ID:         e.ID,
		Company:    e.Company,
		Role:       e.Role,
		Period:     e.Period,
		Summary:    e.Summary,
		Highlights: []string(e.Highlights),
		Details:    []string(e.Details),
		CreatedAt:  e.CreatedAt,
	}
}

func (repo *Repository) ListExperiences(ctx context.Context) ([]domain.Experience, error) {
	var rows []*dbExperience
	query := `SELECT id, company, role, period, summary, highlights, details, created_at
		FROM experiences ORDER BY period DESC, rowid DESC`

	if err := repo.dbConn.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("retrieving experiences: %w", err)
	}

	out := make([]domain.Experience, len(rows))
	for i, r := range rows {
		out[i] = toDomainExperience(r)
	}
	return out, nil
}

func (repo *Repository) getExperience(ctx context.Context, id string) (domain.Experience, error) {
	var r dbExperience
	query := `SELECT id, company, role, period, summary, highlights, details, created_at FROM experiences WHERE id = ?`
	if err := repo.dbConn.GetContext(ctx, &r, query, id); err != nil {
		return domain.Experience{}, fmt.Errorf("retrieving experience %s: %w", id, err)
	}
	return toDomainExperience(&r), nil
}

func (repo *Repository) InsertExperience(ctx context.Context, e domain.Experience) (domain.Experience, error) {
	id := uuid.NewString()
	query := `INSERT INTO experiences (id, company, role, period, summary, highlights, details, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := repo.dbConn.ExecContext(ctx, query, id, e.Company, e.Role, e.Period, e.Summary,
		StringList(e.Highlights), StringList(e.Details), repo.stamp())
	if err != nil {
		return domain.Experience{}, fmt.Errorf("inserting experience: %w", err)
	}
	return repo.getExperience(ctx, id)
}

func (repo *Repository) UpdateExperience(ctx context.Context, id string, e domain.Experience) (domain.Experience, error) {
	query := `UPDATE experiences SET company = ?, role = ?, period = ?, summary = ?, highlights = ?, details = ?
		WHERE id = ?`

	result, err := repo.dbConn.ExecContext(ctx, query, e.Company, e.Role, e.Period, e.Summary,
		StringList(e.Highlights), StringList(e.Details), id)
	if err != nil {
		return domain.Experience{}, fmt.Errorf("updating experience %s: %w", id, err)
	}
	if err := requireAffected(result, "updating experience", id); err != nil {
		return domain.Experience{}, err
	}
	return repo.getExperience(ctx, id)
}

func (repo *Repository) DeleteExperience(ctx context.Context, id string) error {
	result, err := repo.dbConn.ExecContext(ctx, `DELETE FROM experiences WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting experience %s: %w", id, err)
	}
	return requireAffected(result, "deleting experience", id)
}

type dbMessage struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	Message   string    `db:"message"`
	CreatedAt time.Time `db:"created_at"`
}

func (repo *Repository) ListMessages(ctx context.Context) ([]domain.Message, error) {
	var rows []*dbMessage
	query := `SELECT id, name, email, message, created_at FROM messages ORDER BY created_at DESC, rowid DESC`

	if err := repo.dbConn.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("retrieving messages: %w", err)
	}

	out := make([]domain.Message, len(rows))
	for i, r := range rows {
		out[i] = domain.Message{ID: r.ID, Name: r.Name, Email: r.Email, Message: r.Message, CreatedAt: r.CreatedAt}
	}
	return out, nil
}

func (repo *Repository) InsertMessage(ctx context.Context, m domain.Message) (domain.Message, error) {
	m.ID = uuid.NewString()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = repo.stamp()
	}
	m.CreatedAt = m.CreatedAt.UTC()

	query := `INSERT INTO messages (id, name, email, message, created_at) VALUES (?, ?, ?, ?, ?)`
	if _, err := repo.dbConn.ExecContext(ctx, query, m.ID, m.Name, m.Email, m.Message, m.CreatedAt); err != nil {
		return domain.Message{}, fmt.Errorf("inserting message: %w", err)
	}
	return m, nil
}

// Check selects one id from the collection's table.
func (repo *Repository) Check(ctx context.Context, c domain.Collection) error {
	var ids []string
	query := fmt.Sprintf(`SELECT id FROM %s LIMIT 1`, tableName(c))
	if err := repo.dbConn.SelectContext(ctx, &ids, query); err != nil {
		return fmt.Errorf("checking %s: %w", c, err)
	}
	return nil
}

func tableName(c domain.Collection) string {
	switch c {
	case domain.Projects, domain.Experiences, domain.Messages:
		return string(c)
	}
	// never interpolate unknown names into SQL
	return "unknown_collection"
}

type rowsAffecter interface {
	RowsAffected() (int64, error)
}

func requireAffected(result rowsAffecter, op, id string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking %s rows affected for %s: %w", op, id, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", op, id, domain.ErrNotFound)
	}
	return nil
}
