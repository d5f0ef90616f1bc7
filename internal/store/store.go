// internal/store/store.go
//
// Trampô: SQL persistence.
//
// Context
//   Store is the persistence collaborator behind the forms and the
//   moderation surface.  It implements lead.Persister, job.Persister, and
//   moderation.Repository on top of one *sqlx.DB.
//
//   Queries are written with `?` and passed through db.Rebind, and inserts
//   use sqlx named parameters, so the same code serves the "mysql" and
//   "pgx" drivers.  MySQL DSNs need parseTime=true for created_at to scan.
//
// Workflow
//   •  SubmitLead: one INSERT into leads.
//   •  SubmitJobPosting: INSERT companies + INSERT jobs in one transaction;
//      the posting always starts pending.
//   •  GetJob / ListJobs: postings joined with their company contact.
//   •  SetJobStatus: conditional UPDATE … WHERE status = 'pending', so two
//      reviewers racing on the same posting cannot both win.
//
//------------------------------------------------------------------------------

package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/edupaziani/trampo-conecta-talentos/internal/job"
	"github.com/edupaziani/trampo-conecta-talentos/internal/lead"
)

//go:embed schema.sql
var schemaSQL string

// Store is safe for concurrent use.
type Store struct {
	db    *sqlx.DB
	now   func() time.Time
	newID func() string
}

func New(db *sqlx.DB) *Store {
	return &Store{
		db:    db,
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
}

// Migrate creates missing tables.  Statements are idempotent.
func (s *Store) Migrate(ctx context.Context) error {
	for _, stmt := range statements(schemaSQL) {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("store: migrate: %w", err)
		}
	}
	return nil
}

// statements splits a script on ";" and drops comments and blanks.
func statements(script string) []string {
	var out []string
	for _, chunk := range strings.Split(script, ";") {
		var lines []string
		for _, ln := range strings.Split(chunk, "\n") {
			if t := strings.TrimSpace(ln); t != "" && !strings.HasPrefix(t, "--") {
				lines = append(lines, ln)
			}
		}
		if len(lines) > 0 {
			out = append(out, strings.TrimSpace(strings.Join(lines, "\n")))
		}
	}
	return out
}

/*──────────────────────────────── leads ───────────────────────────────────*/

type leadRow struct {
	ID                string    `db:"id"`
	Role              string    `db:"role"`
	Name              string    `db:"name"`
	Email             string    `db:"email"`
	Phone             string    `db:"phone"`
	Company           string    `db:"company"`
	Title             string    `db:"title"`
	InterestArea      string    `db:"interest_area"`
	ExperienceLevel   string    `db:"experience_level"`
	Message           string    `db:"message"`
	AcceptedTerms     bool      `db:"accepted_terms"`
	AcceptedMarketing bool      `db:"accepted_marketing"`
	CreatedAt         time.Time `db:"created_at"`
}

const insertLead = `INSERT INTO leads
    (id, role, name, email, phone, company, title, interest_area,
     experience_level, message, accepted_terms, accepted_marketing, created_at)
VALUES
    (:id, :role, :name, :email, :phone, :company, :title, :interest_area,
     :experience_level, :message, :accepted_terms, :accepted_marketing, :created_at)`

// SubmitLead stores a validated lead.
func (s *Store) SubmitLead(ctx context.Context, l lead.Submission) error {
	row := leadRow{
		ID:                s.newID(),
		Role:              string(l.Role),
		Name:              l.Name,
		Email:             l.Email,
		Phone:             l.Phone,
		Company:           l.Company,
		Title:             l.Title,
		InterestArea:      l.InterestArea,
		ExperienceLevel:   l.ExperienceLevel,
		Message:           l.Message,
		AcceptedTerms:     l.AcceptedTerms,
		AcceptedMarketing: l.AcceptedMarketing,
		CreatedAt:         s.now(),
	}
	if _, err := s.db.NamedExecContext(ctx, insertLead, row); err != nil {
		return fmt.Errorf("store: insert lead: %w", err)
	}
	return nil
}

/*──────────────────────────────── jobs ────────────────────────────────────*/

const insertCompany = `INSERT INTO companies (id, name, contact_email, contact_phone, created_at)
VALUES (:id, :name, :contact_email, :contact_phone, :created_at)`

const insertJob = `INSERT INTO jobs
    (id, company_id, title, job_type, area, description, modality,
     application_link, application_email, status, created_at)
VALUES
    (:id, :company_id, :title, :job_type, :area, :description, :modality,
     :application_link, :application_email, :status, :created_at)`

// SubmitJobPosting stores the company and the posting atomically and
// returns the posting ID.  Status is forced to pending.
func (s *Store) SubmitJobPosting(ctx context.Context, p job.Posting) (job.ID, error) {
	now := s.now()
	company := job.Company{
		ID:           s.newID(),
		Name:         p.CompanyName,
		ContactEmail: p.ContactEmail,
		ContactPhone: p.ContactPhone,
		CreatedAt:    now,
	}
	p.ID = job.ID(s.newID())
	p.CompanyID = company.ID
	p.Status = job.StatusPending
	p.CreatedAt = now

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("store: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.NamedExecContext(ctx, insertCompany, company); err != nil {
		return "", fmt.Errorf("store: insert company: %w", err)
	}
	if _, err := tx.NamedExecContext(ctx, insertJob, p); err != nil {
		return "", fmt.Errorf("store: insert job: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("store: commit job: %w", err)
	}
	return p.ID, nil
}

const selectJobs = `SELECT j.id, j.company_id, c.name AS company_name,
       c.contact_email, c.contact_phone, j.title, j.job_type, j.area,
       j.description, j.modality, j.application_link, j.application_email,
       j.status, j.created_at
  FROM jobs j
  JOIN companies c ON c.id = j.company_id`

// ListJobs returns postings matching f, newest first, with company
// contact details.
func (s *Store) ListJobs(ctx context.Context, f job.Filter) ([]job.Posting, error) {
	var (
		where []string
		args  []any
	)
	if f.Status != "" {
		where = append(where, "j.status = ?")
		args = append(args, string(f.Status))
	}
	if f.Area != "" {
		where = append(where, "LOWER(j.area) = ?")
		args = append(args, strings.ToLower(f.Area))
	}
	if f.Type != "" {
		where = append(where, "j.job_type = ?")
		args = append(args, string(f.Type))
	}

	q := selectJobs
	if len(where) > 0 {
		q += "\n WHERE " + strings.Join(where, " AND ")
	}
	q += "\n ORDER BY j.created_at DESC"

	out := []job.Posting{}
	if err := s.db.SelectContext(ctx, &out, s.db.Rebind(q), args...); err != nil {
		return nil, fmt.Errorf("store: list jobs: %w", err)
	}
	return out, nil
}

// GetJob returns one posting with company contact, or job.ErrNotFound.
func (s *Store) GetJob(ctx context.Context, id job.ID) (job.Posting, error) {
	var p job.Posting
	q := s.db.Rebind(selectJobs + "\n WHERE j.id = ?")
	err := s.db.GetContext(ctx, &p, q, string(id))
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return job.Posting{}, job.ErrNotFound
	case err != nil:
		return job.Posting{}, fmt.Errorf("store: get job: %w", err)
	}
	return p, nil
}

// ListAreas returns the distinct areas of approved postings, sorted.
func (s *Store) ListAreas(ctx context.Context) ([]string, error) {
	q := s.db.Rebind(`SELECT DISTINCT area FROM jobs WHERE status = ? ORDER BY area`)
	out := []string{}
	if err := s.db.SelectContext(ctx, &out, q, string(job.StatusApproved)); err != nil {
		return nil, fmt.Errorf("store: list areas: %w", err)
	}
	return out, nil
}

// CountPending returns the moderation backlog size.
func (s *Store) CountPending(ctx context.Context) (int, error) {
	var n int
	q := s.db.Rebind(`SELECT COUNT(*) FROM jobs WHERE status = ?`)
	if err := s.db.GetContext(ctx, &n, q, string(job.StatusPending)); err != nil {
		return 0, fmt.Errorf("store: count pending: %w", err)
	}
	return n, nil
}

// SetJobStatus moves a pending posting to status.  It returns
// job.ErrNotFound for an unknown ID and job.ErrAlreadyModerated when the
// posting is no longer pending.
func (s *Store) SetJobStatus(ctx context.Context, id job.ID, status job.Status) error {
	q := s.db.Rebind(`UPDATE jobs SET status = ? WHERE id = ? AND status = ?`)
	res, err := s.db.ExecContext(ctx, q, string(status), string(id), string(job.StatusPending))
	if err != nil {
		return fmt.Errorf("store: set job status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: set job status: %w", err)
	}
	if n == 1 {
		return nil
	}

	var current string
	err = s.db.GetContext(ctx, &current, s.db.Rebind(`SELECT status FROM jobs WHERE id = ?`), string(id))
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return job.ErrNotFound
	case err != nil:
		return fmt.Errorf("store: set job status: %w", err)
	default:
		return fmt.Errorf("%w (status %s)", job.ErrAlreadyModerated, current)
	}
}
