package component

import (
	"context"

	"github.com/edupaziani/trampo-conecta-talentos/internal/acl"
	"github.com/edupaziani/trampo-conecta-talentos/internal/config"
	"github.com/edupaziani/trampo-conecta-talentos/internal/job"
	"github.com/edupaziani/trampo-conecta-talentos/internal/lead"
	"github.com/edupaziani/trampo-conecta-talentos/internal/moderation"
	"github.com/edupaziani/trampo-conecta-talentos/internal/session"
)

// Catalog is the job-board persistence used by the public components.
// *store.Store satisfies it.
type Catalog interface {
	job.Persister
	ListJobs(ctx context.Context, f job.Filter) ([]job.Posting, error)
	ListAreas(ctx context.Context) ([]string, error)
}

// Deps exposes shared resources to components during Init.
type Deps struct {
	Config     *config.Config
	Leads      lead.Persister
	Jobs       Catalog
	Moderation *moderation.Service
	ACL        *acl.Checker
	Auth       *session.Manager
	Forms      *FormSessions
}
