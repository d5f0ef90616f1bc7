// components/jobs/jobs.go
//
// Public job board.
//
//	POST /api/jobs         employer posting form, answers {id, status}
//	GET  /api/jobs         approved postings, newest first; ?area= ?type=
//	GET  /api/jobs/areas   distinct areas of approved postings
//
// Listings never carry the company's contact details.

package jobs

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/edupaziani/trampo-conecta-talentos/internal/component"
	"github.com/edupaziani/trampo-conecta-talentos/internal/form"
	"github.com/edupaziani/trampo-conecta-talentos/internal/job"
	"github.com/edupaziani/trampo-conecta-talentos/internal/logger"
	"github.com/edupaziani/trampo-conecta-talentos/internal/middleware"
	"github.com/edupaziani/trampo-conecta-talentos/internal/respond"
	"github.com/edupaziani/trampo-conecta-talentos/internal/submission"
)

var _ component.Component = (*Component)(nil)

type Component struct {
	catalog component.Catalog
	forms   *component.FormSessions
}

func (c *Component) Name() string { return "jobs" }

func (c *Component) Init(d component.Deps) error {
	if d.Jobs == nil || d.Forms == nil {
		return errors.New("jobs: catalog and form sessions are required")
	}
	c.catalog, c.forms = d.Jobs, d.Forms
	return nil
}

func (c *Component) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/api/jobs", c.submit)
	r.Get("/api/jobs", c.list)
	r.Get("/api/jobs/areas", c.areas)
	return r
}

func init() { component.Register(&Component{}) }

func (c *Component) submit(w http.ResponseWriter, r *http.Request) {
	values, err := component.DecodeValues(w, r)
	if err != nil {
		component.BadRequest(w, r)
		return
	}

	draft := func() submission.Form { return job.NewForm(c.catalog) }
	coord := c.forms.Get(middleware.IPFromContext(r), "job", draft)
	ctx, id := job.WithIDSink(r.Context())
	if err := coord.SubmitValues(ctx, draft(), values); err != nil {
		component.SubmitError(w, r, coord, err)
		return
	}
	respond.JSON(w, http.StatusCreated, map[string]string{
		"id":     string(*id),
		"status": string(job.StatusPending),
	})
}

func (c *Component) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := job.Filter{
		Status: job.StatusApproved,
		Area:   strings.TrimSpace(q.Get("area")),
		Type:   job.Type(strings.TrimSpace(q.Get("type"))),
	}
	switch f.Type {
	case "", job.TypeInternship, job.TypePermanent, job.TypeFreelance:
	default:
		respond.Error(w, r, http.StatusBadRequest, "bad_request", form.Message("job", "type", "oneof"))
		return
	}

	postings, err := c.catalog.ListJobs(r.Context(), f)
	if err != nil {
		logger.FromContext(r.Context()).Errorw("list jobs", "err", err)
		component.Internal(w, r)
		return
	}
	out := make([]job.Posting, len(postings))
	for i, p := range postings {
		out[i] = p.Public()
	}
	respond.JSON(w, http.StatusOK, map[string]any{"jobs": out})
}

func (c *Component) areas(w http.ResponseWriter, r *http.Request) {
	areas, err := c.catalog.ListAreas(r.Context())
	if err != nil {
		logger.FromContext(r.Context()).Errorw("list areas", "err", err)
		component.Internal(w, r)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]any{"areas": areas})
}
