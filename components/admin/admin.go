// components/admin/admin.go
//
// Moderation surface for reviewers.
//
//	GET  /api/admin/jobs                 every posting with company contact; ?status=
//	POST /api/admin/jobs/{id}/status     {"status": "approved" | "rejected"}
//
// Both routes need a session user holding moderation.admin_role.
//
//------------------------------------------------------------------------------

package admin

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/edupaziani/trampo-conecta-talentos/internal/acl"
	"github.com/edupaziani/trampo-conecta-talentos/internal/component"
	"github.com/edupaziani/trampo-conecta-talentos/internal/form"
	"github.com/edupaziani/trampo-conecta-talentos/internal/job"
	"github.com/edupaziani/trampo-conecta-talentos/internal/logger"
	"github.com/edupaziani/trampo-conecta-talentos/internal/moderation"
	"github.com/edupaziani/trampo-conecta-talentos/internal/respond"
	"github.com/edupaziani/trampo-conecta-talentos/internal/session"
)

var _ component.Component = (*Component)(nil)

const defaultRole = "admin"

type Component struct {
	svc  *moderation.Service
	acl  *acl.Checker
	auth *session.Manager
	role string
}

func (c *Component) Name() string { return "admin" }

func (c *Component) Init(d component.Deps) error {
	if d.Moderation == nil || d.ACL == nil || d.Auth == nil {
		return errors.New("admin: moderation, acl, and sessions are required")
	}
	c.svc, c.acl, c.auth = d.Moderation, d.ACL, d.Auth
	c.role = defaultRole
	if d.Config != nil && d.Config.Moderation.AdminRole != "" {
		c.role = d.Config.Moderation.AdminRole
	}
	return nil
}

func (c *Component) Routes() chi.Router {
	r := chi.NewRouter()
	r.Route("/api/admin", func(ar chi.Router) {
		ar.Use(c.auth.Load, c.acl.Middleware(c.role))
		ar.Get("/jobs", c.list)
		ar.Post("/jobs/{id}/status", c.decide)
	})
	return r
}

func init() { component.Register(&Component{}) }

func (c *Component) list(w http.ResponseWriter, r *http.Request) {
	postings, err := c.svc.List(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		if errors.Is(err, job.ErrUnknownStatus) {
			respond.Error(w, r, http.StatusBadRequest, "bad_request", form.Message("api", "request", "invalid_status"))
			return
		}
		logger.FromContext(r.Context()).Errorw("admin list jobs", "err", err)
		component.Internal(w, r)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]any{"jobs": postings})
}

type decision struct {
	Status string `json:"status"`
}

func (c *Component) decide(w http.ResponseWriter, r *http.Request) {
	var d decision
	r.Body = http.MaxBytesReader(w, r.Body, 4<<10)
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		component.BadRequest(w, r)
		return
	}

	p, err := c.svc.Decide(r.Context(), job.ID(chi.URLParam(r, "id")), d.Status)
	switch {
	case err == nil:
		respond.JSON(w, http.StatusOK, p)
	case errors.Is(err, moderation.ErrInvalidDecision):
		respond.Error(w, r, http.StatusUnprocessableEntity, "invalid_decision", form.Message("api", "request", "invalid_decision"))
	case errors.Is(err, job.ErrNotFound):
		respond.Error(w, r, http.StatusNotFound, "not_found", form.Message("api", "request", "not_found"))
	case errors.Is(err, job.ErrAlreadyModerated):
		respond.Error(w, r, http.StatusConflict, "already_moderated", form.Message("api", "request", "already_moderated"))
	default:
		logger.FromContext(r.Context()).Errorw("admin decide", "job_id", chi.URLParam(r, "id"), "err", err)
		component.Internal(w, r)
	}
}
