// components/leads/leads.go
//
// Lead capture component: the "Empresa / Talento" form of the landing page.
//
//	POST /api/leads   JSON object of lead fields, "role" selects the variant
//
// Each client has one lead session carrying the attempt limit.  Every request
// builds its own draft with no role preset, so a body without "role" is
// reported as a field error and nothing is inherited from earlier requests.

package leads

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/edupaziani/trampo-conecta-talentos/internal/component"
	"github.com/edupaziani/trampo-conecta-talentos/internal/lead"
	"github.com/edupaziani/trampo-conecta-talentos/internal/middleware"
	"github.com/edupaziani/trampo-conecta-talentos/internal/respond"
	"github.com/edupaziani/trampo-conecta-talentos/internal/submission"
)

// Compile-time assertion: *Component satisfies component.Component.
var _ component.Component = (*Component)(nil)

// Component serves the lead form.
type Component struct {
	persist lead.Persister
	forms   *component.FormSessions
}

func (c *Component) Name() string { return "leads" }

func (c *Component) Init(d component.Deps) error {
	if d.Leads == nil || d.Forms == nil {
		return errors.New("leads: persister and form sessions are required")
	}
	c.persist, c.forms = d.Leads, d.Forms
	return nil
}

func (c *Component) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/api/leads", c.submit)
	return r
}

func init() { component.Register(&Component{}) }

func (c *Component) submit(w http.ResponseWriter, r *http.Request) {
	values, err := component.DecodeValues(w, r)
	if err != nil {
		component.BadRequest(w, r)
		return
	}

	draft := func() submission.Form { return lead.NewForm(c.persist, "") }
	coord := c.forms.Get(middleware.IPFromContext(r), "lead", draft)
	if err := coord.SubmitValues(r.Context(), draft(), values); err != nil {
		component.SubmitError(w, r, coord, err)
		return
	}
	respond.JSON(w, http.StatusCreated, map[string]string{"status": "received"})
}
