// components/csrf/csrf.go
//
// Issues the CSRF token the landing page echoes on every POST.
//
//	GET /api/csrf   {"token": "…"}

package csrf

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/edupaziani/trampo-conecta-talentos/internal/component"
	"github.com/edupaziani/trampo-conecta-talentos/internal/form"
	"github.com/edupaziani/trampo-conecta-talentos/internal/logger"
	"github.com/edupaziani/trampo-conecta-talentos/internal/respond"
)

var _ component.Component = (*Component)(nil)

type Component struct{}

func (c *Component) Name() string              { return "csrf" }
func (c *Component) Init(component.Deps) error { return nil }

func (c *Component) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/api/csrf", func(w http.ResponseWriter, r *http.Request) {
		tok, err := form.GenerateToken()
		if err != nil {
			logger.FromContext(r.Context()).Errorw("csrf token", "err", err)
			component.Internal(w, r)
			return
		}
		respond.JSON(w, http.StatusOK, map[string]string{"token": tok})
	})
	return r
}

func init() { component.Register(&Component{}) }
