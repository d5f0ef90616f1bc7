package component

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/edupaziani/trampo-conecta-talentos/internal/form"
	"github.com/edupaziani/trampo-conecta-talentos/internal/logger"
	"github.com/edupaziani/trampo-conecta-talentos/internal/respond"
	"github.com/edupaziani/trampo-conecta-talentos/internal/submission"
)

const maxBodyBytes = 64 << 10

// DecodeValues reads a JSON object of form values.  The caller answers 400
// on error.
func DecodeValues(w http.ResponseWriter, r *http.Request) (map[string]any, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var v map[string]any
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		return nil, err
	}
	if v == nil {
		return nil, errors.New("component: body must be a JSON object")
	}
	return v, nil
}

// BadRequest answers 400 with the generic message.
func BadRequest(w http.ResponseWriter, r *http.Request) {
	respond.Error(w, r, http.StatusBadRequest, "bad_request", form.Message("api", "request", "bad_request"))
}

// SubmitError maps a Coordinator error to its HTTP answer:
//
//	*form.ValidationError        422 with per-field messages
//	submission.ErrRateLimited    429 with Retry-After
//	submission.ErrInFlight       409
//	*submission.PersistenceError 503
//	unknown field / bad type     400
func SubmitError(w http.ResponseWriter, r *http.Request, c *submission.Coordinator, err error) {
	var (
		ve *form.ValidationError
		pe *submission.PersistenceError
	)
	switch {
	case errors.As(err, &ve):
		respond.Fields(w, r, http.StatusUnprocessableEntity, "validation",
			form.Message("api", "request", "validation"), ve.Fields.Map())
	case errors.Is(err, submission.ErrRateLimited):
		w.Header().Set("Retry-After", retryAfter(c.RetryAfter()))
		respond.Error(w, r, http.StatusTooManyRequests, "rate_limited",
			form.Message("submission", "form", "rate_limited"))
	case errors.Is(err, submission.ErrInFlight):
		respond.Error(w, r, http.StatusConflict, "in_flight",
			form.Message("submission", "form", "in_flight"))
	case errors.As(err, &pe):
		respond.Error(w, r, http.StatusServiceUnavailable, "persistence", pe.Error())
	case errors.Is(err, form.ErrUnknownField), errors.Is(err, form.ErrFieldType):
		BadRequest(w, r)
	default:
		logger.FromContext(r.Context()).Errorw("unexpected submit error", "err", err)
		Internal(w, r)
	}
}

// Internal answers 500 with the generic message.
func Internal(w http.ResponseWriter, r *http.Request) {
	respond.Error(w, r, http.StatusInternalServerError, "internal", form.Message("api", "request", "internal"))
}

func retryAfter(d time.Duration) string {
	secs := int(math.Ceil(d.Seconds()))
	if secs < 1 {
		secs = 1
	}
	return strconv.Itoa(secs)
}
