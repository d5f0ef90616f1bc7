package jobs

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/edupaziani/trampo-conecta-talentos/internal/component"
	"github.com/edupaziani/trampo-conecta-talentos/internal/job"
	"github.com/edupaziani/trampo-conecta-talentos/internal/submission"
)

type fakeCatalog struct {
	submitted []job.Posting
	listed    []job.Posting
	lastF     job.Filter
}

func (f *fakeCatalog) SubmitJobPosting(_ context.Context, p job.Posting) (job.ID, error) {
	f.submitted = append(f.submitted, p)
	return "job-42", nil
}

func (f *fakeCatalog) ListJobs(_ context.Context, flt job.Filter) ([]job.Posting, error) {
	f.lastF = flt
	return f.listed, nil
}

func (f *fakeCatalog) ListAreas(context.Context) ([]string, error) {
	return []string{"Design", "Tecnologia"}, nil
}

func newHandler(t *testing.T, cat component.Catalog) http.Handler {
	t.Helper()
	c := &Component{}
	if err := c.Init(component.Deps{
		Jobs:  cat,
		Forms: component.NewFormSessions(16, submission.DefaultOptions()),
	}); err != nil {
		t.Fatalf("Init: %v", err)
	}
	return c.Routes()
}

const posting = `{"companyName":"Acme Ltda","contactEmail":"rh@acme.com.br","title":"Desenvolvedor Go",
"type":"permanent","area":"Tecnologia","description":"Construir APIs e cuidar da plataforma de vagas.",
"modality":"remote","applicationEmail":"vagas@acme.com.br"}`

func TestSubmit_ReturnsPendingID(t *testing.T) {
	cat := &fakeCatalog{}
	rec := httptest.NewRecorder()
	newHandler(t, cat).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/jobs", strings.NewReader(posting)))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body)
	}
	var out map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out["id"] != "job-42" || out["status"] != "pending" {
		t.Fatalf("body = %v", out)
	}
	if len(cat.submitted) != 1 || cat.submitted[0].Status != job.StatusPending {
		t.Fatalf("submitted = %+v", cat.submitted)
	}
}

func TestSubmit_EachRequestStartsFromEmptyDraft(t *testing.T) {
	cat := &fakeCatalog{}
	h := newHandler(t, cat)
	send := func(body string) int {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/jobs", strings.NewReader(body)))
		return rec.Code
	}

	bad := strings.Replace(posting, `"title":"Desenvolvedor Go"`, `"title":""`, 1)
	if code := send(bad); code != http.StatusUnprocessableEntity {
		t.Fatalf("first status = %d", code)
	}
	if code := send(`{"title":"Desenvolvedor Go"}`); code != http.StatusUnprocessableEntity {
		t.Fatalf("second status = %d", code)
	}
	if len(cat.submitted) != 0 {
		t.Fatalf("submitted = %+v", cat.submitted)
	}
}

func TestSubmit_MissingContactRoute(t *testing.T) {
	body := strings.Replace(posting, `"applicationEmail":"vagas@acme.com.br"`, `"applicationEmail":""`, 1)
	rec := httptest.NewRecorder()
	newHandler(t, &fakeCatalog{}).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/jobs", strings.NewReader(body)))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), job.FieldApplicationLink) {
		t.Fatalf("body = %s", rec.Body)
	}
}

func TestList_ApprovedPublicOnly(t *testing.T) {
	cat := &fakeCatalog{listed: []job.Posting{{
		ID: "j1", CompanyName: "Acme", ContactEmail: "rh@acme.com", ContactPhone: "(11) 99999-9999",
		Title: "Estágio", Status: job.StatusApproved,
	}}}
	rec := httptest.NewRecorder()
	newHandler(t, cat).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/jobs?area=Tecnologia&type=internship", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if cat.lastF.Status != job.StatusApproved || cat.lastF.Area != "Tecnologia" || cat.lastF.Type != job.TypeInternship {
		t.Fatalf("filter = %+v", cat.lastF)
	}
	if strings.Contains(rec.Body.String(), "rh@acme.com") || strings.Contains(rec.Body.String(), "99999") {
		t.Fatalf("contact leaked: %s", rec.Body)
	}
}

func TestList_RejectsUnknownType(t *testing.T) {
	rec := httptest.NewRecorder()
	newHandler(t, &fakeCatalog{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/jobs?type=clt", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestAreas(t *testing.T) {
	rec := httptest.NewRecorder()
	newHandler(t, &fakeCatalog{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/jobs/areas", nil))
	var out struct{ Areas []string }
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if len(out.Areas) != 2 || out.Areas[1] != "Tecnologia" {
		t.Fatalf("areas = %v", out.Areas)
	}
}
