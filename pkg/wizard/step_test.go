package wizard_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/goliatone/go-datefield/components/date"
	"github.com/goliatone/go-datefield/pkg/session"
	"github.com/goliatone/go-datefield/pkg/wizard"
)

func newStep(t *testing.T, store *session.Store, options ...wizard.StepOption) *wizard.Step {
	t.Helper()
	p := wizard.New(wizard.WithFields(
		date.MustNew("dob", date.WithLabel("Date of birth"), date.WithRequired(true)),
	))
	options = append([]wizard.StepOption{
		wizard.WithRenderer(newEngine(t)),
		wizard.WithSessions(store.Resolver()),
		wizard.WithTitle("When were you born?"),
	}, options...)
	step, err := wizard.NewStep(p, options...)
	if err != nil {
		t.Fatalf("new step: %v", err)
	}
	return step
}

func postForm(t *testing.T, h http.Handler, cookie *http.Cookie, values url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/when", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func get(t *testing.T, h http.Handler, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/when", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == session.DefaultCookieName {
			return c
		}
	}
	t.Fatalf("expected session cookie")
	return nil
}

func TestStep_GetRendersEmptyForm(t *testing.T) {
	step := newStep(t, session.NewStore())

	rec := get(t, step, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		`<h1>When were you born?</h1>`,
		`<legend>Date of birth</legend>`,
		`name="dob-day" value=""`,
		`action="/when"`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in page:\n%s", want, body)
		}
	}
	if strings.Contains(body, "error-summary") {
		t.Fatalf("expected no error summary on first visit")
	}
}

func TestStep_InvalidSubmissionRedisplaysInput(t *testing.T) {
	store := session.NewStore()
	step := newStep(t, store)

	first := get(t, step, nil)
	cookie := sessionCookie(t, first)

	rec := postForm(t, step, cookie, url.Values{
		"dob-day":   {"31"},
		"dob-month": {""},
		"dob-year":  {"1980"},
	})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/when" {
		t.Fatalf("expected redirect back to step, got %q", loc)
	}

	page := get(t, step, cookie).Body.String()
	for _, want := range []string{
		`class="error-summary"`,
		`Enter a real date`,
		`name="dob-day" value="31"`,
		`name="dob-month" value=""`,
		`name="dob-year" value="1980"`,
		`aria-invalid="true"`,
	} {
		if !strings.Contains(page, want) {
			t.Fatalf("expected %q in page:\n%s", want, page)
		}
	}
}

func TestStep_ValidSubmissionIsStoredAndRedisplayed(t *testing.T) {
	store := session.NewStore()
	step := newStep(t, store, wizard.WithNext("/done"))

	cookie := sessionCookie(t, get(t, step, nil))
	rec := postForm(t, step, cookie, url.Values{
		"dob-day":   {"3"},
		"dob-month": {"11"},
		"dob-year":  {"1980"},
	})
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/done" {
		t.Fatalf("expected redirect to /done, got %d %q", rec.Code, rec.Header().Get("Location"))
	}

	model, ok := store.Lookup(cookie.Value)
	if !ok {
		t.Fatalf("expected session")
	}
	if got := model.Get("dob"); got != "1980-11-03" {
		t.Fatalf("expected stored composite, got %v", got)
	}

	page := get(t, step, cookie).Body.String()
	for _, want := range []string{
		`name="dob-day" value="03"`,
		`name="dob-month" value="11"`,
		`name="dob-year" value="1980"`,
	} {
		if !strings.Contains(page, want) {
			t.Fatalf("expected %q in page:\n%s", want, page)
		}
	}
}

func TestStep_RequiredFieldLeftBlank(t *testing.T) {
	store := session.NewStore()
	step := newStep(t, store)
	cookie := sessionCookie(t, get(t, step, nil))

	postForm(t, step, cookie, url.Values{
		"dob-day":   {""},
		"dob-month": {""},
		"dob-year":  {""},
	})

	model, _ := store.Lookup(cookie.Value)
	errs := wizard.ErrorMap(model.Get(wizard.ErrorsKey))
	if errs["dob"].TypeName() != wizard.ErrorTypeRequired {
		t.Fatalf("expected required error, got %+v", errs)
	}
	if _, ok := wizard.StringMap(model.Get(wizard.ErrorValuesKey))["dob"]; ok {
		t.Fatalf("expected no composite value for blank submission")
	}

	page := get(t, step, cookie).Body.String()
	if !strings.Contains(page, "Enter a date") {
		t.Fatalf("expected required message in page:\n%s", page)
	}
}

func TestStep_MethodNotAllowed(t *testing.T) {
	step := newStep(t, session.NewStore())

	req := httptest.NewRequest(http.MethodDelete, "/when", nil)
	rec := httptest.NewRecorder()
	step.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}

func TestNewStep_RequiresCollaborators(t *testing.T) {
	p := wizard.New()
	if _, err := wizard.NewStep(nil); err == nil {
		t.Fatalf("expected error without pipeline")
	}
	if _, err := wizard.NewStep(p); err == nil {
		t.Fatalf("expected error without renderer")
	}
	if _, err := wizard.NewStep(p, wizard.WithRenderer(&recordingRenderer{})); err == nil {
		t.Fatalf("expected error without sessions")
	}
}

func TestMount(t *testing.T) {
	mux := http.NewServeMux()
	step := newStep(t, session.NewStore())

	pattern, err := wizard.Mount(mux, "/apply", "when", step)
	if err != nil {
		t.Fatalf("mount: %v", err)
	}
	if pattern != "/apply/when" {
		t.Fatalf("unexpected pattern %q", pattern)
	}
	if _, err := wizard.Mount(nil, "", "", step); err == nil {
		t.Fatalf("expected error for nil mux")
	}
}
