package wizard

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"

	rendertemplate "github.com/goliatone/go-datefield/pkg/render/template"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

// DefaultPageTemplate names the embedded page template.
const DefaultPageTemplate = "page"

// TemplatesFS exposes the built-in page templates.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return embeddedTemplates
	}
	return sub
}

// SessionFunc resolves the session for an incoming request, creating one if
// needed.
type SessionFunc func(w http.ResponseWriter, r *http.Request) (Session, error)

// StepConfig configures a Step handler.
type StepConfig struct {
	Renderer     rendertemplate.TemplateRenderer
	Theme        *theme.RendererConfig
	Sessions     SessionFunc
	PageTemplate string
	Title        string
	// Next is the redirect target after a valid submission. Empty redirects
	// back to the step itself.
	Next   string
	Logger *zap.Logger
}

type StepOption func(*StepConfig)

func WithRenderer(renderer rendertemplate.TemplateRenderer) StepOption {
	return func(c *StepConfig) {
		c.Renderer = renderer
	}
}

func WithTheme(cfg *theme.RendererConfig) StepOption {
	return func(c *StepConfig) {
		c.Theme = cfg
	}
}

func WithSessions(fn SessionFunc) StepOption {
	return func(c *StepConfig) {
		c.Sessions = fn
	}
}

func WithPageTemplate(name string) StepOption {
	return func(c *StepConfig) {
		c.PageTemplate = strings.TrimSpace(name)
	}
}

func WithTitle(title string) StepOption {
	return func(c *StepConfig) {
		c.Title = title
	}
}

func WithNext(next string) StepOption {
	return func(c *StepConfig) {
		c.Next = strings.TrimSpace(next)
	}
}

func WithLogger(logger *zap.Logger) StepOption {
	return func(c *StepConfig) {
		c.Logger = logger
	}
}

// Step serves a single wizard step: GET renders the fields through the
// display stage, POST runs the submission stage and redirects.
type Step struct {
	pipeline *Pipeline
	cfg      StepConfig
}

// NewStep builds a Step handler for pipeline.
func NewStep(pipeline *Pipeline, options ...StepOption) (*Step, error) {
	if pipeline == nil {
		return nil, errors.New("wizard: missing pipeline")
	}
	cfg := StepConfig{PageTemplate: DefaultPageTemplate}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.Renderer == nil {
		return nil, errors.New("wizard: missing renderer")
	}
	if cfg.Sessions == nil {
		return nil, errors.New("wizard: missing session resolver")
	}
	if cfg.PageTemplate == "" {
		cfg.PageTemplate = DefaultPageTemplate
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Step{pipeline: pipeline, cfg: cfg}, nil
}

func (s *Step) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		s.serveGet(w, r)
	case http.MethodPost:
		s.servePost(w, r)
	default:
		w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead+", "+http.MethodPost)
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	}
}

type errorSummary struct {
	Key     string `json:"key"`
	Message string `json:"message"`
}

func (s *Step) serveGet(w http.ResponseWriter, r *http.Request) {
	session, err := s.cfg.Sessions(w, r)
	if err != nil {
		s.fail(w, r, "resolve session", err)
		return
	}

	req := &Request{Session: session, Form: NewForm(nil)}
	res := &Response{
		Renderer: s.cfg.Renderer,
		Theme:    s.cfg.Theme,
		Locals: map[string]any{
			"action": r.URL.Path,
			"title":  s.cfg.Title,
		},
		Fields: s.pipeline.Views(),
	}
	if err := s.pipeline.Get(r.Context(), req, res); err != nil {
		s.fail(w, r, "display stage", err)
		return
	}

	page, err := s.cfg.Renderer.RenderTemplate(s.cfg.PageTemplate, map[string]any{
		"title":  s.cfg.Title,
		"action": r.URL.Path,
		"fields": res.Fields,
		"errors": summarise(req.Form.Errors),
	})
	if err != nil {
		s.fail(w, r, "render page", err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write([]byte(page))
}

func (s *Step) servePost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	session, err := s.cfg.Sessions(w, r)
	if err != nil {
		s.fail(w, r, "resolve session", err)
		return
	}

	body := make(map[string]string, len(r.PostForm))
	for key, values := range r.PostForm {
		if len(values) == 0 {
			continue
		}
		body[key] = values[0]
	}

	req := &Request{Session: session, Form: NewForm(body)}
	res := &Response{Renderer: s.cfg.Renderer, Theme: s.cfg.Theme}
	errs, err := s.pipeline.Process(r.Context(), req, res)
	if err != nil {
		s.fail(w, r, "submission stage", err)
		return
	}

	target := s.cfg.Next
	if len(errs) > 0 || target == "" {
		target = r.URL.Path
	}
	s.cfg.Logger.Debug("step submitted",
		zap.String("path", r.URL.Path),
		zap.Int("errors", len(errs)),
		zap.String("redirect", target),
	)
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (s *Step) fail(w http.ResponseWriter, r *http.Request, stage string, err error) {
	s.cfg.Logger.Error("wizard step failed",
		zap.String("stage", stage),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// summarise lists typed errors in key order for the page error summary.
// Soft sub-field markers are omitted.
func summarise(errs map[string]FieldError) []errorSummary {
	if len(errs) == 0 {
		return nil
	}
	keys := make([]string, 0, len(errs))
	for key, fe := range errs {
		if fe.Soft() {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	out := make([]errorSummary, 0, len(keys))
	for _, key := range keys {
		message := errs[key].Message
		if message == "" {
			message = fmt.Sprintf("Check %s", key)
		}
		out = append(out, errorSummary{Key: key, Message: message})
	}
	return out
}

// Mux is the minimal interface required to register a net/http handler.
// It is satisfied by *http.ServeMux.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// Mount registers handler under basePath joined with routePath and returns
// the pattern used.
func Mount(mux Mux, basePath, routePath string, handler http.Handler) (string, error) {
	if mux == nil {
		return "", errors.New("wizard: missing mux")
	}
	if handler == nil {
		return "", errors.New("wizard: missing handler")
	}
	pattern := mountPath(basePath, routePath)
	mux.Handle(pattern, handler)
	return pattern, nil
}

func mountPath(basePath, routePath string) string {
	basePath = strings.TrimSpace(basePath)
	routePath = strings.TrimSpace(routePath)

	if routePath == "" {
		routePath = "/"
	}
	if !strings.HasPrefix(routePath, "/") {
		routePath = "/" + routePath
	}

	if basePath == "" || basePath == "/" {
		return routePath
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	basePath = strings.TrimRight(basePath, "/")
	return basePath + routePath
}
