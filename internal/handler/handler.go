package handlers

import (
	"embed"
	"html/template"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"

	"miniblog/internal/config"
	"miniblog/internal/middleware"
	"miniblog/internal/models"
	"miniblog/internal/service"
	"miniblog/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

type Handlers struct {
	AuthService service.AuthService
	PostService service.PostService
	Sessions    *session.Manager
	Cfg         *config.Config
	Validate    *validator.Validate

	templates *template.Template
}

func NewHandlers(services *service.Service, sessions *session.Manager, cfg *config.Config) *Handlers {
	return &Handlers{
		AuthService: services.Auth,
		PostService: services.Post,
		Sessions:    sessions,
		Cfg:         cfg,
		Validate:    validator.New(),
		templates:   template.Must(template.ParseFS(templateFS, "templates/*.html")),
	}
}

// page is everything a template can see. Form echoes submitted values back
// into the form when validation fails.
type page struct {
	Title string
	User  *models.User
	Error string
	Form  map[string]string
	Posts []postView
	Post  *models.PostWithAuthor
}

type postView struct {
	models.PostWithAuthor
	CreatedAgo string
}

func (h *Handlers) render(w http.ResponseWriter, r *http.Request, status int, name string, data page) {
	data.User = middleware.UserFrom(r.Context())
	if data.Form == nil {
		data.Form = map[string]string{}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	if err := h.templates.ExecuteTemplate(w, name, data); err != nil {
		log.Printf("failed to render %s: %v", name, err)
	}
}
