// Package site renders the public portfolio pages and the code viewer.
package site

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/yuin/goldmark"

	"github.com/PierrickDossin/portfolio/internal/codeview"
	"github.com/PierrickDossin/portfolio/internal/config"
	"github.com/PierrickDossin/portfolio/internal/contact"
	"github.com/PierrickDossin/portfolio/internal/icons"
	"github.com/PierrickDossin/portfolio/internal/projects"
	"github.com/PierrickDossin/portfolio/internal/repositories"
	"github.com/PierrickDossin/portfolio/internal/skills"
)

// Config holds what the pages show besides database content.
type Config struct {
	Title        string
	Profile      config.Profile
	CopyFeedback time.Duration
}

// Stores are the data sources the pages read from.
type Stores struct {
	Projects     *projects.Store
	Skills       *skills.Store
	Contact      *contact.Store
	Repositories *repositories.Store
}

// Site serves the HTML pages.
type Site struct {
	cfg    Config
	stores Stores
	md     goldmark.Markdown
	pages  map[string]*template.Template
}

// New parses the page templates.
func New(cfg Config, stores Stores) (*Site, error) {
	if cfg.CopyFeedback <= 0 {
		cfg.CopyFeedback = codeview.DefaultCopyFeedback
	}
	s := &Site{cfg: cfg, stores: stores, md: newMarkdown(), pages: map[string]*template.Template{}}

	base, err := template.New("layout").Parse(layoutTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing layout template: %w", err)
	}
	if _, err := base.Parse(cardsTemplate); err != nil {
		return nil, fmt.Errorf("parsing cards template: %w", err)
	}
	for name, src := range map[string]string{
		"home":       homeTemplate,
		"projects":   projectsTemplate,
		"project":    projectTemplate,
		"repository": repositoryTemplate,
		"error":      errorTemplate,
	} {
		clone, err := base.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := clone.Parse(src); err != nil {
			return nil, fmt.Errorf("parsing %s template: %w", name, err)
		}
		s.pages[name] = clone
	}
	return s, nil
}

// RegisterRoutes mounts the site pages.
func (s *Site) RegisterRoutes(r chi.Router) {
	r.Get("/", s.handleHome)
	r.Post("/contact", s.handleContact)
	r.Get("/projects", s.handleProjects)
	r.Get("/projects/{id}", s.handleProject)
	r.Get("/repositories/{id}", s.handleRepository)
	r.Get("/static/site.css", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/css; charset=utf-8")
		w.Write([]byte(cssContent))
	})
}

// page is the data every template receives; Data holds the page specifics.
type page struct {
	SiteTitle string
	Owner     string
	Heading   string
	Year      int
}

type statView struct {
	Glyph string
	Label string
	Value string
}

type projectCard struct {
	ID            int64
	Title         string
	Description   template.HTML
	CategoryLabel string
	Tags          []string
	Glyph         string
	Gradient      template.CSS
	GitHubURL     string
	LiveURL       string
}

type contactForm struct {
	Name    string
	Email   string
	Message string
}

type homeData struct {
	page
	Profile   config.Profile
	Stats     []statView
	Groups    []skills.Group
	Featured  []projectCard
	Sent      bool
	FormError string
	Form      contactForm
}

type categoryLink struct {
	Value  projects.Category
	Label  string
	Active bool
}

type projectsData struct {
	page
	Category   projects.Category
	Categories []categoryLink
	Projects   []projectCard
}

type projectData struct {
	page
	Project      projectCard
	Repositories []repositories.Repository
}

type fileView struct {
	Name        string
	Path        string
	Language    string
	Lines       int
	Raw         string
	Highlighted template.HTML
	DownloadURL string
}

type repositoryData struct {
	page
	Repo           *repositories.Repository
	Empty          bool
	Rows           []treeRow
	File           *fileView
	CopyFeedbackMS int64
}

type errorData struct {
	page
	Status  int
	Message string
}

func (s *Site) newPage(heading string) page {
	return page{
		SiteTitle: s.cfg.Title,
		Owner:     s.cfg.Profile.Name,
		Heading:   heading,
		Year:      time.Now().Year(),
	}
}

func (s *Site) handleHome(w http.ResponseWriter, r *http.Request) {
	data, err := s.homeData(r)
	if err != nil {
		s.renderError(w, http.StatusInternalServerError, err)
		return
	}
	data.Sent = r.URL.Query().Get("sent") == "1"
	s.render(w, http.StatusOK, "home", data)
}

func (s *Site) homeData(r *http.Request) (*homeData, error) {
	groups, err := s.stores.Skills.Grouped(r.Context())
	if err != nil {
		return nil, err
	}
	featured, err := s.stores.Projects.Featured(r.Context())
	if err != nil {
		return nil, err
	}
	cards, err := s.cards(featured)
	if err != nil {
		return nil, err
	}

	stats := make([]statView, 0, len(s.cfg.Profile.Stats))
	for _, st := range s.cfg.Profile.Stats {
		stats = append(stats, statView{Glyph: icons.Parse(st.Icon).Glyph(), Label: st.Label, Value: st.Value})
	}
	return &homeData{
		page:     s.newPage(""),
		Profile:  s.cfg.Profile,
		Stats:    stats,
		Groups:   groups,
		Featured: cards,
	}, nil
}

// handleContact stores a message from the home page form and redirects back
// with an acknowledgement. Invalid input re-renders the form.
func (s *Site) handleContact(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.renderError(w, http.StatusBadRequest, errors.New("invalid form"))
		return
	}
	form := contactForm{
		Name:    r.PostFormValue("name"),
		Email:   r.PostFormValue("email"),
		Message: r.PostFormValue("message"),
	}
	msg := contact.Message{Name: form.Name, Email: form.Email, Message: form.Message}
	if err := msg.Validate(); err != nil {
		data, derr := s.homeData(r)
		if derr != nil {
			s.renderError(w, http.StatusInternalServerError, derr)
			return
		}
		data.Form = form
		data.FormError = err.Error()
		s.render(w, http.StatusBadRequest, "home", data)
		return
	}
	if _, err := s.stores.Contact.Create(r.Context(), msg); err != nil {
		s.renderError(w, http.StatusInternalServerError, err)
		return
	}
	http.Redirect(w, r, "/?sent=1#contact", http.StatusSeeOther)
}

func (s *Site) handleProjects(w http.ResponseWriter, r *http.Request) {
	var (
		list     []projects.Project
		category projects.Category
		err      error
	)
	if raw := r.URL.Query().Get("category"); raw != "" {
		category, err = projects.ParseCategory(raw)
		if err != nil {
			s.renderError(w, http.StatusBadRequest, err)
			return
		}
		list, err = s.stores.Projects.ByCategory(r.Context(), category)
	} else {
		list, err = s.stores.Projects.List(r.Context())
	}
	if err != nil {
		s.renderError(w, http.StatusInternalServerError, err)
		return
	}
	cards, err := s.cards(list)
	if err != nil {
		s.renderError(w, http.StatusInternalServerError, err)
		return
	}

	links := make([]categoryLink, 0, len(projects.Categories))
	for _, c := range projects.Categories {
		links = append(links, categoryLink{Value: c, Label: c.Label(), Active: c == category})
	}
	s.render(w, http.StatusOK, "projects", &projectsData{
		page:       s.newPage("Projects"),
		Category:   category,
		Categories: links,
		Projects:   cards,
	})
}

func (s *Site) handleProject(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		s.renderError(w, http.StatusBadRequest, errors.New("invalid id"))
		return
	}
	p, err := s.stores.Projects.GetByID(r.Context(), id)
	if err != nil {
		s.renderError(w, http.StatusInternalServerError, err)
		return
	}
	if p == nil {
		s.renderError(w, http.StatusNotFound, errors.New("project not found"))
		return
	}
	card, err := s.card(*p)
	if err != nil {
		s.renderError(w, http.StatusInternalServerError, err)
		return
	}
	repos, err := s.stores.Repositories.ByProject(r.Context(), id)
	if err != nil {
		s.renderError(w, http.StatusInternalServerError, err)
		return
	}
	s.render(w, http.StatusOK, "project", &projectData{
		page:         s.newPage(p.Title),
		Project:      card,
		Repositories: repos,
	})
}

// handleRepository renders the code viewer. Expansion and selection come
// from the open and file query parameters.
func (s *Site) handleRepository(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		s.renderError(w, http.StatusBadRequest, errors.New("invalid id"))
		return
	}
	repo, err := s.stores.Repositories.GetByID(r.Context(), id)
	if err != nil {
		s.renderError(w, http.StatusInternalServerError, err)
		return
	}
	if repo == nil {
		s.renderError(w, http.StatusNotFound, errors.New("repository not found"))
		return
	}

	data := &repositoryData{
		page:           s.newPage(repo.Name),
		Repo:           repo,
		CopyFeedbackMS: s.cfg.CopyFeedback.Milliseconds(),
	}
	viewer := codeview.NewViewer(repo.Files)
	if viewer.Empty() {
		data.Empty = true
		s.render(w, http.StatusOK, "repository", data)
		return
	}

	st := parseViewerState(repo.ID, r.URL.Query())
	st.apply(viewer)
	data.Rows = buildRows(viewer, st)

	if f, ok := viewer.Selected(); ok {
		code, err := highlightFile(s.md, f)
		if err != nil {
			s.renderError(w, http.StatusInternalServerError, err)
			return
		}
		data.File = &fileView{
			Name:        f.FileName,
			Path:        f.FilePath,
			Language:    f.Language,
			Lines:       codeview.LineCount(f),
			Raw:         f.Content,
			Highlighted: code,
			DownloadURL: fmt.Sprintf("/api/repositories/%d/download?%s", repo.ID, url.Values{"path": {f.FilePath}}.Encode()),
		}
	}
	s.render(w, http.StatusOK, "repository", data)
}

func (s *Site) cards(list []projects.Project) ([]projectCard, error) {
	out := make([]projectCard, 0, len(list))
	for _, p := range list {
		c, err := s.card(p)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func (s *Site) card(p projects.Project) (projectCard, error) {
	desc, err := renderMarkdown(s.md, p.Description)
	if err != nil {
		return projectCard{}, err
	}
	return projectCard{
		ID:            p.ID,
		Title:         p.Title,
		Description:   desc,
		CategoryLabel: p.Category.Label(),
		Tags:          p.Tags,
		Glyph:         icons.Parse(p.IconName).Glyph(),
		Gradient:      gradient(p.GradientFrom, p.GradientTo),
		GitHubURL:     p.GitHubURL,
		LiveURL:       p.LiveURL,
	}, nil
}

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{3,8}$`)

// palette maps the named gradient stops used by projects to colors.
var palette = map[string]string{
	"blue-600":    "#2563eb",
	"cyan-600":    "#0891b2",
	"purple-600":  "#9333ea",
	"pink-600":    "#db2777",
	"green-600":   "#16a34a",
	"emerald-600": "#059669",
	"orange-600":  "#ea580c",
	"red-600":     "#dc2626",
	"indigo-600":  "#4f46e5",
	"rose-600":    "#e11d48",
}

func gradient(from, to string) template.CSS {
	return template.CSS(fmt.Sprintf("background: linear-gradient(135deg, %s, %s)",
		color(from, projects.DefaultGradientFrom), color(to, projects.DefaultGradientTo)))
}

// color resolves a hex color or palette name. Anything else falls back to
// the default stop.
func color(name, fallback string) string {
	if hexColor.MatchString(name) {
		return name
	}
	if c, ok := palette[name]; ok {
		return c
	}
	if c, ok := palette[fallback]; ok {
		return c
	}
	return "#2563eb"
}

func (s *Site) render(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := s.pages[name].ExecuteTemplate(&buf, "layout", data); err != nil {
		log.Printf("site: rendering %s: %v", name, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

func (s *Site) renderError(w http.ResponseWriter, status int, err error) {
	msg := err.Error()
	if status >= http.StatusInternalServerError {
		log.Printf("site: %v", err)
		msg = "Something went wrong."
	}
	s.render(w, status, "error", &errorData{
		page:    s.newPage(http.StatusText(status)),
		Status:  status,
		Message: msg,
	})
}
