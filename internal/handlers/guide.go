package handlers

import (
	"html"
	"net/http"
	"strings"

	"stipendionetto/internal/guide"

	"github.com/go-chi/chi/v5"
)

// GuideListHandler renders the index of the calculator guides.
func GuideListHandler(w http.ResponseWriter, r *http.Request) {
	var sb strings.Builder
	sb.WriteString("<h1>Guide ai calcoli</h1>\n<ul class=\"lista\">\n")
	for _, g := range guide.GetAll() {
		sb.WriteString(`<li><a href="/guide/` + html.EscapeString(g.Slug) + `">` + html.EscapeString(g.Titolo) + `</a>`)
		if g.Descrizione != "" {
			sb.WriteString("<small>" + html.EscapeString(g.Descrizione) + "</small>")
		}
		sb.WriteString("</li>\n")
	}
	sb.WriteString("</ul>")
	scriviHTML(w, http.StatusOK, "Guide ai calcoli", sb.String())
}

// GuidePageHandler renders /guide/{slug}.
func GuidePageHandler(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if slug == "" {
		slug = strings.Trim(strings.TrimPrefix(r.URL.Path, "/guide/"), "/")
	}
	g := guide.GetBySlug(slug)
	if g == nil {
		NotFoundHandler(w, r)
		return
	}
	w.Header().Set("Cache-Control", "public, max-age=3600")
	scriviHTML(w, http.StatusOK, g.Titolo, "<h1>"+html.EscapeString(g.Titolo)+"</h1>\n"+g.HTMLContent)
}

// GuideAPIHandler returns the guide metadata as JSON.
func GuideAPIHandler(w http.ResponseWriter, r *http.Request) {
	scriviJSON(w, http.StatusOK, guide.GetAll())
}
