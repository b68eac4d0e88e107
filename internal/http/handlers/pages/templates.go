package pages

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/storefront/internal/lib/sl"
	"github.com/magabrotheeeer/storefront/internal/models"
	"github.com/magabrotheeeer/storefront/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	pageHome   = "home.html"
	pageAuth   = "auth.html"
	pageOrders = "orders.html"
	pageOrder  = "order.html"
)

var funcs = template.FuncMap{
	"flag": models.FlagFor,
	"money": func(amount float64, currency string) string {
		return fmt.Sprintf("%.2f %s", amount, currency)
	},
}

func parseTemplates() (map[string]*template.Template, error) {
	out := make(map[string]*template.Template)
	for _, page := range []string{pageHome, pageAuth, pageOrders, pageOrder} {
		t, err := template.New(page).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", page, err)
		}
		out[page] = t
	}
	return out, nil
}

// view данные для шаблона страницы.
type view struct {
	Title      string
	Path       string
	State      session.State
	Currencies []models.Option
	Languages  []models.Option

	Type       string
	IsRegister bool
	Email      string
	Error      string

	Orders []models.Order
	Order  *models.Order
}

func newView(r *http.Request, title string, store *session.Store) view {
	return view{
		Title:      title,
		Path:       r.URL.Path,
		State:      store.Snapshot(),
		Currencies: models.Currencies(),
		Languages:  models.Languages(),
	}
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, page string, v view) {
	var buf bytes.Buffer
	if err := h.templates[page].ExecuteTemplate(&buf, "layout", v); err != nil {
		sl.ForRequest(h.log, "handlers.pages.render", r).Error("failed to render page",
			slog.String("page", page),
			sl.Err(err),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	render.Status(r, status)
	render.HTML(w, r, buf.String())
}
