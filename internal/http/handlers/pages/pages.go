// Package pages отдаёт HTML-страницы витрины: главную, формы входа и
// регистрации, историю заказов, а также принимает формы настроек и выхода.
//
// Успешная отправка формы завершается редиректом 303, перед которым сессия
// сохраняется, чтобы следующая страница увидела изменения.
package pages

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/storefront/internal/cookie"
	"github.com/magabrotheeeer/storefront/internal/http/forms"
	"github.com/magabrotheeeer/storefront/internal/http/handlers/autherr"
	"github.com/magabrotheeeer/storefront/internal/lib/sl"
	"github.com/magabrotheeeer/storefront/internal/models"
	"github.com/magabrotheeeer/storefront/internal/services/auth"
	"github.com/magabrotheeeer/storefront/internal/services/orders"
	"github.com/magabrotheeeer/storefront/internal/session"
)

const (
	msgAuthFailed       = "Authentication failed"
	msgPasswordMismatch = "Passwords do not match"
	msgOrdersFailed     = "Failed to load orders"
	msgOrderNotFound    = "Order not found"
)

// AuthService сценарии входа, регистрации и выхода.
type AuthService interface {
	Login(ctx context.Context, sess auth.Session, flag auth.Flag, email, password string) error
	Register(ctx context.Context, sess auth.Session, flag auth.Flag, email, password string) error
	Logout(ctx context.Context, sess auth.Session, flag auth.Flag)
}

// OrdersService чтение истории заказов.
type OrdersService interface {
	List(ctx context.Context) ([]models.Order, error)
	Get(ctx context.Context, id int) (models.Order, error)
}

// Persister сохраняет сессию.
type Persister interface {
	Persist(ctx context.Context, store *session.Store) error
}

// Flags выдаёт флаг авторизации, привязанный к ответу.
type Flags interface {
	FlagFor(w http.ResponseWriter) *cookie.Flag
}

// Handler обслуживает HTML-страницы.
type Handler struct {
	log       *slog.Logger
	auth      AuthService
	orders    OrdersService
	sessions  Persister
	flags     Flags
	validate  *validator.Validate
	templates map[string]*template.Template
}

// New создаёт обработчик страниц и разбирает встроенные шаблоны.
func New(log *slog.Logger, authService AuthService, ordersService OrdersService, sessions Persister, flags Flags) (*Handler, error) {
	tpls, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	return &Handler{
		log:       log,
		auth:      authService,
		orders:    ordersService,
		sessions:  sessions,
		flags:     flags,
		validate:  validator.New(),
		templates: tpls,
	}, nil
}

// Home отдаёт главную страницу.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	store, ok := h.store(w, r, "handlers.pages.home")
	if !ok {
		return
	}
	h.render(w, r, http.StatusOK, pageHome, newView(r, "Home", store))
}

// AuthForm отдаёт форму входа или регистрации. Для других значений {type} отвечает 404.
func (h *Handler) AuthForm(w http.ResponseWriter, r *http.Request) {
	formType, ok := authType(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	store, ok := h.store(w, r, "handlers.pages.auth_form")
	if !ok {
		return
	}
	h.render(w, r, http.StatusOK, pageAuth, authView(r, store, formType, "", ""))
}

// AuthSubmit принимает форму входа или регистрации.
func (h *Handler) AuthSubmit(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.pages.auth_submit"
	log := sl.ForRequest(h.log, op, r)

	formType, ok := authType(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	store, ok := h.store(w, r, op)
	if !ok {
		return
	}

	var err error
	var email string
	if formType == "register" {
		var form forms.Registration
		if err = decodeForm(r, &form); err == nil {
			email = form.Email
			if err = forms.Validate(h.validate, form); err == nil {
				err = h.auth.Register(r.Context(), store, h.flags.FlagFor(w), form.Email, form.Password)
			}
		}
	} else {
		var form forms.Credentials
		if err = decodeForm(r, &form); err == nil {
			email = form.Email
			if err = forms.Validate(h.validate, form); err == nil {
				err = h.auth.Login(r.Context(), store, h.flags.FlagFor(w), form.Email, form.Password)
			}
		}
	}

	if err != nil {
		log.Info("form submit failed", slog.String("type", formType), sl.Err(err))
		msg := msgAuthFailed
		if errors.Is(err, forms.ErrPasswordMismatch) {
			msg = msgPasswordMismatch
		}
		h.render(w, r, submitStatus(err), pageAuth, authView(r, store, formType, email, msg))
		return
	}

	h.persist(r.Context(), log, store)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout выполняет выход по форме из шапки страницы.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.pages.logout"
	store, ok := h.store(w, r, op)
	if !ok {
		return
	}
	h.auth.Logout(r.Context(), store, h.flags.FlagFor(w))
	h.persist(r.Context(), sl.ForRequest(h.log, op, r), store)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Orders отдаёт страницу истории заказов.
func (h *Handler) Orders(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.pages.orders"
	store, ok := h.store(w, r, op)
	if !ok {
		return
	}

	v := newView(r, "Orders", store)
	list, err := h.orders.List(r.Context())
	if err != nil {
		sl.ForRequest(h.log, op, r).Error("failed to load orders", sl.Err(err))
		v.Error = msgOrdersFailed
		h.render(w, r, http.StatusBadGateway, pageOrders, v)
		return
	}
	v.Orders = list
	h.render(w, r, http.StatusOK, pageOrders, v)
}

// Order отдаёт страницу одного заказа.
func (h *Handler) Order(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.pages.order"
	store, ok := h.store(w, r, op)
	if !ok {
		return
	}

	v := newView(r, "Order", store)
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id < 0 {
		v.Error = msgOrderNotFound
		h.render(w, r, http.StatusNotFound, pageOrder, v)
		return
	}

	order, err := h.orders.Get(r.Context(), id)
	switch {
	case errors.Is(err, orders.ErrNotFound):
		v.Error = msgOrderNotFound
		h.render(w, r, http.StatusNotFound, pageOrder, v)
	case err != nil:
		sl.ForRequest(h.log, op, r).Error("failed to load order", sl.Err(err))
		v.Error = msgOrdersFailed
		h.render(w, r, http.StatusBadGateway, pageOrder, v)
	default:
		v.Order = &order
		h.render(w, r, http.StatusOK, pageOrder, v)
	}
}

// Preferences принимает форму выбора валюты и языка.
func (h *Handler) Preferences(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.pages.preferences"
	store, ok := h.store(w, r, op)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if v := r.PostForm.Get("currency"); v != "" {
		store.SetCurrency(v)
	}
	if v := r.PostForm.Get("language"); v != "" {
		store.SetLanguage(v)
	}
	h.persist(r.Context(), sl.ForRequest(h.log, op, r), store)
	http.Redirect(w, r, safeReturn(r.PostForm.Get("return_to")), http.StatusSeeOther)
}

func (h *Handler) store(w http.ResponseWriter, r *http.Request, op string) (*session.Store, bool) {
	store, ok := session.FromContext(r.Context())
	if !ok {
		sl.ForRequest(h.log, op, r).Error("session is missing in request context")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
	return store, ok
}

func (h *Handler) persist(ctx context.Context, log *slog.Logger, store *session.Store) {
	if err := h.sessions.Persist(ctx, store); err != nil {
		log.Error("failed to persist session", sl.Err(err))
	}
}

var errDecodeForm = errors.New("invalid form body")

func decodeForm(r *http.Request, v any) error {
	if err := render.DecodeForm(r.Body, v); err != nil {
		return fmt.Errorf("%w: %w", errDecodeForm, err)
	}
	return nil
}

func authType(r *http.Request) (string, bool) {
	t := chi.URLParam(r, "type")
	return t, t == "login" || t == "register"
}

func authView(r *http.Request, store *session.Store, formType, email, msg string) view {
	title := "Log in"
	if formType == "register" {
		title = "Sign up"
	}
	v := newView(r, title, store)
	v.Type = formType
	v.IsRegister = formType == "register"
	v.Email = email
	v.Error = msg
	return v
}

func submitStatus(err error) int {
	var verrs validator.ValidationErrors
	switch {
	case errors.Is(err, forms.ErrPasswordMismatch), errors.As(err, &verrs):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errDecodeForm):
		return http.StatusBadRequest
	}
	code, _ := autherr.Status(err)
	return code
}

// safeReturn допускает только локальные пути.
func safeReturn(path string) string {
	if !strings.HasPrefix(path, "/") || strings.HasPrefix(path, "//") || strings.HasPrefix(path, "/\\") {
		return "/"
	}
	return path
}
