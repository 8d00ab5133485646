package controllers

import (
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/gorilla/mux"

	"github.com/iota-uz/restaurant-admin/modules/restaurant/presentation/controllers/dtos"
	sessionpage "github.com/iota-uz/restaurant-admin/modules/restaurant/presentation/templates/pages/session"
	"github.com/iota-uz/restaurant-admin/modules/restaurant/presentation/viewmodels"
	"github.com/iota-uz/restaurant-admin/pkg/application"
	"github.com/iota-uz/restaurant-admin/pkg/composables"
	"github.com/iota-uz/restaurant-admin/pkg/intl"
	"github.com/iota-uz/restaurant-admin/pkg/middleware"
	"github.com/iota-uz/restaurant-admin/pkg/session"
	"github.com/iota-uz/restaurant-admin/pkg/shared"
)

const defaultLandingPath = "/orders"

type SessionControllerOptions struct {
	Store     session.Store
	CookieKey string
	Duration  time.Duration
	// Secure marks the cookie https-only.
	Secure bool
}

// SessionController stores the backend token, user type and language picked
// on the session form. The token is obtained elsewhere; nothing is verified here.
type SessionController struct {
	app  application.Application
	opts SessionControllerOptions
}

func NewSessionController(app application.Application, opts SessionControllerOptions) application.Controller {
	if opts.CookieKey == "" {
		opts.CookieKey = "sid"
	}
	if opts.Duration <= 0 {
		opts.Duration = 720 * time.Hour
	}
	return &SessionController{app: app, opts: opts}
}

func (c *SessionController) Key() string {
	return sessionPath
}

func (c *SessionController) Register(r *mux.Router) {
	router := r.PathPrefix(sessionPath).Subrouter()
	router.Use(middleware.ProvideLocalizer(c.app))
	router.HandleFunc("", c.Get).Methods(http.MethodGet)
	router.HandleFunc("", c.Post).Methods(http.MethodPost)
	router.HandleFunc("/logout", c.Logout).Methods(http.MethodPost)

	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, defaultLandingPath, http.StatusFound)
	}).Methods(http.MethodGet)
}

func (c *SessionController) props(r *http.Request) *viewmodels.SessionPageProps {
	props := &viewmodels.SessionPageProps{
		UserType:  dtos.UserTypes[len(dtos.UserTypes)-1],
		Language:  "en",
		UserTypes: dtos.UserTypes,
		Languages: supportedLanguageCodes(c.app),
		Next:      r.URL.Query().Get("next"),
		Errors:    map[string]string{},
	}
	if tag, ok := intl.UseLocale(r.Context()); ok {
		props.Language = tag.String()
	}
	if s, err := composables.UseSession(r.Context()); err == nil {
		props.UserType = s.UserType
		props.Language = s.Language
		props.LoggedInAs = s.UserType
	}
	return props
}

func supportedLanguageCodes(app application.Application) []string {
	langs := intl.GetSupportedLanguages(app.GetSupportedLanguages())
	codes := make([]string, 0, len(langs))
	for _, l := range langs {
		codes = append(codes, l.Code)
	}
	return codes
}

func (c *SessionController) Get(w http.ResponseWriter, r *http.Request) {
	templ.Handler(sessionpage.Index(c.props(r)), templ.WithStreaming()).ServeHTTP(w, r)
}

func (c *SessionController) Post(w http.ResponseWriter, r *http.Request) {
	dto, err := composables.UseForm(&dtos.SessionDTO{}, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if errorsMap, ok := dto.Ok(r.Context()); !ok {
		props := c.props(r)
		props.Token = dto.Token
		props.UserType = dto.UserType
		props.Language = dto.Language
		props.Next = dto.Next
		props.Errors = errorsMap
		templ.Handler(sessionpage.Index(props), templ.WithStatus(http.StatusUnprocessableEntity)).ServeHTTP(w, r)
		return
	}

	ctx := r.Context()
	logger := composables.UseLogger(ctx)
	if old, err := composables.UseSession(ctx); err == nil {
		if err := c.opts.Store.Delete(ctx, old.ID); err != nil {
			logger.WithError(err).Warn("failed to drop previous session")
		}
	}
	s := session.New(dto.Token, dto.UserType, dto.Language, c.opts.Duration)
	if err := c.opts.Store.Save(ctx, s); err != nil {
		logger.WithError(err).Error("failed to save session")
		http.Error(w, "failed to save session", http.StatusInternalServerError)
		return
	}
	entry := logger.WithField("userType", s.UserType)
	if ip, ok := composables.UseIP(ctx); ok {
		entry = entry.WithField("ip", ip)
	}
	entry.Info("session started")
	http.SetCookie(w, session.Cookie(c.opts.CookieKey, s, c.opts.Secure))
	shared.Redirect(w, r, dto.SafeNext(defaultLandingPath))
}

func (c *SessionController) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if s, err := composables.UseSession(ctx); err == nil {
		if err := c.opts.Store.Delete(ctx, s.ID); err != nil {
			composables.UseLogger(ctx).WithError(err).Warn("failed to delete session")
		}
	}
	http.SetCookie(w, session.ExpiredCookie(c.opts.CookieKey))
	shared.Redirect(w, r, sessionPath)
}
