package middleware

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/iota-uz/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	"github.com/iota-uz/restaurant-admin/pkg/composables"
	"github.com/iota-uz/restaurant-admin/pkg/intl"
)

// Application is the part of the app the localizer needs.
type Application interface {
	Bundle() *i18n.Bundle
	GetSupportedLanguages() []string
}

// localeResolver picks the UI language: the one stored with the session
// first, then Accept-Language, then English.
type localeResolver struct {
	supported []language.Tag
	matcher   language.Matcher
}

func newLocaleResolver(codes []string) *localeResolver {
	langs := intl.GetSupportedLanguages(codes)
	supported := make([]language.Tag, 0, len(langs))
	for _, l := range langs {
		supported = append(supported, l.Tag)
	}
	if len(supported) == 0 {
		supported = []language.Tag{language.English}
	}
	return &localeResolver{supported: supported, matcher: language.NewMatcher(supported)}
}

func (lr *localeResolver) match(candidates ...language.Tag) language.Tag {
	if len(candidates) == 0 {
		candidates = []language.Tag{language.English}
	}
	_, idx, _ := lr.matcher.Match(candidates...)
	return lr.supported[idx]
}

func (lr *localeResolver) resolve(r *http.Request) language.Tag {
	if s, err := composables.UseSession(r.Context()); err == nil && s.Language != "" {
		if tag, err := language.Parse(s.Language); err == nil {
			return lr.match(tag)
		}
	}
	tags, _, err := language.ParseAcceptLanguage(r.Header.Get("Accept-Language"))
	if err != nil {
		return lr.match()
	}
	return lr.match(tags...)
}

func ProvideLocalizer(app Application) mux.MiddlewareFunc {
	bundle := app.Bundle()
	resolver := newLocaleResolver(app.GetSupportedLanguages())
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			locale := resolver.resolve(r)
			ctx := intl.WithLocalizer(r.Context(), i18n.NewLocalizer(bundle, locale.String()))
			ctx = intl.WithLocale(ctx, locale)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
