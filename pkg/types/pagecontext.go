package types

import (
	"net/url"
	"strings"

	"github.com/iota-uz/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	"github.com/iota-uz/restaurant-admin/pkg/authz"
)

// PageContextProvider is what page templates know about the current request.
type PageContextProvider interface {
	T(key string, args ...map[string]interface{}) string
	GetLocale() language.Tag
	GetURL() *url.URL
	IsActive(href string) bool
	CanAuthz(object, action string) bool
	UserType() string
}

type PageContext struct {
	locale    language.Tag
	url       *url.URL
	localizer *i18n.Localizer
	userType  string
	authz     *authz.ViewState
}

var _ PageContextProvider = (*PageContext)(nil)

func NewPageContext(locale language.Tag, u *url.URL, localizer *i18n.Localizer, userType string, state *authz.ViewState) *PageContext {
	return &PageContext{
		locale:    locale,
		url:       u,
		localizer: localizer,
		userType:  userType,
		authz:     state,
	}
}

// T falls back to the message ID when the translation is missing.
func (p *PageContext) T(k string, args ...map[string]interface{}) string {
	cfg := &i18n.LocalizeConfig{MessageID: k}
	if len(args) > 0 {
		cfg.TemplateData = args[0]
	}
	if p.localizer == nil {
		return k
	}
	result, err := p.localizer.Localize(cfg)
	if err != nil {
		return k
	}
	return result
}

func (p *PageContext) GetLocale() language.Tag {
	return p.locale
}

func (p *PageContext) GetURL() *url.URL {
	return p.url
}

// IsActive reports whether href is the current page or one of its parents,
// so /orders stays highlighted on /orders/12.
func (p *PageContext) IsActive(href string) bool {
	if p.url == nil || href == "" {
		return false
	}
	path := p.url.Path
	if href == "/" {
		return path == "/"
	}
	return path == href || strings.HasPrefix(path, strings.TrimSuffix(href, "/")+"/")
}

func (p *PageContext) CanAuthz(object, action string) bool {
	return p.authz.Can(object, authz.NormalizeAction(action))
}

func (p *PageContext) UserType() string {
	return p.userType
}
