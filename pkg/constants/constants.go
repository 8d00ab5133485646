package constants

import (
	"github.com/go-playground/validator/v10"
)

type ContextKey string

const (
	AppKey       ContextKey = "app"
	HeadKey      ContextKey = "head"
	LoggerKey    ContextKey = "logger"
	SessionKey   ContextKey = "session"
	ParamsKey    ContextKey = "params"
	PageContext  ContextKey = "pageContext"
	NavItemsKey  ContextKey = "navItems"
	LocalizerKey ContextKey = "localizer"
	LocaleKey    ContextKey = "locale"
	RequestStart ContextKey = "requestStart"
	AuthTokenKey ContextKey = "authToken"
)

var Validate = validator.New(validator.WithRequiredStructEnabled())
