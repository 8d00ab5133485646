package intl

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/iota-uz/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	"github.com/iota-uz/restaurant-admin/pkg/constants"
)

var ErrNoLocalizer = errors.New("localizer not found")

func WithLocalizer(ctx context.Context, l *i18n.Localizer) context.Context {
	return context.WithValue(ctx, constants.LocalizerKey, l)
}

func UseLocalizer(ctx context.Context) (*i18n.Localizer, bool) {
	l, ok := ctx.Value(constants.LocalizerKey).(*i18n.Localizer)
	return l, ok
}

func WithLocale(ctx context.Context, tag language.Tag) context.Context {
	return context.WithValue(ctx, constants.LocaleKey, tag)
}

func UseLocale(ctx context.Context) (language.Tag, bool) {
	tag, ok := ctx.Value(constants.LocaleKey).(language.Tag)
	return tag, ok
}

// MustT translates key with the localizer in ctx and panics when it is missing.
func MustT(ctx context.Context, key string) string {
	l, ok := UseLocalizer(ctx)
	if !ok {
		panic(ErrNoLocalizer)
	}
	return l.MustLocalize(&i18n.LocalizeConfig{MessageID: key})
}

// T is MustT without the panics: the key itself is returned when it cannot be translated.
func T(ctx context.Context, key string, data ...map[string]interface{}) string {
	l, ok := UseLocalizer(ctx)
	if !ok {
		return key
	}
	cfg := &i18n.LocalizeConfig{MessageID: key}
	if len(data) > 0 {
		cfg.TemplateData = data[0]
	}
	msg, err := l.Localize(cfg)
	if err != nil {
		return key
	}
	return msg
}
