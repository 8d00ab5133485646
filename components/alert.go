package components

import (
	"context"
	"io"

	"github.com/a-h/templ"
	icons "github.com/iota-uz/icons/phosphor"
)

// ErrorBanner renders nothing when message is empty.
func ErrorBanner(title, message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if message == "" {
			return nil
		}
		hw := NewWriter(w)
		hw.Raw(`<div role="alert" class="flex items-start gap-3 rounded-md border border-red-200 bg-red-50 p-3 text-sm text-red-800" data-alert="error">`)
		hw.Component(ctx, icons.Warning(icons.Props{Size: "20"}))
		hw.Raw(`<div><p class="font-semibold">`).Text(title).Raw("</p><p>").Text(message).Raw("</p></div></div>")
		return hw.Err()
	})
}

// ToastContainer is the mount point the notify event handler appends toasts to.
func ToastContainer() templ.Component {
	return templ.Raw(`<div id="toasts" class="fixed bottom-4 right-4 z-50 flex flex-col gap-2" aria-live="polite"></div>`)
}
