package authorization

import (
	"context"
	"io"
	"sort"
	"strings"

	"github.com/a-h/templ"
	icons "github.com/iota-uz/icons/phosphor"

	"github.com/iota-uz/restaurant-admin/components"
	"github.com/iota-uz/restaurant-admin/pkg/authz"
)

func resolveSubject(state *authz.ViewState, provided string) string {
	subject := strings.TrimSpace(provided)
	if subject == "" && state != nil {
		subject = state.Subject
	}
	if subject == "" {
		subject = authz.SubjectForUserType("")
	}
	return subject
}

// grantedActions lists the actions state holds on object, sorted.
func grantedActions(state *authz.ViewState, object string) []string {
	if state == nil {
		return nil
	}
	var out []string
	for _, action := range []string{
		authz.ActionView, authz.ActionCreate, authz.ActionUpdate, authz.ActionDelete, authz.ActionExport,
	} {
		if state.Can(object, action) {
			out = append(out, action)
		}
	}
	sort.Strings(out)
	return out
}

func Unauthorized(p *UnauthorizedProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		title := p.Title
		if title == "" {
			title = "Unauthorized"
		}
		subject := resolveSubject(p.State, p.Subject)
		operation := p.Object + " " + authz.NormalizeAction(p.Action)

		hw := components.NewWriter(w)
		hw.Raw(`<section class="w-full max-w-xl rounded-lg border border-gray-200 bg-white p-6" data-authz-denied`).
			Attr("data-object", p.Object).
			Attr("data-action", authz.NormalizeAction(p.Action)).
			Raw(">")
		hw.Raw(`<div class="flex items-center gap-2 text-red-700">`).
			Component(ctx, icons.Warning(icons.Props{Size: "24"})).
			Raw(`<h2 class="text-lg font-semibold">`).Text(title).Raw("</h2></div>")
		if p.Message != "" {
			hw.Raw(`<p class="mt-2 text-sm text-gray-700">`).Text(p.Message).Raw("</p>")
		}
		hw.Raw(`<dl class="mt-4 grid grid-cols-3 gap-2 text-sm">`)
		hw.Raw(`<dt class="text-gray-500">Operation</dt><dd class="col-span-2 font-mono">`).Text(operation).Raw("</dd>")
		hw.Raw(`<dt class="text-gray-500">Subject</dt><dd class="col-span-2 font-mono">`).Text(subject).Raw("</dd>")
		if granted := grantedActions(p.State, p.Object); len(granted) > 0 {
			hw.Raw(`<dt class="text-gray-500">Granted</dt><dd class="col-span-2 font-mono">`).
				Text(strings.Join(granted, ", ")).Raw("</dd>")
		}
		if p.RequestID != "" {
			hw.Raw(`<dt class="text-gray-500">Request</dt><dd class="col-span-2 font-mono">`).Text(p.RequestID).Raw("</dd>")
		}
		hw.Raw("</dl></section>")
		return hw.Err()
	})
}
