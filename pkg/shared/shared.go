package shared

import (
	"net/http"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-playground/form"
	"github.com/gorilla/mux"

	"github.com/iota-uz/restaurant-admin/pkg/htmx"
)

var Decoder = newDecoder()

var ErrMissingID = errors.New("missing id in route")

func newDecoder() *form.Decoder {
	d := form.NewDecoder()
	d.RegisterCustomTypeFunc(func(vals []string) (interface{}, error) {
		return strings.TrimSpace(vals[0]), nil
	}, "")
	return d
}

// Redirect sends the browser to path, through HX-Redirect for htmx requests.
func Redirect(w http.ResponseWriter, r *http.Request, path string) {
	if htmx.IsHxRequest(r) {
		htmx.Redirect(w, path)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, path, http.StatusFound)
}

// ParseID returns the {id} route variable. Backend ids are opaque strings.
func ParseID(r *http.Request) (string, error) {
	id := strings.TrimSpace(mux.Vars(r)["id"])
	if id == "" {
		return "", ErrMissingID
	}
	return id, nil
}
