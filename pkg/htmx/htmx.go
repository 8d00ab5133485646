// Package htmx reads and writes the htmx request and response headers.
package htmx

import (
	"encoding/json"
	"net/http"
)

const (
	headerRequest    = "HX-Request"
	headerTarget     = "HX-Target"
	headerCurrentURL = "HX-Current-URL"
	headerPushURL    = "HX-Push-Url"
	headerReplaceURL = "HX-Replace-Url"
	headerRedirect   = "HX-Redirect"
	headerRefresh    = "HX-Refresh"
	headerTrigger    = "HX-Trigger"
	headerRetarget   = "HX-Retarget"
	headerReswap     = "HX-Reswap"
)

func IsHxRequest(r *http.Request) bool {
	return r.Header.Get(headerRequest) == "true"
}

func Target(r *http.Request) string {
	return r.Header.Get(headerTarget)
}

func CurrentUrl(r *http.Request) string {
	return r.Header.Get(headerCurrentURL)
}

func PushUrl(w http.ResponseWriter, url string) {
	w.Header().Set(headerPushURL, url)
}

func ReplaceUrl(w http.ResponseWriter, url string) {
	w.Header().Set(headerReplaceURL, url)
}

func Redirect(w http.ResponseWriter, url string) {
	w.Header().Set(headerRedirect, url)
}

func Refresh(w http.ResponseWriter) {
	w.Header().Set(headerRefresh, "true")
}

func Retarget(w http.ResponseWriter, selector, swap string) {
	w.Header().Set(headerRetarget, selector)
	if swap != "" {
		w.Header().Set(headerReswap, swap)
	}
}

// SetTrigger adds a client event to HX-Trigger. detail is raw JSON; several
// events set on the same response are merged into one header.
func SetTrigger(w http.ResponseWriter, event, detail string) {
	triggers := map[string]json.RawMessage{}
	if existing := w.Header().Get(headerTrigger); existing != "" {
		if err := json.Unmarshal([]byte(existing), &triggers); err != nil {
			triggers = map[string]json.RawMessage{existing: json.RawMessage("null")}
		}
	}
	if detail == "" {
		detail = "null"
	}
	triggers[event] = json.RawMessage(detail)
	raw, err := json.Marshal(triggers)
	if err != nil {
		return
	}
	w.Header().Set(headerTrigger, string(raw))
}

type toast struct {
	Variant string `json:"variant"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

func notify(w http.ResponseWriter, variant, title, message string) {
	raw, err := json.Marshal(toast{Variant: variant, Title: title, Message: message})
	if err != nil {
		return
	}
	SetTrigger(w, "notify", string(raw))
}

func ToastSuccess(w http.ResponseWriter, title, message string) {
	notify(w, "success", title, message)
}

func ToastError(w http.ResponseWriter, title, message string) {
	notify(w, "error", title, message)
}
