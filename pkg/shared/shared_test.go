package shared

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
)

func TestDecoder_TrimsStrings(t *testing.T) {
	var dto struct {
		Name string `form:"name"`
	}
	require.NoError(t, Decoder.Decode(&dto, url.Values{"name": {"  Kitchen "}}))
	require.Equal(t, "Kitchen", dto.Name)
}

func TestRedirect(t *testing.T) {
	r := httptest.NewRequest("POST", "/departments", nil)
	w := httptest.NewRecorder()
	Redirect(w, r, "/departments")
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/departments", w.Header().Get("Location"))

	r.Header.Set("HX-Request", "true")
	w = httptest.NewRecorder()
	Redirect(w, r, "/departments")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "/departments", w.Header().Get("HX-Redirect"))
}

func TestParseID(t *testing.T) {
	r := mux.SetURLVars(httptest.NewRequest("GET", "/departments/abc", nil), map[string]string{"id": "abc"})
	id, err := ParseID(r)
	require.NoError(t, err)
	require.Equal(t, "abc", id)

	_, err = ParseID(httptest.NewRequest("GET", "/departments/", nil))
	require.ErrorIs(t, err, ErrMissingID)
}
