package controllers

import (
	"net/http"

	"github.com/benbjohnson/hashfs"
	"github.com/gorilla/mux"

	"github.com/iota-uz/restaurant-admin/pkg/application"
	"github.com/iota-uz/restaurant-admin/pkg/multifs"
)

const immutableCacheControl = "public, max-age=31536000, immutable"

type StaticFilesController struct {
	fsInstances []*hashfs.FS
	production  bool
}

func (s *StaticFilesController) Key() string {
	return "/assets"
}

// Register serves the hashed asset names forever outside development.
func (s *StaticFilesController) Register(r *mux.Router) {
	fsHandler := http.StripPrefix("/assets/", http.FileServer(multifs.New(s.fsInstances...)))
	cacheControl := immutableCacheControl
	if !s.production {
		cacheControl = "no-cache, no-store, must-revalidate"
	}
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", cacheControl)
		if cacheControl != immutableCacheControl {
			w.Header().Set("Pragma", "no-cache")
			w.Header().Set("Expires", "0")
		}
		fsHandler.ServeHTTP(w, r)
	})
	r.PathPrefix("/assets/").Handler(handler).Methods(http.MethodGet, http.MethodHead)
}

func NewStaticFilesController(fsInstances []*hashfs.FS, production bool) application.Controller {
	return &StaticFilesController{
		fsInstances: fsInstances,
		production:  production,
	}
}
