package assets

import (
	"embed"

	"github.com/benbjohnson/hashfs"
)

//go:embed static/*
var FS embed.FS

var HashFS = hashfs.NewFS(FS)

// Path returns the content-hashed URL of a static file, e.g. "/assets/static/js/app.3f2a...js".
func Path(name string) string {
	return "/assets/" + HashFS.HashName(name)
}
