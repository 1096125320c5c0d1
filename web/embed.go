// Package web embeds the dashboard assets served by the API server.
package web

import (
	"embed"
	"io/fs"
)

//go:embed all:static
var staticFS embed.FS

// DistFS returns the dashboard filesystem rooted at the asset directory.
func DistFS() fs.FS {
	dist, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return dist
}
