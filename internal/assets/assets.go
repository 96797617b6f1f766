// Package assets holds the static files served under /static and embedded
// into featured badges.
package assets

import (
	"embed"
	"io/fs"
	"os"
)

//go:embed static
var embedded embed.FS

// FS returns the asset filesystem rooted at the logo files. A non-empty dir
// overrides the embedded copy.
func FS(dir string) fs.FS {
	if dir != "" {
		return os.DirFS(dir)
	}
	sub, err := fs.Sub(embedded, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
