// Package fixtures embeds the default demo data.
package fixtures

import (
	"embed"
	"io/fs"
)

//go:embed data/*.yaml
var files embed.FS

// FS returns the embedded fixtures rooted at the data directory.
func FS() fs.FS {
	sub, err := fs.Sub(files, "data")
	if err != nil {
		// The directory is embedded at build time.
		panic(err)
	}
	return sub
}
