// Package assets carries the site's static files, compiled into the binary.
package assets

import "embed"

//go:embed css js
var FS embed.FS
