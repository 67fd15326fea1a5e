package preview

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

// TemplatesFS exposes the built-in preview templates so callers can extend or
// override them.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}
