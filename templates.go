package formspec

import (
	"io/fs"

	"github.com/goliatone/go-formspec/pkg/renderers/preview"
)

// EmbeddedTemplates exposes the built-in preview templates so callers can
// reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return preview.TemplatesFS()
}
