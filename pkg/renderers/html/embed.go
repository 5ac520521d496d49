package html

import "embed"

//go:embed templates/*.tpl
var templatesFS embed.FS
