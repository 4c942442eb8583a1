// Package templates holds the console's server-rendered pages.
package templates

import (
	"embed"
	"html/template"

	"github.com/viccjiang/hexadmin/pkg/view"
)

//go:embed *.html
var files embed.FS

// Funcs are the helpers available inside every page.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"price":        view.FormatPrice,
		"enabledLabel": view.EnabledLabel,
		"inc":          func(i int) int { return i + 1 },
	}
}

// Parse loads every page; it fails only if a template is malformed.
func Parse() (*template.Template, error) {
	return template.New("").Funcs(Funcs()).ParseFS(files, "*.html")
}
