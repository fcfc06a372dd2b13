// Package templates holds the HTML views of the console.
package templates

import (
	"embed"
	"html/template"
)

//go:embed *.html
var files embed.FS

// Page and confirmation template names.
const (
	Page          = "page.html"
	ConfirmDelete = "confirm_delete.html"
)

// Load parses every view.
func Load() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"status": func(active bool) string {
			if active {
				return "Active"
			}
			return "Inactive"
		},
	}).ParseFS(files, "*.html")
}
