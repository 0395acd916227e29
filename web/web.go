// Package web holds the embedded storefront pages.
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*
var FS embed.FS

func Templates() *template.Template {
	return template.Must(template.ParseFS(FS, "templates/*.html"))
}
