package httpserver

import (
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
)

// TemplateRenderer adapts a parsed template set to echo's Renderer.
type TemplateRenderer struct {
	Templates *template.Template
}

func (t *TemplateRenderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return t.Templates.ExecuteTemplate(w, name, data)
}
