package render

import (
	"bytes"
	"html/template"
	"regexp"
	"strings"

	"github.com/smallbiznis/recibo/internal/config"
	"github.com/smallbiznis/recibo/internal/document"
)

const (
	ContentTypeHTML = "text/html; charset=utf-8"
)

var (
	cssLengthPattern = regexp.MustCompile(`^\d+(\.\d+)?(in|mm|cm|pt|px)$`)
	dataImagePattern = regexp.MustCompile(`^data:image/(png|jpeg|jpg|gif|webp);base64,[A-Za-z0-9+/=\r\n]+$`)
)

// Page is the physical sheet of the print projection.
type Page struct {
	Width  template.CSS
	Height template.CSS
	Margin template.CSS
}

// PageFromLayout sanitizes configured lengths, falling back to the
// defaults for anything that is not a plain CSS length.
func PageFromLayout(l config.PageLayout) Page {
	def := config.DefaultLayout().Page
	return Page{
		Width:  cssLength(l.Width, def.Width),
		Height: cssLength(l.Height, def.Height),
		Margin: cssLength(l.Margin, def.Margin),
	}
}

func DefaultPage() Page {
	return PageFromLayout(config.DefaultLayout().Page)
}

type printData struct {
	Document document.Document
	Page     Page
}

// HTMLRenderer projects an assembled document to HTML. Screen and print
// output come from the same section templates.
type HTMLRenderer struct {
	tpl *template.Template
}

func NewHTMLRenderer() *HTMLRenderer {
	funcs := template.FuncMap{
		"imageSrc": imageSrc,
	}
	tpl := template.Must(template.New("receipt").Funcs(funcs).Parse(sectionsTemplate))
	template.Must(tpl.Parse(screenTemplate))
	template.Must(tpl.Parse(printTemplate))
	return &HTMLRenderer{tpl: tpl}
}

// RenderScreen returns an embeddable fragment for the interactive preview.
func (r *HTMLRenderer) RenderScreen(doc document.Document) (string, error) {
	var buf bytes.Buffer
	if err := r.tpl.ExecuteTemplate(&buf, "screen", doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderPrint returns a standalone page sized for the print surface.
func (r *HTMLRenderer) RenderPrint(doc document.Document, page Page) (string, error) {
	var buf bytes.Buffer
	if err := r.tpl.ExecuteTemplate(&buf, "print", printData{Document: doc, Page: page}); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func cssLength(value, fallback string) template.CSS {
	value = strings.TrimSpace(value)
	if cssLengthPattern.MatchString(value) {
		return template.CSS(value)
	}
	return template.CSS(fallback)
}

// imageSrc admits inline base64 images and https URLs; anything else is dropped.
func imageSrc(ref string) template.URL {
	ref = strings.TrimSpace(ref)
	switch {
	case ref == "":
		return ""
	case dataImagePattern.MatchString(ref):
		return template.URL(ref)
	case strings.HasPrefix(ref, "https://"):
		return template.URL(ref)
	}
	return ""
}
