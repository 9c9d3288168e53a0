package ui

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"time"
)

//go:embed templates
var templateFS embed.FS

const baseTemplate = "base.html"

var funcMap = template.FuncMap{
	"formatDate": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.UTC().Format("Mon, Jan 2 2006 · 15:04 MST")
	},
	"formatMiles": func(miles float64) string {
		return fmt.Sprintf("%.2f", miles)
	},
}

type templateSet struct {
	// pages holds one clone of the base layout per page file, keyed by file name.
	pages map[string]*template.Template
	// partials can render fragments such as "activity" on their own.
	partials *template.Template
}

var templates = mustParseTemplates()

func mustParseTemplates() templateSet {
	files, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		panic(err)
	}

	base := template.Must(template.New(baseTemplate).Funcs(funcMap).ParseFS(templateFS,
		"templates/"+baseTemplate,
		"templates/partials/*.html",
	))

	set := templateSet{
		pages:    make(map[string]*template.Template),
		partials: base,
	}
	for _, file := range files {
		name := path.Base(file)
		if name == baseTemplate {
			continue
		}

		page := template.Must(base.Clone())
		template.Must(page.ParseFS(templateFS, file))
		set.pages[name] = page
	}

	return set
}
