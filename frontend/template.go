package frontend

import (
	"bytes"
	"embed"
	"html/template"
	"sync"

	"raidlytics/backend"
	"raidlytics/compare"
	"raidlytics/share"

	"github.com/pkg/errors"
)

//go:embed resources/*.tmpl.htm
var resources embed.FS

type sideData struct {
	Title string
	Side  backend.Side
}

var (
	tmplCompare = template.Must(
		template.New("compare.tmpl.htm").
			Funcs(share.TemplateFuncMap).
			Funcs(
				template.FuncMap{
					"formatNumber": compare.FormatNumber,
					"clock":        compare.FormatClock,
					"abilityShare": compare.AbilityShare,
					"hits":         compare.Hits,
					"side": func(title string, side backend.Side) sideData {
						return sideData{Title: title, Side: side}
					},
				},
			).
			ParseFS(resources, "resources/compare.tmpl.htm"),
	)

	tmplPool = sync.Pool{
		New: func() interface{} {
			b := new(bytes.Buffer)
			b.Grow(64 * 1024)

			return b
		},
	}
)

func renderComparison(c *compare.Comparison) (string, error) {
	buf := tmplPool.Get().(*bytes.Buffer)
	defer tmplPool.Put(buf)
	buf.Reset()

	err := tmplCompare.Execute(buf, c)
	if err != nil {
		return "", errors.WithStack(err)
	}
	return buf.String(), nil
}
