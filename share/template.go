package share

import (
	"html/template"

	"github.com/dustin/go-humanize"
)

var (
	TemplateFuncMap = template.FuncMap{
		"fn": func(value interface{}) string {
			switch e := value.(type) {
			case float32:
				return Comma(float64(e))
			case float64:
				return Comma(e)
			case int:
				return humanize.Comma(int64(e))
			case int64:
				return humanize.Comma(e)
			}
			return ""
		},
		"ordinal": humanize.Ordinal,
	}
)
