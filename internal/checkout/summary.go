package checkout

import (
	"bytes"
	"embed"
	"html/template"

	"github.com/fjod/wavewonders/internal/domain"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

//go:embed templates/order.html
var templateFS embed.FS

// Renderer turns an order summary into the HTML email body. Customer input is
// escaped by html/template.
type Renderer struct {
	tmpl *template.Template
}

func NewRenderer() (*Renderer, error) {
	funcs := template.FuncMap{
		"price": func(p float64) string {
			return decimal.NewFromFloat(p).String()
		},
	}
	tmpl, err := template.New("order.html").Funcs(funcs).ParseFS(templateFS, "templates/order.html")
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse order template")
	}
	return &Renderer{tmpl: tmpl}, nil
}

func (r *Renderer) Render(s domain.OrderSummary) (string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "order.html", s); err != nil {
		return "", errors.Wrap(err, "failed to execute order template")
	}
	return buf.String(), nil
}
