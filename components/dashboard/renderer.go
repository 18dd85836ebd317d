package dashboard

import "io"

// Template names rendered by the web transport.
const (
	TemplateIndex      = "index.html"
	TemplateCalculator = "calculator.html"
	TemplateDashboard  = "dashboard.html"
)

// Renderer describes the template renderer contract needed by the transport.
type Renderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
}
