package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateRendererIgnoresWorkingDirectory(t *testing.T) {
	t.Chdir(t.TempDir())

	renderer, err := NewTemplateRenderer()
	require.NoError(t, err)

	for _, name := range []string{TemplateIndex, TemplateCalculator, TemplateDashboard} {
		out, err := renderer.Render(name, map[string]any{"base_path": "/"})
		require.NoError(t, err, name)
		assert.Contains(t, out, "<!DOCTYPE html>", name)
	}
}
