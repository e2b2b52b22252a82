package export

import (
	"strings"
	"testing"

	"github.com/duraiaravindh/parcel-landscore/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderHTMLReport(t *testing.T) {
	html, err := RenderHTML(sampleDetail())
	require.NoError(t, err)

	assert.Contains(t, html, "Parcel Report")
	assert.Contains(t, html, "R123456")
	assert.Contains(t, html, "SMITH JOHN")
	assert.Contains(t, html, "improvement[2].value")
	assert.NotContains(t, html, "No attribute record")
}

func TestRenderHTMLNotFound(t *testing.T) {
	html, err := RenderHTML(models.NotFoundDetail("R999"))
	require.NoError(t, err)

	assert.Contains(t, html, "No attribute record")
	assert.False(t, strings.Contains(html, "owner_name"), "field table omitted for missing records")
}

func TestRendererNotBusyInitially(t *testing.T) {
	r := NewPDFRenderer("")
	assert.False(t, r.Busy())
}
