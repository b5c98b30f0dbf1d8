package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPageContent_Defaults(t *testing.T) {
	app := newTestApp(t)

	recorder := app.do(t, "GET", "/api/v1/pages/content", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	page := decodeBody[PageContentResponse](t, recorder)
	assert.Equal(t, "Al Safa", page.Text["brand_name_primary"])
	assert.Equal(t, "Discover Your Signature Scent", page.Text["hero_title"])
	assert.Len(t, page.Links["shop"], 5)
	assert.True(t, page.Sections["hero"])
	assert.True(t, page.Sections["featured"])
}

func TestGetPageContent_OverridesWin(t *testing.T) {
	app := newTestApp(t)

	recorder := app.do(t, "POST", "/api/v1/admin/content", map[string]string{
		"hero_title":             "Summer Collection",
		"section_visible_hero":   "false",
		"footer_links_company":   `[{"label":"Team","href":"/team"}]`,
		"section_visible_custom": "true",
	})
	require.Equal(t, http.StatusOK, recorder.Code)

	page := decodeBody[PageContentResponse](t, app.do(t, "GET", "/api/v1/pages/content", nil))
	assert.Equal(t, "Summer Collection", page.Text["hero_title"])
	assert.Equal(t, "Al Safa", page.Text["brand_name_primary"], "untouched keys keep defaults")
	assert.False(t, page.Sections["hero"])
	assert.True(t, page.Sections["custom"], "unknown flags are surfaced too")
	require.Len(t, page.Links["company"], 1)
	assert.Equal(t, "Team", page.Links["company"][0].Label)
}

func TestGetPageContent_MalformedLinksFallBack(t *testing.T) {
	app := newTestApp(t)

	recorder := app.do(t, "POST", "/api/v1/admin/content", map[string]string{
		"footer_links_support": "{not json",
	})
	require.Equal(t, http.StatusOK, recorder.Code)

	page := decodeBody[PageContentResponse](t, app.do(t, "GET", "/api/v1/pages/content", nil))
	assert.Len(t, page.Links["support"], 3, "malformed override falls back to defaults")
}
