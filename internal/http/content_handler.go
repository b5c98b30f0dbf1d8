package http

import (
	"net/http"
	"strings"

	"github.com/alsafaglobal/alsafaglobal-e-commerce/internal/content"
)

// pageSections are the home page blocks that can be toggled from the
// admin. Unknown flags stored under the prefix are returned as well.
var pageSections = []string{"hero", "featured", "newsletter", "footer"}

type ContentHandler struct {
	store *content.Store
}

func NewContentHandler(store *content.Store) *ContentHandler {
	return &ContentHandler{store: store}
}

// PageContentResponse is the fully resolved page payload: defaults
// merged with overrides, so clients never need fallback logic.
type PageContentResponse struct {
	Text     map[string]string         `json:"text"`
	Links    map[string][]content.Link `json:"links"`
	Sections map[string]bool           `json:"sections"`
}

func (h *ContentHandler) GetPageContent(w http.ResponseWriter, r *http.Request) {
	text := make(map[string]string, len(content.HomeDefaults))
	for key, def := range content.HomeDefaults {
		text[key] = h.store.Text(key, def)
	}

	links := map[string][]content.Link{
		"company": content.StructuredOr(h.store, "footer_links_company", content.DefaultCompanyLinks),
		"shop":    content.StructuredOr(h.store, "footer_links_shop", content.DefaultShopLinks),
		"support": content.StructuredOr(h.store, "footer_links_support", content.DefaultSupportLinks),
	}

	sections := make(map[string]bool, len(pageSections))
	for _, name := range pageSections {
		sections[name] = h.store.SectionVisible(name)
	}
	for key := range h.store.All() {
		if name, ok := strings.CutPrefix(key, content.SectionVisiblePrefix); ok {
			sections[name] = h.store.SectionVisible(name)
		}
	}

	respondJSON(w, http.StatusOK, PageContentResponse{
		Text:     text,
		Links:    links,
		Sections: sections,
	})
}
