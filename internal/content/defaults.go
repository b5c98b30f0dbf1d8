package content

// Link is one footer navigation entry, stored as a JSON array under the
// footer_links_* keys.
type Link struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

// Compiled-in page defaults. Overrides from the store win; these render
// whenever no override exists or the initial load failed.
var (
	DefaultCompanyLinks = []Link{
		{Label: "About Us", Href: "/about"},
		{Label: "Contact", Href: "/contact"},
		{Label: "Store Locator", Href: "/contact"},
		{Label: "Careers", Href: "/about"},
	}

	DefaultShopLinks = []Link{
		{Label: "All Perfumes", Href: "/shop-catalog"},
		{Label: "Floral", Href: "/shop-catalog?filters=Floral"},
		{Label: "Woody", Href: "/shop-catalog?filters=Woody"},
		{Label: "Fresh", Href: "/shop-catalog?filters=Fresh"},
		{Label: "Oriental", Href: "/shop-catalog?filters=Oriental"},
	}

	DefaultSupportLinks = []Link{
		{Label: "Shipping Info", Href: "/about"},
		{Label: "Returns", Href: "/about"},
		{Label: "FAQ", Href: "/contact"},
	}
)

// HomeDefaults are the text defaults of the home page, keyed by content
// key. Components that need a key not listed here pass their own default
// at the call site.
var HomeDefaults = map[string]string{
	"brand_name_primary":     "Al Safa",
	"brand_name_accent":      "Global",
	"hero_title":             "Discover Your Signature Scent",
	"hero_subtitle":          "Explore our curated collection of luxury perfumes crafted by master perfumers from around the world",
	"hero_button_text":       "Explore Collection",
	"featured_title":         "Featured Collection",
	"featured_subtitle":      "Handpicked luxury fragrances that define elegance and sophistication",
	"nav_home":               "Home",
	"nav_shop":               "Shop",
	"nav_about":              "About",
	"nav_contact":            "Contact",
	"footer_tagline":         "Discover luxury fragrances crafted by master perfumers. Each scent tells a unique story of elegance and sophistication.",
	"footer_copyright_text":  "Al Safa Global e-commerce",
	"footer_heading_shop":    "Shop",
	"footer_heading_company": "Company",
	"footer_heading_support": "Support",
	"footer_privacy":         "Privacy Policy",
	"footer_terms":           "Terms of Service",
}
