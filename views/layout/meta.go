package layout

import (
	"encoding/json"
	"strings"

	"github.com/labstack/echo/v4"
)

const (
	SiteName           = "Nittany Craft"
	DefaultDescription = "Laser engraved wood art of Penn State's Old Main, and custom engravings made from your own photos."
	defaultOGImage     = "/public/images/og-default.jpg"
)

// PageMeta contains the metadata for a page (SEO, Open Graph, Schema.org)
type PageMeta struct {
	Title        string
	Description  string
	CanonicalURL string

	// Open Graph
	OGType     string // "website" or "product"
	OGImageURL string // MUST be absolute URL

	SiteURL string
}

// NewPageMeta creates a PageMeta with site-wide defaults for the current request.
func NewPageMeta(c echo.Context, siteURL string) PageMeta {
	return PageMeta{
		Title:        SiteName,
		Description:  DefaultDescription,
		CanonicalURL: BuildAbsoluteURL(siteURL, c.Request().URL.Path),
		OGType:       "website",
		OGImageURL:   BuildAbsoluteURL(siteURL, defaultOGImage),
		SiteURL:      siteURL,
	}
}

// WithTitle prefixes the site name with a page title.
func (pm PageMeta) WithTitle(title string) PageMeta {
	pm.Title = title + " | " + SiteName
	return pm
}

// BuildAbsoluteURL constructs an absolute URL from a path
func BuildAbsoluteURL(siteURL, path string) string {
	if path == "" {
		return siteURL
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	siteURL = strings.TrimRight(siteURL, "/")
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return siteURL + path
}

// OrganizationSchemaJSON returns the site-wide Organization JSON-LD.
func (pm PageMeta) OrganizationSchemaJSON() string {
	schema := map[string]any{
		"@context": "https://schema.org",
		"@type":    "Organization",
		"name":     SiteName,
		"url":      pm.SiteURL,
		"logo":     BuildAbsoluteURL(pm.SiteURL, "/public/images/logo-square.png"),
	}
	b, err := json.Marshal(schema)
	if err != nil {
		return "{}"
	}
	return string(b)
}
