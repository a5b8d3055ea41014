package mealpress

import (
	"encoding/json"
	"net/url"
	"path"
	"strings"
)

// BuildURL joins a base URL with path segments, ensuring a trailing slash.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// FilterEmpty removes empty/whitespace-only strings from a slice.
func FilterEmpty(vals []string) []string {
	var out []string
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// WebsiteJsonLD returns a JSON-LD string for a WebSite schema using SiteConfig.
func WebsiteJsonLD(cfg SiteConfig) string {
	data := map[string]interface{}{
		"@context":    "https://schema.org",
		"@type":       "WebSite",
		"name":        cfg.Name,
		"url":         BuildURL(cfg.URL),
		"description": cfg.Description,
	}
	if cfg.Author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  cfg.Author,
		}
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// RecordJsonLD returns a JSON-LD string for a record: schema.org Recipe
// for recipes, BlogPosting for posts.
func RecordJsonLD(rec ContentRecord, cfg SiteConfig) string {
	recordURL := BuildURL(cfg.URL, string(rec.Kind), rec.Slug)
	data := map[string]interface{}{
		"@context":      "https://schema.org",
		"headline":      rec.Title,
		"description":   rec.Description,
		"datePublished": rec.Date,
		"url":           recordURL,
		"mainEntityOfPage": map[string]string{
			"@type": "WebPage",
			"@id":   recordURL,
		},
	}
	if rec.Kind == KindRecipe {
		data["@type"] = "Recipe"
		data["name"] = rec.Title
		if len(rec.Ingredients) > 0 {
			data["recipeIngredient"] = rec.Ingredients
		}
		if len(rec.Instructions) > 0 {
			data["recipeInstructions"] = rec.Instructions
		}
		if rec.Servings > 0 {
			data["recipeYield"] = rec.Servings
		}
	} else {
		data["@type"] = "BlogPosting"
	}
	author := rec.Author
	if author == "" {
		author = cfg.Author
	}
	if author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  author,
		}
	}
	if len(rec.Tags) > 0 {
		data["keywords"] = strings.Join(rec.Tags, ", ")
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}
