package views

import (
	"fmt"
	"strings"

	"github.com/markhazleton/mark-hazleton-s-notes/content"
	"github.com/markhazleton/mark-hazleton-s-notes/head"
)

// WebSiteSchema is a schema.org WebSite object for the site root.
func WebSiteSchema(site head.Site, searchURL string) map[string]any {
	data := map[string]any{
		"@context":    "https://schema.org",
		"@type":       "WebSite",
		"name":        site.Name,
		"url":         site.Origin(),
		"description": site.DefaultDescription,
	}
	if searchURL != "" {
		data["potentialAction"] = map[string]any{
			"@type":       "SearchAction",
			"target":      searchURL + "{search_term_string}",
			"query-input": "required name=search_term_string",
		}
	}
	return data
}

// PersonSchema is a schema.org Person object for the site owner.
func PersonSchema(site head.Site, p Person) map[string]any {
	data := map[string]any{
		"@context":    "https://schema.org",
		"@type":       "Person",
		"name":        p.Name,
		"url":         site.Origin(),
		"jobTitle":    p.JobTitle,
		"description": p.Description,
	}
	if len(p.SameAs) > 0 {
		data["sameAs"] = p.SameAs
	}
	return data
}

// BlogPostingSchema is a schema.org BlogPosting object for a post.
func BlogPostingSchema(site head.Site, author Person, post content.Post) map[string]any {
	url := site.Origin() + "/blog/" + post.Slug
	name := post.Author
	if name == "" {
		name = author.Name
	}
	data := map[string]any{
		"@context":      "https://schema.org",
		"@type":         "BlogPosting",
		"headline":      post.Title,
		"description":   post.Excerpt,
		"datePublished": post.Date,
		"author": map[string]string{
			"@type": "Person",
			"name":  name,
			"url":   site.Origin(),
		},
		"publisher": map[string]string{
			"@type": "Person",
			"name":  site.Name,
		},
		"mainEntityOfPage": map[string]string{
			"@type": "WebPage",
			"@id":   url,
		},
	}
	if post.LastMod != "" {
		data["dateModified"] = content.NormalizeDate(post.LastMod)
	}
	if post.Image != "" {
		data["image"] = site.NormalizeURL(post.Image)
	}
	if post.Keywords != "" {
		data["keywords"] = post.Keywords
	} else if len(post.Tags) > 0 {
		data["keywords"] = strings.Join(post.Tags, ", ")
	}
	if post.Section != "" {
		data["articleSection"] = post.Section
	}
	if post.Minutes > 0 {
		data["timeRequired"] = fmt.Sprintf("PT%dM", post.Minutes)
	}
	return data
}

// Crumb is one step of a breadcrumb trail.
type Crumb struct {
	Name string
	URL  string
}

// BreadcrumbSchema is a schema.org BreadcrumbList for items, in order.
func BreadcrumbSchema(items []Crumb) map[string]any {
	list := make([]map[string]any, 0, len(items))
	for i, item := range items {
		list = append(list, map[string]any{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     item.Name,
			"item":     item.URL,
		})
	}
	return map[string]any{
		"@context":        "https://schema.org",
		"@type":           "BreadcrumbList",
		"itemListElement": list,
	}
}
