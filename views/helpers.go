package views

import (
	"strings"

	"github.com/markhazleton/mark-hazleton-s-notes/content"
	"github.com/markhazleton/mark-hazleton-s-notes/head"
)

// Href prefixes an in-site path with the deployment sub-path.
func Href(site head.Site, path string) string {
	if strings.HasPrefix(path, "http") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return site.Base() + path
}

// FilterRelatedPosts returns up to limit posts sharing a tag with current.
func FilterRelatedPosts(current content.Post, posts []content.Post, limit int) []content.Post {
	tagSet := make(map[string]struct{})
	for _, t := range current.Tags {
		tag := strings.ToLower(strings.TrimSpace(t))
		if tag != "" {
			tagSet[tag] = struct{}{}
		}
	}
	var related []content.Post
	for _, p := range posts {
		if p.Slug == current.Slug {
			continue
		}
		for _, t := range p.Tags {
			tag := strings.ToLower(strings.TrimSpace(t))
			if _, ok := tagSet[tag]; ok {
				related = append(related, p)
				break
			}
		}
		if limit > 0 && len(related) == limit {
			break
		}
	}
	return related
}

// JoinTags formats a tag slice as a comma-separated string.
func JoinTags(tags []string) string {
	return strings.Join(tags, ", ")
}

// FormatDate renders a YYYY-MM-DD (or RFC 3339) date as "Jan 2, 2006".
func FormatDate(value string) string {
	t, ok := content.ParseDate(value)
	if !ok {
		return "Unknown"
	}
	return t.Format("Jan 2, 2006")
}
