package views

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/markhazleton/mark-hazleton-s-notes/content"
	"github.com/markhazleton/mark-hazleton-s-notes/head"
)

const (
	latestPostCount  = 6
	relatedPostCount = 3
	recentRepoCount  = 12
)

var principles = [][2]string{
	{"Start with discovery", "Understanding the problem deeply before proposing solutions."},
	{"Embrace constraints", "Budget, timeline, team skills and existing systems all shape the right solution."},
	{"Make tradeoffs explicit", "Every architectural decision involves tradeoffs, documented so teams can choose."},
	{"Document for the future", "Decisions should make sense to someone joining the team in two years."},
	{"Ship incrementally", "Incremental delivery provides value early while reducing risk."},
}

// RepositoryDetail renders metrics for one repository from the render's
// bootstrap payload. An unknown repository renders the not-found body.
func RepositoryDetail(d Data, prefix, name string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		repo, ok := content.BootstrapFrom(ctx).Find(name)
		if !ok {
			return NotFound(d).Render(ctx, w)
		}
		return repositoryDetail(d, prefix, repo).Render(ctx, w)
	})
}

func homeProps(d Data) head.Props {
	return head.Props{
		Canonical: "/",
		JSONLD: []any{
			WebSiteSchema(d.Site, ""),
			PersonSchema(d.Site, d.Author),
		},
	}
}

func blogProps(d Data) head.Props {
	return head.Props{
		Title:       "Blog | " + d.Site.Name,
		Description: "Articles on cloud architecture, integration patterns and the engineering practice behind resilient systems.",
		Canonical:   "/blog",
	}
}

func postProps(d Data, post content.Post) head.Props {
	canonical := "/blog/" + post.Slug
	keywords := post.Keywords
	if keywords == "" {
		keywords = JoinTags(post.Tags)
	}
	return head.Props{
		Title:       post.Title + " | " + d.Site.Name,
		Description: post.Excerpt,
		Keywords:    keywords,
		Canonical:   canonical,
		Image:       post.Image,
		Type:        "article",
		JSONLD: []any{
			BlogPostingSchema(d.Site, d.Author, post),
			BreadcrumbSchema([]Crumb{
				{Name: "Home", URL: d.Site.Origin() + "/"},
				{Name: "Blog", URL: d.Site.Origin() + "/blog"},
				{Name: post.Title, URL: d.Site.Origin() + canonical},
			}),
		},
	}
}

func aboutProps(d Data) head.Props {
	return head.Props{
		Title:       "About " + d.Author.Name,
		Description: d.Author.Description,
		Canonical:   "/about",
		JSONLD:      []any{PersonSchema(d.Site, d.Author)},
	}
}

func projectsProps(d Data) head.Props {
	return head.Props{
		Title:       "Projects | " + d.Site.Name,
		Description: "Open source tools, experiments and production systems built by " + d.Site.Name + ".",
		Canonical:   "/projects",
	}
}

func projectProps(site head.Site, pr content.Project) head.Props {
	props := head.Props{
		Title:       pr.Title + " | " + site.Name,
		Description: firstNonEmpty(pr.Summary, pr.Description),
		Keywords:    strings.Join(pr.Keywords, ", "),
		Canonical:   "/projects/" + pr.Slug,
		Image:       pr.Image,
	}
	if seo := pr.SEO; seo != nil {
		if seo.Title != "" {
			props.Title = seo.Title
			if seo.TitleSuffix != "" {
				props.Title += seo.TitleSuffix
			}
		}
		props.Description = firstNonEmpty(seo.Description, props.Description)
		props.Keywords = firstNonEmpty(seo.Keywords, props.Keywords)
		props.Canonical = firstNonEmpty(seo.Canonical, props.Canonical)
		props.Robots = seo.Robots
	}
	if og := pr.OG; og != nil {
		props.Image = firstNonEmpty(og.Image, props.Image)
		props.Type = og.Type
	}
	return props
}

func contactProps(d Data) head.Props {
	return head.Props{
		Title:       "Contact " + d.Author.Name,
		Description: "Get in touch with " + d.Author.Name + " to collaborate on cloud architecture, integration patterns, and distributed systems.",
		Canonical:   "/contact",
	}
}

func nowProps(d Data) head.Props {
	return head.Props{
		Title:       "Now | " + d.Site.Name,
		Description: "What " + d.Author.Name + " is working on right now.",
		Canonical:   "/now",
	}
}

func githubProps(d Data) head.Props {
	return head.Props{
		Title:       "GitHub Activity | " + d.Site.Name,
		Description: "Recent GitHub activity for " + d.Author.Name + ", including the latest repository updates.",
		Canonical:   "/github",
	}
}

func repositoryProps(d Data, prefix string, repo content.Repository) head.Props {
	return head.Props{
		Title:       "Repository Metrics: " + repo.Name + " | " + d.Site.Name,
		Description: repositoryDescription(repo),
		Keywords:    "repository metrics, " + repo.Name + ", GitHub analytics, commit history, " + d.Author.Name,
		Canonical:   prefix + content.EncodeURIComponent(repo.Name),
		Type:        "article",
	}
}

func videosProps(d Data) head.Props {
	return head.Props{
		Title:       "Videos & Tutorials | " + d.Site.Name,
		Description: "Technical tutorials on cloud architecture, Azure, .NET development, and system design from " + d.Author.Name + "'s YouTube channel.",
		Canonical:   "/videos",
	}
}

func latestPosts(posts []content.Post) []content.Post {
	if len(posts) > latestPostCount {
		return posts[:latestPostCount]
	}
	return posts
}

// recentRepositories returns the named repositories among the first
// recentRepoCount entries of stats.
func recentRepositories(stats *content.RepositoryStats) []content.Repository {
	if stats == nil {
		return nil
	}
	var repos []content.Repository
	for i, r := range stats.Repositories {
		if i == recentRepoCount {
			break
		}
		if r.Name != "" {
			repos = append(repos, r)
		}
	}
	return repos
}

func repositoryDescription(r content.Repository) string {
	if r.Description != nil && *r.Description != "" {
		return *r.Description
	}
	return fmt.Sprintf("Detailed repository metrics and activity for %s.", r.Name)
}

func repositorySummary(r content.Repository) string {
	if r.Summary != nil && r.Summary.Text != "" {
		return strings.TrimSpace(r.Summary.Text)
	}
	if r.AISummary != nil {
		return strings.TrimSpace(*r.AISummary)
	}
	return ""
}

func environmentLabel(env content.ProjectPromotionEnvironment) string {
	if env.Status == "" {
		return env.Name
	}
	return env.Name + " · " + env.Status
}

func firstName(name string) string {
	if i := strings.IndexByte(name, ' '); i > 0 {
		return name[:i]
	}
	return name
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
