// Package content reads the site's data sources (articles, projects,
// videos and the remote repository statistics) into validated structures
// and maps them into the shapes the pages and route enumerator consume.
package content

// ArticleEntry is one record of articles.json as written by the content
// build. Older records predate the contentFile field and carry only slug.
type ArticleEntry struct {
	ID                int     `json:"id"`
	Section           string  `json:"Section"`
	Slug              string  `json:"slug"`
	Name              string  `json:"name"`
	ContentFile       string  `json:"contentFile"`
	Description       string  `json:"description"`
	Keywords          string  `json:"keywords"`
	ImgSrc            *string `json:"img_src,omitempty"`
	LastMod           string  `json:"lastmod,omitempty"`
	PublishedDate     string  `json:"publishedDate"`
	EstimatedReadTime float64 `json:"estimatedReadTime"`
	Source            string  `json:"source"`
	Subtitle          string  `json:"subtitle,omitempty"`
	Author            string  `json:"author,omitempty"`
	Summary           string  `json:"summary,omitempty"`
}

// Post is the page-facing view of a publishable article.
type Post struct {
	Slug        string
	Title       string
	Excerpt     string
	Date        string // YYYY-MM-DD
	ReadingTime string
	Tags        []string
	ContentFile string
	Source      string
	Section     string
	Keywords    string
	Image       string
	Author      string
	LastMod     string
	Minutes     int
	Body        string // raw Markdown, filled in by the content loader
}

// ProjectSource is one record of projects.json.
type ProjectSource struct {
	ID         int                `json:"id"`
	Image      string             `json:"image,omitempty"`
	Title      string             `json:"p"`
	Desc       string             `json:"d"`
	URL        string             `json:"h,omitempty"`
	Slug       string             `json:"slug"`
	Summary    string             `json:"summary,omitempty"`
	Keywords   string             `json:"keywords,omitempty"`
	SEO        *ProjectSEO        `json:"seo,omitempty"`
	OG         *ProjectSocial     `json:"og,omitempty"`
	Twitter    *ProjectSocial     `json:"twitter,omitempty"`
	Repository *ProjectRepository `json:"repository,omitempty"`
	Promotion  *ProjectPromotion  `json:"promotion,omitempty"`
}

type ProjectSEO struct {
	Title       string `json:"title,omitempty"`
	TitleSuffix string `json:"titleSuffix,omitempty"`
	Description string `json:"description,omitempty"`
	Keywords    string `json:"keywords,omitempty"`
	Canonical   string `json:"canonical,omitempty"`
	Robots      string `json:"robots,omitempty"`
}

type ProjectSocial struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type,omitempty"`
	Image       string `json:"image,omitempty"`
	ImageAlt    string `json:"imageAlt,omitempty"`
}

type ProjectRepository struct {
	Provider   string `json:"provider"`
	Name       string `json:"name"`
	URL        string `json:"url"`
	Branch     string `json:"branch,omitempty"`
	Visibility string `json:"visibility,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

type ProjectPromotionEnvironment struct {
	Name           string `json:"name"`
	URL            string `json:"url"`
	Status         string `json:"status,omitempty"`
	Version        string `json:"version,omitempty"`
	LastPromotedOn string `json:"lastPromotedOn,omitempty"`
	Notes          string `json:"notes,omitempty"`
}

type ProjectPromotion struct {
	Pipeline       string                        `json:"pipeline,omitempty"`
	CurrentStage   string                        `json:"currentStage,omitempty"`
	Status         string                        `json:"status,omitempty"`
	LastPromotedOn string                        `json:"lastPromotedOn,omitempty"`
	Notes          string                        `json:"notes,omitempty"`
	Environments   []ProjectPromotionEnvironment `json:"environments,omitempty"`
}

// Project is the page-facing view of a ProjectSource.
type Project struct {
	ID          int
	Slug        string
	Title       string
	Description string
	Summary     string
	URL         string
	Image       string
	Keywords    []string
	SEO         *ProjectSEO
	OG          *ProjectSocial
	Twitter     *ProjectSocial
	Repository  *ProjectRepository
	Promotion   *ProjectPromotion
}

// RepositorySummary is the generated summary attached to a repository.
type RepositorySummary struct {
	Text        string `json:"text,omitempty"`
	AIGenerated bool   `json:"ai_generated,omitempty"`
	GeneratedAt string `json:"generated_at,omitempty"`
}

// Repository is one record of the remote repository statistics payload.
// Only the fields the pages read are modelled; the bootstrap script re-emits
// the original bytes so nothing else is lost.
type Repository struct {
	Name           string             `json:"name"`
	Description    *string            `json:"description,omitempty"`
	URL            string             `json:"url"`
	Stars          int                `json:"stars,omitempty"`
	Forks          int                `json:"forks,omitempty"`
	Language       *string            `json:"language,omitempty"`
	UpdatedAt      string             `json:"updated_at,omitempty"`
	PushedAt       string             `json:"pushed_at,omitempty"`
	CreatedAt      string             `json:"created_at,omitempty"`
	LastCommitDate string             `json:"last_commit_date,omitempty"`
	TotalCommits   int                `json:"total_commits,omitempty"`
	Recent90d      int                `json:"recent_commits_90d,omitempty"`
	Summary        *RepositorySummary `json:"summary,omitempty"`
	AISummary      *string            `json:"ai_summary,omitempty"`
	IsFork         bool               `json:"is_fork,omitempty"`
}

// Video is one record of youtube-videos.json.
type Video struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	PublishedAt  string `json:"publishedAt"`
	ThumbnailURL string `json:"thumbnailUrl"`
	VideoURL     string `json:"videoUrl"`
	ChannelTitle string `json:"channelTitle"`
	Duration     int    `json:"duration,omitempty"`
	ViewCount    int    `json:"viewCount,omitempty"`
}

// VideosPayload is the top-level shape of youtube-videos.json.
type VideosPayload struct {
	GeneratedAt string  `json:"generated_at"`
	ChannelID   string  `json:"channel_id"`
	Videos      []Video `json:"videos"`
	Error       string  `json:"error,omitempty"`
}
