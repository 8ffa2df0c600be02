package content

import "strings"

// ReadProjects decodes a projects.json file.
func ReadProjects(path string) ([]ProjectSource, error) {
	var projects []ProjectSource
	if err := readJSON(path, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// ToProject maps a raw project record into a Project.
func ToProject(src ProjectSource, basePath string) Project {
	summary := src.Summary
	if summary == "" {
		summary = src.Desc
	}
	return Project{
		ID:          src.ID,
		Slug:        src.Slug,
		Title:       src.Title,
		Description: src.Desc,
		Summary:     summary,
		URL:         src.URL,
		Image:       WithBasePath(basePath, src.Image),
		Keywords:    splitKeywords(src.Keywords),
		SEO:         src.SEO,
		OG:          socialWithBase(src.OG, basePath),
		Twitter:     socialWithBase(src.Twitter, basePath),
		Repository:  src.Repository,
		Promotion:   src.Promotion,
	}
}

// Projects maps every record, preserving file order.
func Projects(srcs []ProjectSource, basePath string) []Project {
	out := make([]Project, 0, len(srcs))
	for _, s := range srcs {
		out = append(out, ToProject(s, basePath))
	}
	return out
}

func socialWithBase(s *ProjectSocial, basePath string) *ProjectSocial {
	if s == nil {
		return nil
	}
	c := *s
	c.Image = WithBasePath(basePath, c.Image)
	return &c
}

func splitKeywords(keywords string) []string {
	var out []string
	for _, k := range strings.Split(keywords, ",") {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}
