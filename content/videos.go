package content

import (
	"errors"
	"io/fs"
	"sort"
	"strings"
)

// ReadVideos decodes youtube-videos.json. A missing file yields an empty
// payload because the videos page is optional.
func ReadVideos(path string) (VideosPayload, error) {
	var payload VideosPayload
	if path == "" {
		return payload, nil
	}
	if err := readJSON(path, &payload); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return VideosPayload{}, nil
		}
		return VideosPayload{}, err
	}
	return payload, nil
}

// SortedVideos returns the videos newest first.
func SortedVideos(videos []Video) []Video {
	out := append([]Video(nil), videos...)
	sort.SliceStable(out, func(i, j int) bool {
		a, _ := ParseDate(out[i].PublishedAt)
		b, _ := ParseDate(out[j].PublishedAt)
		return a.After(b)
	})
	return out
}

// VideoCategory buckets a video by its title.
func VideoCategory(v Video) string {
	title := strings.ToLower(v.Title)
	switch {
	case strings.HasPrefix(title, "deep dive:"):
		return "Deep Dive"
	case strings.Contains(title, "promptspark"):
		return "PromptSpark"
	case strings.Contains(title, "mechanics of motherhood"):
		return "Mechanics of Motherhood"
	case strings.Contains(title, "sora"):
		return "AI Tools"
	case strings.Contains(title, "tutorial"), strings.Contains(title, "demo"):
		return "Tutorials"
	}
	return "General"
}
