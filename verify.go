package notes

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PageReport summarises the head of an emitted page.
type PageReport struct {
	Titles     int
	Title      string
	Canonicals int
	Canonical  string
	Metas      int
	JSONLD     int
	Bootstraps int
}

// InspectPage parses html and counts the head elements the pipeline injects.
func InspectPage(html string) (PageReport, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return PageReport{}, err
	}
	var r PageReport
	titles := doc.Find("head title")
	r.Titles = titles.Length()
	r.Title = titles.First().Text()

	canonicals := doc.Find(`link[rel="canonical"]`)
	r.Canonicals = canonicals.Length()
	r.Canonical, _ = canonicals.First().Attr("href")

	r.Metas = doc.Find("head meta[name], head meta[property]").Length()
	r.JSONLD = doc.Find(`script[type="application/ld+json"]`).Length()
	doc.Find("script:not([src])").Each(func(_ int, s *goquery.Selection) {
		if strings.Contains(s.Text(), BootstrapGlobal) {
			r.Bootstraps++
		}
	})
	return r, nil
}

// Validate reports the first structural problem with the page.
func (r PageReport) Validate() error {
	switch {
	case r.Titles > 1:
		return fmt.Errorf("page has %d title elements", r.Titles)
	case r.Canonicals > 1:
		return fmt.Errorf("page has %d canonical links", r.Canonicals)
	case r.Bootstraps > 1:
		return fmt.Errorf("page has %d bootstrap scripts", r.Bootstraps)
	}
	return nil
}
