package source

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/Harshitk-cp/veritas/internal/domain"
	"github.com/Harshitk-cp/veritas/internal/textclean"
	"github.com/PuerkitoBio/goquery"
)

const (
	DefaultDuckDuckGoURL = "https://html.duckduckgo.com/html/"
	webSearchLimit       = 5
	webSummaryMax        = 300
)

// DuckDuckGo scrapes the no-JavaScript DuckDuckGo results page.
type DuckDuckGo struct {
	baseURL string
	client  *http.Client
}

func NewDuckDuckGo(baseURL string, client *http.Client) *DuckDuckGo {
	if baseURL == "" {
		baseURL = DefaultDuckDuckGoURL
	}
	return &DuckDuckGo{baseURL: baseURL, client: clientOrDefault(client)}
}

func (d *DuckDuckGo) Source() domain.SourceTag {
	return domain.SourceWebSearch
}

func (d *DuckDuckGo) Fetch(ctx context.Context, query string) ([]domain.EvidenceItem, error) {
	u := d.baseURL + "?" + url.Values{"q": {query}}.Encode()
	doc, err := getDocument(ctx, d.client, u)
	if err != nil {
		return nil, err
	}

	var items []domain.EvidenceItem
	doc.Find("div.result").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if s.HasClass("result--ad") {
			return true
		}
		link := s.Find("a.result__a").First()
		title := textclean.Normalize(link.Text())
		href, _ := link.Attr("href")
		if title == "" || href == "" {
			return true
		}
		items = append(items, domain.EvidenceItem{
			Title:   title,
			Summary: textclean.Clean(s.Find(".result__snippet").Text(), webSummaryMax),
			URL:     resolveDuckDuckGoLink(href),
		})
		return len(items) < webSearchLimit
	})
	return items, nil
}

// resolveDuckDuckGoLink unwraps the /l/?uddg= redirect used on result links.
func resolveDuckDuckGoLink(href string) string {
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if target := u.Query().Get("uddg"); target != "" {
		return target
	}
	return href
}
