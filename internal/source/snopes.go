package source

import (
	"context"
	"net/http"
	"net/url"

	"github.com/Harshitk-cp/veritas/internal/domain"
	"github.com/Harshitk-cp/veritas/internal/textclean"
	"github.com/PuerkitoBio/goquery"
)

const (
	DefaultSnopesURL = "https://www.snopes.com/search/"
	snopesLimit      = 3
	snopesSummaryMax = 300
)

// Selectors for the Snopes search results page.
const (
	snopesResultSel = "div.article_wrapper"
	snopesLinkSel   = "a.outer_article_link_wrapper"
	snopesTitleSel  = "h3.article_title"
	snopesBylineSel = "span.article_byline"
)

// Snopes scrapes the crowd fact-check site's search results.
type Snopes struct {
	baseURL string
	client  *http.Client
}

func NewSnopes(baseURL string, client *http.Client) *Snopes {
	if baseURL == "" {
		baseURL = DefaultSnopesURL
	}
	return &Snopes{baseURL: baseURL, client: clientOrDefault(client)}
}

func (s *Snopes) Source() domain.SourceTag {
	return domain.SourceCrowdFactCheck
}

func (s *Snopes) Fetch(ctx context.Context, query string) ([]domain.EvidenceItem, error) {
	base, err := url.Parse(s.baseURL)
	if err != nil {
		return nil, err
	}
	doc, err := getDocument(ctx, s.client, s.baseURL+"?"+url.Values{"q": {query}}.Encode())
	if err != nil {
		return nil, err
	}

	var items []domain.EvidenceItem
	doc.Find(snopesResultSel).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		title := textclean.Normalize(sel.Find(snopesTitleSel).Text())
		if title == "" {
			return true
		}
		href, _ := sel.Find(snopesLinkSel).Attr("href")
		items = append(items, domain.EvidenceItem{
			Title:   title,
			Summary: textclean.Clean(sel.Find(snopesBylineSel).Text(), snopesSummaryMax),
			URL:     absoluteURL(base, href),
		})
		return len(items) < snopesLimit
	})
	return items, nil
}

func absoluteURL(base *url.URL, href string) string {
	if href == "" {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
