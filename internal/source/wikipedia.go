package source

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/Harshitk-cp/veritas/internal/domain"
	"github.com/Harshitk-cp/veritas/internal/textclean"
)

const (
	DefaultWikipediaURL = "https://en.wikipedia.org/w/api.php"
	wikipediaSummaryMax = 500
)

// Wikipedia returns the intro of the best-matching article. The extract is
// requested as HTML so literal angle brackets arrive entity-encoded.
type Wikipedia struct {
	baseURL string
	client  *http.Client
}

func NewWikipedia(baseURL string, client *http.Client) *Wikipedia {
	if baseURL == "" {
		baseURL = DefaultWikipediaURL
	}
	return &Wikipedia{baseURL: baseURL, client: clientOrDefault(client)}
}

type wikipediaResponse struct {
	Query *struct {
		Pages []struct {
			Title   string `json:"title"`
			Extract string `json:"extract"`
			FullURL string `json:"fullurl"`
			Missing bool   `json:"missing"`
		} `json:"pages"`
	} `json:"query"`
	Error *struct {
		Code string `json:"code"`
		Info string `json:"info"`
	} `json:"error"`
}

func (w *Wikipedia) Source() domain.SourceTag {
	return domain.SourceKnowledgeBase
}

func (w *Wikipedia) Fetch(ctx context.Context, query string) ([]domain.EvidenceItem, error) {
	params := url.Values{
		"action":        {"query"},
		"format":        {"json"},
		"formatversion": {"2"},
		"generator":     {"search"},
		"gsrsearch":     {query},
		"gsrlimit":      {"1"},
		"prop":          {"extracts|info"},
		"exintro":       {"1"},
		"inprop":        {"url"},
		"redirects":     {"1"},
	}

	var result wikipediaResponse
	if err := getJSON(ctx, w.client, w.baseURL+"?"+params.Encode(), nil, &result); err != nil {
		return nil, err
	}
	if result.Error != nil {
		return nil, fmt.Errorf("wikipedia API error: %s", result.Error.Info)
	}
	if result.Query == nil {
		return nil, nil
	}

	for _, page := range result.Query.Pages {
		if page.Missing || page.Extract == "" {
			continue
		}
		return []domain.EvidenceItem{{
			Title:   page.Title,
			Summary: textclean.CleanHTML(page.Extract, wikipediaSummaryMax),
			URL:     page.FullURL,
		}}, nil
	}
	return nil, nil
}
