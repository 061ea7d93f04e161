package source

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Harshitk-cp/veritas/internal/domain"
	"github.com/Harshitk-cp/veritas/internal/textclean"
)

const (
	DefaultNewsAPIURL = "https://newsapi.org/v2/everything"
	newsLimit         = 3
	newsSummaryMax    = 300
)

// NewsAPI searches recent articles through newsapi.org.
type NewsAPI struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewNewsAPI(baseURL, apiKey string, client *http.Client) *NewsAPI {
	if baseURL == "" {
		baseURL = DefaultNewsAPIURL
	}
	return &NewsAPI{baseURL: baseURL, apiKey: apiKey, client: clientOrDefault(client)}
}

type newsResponse struct {
	Status   string `json:"status"`
	Code     string `json:"code"`
	Message  string `json:"message"`
	Articles []struct {
		Source struct {
			Name string `json:"name"`
		} `json:"source"`
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		PublishedAt string `json:"publishedAt"`
	} `json:"articles"`
}

func (n *NewsAPI) Source() domain.SourceTag {
	return domain.SourceNews
}

func (n *NewsAPI) Fetch(ctx context.Context, query string) ([]domain.EvidenceItem, error) {
	if n.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	params := url.Values{
		"q":        {query},
		"pageSize": {strconv.Itoa(newsLimit)},
		"sortBy":   {"relevancy"},
		"language": {"en"},
	}
	header := http.Header{}
	header.Set("X-Api-Key", n.apiKey)

	var result newsResponse
	if err := getJSON(ctx, n.client, n.baseURL+"?"+params.Encode(), header, &result); err != nil {
		return nil, err
	}
	if result.Status != "" && result.Status != "ok" {
		return nil, fmt.Errorf("newsapi error %s: %s", result.Code, result.Message)
	}

	var items []domain.EvidenceItem
	for _, a := range result.Articles {
		if a.Title == "" && a.Description == "" {
			continue
		}
		summary := a.Description
		if a.Source.Name != "" {
			summary = fmt.Sprintf("[%s] %s", a.Source.Name, summary)
		}
		items = append(items, domain.EvidenceItem{
			Title:   textclean.Normalize(a.Title),
			Summary: textclean.Clean(summary, newsSummaryMax),
			URL:     a.URL,
		})
		if len(items) == newsLimit {
			break
		}
	}
	return items, nil
}
