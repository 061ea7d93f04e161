package source

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/Harshitk-cp/veritas/internal/domain"
	"github.com/Harshitk-cp/veritas/internal/textclean"
)

const (
	DefaultFactCheckURL = "https://factchecktools.googleapis.com/v1alpha1/claims:search"
	factCheckLimit      = 3
	factCheckSummaryMax = 300
)

// GoogleFactCheck queries the Google Fact Check Tools claim search.
type GoogleFactCheck struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewGoogleFactCheck(baseURL, apiKey string, client *http.Client) *GoogleFactCheck {
	if baseURL == "" {
		baseURL = DefaultFactCheckURL
	}
	return &GoogleFactCheck{baseURL: baseURL, apiKey: apiKey, client: clientOrDefault(client)}
}

type factCheckResponse struct {
	Claims []struct {
		Text        string `json:"text"`
		Claimant    string `json:"claimant"`
		ClaimReview []struct {
			Publisher struct {
				Name string `json:"name"`
				Site string `json:"site"`
			} `json:"publisher"`
			URL           string `json:"url"`
			Title         string `json:"title"`
			TextualRating string `json:"textualRating"`
		} `json:"claimReview"`
	} `json:"claims"`
}

func (g *GoogleFactCheck) Source() domain.SourceTag {
	return domain.SourceFactCheckRegistry
}

func (g *GoogleFactCheck) Fetch(ctx context.Context, query string) ([]domain.EvidenceItem, error) {
	if g.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	params := url.Values{
		"query":        {query},
		"pageSize":     {strconv.Itoa(factCheckLimit)},
		"languageCode": {"en"},
	}
	// Header auth keeps the key out of the request URL, and so out of errors.
	header := http.Header{}
	header.Set("X-Goog-Api-Key", g.apiKey)

	var result factCheckResponse
	if err := getJSON(ctx, g.client, g.baseURL+"?"+params.Encode(), header, &result); err != nil {
		return nil, err
	}

	var items []domain.EvidenceItem
	for _, c := range result.Claims {
		if len(c.ClaimReview) == 0 {
			continue
		}
		review := c.ClaimReview[0]
		title := review.Title
		if title == "" {
			title = c.Text
		}
		items = append(items, domain.EvidenceItem{
			Title:   textclean.Normalize(title),
			Summary: textclean.Clean(reviewSummary(c.Text, c.Claimant, review.TextualRating, review.Publisher.Name), factCheckSummaryMax),
			URL:     review.URL,
		})
		if len(items) == factCheckLimit {
			break
		}
	}
	return items, nil
}

func reviewSummary(claim, claimant, rating, publisher string) string {
	var sb strings.Builder
	sb.WriteString("Claim: ")
	sb.WriteString(claim)
	if claimant != "" {
		fmt.Fprintf(&sb, " (by %s)", claimant)
	}
	if rating != "" {
		fmt.Fprintf(&sb, ". Rating: %s", rating)
	}
	if publisher != "" {
		fmt.Fprintf(&sb, ". Reviewed by %s", publisher)
	}
	sb.WriteString(".")
	return sb.String()
}
