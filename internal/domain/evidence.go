package domain

import (
	"context"
	"fmt"
)

// SourceTag identifies which evidence adapter produced an item.
type SourceTag string

const (
	SourceWebSearch         SourceTag = "web_search"
	SourceKnowledgeBase     SourceTag = "knowledge_base"
	SourceFactCheckRegistry SourceTag = "fact_check_registry"
	SourceNews              SourceTag = "news"
	SourceCrowdFactCheck    SourceTag = "crowd_fact_check"
)

// SourceOrder is the fixed order in which evidence is concatenated.
var SourceOrder = []SourceTag{
	SourceWebSearch,
	SourceKnowledgeBase,
	SourceFactCheckRegistry,
	SourceNews,
	SourceCrowdFactCheck,
}

// DisplayName returns the heading used when evidence is rendered for the scorer.
func (s SourceTag) DisplayName() string {
	switch s {
	case SourceWebSearch:
		return "Web Search"
	case SourceKnowledgeBase:
		return "Wikipedia"
	case SourceFactCheckRegistry:
		return "Google Fact Check"
	case SourceNews:
		return "News"
	case SourceCrowdFactCheck:
		return "Snopes"
	default:
		return string(s)
	}
}

const noResultSummary = "No results found."

// EvidenceItem is one normalized result from a single provider.
type EvidenceItem struct {
	Source   SourceTag `json:"source"`
	Title    string    `json:"title"`
	Summary  string    `json:"summary"`
	URL      string    `json:"url"`
	Sentinel bool      `json:"sentinel,omitempty"`
}

// NoResultItem is the sentinel for a provider that answered with nothing usable.
func NoResultItem(src SourceTag) EvidenceItem {
	return EvidenceItem{Source: src, Summary: noResultSummary, Sentinel: true}
}

// ErrorItem is the sentinel for a provider call that failed.
func ErrorItem(src SourceTag, err error) EvidenceItem {
	cause := "unknown error"
	if err != nil {
		cause = err.Error()
	}
	return EvidenceItem{Source: src, Summary: fmt.Sprintf("Error: %s", cause), Sentinel: true}
}

// EvidenceAdapter turns a search query into evidence from one provider.
// Verify never fails: provider failures come back as a single sentinel item.
type EvidenceAdapter interface {
	Source() SourceTag
	Verify(ctx context.Context, query string) []EvidenceItem
}
