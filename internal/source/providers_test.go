package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/Harshitk-cp/veritas/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const duckDuckGoPage = `<html><body>
<div class="result results_links result--ad">
  <a class="result__a" href="https://ads.example/buy">Sponsored</a>
  <a class="result__snippet">Buy now</a>
</div>
<div class="result results_links">
  <h2><a class="result__a" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fwww.who.int%2Fvaccines&amp;rut=abc">WHO  on <b>vaccines</b></a></h2>
  <a class="result__snippet">There is <b>no evidence</b> that vaccines cause infertility.</a>
</div>
<div class="result results_links">
  <h2><a class="result__a" href="https://example.org/direct">Direct link</a></h2>
  <a class="result__snippet">Second snippet</a>
</div>
</body></html>`

func TestDuckDuckGo_Fetch(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(duckDuckGoPage))
	}))
	defer srv.Close()

	items, err := NewDuckDuckGo(srv.URL, srv.Client()).Fetch(context.Background(), "vaccines infertility")

	require.NoError(t, err)
	assert.Equal(t, "vaccines infertility", gotQuery)
	require.Len(t, items, 2)
	assert.Equal(t, "WHO on vaccines", items[0].Title)
	assert.Equal(t, "There is no evidence that vaccines cause infertility.", items[0].Summary)
	assert.Equal(t, "https://www.who.int/vaccines", items[0].URL)
	assert.Equal(t, "https://example.org/direct", items[1].URL)
}

func TestDuckDuckGo_FetchCapsResults(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("<html><body>")
	for i := 0; i < 8; i++ {
		sb.WriteString(`<div class="result"><a class="result__a" href="https://e.example/x">Title</a><a class="result__snippet">s</a></div>`)
	}
	sb.WriteString("</body></html>")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(sb.String()))
	}))
	defer srv.Close()

	items, err := NewDuckDuckGo(srv.URL, srv.Client()).Fetch(context.Background(), "q")

	require.NoError(t, err)
	assert.Len(t, items, webSearchLimit)
}

func TestWikipedia_Fetch(t *testing.T) {
	longExtract := strings.Repeat("word ", 200)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "search", r.URL.Query().Get("generator"))
		assert.Equal(t, "1", r.URL.Query().Get("gsrlimit"))
		assert.Equal(t, "covid vaccine infertility", r.URL.Query().Get("gsrsearch"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"query":{"pages":[{"pageid":1,"title":"COVID-19 vaccine","extract":"` + longExtract + `","fullurl":"https://en.wikipedia.org/wiki/COVID-19_vaccine"}]}}`))
	}))
	defer srv.Close()

	items, err := NewWikipedia(srv.URL, srv.Client()).Fetch(context.Background(), "covid vaccine infertility")

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "COVID-19 vaccine", items[0].Title)
	assert.Equal(t, "https://en.wikipedia.org/wiki/COVID-19_vaccine", items[0].URL)
	assert.LessOrEqual(t, len([]rune(items[0].Summary)), wikipediaSummaryMax)
	assert.True(t, strings.HasSuffix(items[0].Summary, "..."))
}

func TestWikipedia_FetchHTMLExtract(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.Query().Get("explaintext"))
		_, _ = w.Write([]byte(`{"query":{"pages":[{"title":"Inequality","extract":"<p><b>Inequality</b> means a&lt;b and c&gt;d.</p><p>Second paragraph.</p>","fullurl":"https://en.wikipedia.org/wiki/Inequality"}]}}`))
	}))
	defer srv.Close()

	items, err := NewWikipedia(srv.URL, srv.Client()).Fetch(context.Background(), "inequality")

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Inequality means a<b and c>d. Second paragraph.", items[0].Summary)
}

func TestWikipedia_FetchNoMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"batchcomplete":true}`))
	}))
	defer srv.Close()

	items, err := NewWikipedia(srv.URL, srv.Client()).Fetch(context.Background(), "zzzz")

	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestWikipedia_FetchMalformed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	_, err := NewWikipedia(srv.URL, srv.Client()).Fetch(context.Background(), "q")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}

func TestGoogleFactCheck_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret-key", r.Header.Get("X-Goog-Api-Key"))
		assert.Empty(t, r.URL.Query().Get("key"))
		_, _ = w.Write([]byte(`{"claims":[
			{"text":"Vaccines cause infertility","claimant":"Social media","claimReview":[{"publisher":{"name":"PolitiFact"},"url":"https://politifact.example/1","title":"No, vaccines do not","textualRating":"False"}]},
			{"text":"claim without review","claimReview":[]},
			{"text":"Second","claimReview":[{"publisher":{"name":"AFP"},"url":"https://afp.example/2","textualRating":"Misleading"}]},
			{"text":"Third","claimReview":[{"publisher":{"name":"Reuters"},"url":"https://reuters.example/3","textualRating":"False"}]},
			{"text":"Fourth","claimReview":[{"publisher":{"name":"AP"},"url":"https://ap.example/4","textualRating":"False"}]}
		]}`))
	}))
	defer srv.Close()

	items, err := NewGoogleFactCheck(srv.URL, "secret-key", srv.Client()).Fetch(context.Background(), "vaccines infertility")

	require.NoError(t, err)
	require.Len(t, items, factCheckLimit)
	assert.Equal(t, "No, vaccines do not", items[0].Title)
	assert.Equal(t, "Claim: Vaccines cause infertility (by Social media). Rating: False. Reviewed by PolitiFact.", items[0].Summary)
	assert.Equal(t, "https://politifact.example/1", items[0].URL)
	assert.Equal(t, "Second", items[1].Title)
}

func TestGoogleFactCheck_MissingKeyFailsClosed(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	_, err := NewGoogleFactCheck(srv.URL, "", srv.Client()).Fetch(context.Background(), "q")

	assert.True(t, errors.Is(err, ErrMissingAPIKey))
	assert.Equal(t, int32(0), hits.Load())
}

func TestNewsAPI_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "news-key", r.Header.Get("X-Api-Key"))
		assert.Equal(t, "3", r.URL.Query().Get("pageSize"))
		_, _ = w.Write([]byte(`{"status":"ok","totalResults":4,"articles":[
			{"source":{"name":"BBC"},"title":"Study finds no link","description":"Researchers found  no link\nwhen p<0.05 and n>1000.","url":"https://bbc.example/a"},
			{"source":{"name":"CNN"},"title":"Second","description":"two","url":"https://cnn.example/b"},
			{"source":{"name":"NPR"},"title":"Third","description":"three","url":"https://npr.example/c"},
			{"source":{"name":"AP"},"title":"Fourth","description":"four","url":"https://ap.example/d"}
		]}`))
	}))
	defer srv.Close()

	items, err := NewNewsAPI(srv.URL, "news-key", srv.Client()).Fetch(context.Background(), "q")

	require.NoError(t, err)
	require.Len(t, items, newsLimit)
	assert.Equal(t, "Study finds no link", items[0].Title)
	assert.Equal(t, "[BBC] Researchers found no link when p<0.05 and n>1000.", items[0].Summary)
	assert.Equal(t, "https://bbc.example/a", items[0].URL)
}

func TestNewsAPI_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"status":"error","code":"apiKeyInvalid","message":"Your API key is invalid"}`))
	}))
	defer srv.Close()

	_, err := NewNewsAPI(srv.URL, "bad", srv.Client()).Fetch(context.Background(), "q")

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
}

func TestNewsAPI_MissingKeyFailsClosed(t *testing.T) {
	_, err := NewNewsAPI("http://127.0.0.1:0", "", nil).Fetch(context.Background(), "q")
	assert.True(t, errors.Is(err, ErrMissingAPIKey))
}

const snopesPage = `<html><body>
<div class="article_wrapper">
  <a class="outer_article_link_wrapper" href="/fact-check/covid-vaccine-infertility/">
    <h3 class="article_title">Do COVID-19 Vaccines Cause Infertility?</h3>
    <span class="article_byline">Claims that the vaccines cause infertility are false.</span>
  </a>
</div>
<div class="article_wrapper">
  <a class="outer_article_link_wrapper" href="https://www.snopes.com/fact-check/two/"><h3 class="article_title">Two</h3></a>
</div>
<div class="article_wrapper"><a class="outer_article_link_wrapper" href="/3"><h3 class="article_title">Three</h3></a></div>
<div class="article_wrapper"><a class="outer_article_link_wrapper" href="/4"><h3 class="article_title">Four</h3></a></div>
</body></html>`

func TestSnopes_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "vaccine infertility", r.URL.Query().Get("q"))
		_, _ = w.Write([]byte(snopesPage))
	}))
	defer srv.Close()

	items, err := NewSnopes(srv.URL+"/search/", srv.Client()).Fetch(context.Background(), "vaccine infertility")

	require.NoError(t, err)
	require.Len(t, items, snopesLimit)
	assert.Equal(t, "Do COVID-19 Vaccines Cause Infertility?", items[0].Title)
	assert.Equal(t, "Claims that the vaccines cause infertility are false.", items[0].Summary)
	assert.Equal(t, srv.URL+"/fact-check/covid-vaccine-infertility/", items[0].URL)
	assert.Equal(t, "https://www.snopes.com/fact-check/two/", items[1].URL)
}

func TestSnopes_ServerErrorThroughAdapter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	a := NewAdapter(NewSnopes(srv.URL, srv.Client()), nopLogger(), nil)
	items := a.Verify(context.Background(), "q")

	require.Len(t, items, 1)
	assert.Equal(t, domain.SourceCrowdFactCheck, items[0].Source)
	assert.Equal(t, "Error: unexpected status 503", items[0].Summary)
}
