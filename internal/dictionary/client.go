// Package dictionary wraps the krdict (Korean Learners' Dictionary) Open API.
package dictionary

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

// DefaultBaseURL is the krdict Open API search endpoint.
const DefaultBaseURL = "https://krdict.korean.go.kr/api/search"

// SearchResult is one sense of a dictionary entry with its English
// translation.
type SearchResult struct {
	Term           string
	TermDfn        string
	Translation    string
	TranslationDfn string
}

// Client queries the krdict Open API
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewClient creates a dictionary client
func NewClient(apiKey string, logger *zap.Logger) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		logger:  logger,
	}
}

type xmlChannel struct {
	Total int       `xml:"total"`
	Items []xmlItem `xml:"item"`
}

type xmlItem struct {
	Word   string     `xml:"word"`
	Senses []xmlSense `xml:"sense"`
}

type xmlSense struct {
	Definition  string         `xml:"definition"`
	Translation xmlTranslation `xml:"translation"`
}

type xmlTranslation struct {
	Word string `xml:"trans_word"`
	Dfn  string `xml:"trans_dfn"`
}

// Search looks a word up and returns its senses with English translations.
// An empty result list (not an error) means the word is unknown.
func (c *Client) Search(ctx context.Context, word string) ([]SearchResult, error) {
	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("type_search", "search")
	params.Set("q", word)
	params.Set("part", "word")
	params.Set("sort", "dict")
	params.Set("translated", "y")
	params.Set("trans_lang", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("dictionary request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("dictionary returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var channel xmlChannel
	if err := xml.Unmarshal(body, &channel); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if channel.Total == 0 || len(channel.Items) == 0 {
		c.logger.Debug("No dictionary results", zap.String("word", word))
		return nil, nil
	}

	// The first item is the closest match; each of its senses becomes a
	// separate result.
	item := channel.Items[0]
	results := make([]SearchResult, 0, len(item.Senses))
	for _, sense := range item.Senses {
		results = append(results, SearchResult{
			Term:           item.Word,
			TermDfn:        sense.Definition,
			Translation:    sense.Translation.Word,
			TranslationDfn: sense.Translation.Dfn,
		})
	}

	return results, nil
}
