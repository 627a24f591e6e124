package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
)

const pageSize = 100

var stripPolicy = bluemonday.StrictPolicy()

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// FetchAll retrieves the full product catalog, one page at a time starting at
// page 1, stopping on the first empty page. Any page failure aborts the whole
// fetch — partial catalogs are never returned.
func (c *Client) FetchAll(ctx context.Context) ([]Product, error) {
	var products []Product
	for page := 1; ; page++ {
		items, err := c.fetchPage(ctx, page)
		if err != nil {
			return nil, fmt.Errorf("fetching catalog page %d: %w", page, err)
		}
		if len(items) == 0 {
			break
		}
		for _, it := range items {
			products = append(products, Product{
				ID:      it.ID,
				Title:   strings.TrimSpace(html.UnescapeString(it.Title.Rendered)),
				Content: stripHTML(it.Content.Rendered),
				Link:    it.Link,
			})
		}
	}
	return products, nil
}

func (c *Client) fetchPage(ctx context.Context, page int) ([]contentItem, error) {
	url := c.baseURL + "/wp-json/wp/v2/product"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	q := req.URL.Query()
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(pageSize))
	req.URL.RawQuery = q.Encode()

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("page request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("content API status %d: %s", resp.StatusCode, body)
	}

	var items []contentItem
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("decoding content items: %w", err)
	}
	return items, nil
}

// stripHTML reduces a rendered rich-text field to plain text.
func stripHTML(s string) string {
	plain := html.UnescapeString(stripPolicy.Sanitize(s))
	return strings.Join(strings.Fields(plain), " ")
}
