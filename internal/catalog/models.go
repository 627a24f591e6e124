package catalog

// Product is one catalog entry, immutable once constructed. The full set is
// replaced wholesale on each refresh; there is no per-item merging.
type Product struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"` // plain text, HTML already stripped
	Link    string `json:"link"`
}

// --- WordPress REST content item ---
// Reference: https://developer.wordpress.org/rest-api/reference/posts/

type contentItem struct {
	ID      int64        `json:"id"`
	Title   renderedText `json:"title"`
	Content renderedText `json:"content"`
	Link    string       `json:"link"`
}

type renderedText struct {
	Rendered string `json:"rendered"`
}
