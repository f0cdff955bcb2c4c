package publisher

// PublishedEntry records one draft successfully promoted to a live article.
type PublishedEntry struct {
	ContentID string `json:"content_id"`
	BlogID    string `json:"blog_id"`
	Slug      string `json:"slug"`
	Title     string `json:"title"`
}

// FailedEntry records one draft whose promotion failed. The batch continues
// past it.
type FailedEntry struct {
	ContentID string `json:"content_id"`
	Reason    string `json:"reason"`
}

// Warning records a secondary-effect failure (routing, country link, cache)
// on an item that still counts as published.
type Warning struct {
	ContentID string `json:"content_id"`
	Stage     string `json:"stage"`
	Reason    string `json:"reason"`
}

// PublishReport is the outcome of one auto-publish run.
type PublishReport struct {
	ScheduledCount int              `json:"scheduled_count"`
	PublishedCount int              `json:"published_count"`
	FailedCount    int              `json:"failed_count"`
	Published      []PublishedEntry `json:"published"`
	Failed         []FailedEntry    `json:"failed"`
	Warnings       []Warning        `json:"warnings,omitempty"`
}
