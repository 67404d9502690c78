package models

// Post is a single blog entry as persisted in posts.json.
// Slug is the unique key and never changes after creation.
type Post struct {
	Title          string   `json:"title"`
	Slug           string   `json:"slug"`
	Tags           []string `json:"tags"`
	Teaser         string   `json:"teaser"`
	Body           string   `json:"body"`
	Image          string   `json:"image"`
	YouTubeURL     string   `json:"youtube_url"`
	GitHubURL      string   `json:"github_url"`
	HuggingFaceURL string   `json:"huggingface_url"`
	TwitterURL     string   `json:"twitter_url"`
	ArxivURL       string   `json:"arxiv_url"`
	Author         string   `json:"author"`
	Created        string   `json:"created"`
	Updated        string   `json:"updated"`
	ReadTime       int      `json:"read_time"`
}
