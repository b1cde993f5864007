package domain

// Snapshot is the trending feed written to daily-update.json, replaced on every run
type Snapshot struct {
	Generated      string   `json:"generated"`
	TopStories     []Story  `json:"top_stories"`
	Ticker         []string `json:"ticker"`
	TomorrowTeaser Teaser   `json:"tomorrow_teaser"`
}

// Story links a current headline to a root article of the archive
type Story struct {
	Slug           string  `json:"slug"`
	Headline       string  `json:"headline"`
	Category       string  `json:"category"`
	RootYear       any     `json:"root_year"`
	IsHero         bool    `json:"is_hero"`
	RootConnection *string `json:"root_connection"`
	NewsSource     *string `json:"news_source"`
	PublishedAt    string  `json:"published_at,omitempty"`
}

// Teaser announces the next article
type Teaser struct {
	Headline string   `json:"headline"`
	Preview  string   `json:"preview"`
	Topics   []string `json:"topics"`
}
