package domain

// Category is an entry of categories.json
type Category struct {
	Label    string            `json:"label"`
	Articles []CategoryArticle `json:"articles"`
}

// CategoryArticle is a lightweight article summary stored in the category index
type CategoryArticle struct {
	Slug        string `json:"slug"`
	Title       any    `json:"title"`
	Excerpt     any    `json:"excerpt"`
	RootYear    any    `json:"root_year"`
	RootWho     any    `json:"root_who"`
	FutureYear  any    `json:"future_year"`
	Category    string `json:"category"`
	Date        any    `json:"date"`
	ReadingTime any    `json:"reading_time"`
	Status      string `json:"status"`
}

// Fact is a "did you know" entry, one per source article
type Fact struct {
	ID            string `json:"id"`
	Fact          string `json:"fact"`
	Category      string `json:"category"`
	RootYear      any    `json:"root_year"`
	SourceArticle string `json:"source_article"`
}
