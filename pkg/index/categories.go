// Package index builds the generated site indices from articles: categories.json,
// did-you-know.json and sitemap.xml.
package index

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/umputun/rootbyte/pkg/domain"
)

// summary defaults
const (
	untitled           = "Untitled"
	defaultReadingTime = 6
)

// Categories is the category index keyed by category name in order of first appearance
type Categories = orderedmap.OrderedMap[string, *domain.Category]

// BuildCategoryIndex groups published articles by category. Drafts are skipped.
func BuildCategoryIndex(articles []domain.Article) *Categories {
	res := orderedmap.New[string, *domain.Category]()
	for _, a := range articles {
		if !a.IsPublished() {
			continue
		}
		cat := a.Category()
		entry, ok := res.Get(cat)
		if !ok {
			entry = &domain.Category{Label: cat, Articles: []domain.CategoryArticle{}}
			res.Set(cat, entry)
		}
		entry.Articles = append(entry.Articles, Summary(a))
	}
	return res
}

// Summary makes category index entry for the article, filling defaults for missing values
func Summary(a domain.Article) domain.CategoryArticle {
	return domain.CategoryArticle{
		Slug:        a.Slug,
		Title:       a.Meta.Or("title", untitled),
		Excerpt:     a.Meta.Or("excerpt", ""),
		RootYear:    a.Meta.Or("root_year", nil),
		RootWho:     a.Meta.Or("root_who", ""),
		FutureYear:  a.Meta.Or("future_year", ""),
		Category:    a.Category(),
		Date:        a.Meta.Or("date", nil),
		ReadingTime: a.Meta.Or("reading_time", defaultReadingTime),
		Status:      a.Status(),
	}
}
