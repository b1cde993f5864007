package index

import (
	"fmt"
	"strings"

	"github.com/umputun/rootbyte/pkg/domain"
)

// BuildFacts appends a fact for every published article with a non-blank dyk_fact that is not
// yet a source of an existing fact. Existing facts are returned unchanged and first.
func BuildFacts(articles []domain.Article, existing []domain.Fact) []domain.Fact {
	seen := make(map[string]bool, len(existing))
	for _, f := range existing {
		seen[f.SourceArticle] = true
	}

	res := make([]domain.Fact, len(existing), len(existing)+len(articles))
	copy(res, existing)
	for _, a := range articles {
		if !a.IsPublished() || seen[a.Slug] {
			continue
		}
		fact := a.Meta.String("dyk_fact")
		if strings.TrimSpace(fact) == "" {
			continue
		}
		seen[a.Slug] = true
		res = append(res, domain.Fact{
			ID:            FactID(len(res) + 1),
			Fact:          fact,
			Category:      a.Category(),
			RootYear:      a.Meta.Or("root_year", nil),
			SourceArticle: a.Slug,
		})
	}
	return res
}

// FactID makes fact id from its 1-based position in the list
func FactID(n int) string {
	return fmt.Sprintf("dyk-%03d", n)
}
