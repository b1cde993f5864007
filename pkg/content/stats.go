package content

import (
	"strconv"

	"github.com/umputun/rootbyte/pkg/domain"
)

// Count is a named counter, used for breakdowns
type Count struct {
	Name  string
	Count int
}

// Stats summarizes the articles collection
type Stats struct {
	Total      int
	Published  int
	Drafts     int
	ByCategory []Count // in order of first appearance
	ByEra      []Count // root_year decades, in order of first appearance
}

// MakeStats counts articles by status, category and root_year decade
func MakeStats(articles []domain.Article) Stats {
	st := Stats{Total: len(articles)}
	cats, eras := counter{}, counter{}
	for _, a := range articles {
		if a.IsPublished() {
			st.Published++
		} else {
			st.Drafts++
		}
		cats.inc(a.Category())
		if year, ok := a.Meta.Int("root_year"); ok && year != 0 {
			eras.inc(strconv.Itoa(year/10*10) + "s")
		}
	}
	st.ByCategory, st.ByEra = cats.list, eras.list
	return st
}

type counter struct {
	list []Count
}

func (c *counter) inc(name string) {
	for i := range c.list {
		if c.list[i].Name == name {
			c.list[i].Count++
			return
		}
	}
	c.list = append(c.list, Count{Name: name, Count: 1})
}
