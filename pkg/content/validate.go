package content

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/umputun/rootbyte/pkg/frontmatter"
)

// validation limits
const (
	MinWords          = 300
	WordsPerMinute    = 200
	MinRootYear       = 1800
	readingTimeMargin = 2
)

// RequiredFields must be present and non-empty in every article
var RequiredFields = []string{
	"title", "date", "category", "tags", "root_year",
	"root_who", "root_where", "root_connection", "dyk_fact",
}

// Sections must appear in the body of every article
var Sections = []string{
	"## The Modern Story",
	"## ROOT: Going Back to",
	"## Did You Know",
	"## Why It Matters Today",
}

// Result is the validation outcome of a single file
type Result struct {
	File      string
	Errors    []string
	Words     int
	Estimated int // reading time in minutes estimated from word count
}

// Valid returns true if no errors found
func (r Result) Valid() bool {
	return len(r.Errors) == 0
}

// Report aggregates validation results of all files
type Report struct {
	Results []Result
}

// ValidCount returns number of files without errors
func (r Report) ValidCount() int {
	n := 0
	for _, res := range r.Results {
		if res.Valid() {
			n++
		}
	}
	return n
}

// ErrorCount returns total number of errors in all files
func (r Report) ErrorCount() int {
	n := 0
	for _, res := range r.Results {
		n += len(res.Errors)
	}
	return n
}

// Validate checks every article file. A broken file never stops checking of the others,
// only a missing or unreadable directory is an error.
func (s *Store) Validate(now time.Time) (Report, error) {
	files, err := s.Files()
	if err != nil {
		return Report{}, err
	}

	rep := Report{Results: make([]Result, 0, len(files))}
	for _, name := range files {
		data, err := os.ReadFile(filepath.Join(s.dir, name)) //nolint:gosec // path built from directory listing
		if err != nil {
			rep.Results = append(rep.Results, Result{File: name, Errors: []string{fmt.Sprintf("Unreadable file: %v", err)}})
			continue
		}
		rep.Results = append(rep.Results, ValidateText(name, string(data), now))
	}
	return rep, nil
}

// ValidateText checks a single article text
func ValidateText(name, text string, now time.Time) Result {
	res := Result{File: name}
	doc := frontmatter.Parse(text)
	if !doc.HasBlock {
		res.Errors = append(res.Errors, "Missing frontmatter")
		return res
	}

	for _, field := range RequiredFields {
		if doc.Meta.String(field) == "" {
			res.Errors = append(res.Errors, "Missing required field: "+field)
		}
	}

	for _, section := range Sections {
		if !strings.Contains(doc.Body, section) {
			res.Errors = append(res.Errors, "Missing required section: "+section)
		}
	}

	res.Words = len(strings.Fields(doc.Body))
	if res.Words < MinWords {
		res.Errors = append(res.Errors, fmt.Sprintf("Article too short: %d words (minimum %d)", res.Words, MinWords))
	}

	if doc.Meta.String("root_year") != "" {
		year, ok := doc.Meta.Int("root_year")
		if !ok || year < MinRootYear || year > now.Year() {
			res.Errors = append(res.Errors, "Invalid root_year: "+doc.Meta.String("root_year"))
		}
	}

	res.Estimated = int(math.Ceil(float64(res.Words) / WordsPerMinute))
	if declared, ok := doc.Meta.Int("reading_time"); ok && declared != 0 {
		if abs(declared-res.Estimated) > readingTimeMargin {
			res.Errors = append(res.Errors,
				fmt.Sprintf("Reading time mismatch: declared %dmin, estimated %dmin", declared, res.Estimated))
		}
	}
	return res
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
