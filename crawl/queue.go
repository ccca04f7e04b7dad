package crawl

import (
	"strconv"

	"github.com/gosimple/slug"
)

// Slugger hands out unique directory names for pages. A name whose slug is
// already taken gets a numeric suffix starting at 2.
type Slugger struct {
	used map[string]bool
}

// NewSlugger creates an empty Slugger.
func NewSlugger() *Slugger {
	return &Slugger{used: make(map[string]bool)}
}

// Next returns a slug for name that has not been returned before.
func (s *Slugger) Next(name string) string {
	base := slug.Make(name)
	if base == "" {
		base = "page"
	}
	if !s.used[base] {
		s.used[base] = true
		return base
	}
	for i := 2; ; i++ {
		candidate := base + "-" + strconv.Itoa(i)
		if !s.used[candidate] {
			s.used[candidate] = true
			return candidate
		}
	}
}

// Len returns the number of slugs handed out.
func (s *Slugger) Len() int {
	return len(s.used)
}
