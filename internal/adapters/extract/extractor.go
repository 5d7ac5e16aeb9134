// Package extract finds analytics identifiers in the script content of HTML
// documents.
package extract

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"waybackga/internal/core/domain"
	"waybackga/internal/platform/cache"
)

// Extractor scans every <script> element independently and returns the
// distinct identifiers of each class, sorted. Text outside scripts and script
// attributes are ignored. Safe for concurrent use.
type Extractor struct {
	memo cache.Cache[domain.Occurrences]
}

// New creates an extractor memoising up to cacheSize documents. Archived
// snapshots of one page are often byte-identical. cacheSize <= 0 disables
// the memo.
func New(cacheSize int) *Extractor {
	e := &Extractor{}
	if cacheSize > 0 {
		e.memo = cache.NewLRU[domain.Occurrences](cacheSize)
	}
	return e
}

// Extract never fails: unparseable markup or a page without scripts yields
// empty Occurrences.
func (e *Extractor) Extract(html string) domain.Occurrences {
	if e.memo == nil {
		return extract(html)
	}
	key := digest(html)
	if occ, ok := e.memo.Get(key); ok {
		return clone(occ)
	}
	occ := extract(html)
	e.memo.Set(key, occ)
	return clone(occ)
}

// Scripts returns the text of each <script> element in document order.
func Scripts(html string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}
	var out []string
	doc.Find("script").Each(func(_ int, s *goquery.Selection) {
		if text := s.Text(); strings.TrimSpace(text) != "" {
			out = append(out, text)
		}
	})
	return out
}

func extract(html string) domain.Occurrences {
	occ := domain.Occurrences{}
	scripts := Scripts(html)
	if len(scripts) == 0 {
		return occ
	}

	for _, class := range domain.IdentifierClasses {
		seen := make(map[string]struct{})
		for _, text := range scripts {
			for _, id := range class.Pattern().FindAllString(text, -1) {
				seen[id] = struct{}{}
			}
		}
		if len(seen) == 0 {
			continue
		}
		ids := make([]string, 0, len(seen))
		for id := range seen {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		occ[class] = ids
	}
	return occ
}

func digest(html string) string {
	sum := sha256.Sum256([]byte(html))
	return hex.EncodeToString(sum[:])
}

// clone keeps cached slices away from callers.
func clone(occ domain.Occurrences) domain.Occurrences {
	out := make(domain.Occurrences, len(occ))
	for class, ids := range occ {
		out[class] = append([]string(nil), ids...)
	}
	return out
}
