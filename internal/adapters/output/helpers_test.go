// internal/adapters/output/helpers_test.go
package output

import (
	"errors"
	"time"

	"waybackga/internal/core/domain"
)

// sampleBatch: dos sitios que comparten un UA, uno con página en vivo y otro
// sin ella, más un sitio cuyo índice falló.
func sampleBatch() *domain.BatchResult {
	b := domain.NewBatchResult()
	b.StartTime = time.Date(2024, time.March, 5, 14, 30, 15, 0, time.UTC)

	a := domain.NewCodeIntervals()
	a[domain.ClassLegacy]["UA-11111-1"] = domain.Interval{FirstSeen: "20120101000000", LastSeen: "20150601120000"}
	a[domain.ClassTagManager]["GTM-AAA"] = domain.NewInterval("20160101000000")

	bb := domain.NewCodeIntervals()
	bb[domain.ClassLegacy]["UA-11111-1"] = domain.NewInterval("20130101000000")
	bb[domain.ClassShort]["G-22222"] = domain.Interval{FirstSeen: "20200101000000", LastSeen: "20210101000000"}

	b.Results = []domain.URLResult{
		{
			URL:       "a.com",
			Current:   domain.Occurrences{domain.ClassShort: {"G-LIVE1"}},
			Archived:  a,
			Snapshots: 10,
			Failed:    1,
		},
		{
			URL:       "b.com",
			Archived:  bb,
			Snapshots: 4,
		},
		{
			URL:      "down.com",
			Archived: domain.NewCodeIntervals(),
			Err:      errors.New("index query failed"),
		},
	}
	b.Finalize()
	return b
}
