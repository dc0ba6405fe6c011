package pipeline

import (
	"fmt"
	"time"

	"fedigraph/internal/model"
)

// Annotate maps known events onto the bucket positions of an aggregated
// series. index is the key -> position table of that series (Series.KeyIndex).
//
// Range bounds follow the same inclusive semantics as Group. An event whose
// key matches no bucket has nothing to anchor to and is dropped. Events that
// do match are emitted in input order, duplicates included — stacking is the
// renderer's problem.
//
// Unlike Group, a malformed event date does not abort the call: the event is
// skipped and reported in the second return value for the caller to log.
func Annotate(events []model.KnownEvent, index map[string]int, g model.Granularity, from, to time.Time) ([]model.Annotation, []error, error) {
	if !g.Valid() {
		return nil, nil, fmt.Errorf("%w: granularity %d", ErrInvalidArgument, int(g))
	}

	var anns []model.Annotation
	var skipped []error

	for _, ev := range events {
		ts, err := model.ParseTime(ev.Date)
		if err != nil {
			skipped = append(skipped, fmt.Errorf("%w: %q: date %q", ErrMalformedEvent, ev.Label, ev.Date))
			continue
		}
		if !inRange(ts, from, to) {
			continue
		}
		if i, ok := index[g.BucketKey(ts)]; ok {
			anns = append(anns, model.Annotation{Index: i, Label: ev.Label})
		}
	}

	return anns, skipped, nil
}
