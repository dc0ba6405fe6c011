package model

// BucketPoint is one aggregated bucket: a key per Granularity.BucketKey and
// the summed user count of every record that fell into it.
type BucketPoint struct {
	Key   string
	Total int64
}

// Series is an aggregated, chronologically ordered sequence of buckets.
// Keys are unique and ascending; the sort order is authoritative.
type Series []BucketPoint

// KeyIndex returns a bucket key -> position map, the anchor table the
// annotator resolves event dates against.
func (s Series) KeyIndex() map[string]int {
	idx := make(map[string]int, len(s))
	for i, p := range s {
		idx[p.Key] = i
	}
	return idx
}

// Keys returns the bucket keys in series order.
func (s Series) Keys() []string {
	keys := make([]string, len(s))
	for i, p := range s {
		keys[i] = p.Key
	}
	return keys
}

// Values returns the summed counts as floats, for chart rendering.
func (s Series) Values() []float64 {
	vals := make([]float64, len(s))
	for i, p := range s {
		vals[i] = float64(p.Total)
	}
	return vals
}

// Total sums all bucket counts.
func (s Series) Total() int64 {
	var sum int64
	for _, p := range s {
		sum += p.Total
	}
	return sum
}

// Annotation anchors a known event to a bucket position in a Series.
type Annotation struct {
	Index int
	Label string
}
