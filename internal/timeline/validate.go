package timeline

// ValidateChunks reports whether a chunk sequence is well formed: start times
// non-decreasing and no pair of consecutive chunks overlapping. Gaps between
// chunks are allowed. Empty and single-element sequences are trivially valid.
func ValidateChunks(chunks []Chunk) bool {
	for i := 1; i < len(chunks); i++ {
		prev, cur := chunks[i-1], chunks[i]
		if prev.End > cur.Start {
			return false
		}
		if prev.Start > cur.Start {
			return false
		}
	}
	return true
}
