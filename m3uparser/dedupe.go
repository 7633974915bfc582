package m3uparser

// Dedupe - Keeps the first entry for each stream URL and drops the rest.
func Dedupe(entries []Entry) []Entry {
	seen := make(map[string]bool, len(entries))
	result := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if seen[e.URL] {
			continue
		}
		seen[e.URL] = true
		result = append(result, e)
	}
	return result
}
