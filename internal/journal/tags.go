package journal

import "regexp"

// DefaultSetup is the fallback setup label when no tag can be extracted.
const DefaultSetup = "Manual Entry"

var tagPattern = regexp.MustCompile(`#[\w]+`)

// ExtractTags returns every #token found in a rationale, without the
// leading hash, in order of appearance.
func ExtractTags(rationale string) []string {
	matches := tagPattern.FindAllString(rationale, -1)
	tags := make([]string, 0, len(matches))
	for _, m := range matches {
		tags = append(tags, m[1:])
	}
	return tags
}

// FirstTag returns the first #token of a rationale, or "" when none exists.
// Only the first tag classifies a trade; any further tags in the text are
// not persisted.
func FirstTag(rationale string) string {
	tags := ExtractTags(rationale)
	if len(tags) == 0 {
		return ""
	}
	return tags[0]
}
