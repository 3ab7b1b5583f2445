package schema

import (
	"regexp"
	"strings"
)

var splitWordsPattern = regexp.MustCompile(`[_\-\s]+`)

// metadataWords spells out the abbreviations and acronyms common in sample
// metadata field ids (MIxS style names such as samp_name or host_taxid).
var metadataWords = map[string]string{
	"id":    "ID",
	"uuid":  "UUID",
	"url":   "URL",
	"doi":   "DOI",
	"dna":   "DNA",
	"rna":   "RNA",
	"ncbi":  "NCBI",
	"taxid": "Taxonomy ID",
	"samp":  "Sample",
	"env":   "Environmental",
	"geo":   "Geographic",
	"loc":   "Location",
	"lat":   "Latitude",
	"lon":   "Longitude",
	"temp":  "Temperature",
}

// DefaultLabeler converts a field id into a human-friendly label. It splits
// on underscores, dashes and camelCase boundaries, then expands known metadata
// abbreviations: host_taxid becomes "Host Taxonomy ID".
func DefaultLabeler(id string) string {
	if id == "" {
		return ""
	}

	words := splitWordsPattern.Split(id, -1)
	var segments []string
	for _, word := range words {
		if word == "" {
			continue
		}
		for _, part := range strings.Fields(splitCamel(word)) {
			segments = append(segments, labelWord(part))
		}
	}
	return strings.Join(segments, " ")
}

func labelWord(word string) string {
	if expanded, ok := metadataWords[strings.ToLower(word)]; ok {
		return expanded
	}
	return titleCase(word)
}

func splitCamel(input string) string {
	var out strings.Builder
	for i, r := range input {
		if i > 0 && isBoundary(input, i, r) {
			out.WriteRune(' ')
		}
		out.WriteRune(r)
	}
	return out.String()
}

func isBoundary(input string, index int, r rune) bool {
	prev := rune(input[index-1])
	return (isLower(prev) && isUpper(r)) || (isLetter(prev) && isDigit(r)) || (isDigit(prev) && isLetter(r))
}

func isUpper(r rune) bool  { return r >= 'A' && r <= 'Z' }
func isLower(r rune) bool  { return r >= 'a' && r <= 'z' }
func isDigit(r rune) bool  { return r >= '0' && r <= '9' }
func isLetter(r rune) bool { return isUpper(r) || isLower(r) }

func titleCase(word string) string {
	if word == "" {
		return ""
	}
	lower := strings.ToLower(word)
	return strings.ToUpper(lower[:1]) + lower[1:]
}
