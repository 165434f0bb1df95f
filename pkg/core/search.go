package core

import (
	"fmt"
	"iter"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// MinQueryLength is the minimal rune count of a search query.
	MinQueryLength = MinNameLength

	// SnippetContext is the number of runes kept on each side of a match in its snippet.
	SnippetContext = 20
)

// SearchOptions are the switches of a search.
type SearchOptions struct {
	// CaseSensitive disables case folding.
	CaseSensitive bool
	// AllSections searches every section in display order instead of Section only.
	AllSections bool
	// Section scopes the search when AllSections is false.
	Section string
}

// SearchMatch locates one occurrence of a query. Offsets count runes.
type SearchMatch struct {
	Separator string `json:"separator" yaml:"separator"`
	Offset    int    `json:"offset" yaml:"offset"`
	Length    int    `json:"length" yaml:"length"`
	// Snippet is the match with up to SnippetContext runes around it, line breaks flattened.
	Snippet string `json:"snippet" yaml:"snippet"`
	// SnippetOffset is the rune offset of the match inside Snippet.
	SnippetOffset int `json:"snippet_offset" yaml:"snippet_offset"`
}

// Location renders the match as a list entry.
func (m SearchMatch) Location() Location {
	name, _ := NameFromSeparator(m.Separator)
	return Location{Section: name, Position: m.Offset}
}

// ValidateQuery checks a search query the same way section names are checked for length.
func ValidateQuery(query string) error {
	if utf8.RuneCountInString(strings.TrimSpace(query)) < MinQueryLength {
		return fmt.Errorf("%w: search query must have at least %d characters", ErrValidation, MinQueryLength)
	}
	return nil
}

// Search returns the matches of query. The sequence is lazy and recomputed on
// every range, ordered by section display order then ascending offset.
func (d *Document) Search(query string, opts SearchOptions) (iter.Seq[SearchMatch], error) {
	if err := ValidateQuery(query); err != nil {
		return nil, err
	}
	if !opts.AllSections && !d.Has(opts.Section) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, opts.Section)
	}

	needle := []rune(query)
	return func(yield func(SearchMatch) bool) {
		for _, s := range d.sections {
			if !opts.AllSections && s.Separator != opts.Section {
				continue
			}
			haystack := []rune(s.Content)
			for i := 0; i+len(needle) <= len(haystack); {
				if !equalRunes(haystack[i:i+len(needle)], needle, opts.CaseSensitive) {
					i++
					continue
				}
				snippet, at := snippetAround(haystack, i, len(needle))
				m := SearchMatch{
					Separator:     s.Separator,
					Offset:        i,
					Length:        len(needle),
					Snippet:       snippet,
					SnippetOffset: at,
				}
				if !yield(m) {
					return
				}
				i += len(needle)
			}
		}
	}, nil
}

func equalRunes(a, b []rune, caseSensitive bool) bool {
	for i := range a {
		if a[i] == b[i] {
			continue
		}
		if caseSensitive || unicode.ToLower(a[i]) != unicode.ToLower(b[i]) {
			return false
		}
	}
	return true
}

func snippetAround(text []rune, offset, length int) (string, int) {
	start := max(0, offset-SnippetContext)
	end := min(len(text), offset+length+SnippetContext)
	snippet := strings.NewReplacer("\r\n", " ", "\n", " ").Replace(string(text[start:end]))
	return snippet, offset - start
}

// Mark wraps length runes of text starting at start with the given markup.
// Out of range values are clamped.
func Mark(text string, start, length int, openTag, closeTag string) string {
	r := []rune(text)
	start = min(max(start, 0), len(r))
	end := min(max(start+length, start), len(r))
	return string(r[:start]) + openTag + string(r[start:end]) + closeTag + string(r[end:])
}

// Location names a position inside a section, as shown in a search result list.
type Location struct {
	Section  string
	Position int
}

const (
	locationSectionPrefix  = "section: "
	locationPositionPrefix = "position: "
	locationSeparator      = ", "
)

func (l Location) String() string {
	return locationSectionPrefix + l.Section + locationSeparator + locationPositionPrefix + strconv.Itoa(l.Position)
}

// ParseLocation is the inverse of Location.String.
func ParseLocation(s string) (Location, error) {
	i := strings.LastIndex(s, locationSeparator+locationPositionPrefix)
	if !strings.HasPrefix(s, locationSectionPrefix) || i < len(locationSectionPrefix) {
		return Location{}, fmt.Errorf("%w: malformed location %q", ErrValidation, s)
	}
	pos, err := strconv.Atoi(s[i+len(locationSeparator)+len(locationPositionPrefix):])
	if err != nil || pos < 0 {
		return Location{}, fmt.Errorf("%w: malformed position in %q", ErrValidation, s)
	}
	return Location{Section: s[len(locationSectionPrefix):i], Position: pos}, nil
}
