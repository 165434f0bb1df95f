package core

import (
	"fmt"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Document is an ordered sequence of sections backed by a single text blob.
//
// Invariants:
//   - separators are unique;
//   - insertion order is display order;
//   - there is always at least one section, the first one being the default.
type Document struct {
	sections []Section
}

// NewDocument returns a document holding only the placeholder section.
func NewDocument() *Document {
	return &Document{sections: []Section{placeholder("")}}
}

func placeholder(content string) Section {
	return Section{
		Separator: SeparatorFromName(PlaceholderName),
		Name:      PlaceholderName,
		Content:   content,
	}
}

// Parse reads the backing text of a document.
//
// Layout:
//
//	<section=work>
//	content of work
//	<section=personal>
//	content of personal
//
// CRLF line endings are read as LF and written back as LF.
// Text before the first separator belongs to the placeholder section; when
// that text is only blank lines it is dropped and no placeholder is created.
// A separator seen twice has its contents joined under the first occurrence.
func Parse(text string) *Document {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	d := &Document{}

	var preamble []string
	current := -1
	var lines []string

	flush := func() {
		content := strings.Join(lines, "\n")
		if current < 0 {
			preamble = lines
		} else if d.sections[current].Content == "" {
			d.sections[current].Content = content
		} else if len(lines) > 0 {
			d.sections[current].Content += "\n" + content
		}
		lines = nil
	}

	for line := range strings.SplitSeq(text, "\n") {
		name, ok := parseSeparator(line)
		if !ok {
			lines = append(lines, line)
			continue
		}
		flush()
		current = d.index(line)
		if current < 0 {
			d.sections = append(d.sections, Section{Separator: line, Name: name})
			current = len(d.sections) - 1
		}
	}
	flush()

	if len(d.sections) == 0 {
		d.sections = []Section{placeholder(text)}
		return d
	}

	if hasText(preamble) {
		content := strings.Join(preamble, "\n")
		if i := d.index(SeparatorFromName(PlaceholderName)); i >= 0 {
			if d.sections[i].Content != "" {
				content += "\n" + d.sections[i].Content
			}
			d.sections[i].Content = content
		} else {
			d.sections = append([]Section{placeholder(content)}, d.sections...)
		}
	}
	return d
}

func hasText(lines []string) bool {
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			return true
		}
	}
	return false
}

// String serializes the document back to its backing text.
func (d *Document) String() string {
	var sb strings.Builder
	for i, s := range d.sections {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(s.Separator)
		sb.WriteString("\n")
		sb.WriteString(s.Content)
	}
	return sb.String()
}

// Clone returns a deep copy, used to stage mutations before they are persisted.
func (d *Document) Clone() *Document {
	return &Document{sections: slices.Clone(d.sections)}
}

func (d *Document) index(separator string) int {
	return slices.IndexFunc(d.sections, func(s Section) bool { return s.Separator == separator })
}

// Has reports whether the separator exists in the document.
func (d *Document) Has(separator string) bool {
	return d.index(separator) >= 0
}

// Sections returns the separators in display order.
func (d *Document) Sections() []string {
	out := make([]string, len(d.sections))
	for i, s := range d.sections {
		out[i] = s.Separator
	}
	return out
}

// Names returns the section names in display order.
func (d *Document) Names() []string {
	out := make([]string, len(d.sections))
	for i, s := range d.sections {
		out[i] = s.Name
	}
	return out
}

// Section returns a copy of the section with the given separator.
func (d *Document) Section(separator string) (Section, error) {
	i := d.index(separator)
	if i < 0 {
		return Section{}, fmt.Errorf("%w: %s", ErrNotFound, separator)
	}
	return d.sections[i], nil
}

// Content returns the content of a section.
func (d *Document) Content(separator string) (string, error) {
	s, err := d.Section(separator)
	if err != nil {
		return "", err
	}
	return s.Content, nil
}

// Default returns the separator selected on load.
func (d *Document) Default() string {
	return d.sections[0].Separator
}

// Match returns the separators whose section name matches a glob pattern (e.g. "work*").
func (d *Document) Match(pattern string) ([]string, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("%w: bad pattern %q", ErrValidation, pattern)
	}
	var out []string
	for _, s := range d.sections {
		ok, err := doublestar.Match(pattern, s.Name)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, s.Separator)
		}
	}
	return out, nil
}

func (d *Document) checkName(name string, except string) (string, error) {
	name, err := ValidateName(name)
	if err != nil {
		return "", err
	}
	separator := SeparatorFromName(name)
	if separator != except && d.Has(separator) {
		return "", fmt.Errorf("%w: %s", ErrConflict, name)
	}
	return separator, nil
}

// Add appends an empty section and returns its separator.
func (d *Document) Add(name string) (string, error) {
	separator, err := d.checkName(name, "")
	if err != nil {
		return "", err
	}
	n, _ := NameFromSeparator(separator)
	d.sections = append(d.sections, Section{Separator: separator, Name: n})
	return separator, nil
}

// Rename changes the name of a section in place and returns the new separator.
func (d *Document) Rename(separator, newName string) (string, error) {
	i := d.index(separator)
	if i < 0 {
		return "", fmt.Errorf("%w: %s", ErrNotFound, separator)
	}
	newSeparator, err := d.checkName(newName, separator)
	if err != nil {
		return "", err
	}
	d.sections[i].Separator = newSeparator
	d.sections[i].Name, _ = NameFromSeparator(newSeparator)
	return newSeparator, nil
}

// Delete removes a section and returns the separator a caller should select
// if the deleted section was the active one: the previous section in order,
// the new first section when the first was deleted, or the recreated
// placeholder when none remain.
func (d *Document) Delete(separator string) (string, error) {
	i := d.index(separator)
	if i < 0 {
		return "", fmt.Errorf("%w: %s", ErrNotFound, separator)
	}
	d.sections = slices.Delete(d.sections, i, i+1)

	if len(d.sections) == 0 {
		d.sections = []Section{placeholder("")}
		return d.sections[0].Separator, nil
	}
	if i > 0 {
		return d.sections[i-1].Separator, nil
	}
	return d.sections[0].Separator, nil
}

// SetContent replaces the content of a section.
func (d *Document) SetContent(separator, content string) error {
	i := d.index(separator)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, separator)
	}
	if containsSeparatorLine(content) {
		return fmt.Errorf("%w: content of %s contains a section separator line", ErrValidation, separator)
	}
	d.sections[i].Content = content
	return nil
}
