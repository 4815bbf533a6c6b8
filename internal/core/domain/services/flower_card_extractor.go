package services

import (
	"regexp"
	"strings"
)

// FlowerCard is one semi-structured record extracted from assistant free
// text. Every field is the raw text after its label; fields the text did
// not mention stay empty. Price is kept as written ("Rp 200000"), not
// parsed into a number.
type FlowerCard struct {
	Name        string
	Description string
	Price       string
	Color       string
	Size        string
	Style       string
	Rating      string
	Category    string
}

// FlowerCardExtractor is a domain service that opportunistically extracts
// flower records from a block of assistant-generated free text for display
// as cards.
//
// The extraction is a lossy best-effort formatter, not a parser with a
// grammar: the text is split into segments at each occurrence of a name
// label (case-insensitive, with English and Indonesian synonyms), and each
// recognized field label is searched independently within a segment using a
// "label: rest-of-line" pattern. A segment yields a record only when a name
// was found; text without any name label yields no records at all, in which
// case the caller shows the raw text unformatted.
//
// Extract never fails. Malformed or unexpected text degrades to zero
// records, never to an error.
//
// Example usage:
//
//	extractor := NewFlowerCardExtractor()
//	cards := extractor.Extract("nama: Mawar Merah\nharga: Rp 200000\nwarna: merah")
//	// cards[0].Name == "Mawar Merah", cards[0].Price == "Rp 200000"
type FlowerCardExtractor struct {
	nameLabel *regexp.Regexp
	fields    []fieldPattern
}

type fieldPattern struct {
	re     *regexp.Regexp
	assign func(*FlowerCard, string)
}

// fieldLabel builds a "label: rest-of-line" pattern for a set of label
// synonyms. The label must not be preceded by a letter, so "nickname:"
// never matches the name label.
func fieldLabel(synonyms ...string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(synonyms, "|") + `)\s*:[ \t]*([^\n]+)`)
}

// NewFlowerCardExtractor creates an extractor recognizing English and
// Indonesian field labels.
func NewFlowerCardExtractor() FlowerCardExtractor {
	return FlowerCardExtractor{
		nameLabel: regexp.MustCompile(`(?i)\b(?:name|nama)\s*:`),
		fields: []fieldPattern{
			{fieldLabel("name", "nama"), func(c *FlowerCard, v string) { c.Name = v }},
			{fieldLabel("description", "deskripsi"), func(c *FlowerCard, v string) { c.Description = v }},
			{fieldLabel("price", "harga"), func(c *FlowerCard, v string) { c.Price = v }},
			{fieldLabel("color", "colour", "warna"), func(c *FlowerCard, v string) { c.Color = v }},
			{fieldLabel("size", "ukuran"), func(c *FlowerCard, v string) { c.Size = v }},
			{fieldLabel("style", "gaya"), func(c *FlowerCard, v string) { c.Style = v }},
			{fieldLabel("rating", "penilaian"), func(c *FlowerCard, v string) { c.Rating = v }},
			{fieldLabel("category", "kategori"), func(c *FlowerCard, v string) { c.Category = v }},
		},
	}
}

// Extract returns zero or more flower records found in the text.
//
// Returns an empty slice when the text contains no name label anywhere;
// the caller is expected to fall back to showing the raw text.
func (e FlowerCardExtractor) Extract(text string) []FlowerCard {
	starts := e.nameLabel.FindAllStringIndex(text, -1)
	if len(starts) == 0 {
		return nil
	}

	cards := make([]FlowerCard, 0, len(starts))
	for i, loc := range starts {
		end := len(text)
		if i+1 < len(starts) {
			end = starts[i+1][0]
		}

		if card, ok := e.extractSegment(text[loc[0]:end]); ok {
			cards = append(cards, card)
		}
	}

	return cards
}

// extractSegment searches each field label independently within one segment.
// The first match per field wins. A record is produced only if a name was found.
func (e FlowerCardExtractor) extractSegment(segment string) (FlowerCard, bool) {
	var card FlowerCard
	for _, field := range e.fields {
		if m := field.re.FindStringSubmatch(segment); m != nil {
			field.assign(&card, strings.TrimSpace(m[1]))
		}
	}

	if card.Name == "" {
		return FlowerCard{}, false
	}
	return card, true
}
