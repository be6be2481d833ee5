package models

// DefaultValue is the value editable templates start with
const DefaultValue = "cat"

// Template is a palette entry. Dragging it out produces a working copy.
type Template struct {
	Kind  Kind
	Value string // Initial value for editable kinds
}

// Instantiate creates a working copy of the template with a fresh ID
func (t Template) Instantiate() Block {
	return NewBlock(t.Kind, t.Value)
}

// Group is a palette section: a heading and the templates under it
type Group struct {
	Category  Category
	Heading   string
	Templates []Template
}

// Catalog returns the palette templates in display order. Editable
// templates start with defaultValue.
func Catalog(defaultValue string) []Template {
	templates := make([]Template, 0, len(Kinds))
	for _, k := range Kinds {
		t := Template{Kind: k}
		if k.Editable() {
			t.Value = defaultValue
		}
		templates = append(templates, t)
	}
	return templates
}

// Groups buckets templates by category in palette order. Categories with
// no templates are left out so they get no heading.
func Groups(templates []Template) []Group {
	buckets := make(map[Category][]Template)
	for _, t := range templates {
		c := t.Kind.Category()
		if c == CategoryUnknown {
			continue
		}
		buckets[c] = append(buckets[c], t)
	}

	groups := make([]Group, 0, len(Categories))
	for _, c := range Categories {
		if len(buckets[c]) == 0 {
			continue
		}
		groups = append(groups, Group{
			Category:  c,
			Heading:   c.Heading(),
			Templates: buckets[c],
		})
	}
	return groups
}
