package oasis

import "slices"

// Display types understood by the frontend.
const (
	DisplayList  = "list"
	DisplayText  = "text"
	DisplayTable = "table"
)

// DisplayFormat tells a client how to render an element's fields. Text
// elements name a single Field; list and table elements name Fields.
type DisplayFormat struct {
	Type   string   `yaml:"type" json:"type"`
	Field  string   `yaml:"field,omitempty" json:"field,omitempty"`
	Fields []string `yaml:"fields,omitempty" json:"fields,omitempty"`
}

// Keys returns every field name the format displays.
func (d DisplayFormat) Keys() []string {
	keys := make([]string, 0, len(d.Fields)+1)
	if d.Field != "" {
		keys = append(keys, d.Field)
	}
	return append(keys, d.Fields...)
}

// Shape is the output contract handed to the model for an element.
type Shape struct {
	// Contract describes the JSON object in prose.
	Contract string `yaml:"contract" json:"contract"`
	// Example is a conforming JSON object.
	Example string `yaml:"example" json:"example"`
}

// Element is one documentation item extracted from a transcript.
type Element struct {
	ID          string        `yaml:"id" json:"id"`
	Name        string        `yaml:"name" json:"name"`
	Description string        `yaml:"description" json:"description"`
	DependsOn   []string      `yaml:"depends_on" json:"depends_on"`
	Display     DisplayFormat `yaml:"display_format" json:"display_format"`
	Shape       Shape         `yaml:"shape" json:"shape"`
}

// DependsOnID reports whether id is a declared dependency.
func (e Element) DependsOnID(id string) bool {
	return slices.Contains(e.DependsOn, id)
}

func (e Element) clone() Element {
	c := e
	c.DependsOn = append([]string{}, e.DependsOn...)
	c.Display.Fields = append([]string(nil), e.Display.Fields...)
	return c
}
