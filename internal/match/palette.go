// Package match ranks palette entries and pairwise blends by closeness to a target colour.
package match

import (
	"fmt"

	"github.com/jmylchreest/threadmatch/internal/colour"
)

// Entry is a single reference colour in a palette, such as one thread colour.
type Entry struct {
	Code     string     `json:"code"`
	Name     string     `json:"name"`
	Category string     `json:"category,omitempty"`
	Colour   colour.RGB `json:"rgb"`
}

// Palette is a named, ordered collection of entries, unique by code.
type Palette struct {
	Name    string  `json:"name"`
	Entries []Entry `json:"colours"`
}

// NewPalette creates a palette holding a copy of the given entries.
func NewPalette(name string, entries []Entry) Palette {
	return Palette{Name: name, Entries: append([]Entry(nil), entries...)}
}

// Len returns the number of entries in the palette.
func (p Palette) Len() int {
	return len(p.Entries)
}

// Clone returns a deep copy of the palette.
func (p Palette) Clone() Palette {
	return NewPalette(p.Name, p.Entries)
}

// Lookup returns the entry with the given code.
func (p Palette) Lookup(code string) (Entry, bool) {
	for _, e := range p.Entries {
		if e.Code == code {
			return e, true
		}
	}
	return Entry{}, false
}

// Validate checks the palette has a name and that every entry has a unique, non-empty code.
func (p Palette) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("palette name cannot be empty")
	}
	seen := make(map[string]int, len(p.Entries))
	for i, e := range p.Entries {
		if e.Code == "" {
			return fmt.Errorf("palette %s: entry %d has no code", p.Name, i)
		}
		if prev, ok := seen[e.Code]; ok {
			return fmt.Errorf("palette %s: duplicate code %q (entries %d and %d)", p.Name, e.Code, prev, i)
		}
		seen[e.Code] = i
	}
	return nil
}
