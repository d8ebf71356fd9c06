package domain

import (
	"fmt"
	"strings"
)

// Catalog is the ordered, immutable set of animals available for matching.
// Position i in the catalog is the row every per-record array aligns with.
type Catalog struct {
	animals []Animal
	byID    map[int64]int
}

// NewCatalog validates and wraps the given animals.
// IDs must be unique and every record needs a non-blank description.
// Display fields are not validated. The slice is copied.
func NewCatalog(animals []Animal) (*Catalog, error) {
	c := &Catalog{
		animals: make([]Animal, len(animals)),
		byID:    make(map[int64]int, len(animals)),
	}
	copy(c.animals, animals)

	for i := range c.animals {
		a := &c.animals[i]
		if _, dup := c.byID[a.ID]; dup {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateAnimalID, a.ID)
		}
		if strings.TrimSpace(a.PersonalityDescription) == "" {
			return nil, fmt.Errorf("%w: animal %d", ErrMissingDescription, a.ID)
		}
		c.byID[a.ID] = i
	}

	return c, nil
}

// Len returns the number of animals.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.animals)
}

// At returns the animal at catalog position i.
func (c *Catalog) At(i int) Animal {
	return c.animals[i]
}

// Animals returns a copy of all animals in catalog order.
func (c *Catalog) Animals() []Animal {
	out := make([]Animal, len(c.animals))
	copy(out, c.animals)
	return out
}

// Lookup returns the animal with the given ID.
func (c *Catalog) Lookup(id int64) (Animal, bool) {
	if c == nil {
		return Animal{}, false
	}
	i, ok := c.byID[id]
	if !ok {
		return Animal{}, false
	}
	return c.animals[i], true
}

// Positions returns the catalog positions of animals accepted by keep,
// in catalog order.
func (c *Catalog) Positions(keep func(Animal) bool) []int {
	var out []int
	for i := range c.animals {
		if keep(c.animals[i]) {
			out = append(out, i)
		}
	}
	return out
}

// Descriptions returns every personality description in catalog order.
func (c *Catalog) Descriptions() []string {
	out := make([]string, len(c.animals))
	for i := range c.animals {
		out[i] = c.animals[i].PersonalityDescription
	}
	return out
}

// CountBySpecies returns how many animals of each species the catalog holds.
func (c *Catalog) CountBySpecies() map[Species]int {
	counts := make(map[Species]int)
	for i := range c.animals {
		counts[c.animals[i].Species]++
	}
	return counts
}

// With returns a new catalog holding the receiver's animals followed by more.
// The receiver is left untouched.
func (c *Catalog) With(more ...Animal) (*Catalog, error) {
	all := make([]Animal, 0, c.Len()+len(more))
	if c != nil {
		all = append(all, c.animals...)
	}
	all = append(all, more...)
	return NewCatalog(all)
}
