package domain

import "slices"

const MaxCompareEntries = 4

type CompareEntry struct {
	ID          string
	Name        string
	Price       float64
	Category    string
	Stock       int
	Rating      float64
	Description string
	Image       string
}

// A CompareList holds at most MaxCompareEntries snapshots with unique ids.
type CompareList struct {
	entries []CompareEntry
}

func NewCompareList(entries []CompareEntry) CompareList {
	var cl CompareList
	for _, e := range entries {
		if cl.Len() == MaxCompareEntries {
			break
		}
		if e.ID == "" || cl.Contains(e.ID) {
			continue
		}
		cl.entries = append(cl.entries, e)
	}
	return cl
}

func (cl *CompareList) Add(p Product) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if cl.Len() >= MaxCompareEntries {
		return ErrCompareLimit
	}
	if cl.Contains(p.ID) {
		return ErrAlreadyInCompare
	}
	cl.entries = append(cl.entries, CompareEntry{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		Category:    p.Category,
		Stock:       p.Stock,
		Rating:      p.Rating,
		Description: p.Description,
		Image:       p.ImageRef,
	})
	return nil
}

func (cl *CompareList) Remove(id string) {
	cl.entries = slices.DeleteFunc(cl.entries, func(e CompareEntry) bool {
		return e.ID == id
	})
}

func (cl *CompareList) Clear() {
	cl.entries = nil
}

func (cl CompareList) Contains(id string) bool {
	return slices.ContainsFunc(cl.entries, func(e CompareEntry) bool {
		return e.ID == id
	})
}

func (cl CompareList) Entries() []CompareEntry {
	return slices.Clone(cl.entries)
}

func (cl CompareList) Len() int {
	return len(cl.entries)
}
