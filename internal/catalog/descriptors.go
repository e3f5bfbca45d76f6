package catalog

import (
	"fmt"
	"slices"
	"strings"
)

// DescriptorKind names the criteria field a Descriptor maps back to
type DescriptorKind string

const (
	KindSearch   DescriptorKind = "search"
	KindCategory DescriptorKind = "category"
	KindPrice    DescriptorKind = "price"
	KindSort     DescriptorKind = "sort"
)

// Descriptor summarizes one non-default filter, rendered as a removable chip.
// Value identifies the category for category descriptors.
type Descriptor struct {
	Kind  DescriptorKind `json:"kind"`
	Label string         `json:"label"`
	Value string         `json:"value,omitempty"`
}

// ActiveFilterDescriptors lists the filters in criteria that differ from the
// defaults for a catalog with the given bounds. Each selected category gets
// its own descriptor.
func ActiveFilterDescriptors(criteria Criteria, bounds PriceRange) []Descriptor {
	descriptors := []Descriptor{}

	if search := strings.TrimSpace(criteria.SearchText); search != "" {
		descriptors = append(descriptors, Descriptor{
			Kind:  KindSearch,
			Label: fmt.Sprintf("Search: %q", search),
			Value: search,
		})
	}

	for _, c := range criteria.Categories {
		descriptors = append(descriptors, Descriptor{
			Kind:  KindCategory,
			Label: "Category: " + c,
			Value: c,
		})
	}

	if !criteria.PriceRange.Min.Equal(bounds.Min) || !criteria.PriceRange.Max.Equal(bounds.Max) {
		descriptors = append(descriptors, Descriptor{
			Kind:  KindPrice,
			Label: fmt.Sprintf("Price: %s - %s", criteria.PriceRange.Min, criteria.PriceRange.Max),
		})
	}

	if criteria.SortOrder != "" && criteria.SortOrder != SortDefault {
		descriptors = append(descriptors, Descriptor{
			Kind:  KindSort,
			Label: "Sort: " + criteria.SortOrder.Label(),
			Value: string(criteria.SortOrder),
		})
	}

	return descriptors
}

// Without returns a copy of c with the field behind d reset to its default.
// Only the named category is removed for category descriptors.
func (c Criteria) Without(d Descriptor, bounds PriceRange) Criteria {
	out := c
	out.Categories = slices.Clone(c.Categories)

	switch d.Kind {
	case KindSearch:
		out.SearchText = ""
	case KindCategory:
		out.Categories = slices.DeleteFunc(out.Categories, func(cat string) bool {
			return cat == d.Value
		})
	case KindPrice:
		out.PriceRange = bounds
	case KindSort:
		out.SortOrder = SortDefault
	}

	return out
}
