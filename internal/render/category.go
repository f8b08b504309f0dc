package render

import "strings"

// Category is the decorative group a section title belongs to.
type Category string

const (
	CategoryNone        Category = ""
	CategoryAttractions Category = "attractions"
	CategoryFood        Category = "food"
	CategoryCulture     Category = "culture"
	CategoryLodging     Category = "lodging"
	CategoryTransport   Category = "transport"
)

// Rule maps title keywords to a category.
type Rule struct {
	Category Category
	Keywords []string
}

// Table is an ordered keyword lookup; the first rule with a keyword
// contained in the lower-cased title wins.
type Table []Rule

// DefaultTable matches the section names the itinerary prompt asks for.
var DefaultTable = Table{
	{Category: CategoryAttractions, Keywords: []string{"attractions", "landmarks"}},
	{Category: CategoryFood, Keywords: []string{"food", "restaurants"}},
	{Category: CategoryCulture, Keywords: []string{"cultural", "activities"}},
	{Category: CategoryLodging, Keywords: []string{"areas", "stay"}},
	{Category: CategoryTransport, Keywords: []string{"transportation"}},
}

// Lookup returns the category for a section title, or CategoryNone.
func (t Table) Lookup(title string) Category {
	lower := strings.ToLower(title)
	for _, rule := range t {
		for _, kw := range rule.Keywords {
			if strings.Contains(lower, kw) {
				return rule.Category
			}
		}
	}
	return CategoryNone
}
