package classify

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// General is the raw category reported when no catalog keyword matches.
const General = "general"

type Category struct {
	Name     string   `yaml:"name" json:"name"`
	Keywords []string `yaml:"keywords" json:"keywords"`
}

// Catalog is an ordered, immutable set of trade categories. Order matters:
// it decides ties in scoring.
type Catalog struct {
	cats []Category
}

func NewCatalog(in []Category) (Catalog, error) {
	if len(in) == 0 {
		return Catalog{}, fmt.Errorf("catalog: no categories")
	}
	seen := make(map[string]bool, len(in))
	out := make([]Category, 0, len(in))
	for i, c := range in {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return Catalog{}, fmt.Errorf("catalog: category[%d] has no name", i)
		}
		if seen[name] {
			return Catalog{}, fmt.Errorf("catalog: duplicate category %q", name)
		}
		seen[name] = true
		if len(c.Keywords) == 0 {
			return Catalog{}, fmt.Errorf("catalog: category %q has no keywords", name)
		}
		kws := make([]string, 0, len(c.Keywords))
		for j, k := range c.Keywords {
			if strings.TrimSpace(k) == "" {
				return Catalog{}, fmt.Errorf("catalog: %s.keywords[%d] is empty", name, j)
			}
			kws = append(kws, strings.ToLower(k))
		}
		out = append(out, Category{Name: name, Keywords: kws})
	}
	return Catalog{cats: out}, nil
}

func (c Catalog) Len() int { return len(c.cats) }

// Names returns the raw category names in catalog order.
func (c Catalog) Names() []string {
	out := make([]string, len(c.cats))
	for i, cat := range c.cats {
		out[i] = cat.Name
	}
	return out
}

// Categories returns a copy of the catalog entries.
func (c Catalog) Categories() []Category {
	out := make([]Category, len(c.cats))
	for i, cat := range c.cats {
		out[i] = Category{Name: cat.Name, Keywords: append([]string(nil), cat.Keywords...)}
	}
	return out
}

func (c Catalog) Has(name string) bool {
	for _, cat := range c.cats {
		if cat.Name == name {
			return true
		}
	}
	return false
}

// DisplayName turns a raw key like "security_guard" into "Security Guard".
func DisplayName(raw string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(raw, "_", " "))
}

// DefaultCatalog is the informal-labour catalog the engine ships with.
func DefaultCatalog() []Category {
	return []Category{
		{Name: "electrician", Keywords: []string{"electric", "wiring", "voltage", "circuit", "electrical", "power"}},
		{Name: "plumber", Keywords: []string{"plumb", "pipe", "water", "leak", "bathroom", "toilet", "drainage"}},
		{Name: "driver", Keywords: []string{"drive", "truck", "delivery", "transport", "vehicle", "auto", "taxi"}},
		{Name: "cleaner", Keywords: []string{"clean", "sweep", "housekeep", "janitor", "sanitiz", "maintenance"}},
		{Name: "carpenter", Keywords: []string{"carpent", "wood", "furniture", "cabinet", "door", "window"}},
		{Name: "mechanic", Keywords: []string{"mechanic", "repair", "engine", "motor", "garage", "service"}},
		{Name: "security_guard", Keywords: []string{"security", "guard", "watchman", "safety", "patrol"}},
		{Name: "cook", Keywords: []string{"cook", "chef", "kitchen", "food", "restaurant", "catering"}},
		{Name: "tailor", Keywords: []string{"tailor", "sewing", "stitch", "garment", "cloth", "alteration"}},
		{Name: "construction_worker", Keywords: []string{"construction", "building", "mason", "labor", "site"}},
		{Name: "ac_technician", Keywords: []string{"ac", "air condition", "cooling", "hvac", "refrigerat"}},
		{Name: "beautician", Keywords: []string{"beauty", "salon", "hair", "makeup", "facial", "parlor"}},
		{Name: "delivery_boy", Keywords: []string{"delivery", "courier", "parcel", "logistics", "shipping"}},
		{Name: "sales_executive", Keywords: []string{"sales", "marketing", "customer", "business", "retail"}},
		{Name: "data_entry", Keywords: []string{"data entry", "typing", "computer", "excel", "office"}},
		{Name: "teacher", Keywords: []string{"teach", "tutor", "education", "school", "training", "instructor"}},
		{Name: "nurse", Keywords: []string{"nurse", "medical", "hospital", "healthcare", "patient"}},
		{Name: "accountant", Keywords: []string{"account", "finance", "bookkeep", "tax", "audit"}},
		{Name: "receptionist", Keywords: []string{"reception", "front desk", "customer service", "phone"}},
		{Name: "warehouse_worker", Keywords: []string{"warehouse", "inventory", "stock", "packing", "loading"}},
	}
}
