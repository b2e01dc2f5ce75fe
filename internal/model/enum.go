package model

// Variant is one named alternative of a tagged union. Declaration order is
// meaningful and preserved end to end.
type Variant struct {
	Name       string   `json:"name" yaml:"name"`
	StartLine  int      `json:"start_line" yaml:"start_line"`
	Doc        []string `json:"doc" yaml:"doc"`
	Definition string   `json:"definition" yaml:"definition"`
}

// EnumItem is one discovered enum declaration together with its variants.
// Items are immutable once constructed, one per declaration site.
type EnumItem struct {
	Kind       DeclKind  `json:"kind" yaml:"kind"`
	Name       string    `json:"name" yaml:"name"`
	Module     string    `json:"module" yaml:"module"`
	Path       Path      `json:"path" yaml:"path"`
	StartLine  int       `json:"start_line" yaml:"start_line"`
	Doc        []string  `json:"doc" yaml:"doc"`
	Definition string    `json:"definition" yaml:"definition"`
	Variants   []Variant `json:"variants" yaml:"variants"`
}

// Inventory is the first pipeline artifact: every qualifying enum found
// under the base directory, in filesystem traversal order.
type Inventory struct {
	Base  Path       `json:"base" yaml:"base"`
	Items []EnumItem `json:"items" yaml:"items"`
}

// VariantCount returns the total number of variants across all items.
func (inv Inventory) VariantCount() int {
	count := 0
	for _, item := range inv.Items {
		count += len(item.Variants)
	}

	return count
}
