package entity

// Category groups products by saree tradition (e.g. Banarasi, Kanjivaram).
type Category struct {
	ID          string
	Name        string
	Slug        string
	Description string
	Region      string // weaving region the tradition comes from
	ImageURL    string
}

// ProductImage is one gallery image of a product.
type ProductImage struct {
	ID           string
	ProductID    string
	URL          string
	IsPrimary    bool
	DisplayOrder int
}
