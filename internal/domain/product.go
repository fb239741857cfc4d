package domain

type Product struct {
	Title       string         `json:"title,omitempty"`
	Category    string         `json:"category,omitempty"`
	Brand       string         `json:"brand,omitempty"`
	Condition   string         `json:"condition,omitempty"`
	AgeMonths   int            `json:"age_months" validate:"gte=0"`
	AskingPrice float64        `json:"asking_price" validate:"gte=0,lte=1e12"`
	Location    string         `json:"location,omitempty"`
	Extra       map[string]any `json:"extra,omitempty"`
}

// MaxAskingPrice is the largest asking price accepted from callers. Price
// bands above it no longer fit an int.
const MaxAskingPrice = 1e12

// WithAskingPrice returns a copy of p priced at price.
func (p Product) WithAskingPrice(price float64) Product {
	p.AskingPrice = price
	return p
}

const (
	CategoryMobile      = "Mobile"
	CategoryLaptop      = "Laptop"
	CategoryFurniture   = "Furniture"
	CategoryElectronics = "Electronics"
	CategoryFashion     = "Fashion"
	CategoryCamera      = "Camera"
)

const (
	ConditionLikeNew = "Like New"
	ConditionGood    = "Good"
	ConditionFair    = "Fair"
)
