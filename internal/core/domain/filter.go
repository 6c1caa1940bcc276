package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// A Category is the primary browse selector.
type Category string

const (
	CategoryAll        Category = "all"
	CategoryEyeglasses Category = "eyeglasses"
	CategorySunglasses Category = "sunglasses"
	CategoryNew        Category = "new"
	CategoryFeatured   Category = "featured"
)

func ParseCategory(s string) (Category, error) {
	switch c := Category(s); c {
	case CategoryAll, CategoryEyeglasses, CategorySunglasses,
		CategoryNew, CategoryFeatured:
		return c, nil
	case "":
		return CategoryAll, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
	}
}

// A PriceRange is a symbolic price bucket.
//
// The empty value is unset and matches every price.
type PriceRange string

const (
	PriceUnder100   PriceRange = "Under $100"
	Price100To200   PriceRange = "$100 - $200"
	Price200To300   PriceRange = "$200 - $300"
	Price300AndOver PriceRange = "$300+"
)

var (
	hundred      = decimal.NewFromInt(100)
	twoHundred   = decimal.NewFromInt(200)
	threeHundred = decimal.NewFromInt(300)
)

// Contains reports whether price falls into the range.
// Unset and unknown ranges contain every price.
func (r PriceRange) Contains(price decimal.Decimal) bool {
	switch r {
	case PriceUnder100:
		return price.LessThan(hundred)
	case Price100To200:
		return price.GreaterThanOrEqual(hundred) && price.LessThan(twoHundred)
	case Price200To300:
		return price.GreaterThanOrEqual(twoHundred) && price.LessThan(threeHundred)
	case Price300AndOver:
		return price.GreaterThanOrEqual(threeHundred)
	default:
		return true
	}
}

// A FilterState holds the browse constraints of one session.
//
// Empty optional fields are unset and match every product.
type FilterState struct {
	Category      Category
	Brand         string
	FrameShape    string
	FrameMaterial string
	PriceRange    PriceRange
}

func NewFilterState() FilterState {
	return FilterState{Category: CategoryAll}
}

// Unfiltered reports whether the state is the identity filter.
func (fs FilterState) Unfiltered() bool {
	return (fs.Category == "" || fs.Category == CategoryAll) &&
		fs.Brand == "" &&
		fs.FrameShape == "" &&
		fs.FrameMaterial == "" &&
		fs.PriceRange == ""
}
