package catalog

import (
	"github.com/niksmo/visionframe/internal/core/domain"
	"github.com/shopspring/decimal"
)

const imageQuery = "?auto=compress&cs=tinysrgb&w=1260&h=750&dpr=2"

func pexels(photoID string) []string {
	u := "https://images.pexels.com/photos/" + photoID +
		"/pexels-photo-" + photoID + ".jpeg" + imageQuery
	return []string{u, u}
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func seed() []domain.Product {
	ps := make([]domain.Product, 0, 11)
	ps = append(ps, featuredSeed()...)
	ps = append(ps, eyeglassesSeed()...)
	ps = append(ps, sunglassesSeed()...)
	return ps
}

func featuredSeed() []domain.Product {
	return []domain.Product{
		{
			ID:            "feat-001",
			Name:          "Horizon",
			Type:          domain.Sunglasses,
			Brand:         "Ray-Ban",
			Price:         price("129.99"),
			Colors:        []string{"Black", "Tortoise", "Crystal"},
			ImageURLs:     pexels("701877"),
			Description:   "Sleek and modern sunglasses for everyday style. UV400 protection with polarized lenses.",
			Features:      []string{"Polarized", "UV Protection", "Scratch-resistant coating", "Lightweight"},
			FrameShape:    "Square",
			FrameMaterial: "Acetate",
			IsFeatured:    true,
			Rating:        4.8,
			ReviewCount:   126,
		},
		{
			ID:            "feat-002",
			Name:          "Vista Clear",
			Type:          domain.Eyeglasses,
			Brand:         "Warby Parker",
			Price:         price("99.99"),
			Colors:        []string{"Black", "Tortoise", "Blue"},
			ImageURLs:     pexels("5698853"),
			Description:   "Classic rectangular frames with blue light filtering lenses. Perfect for everyday computer use.",
			Features:      []string{"Blue light filtering", "Anti-glare coating", "Lightweight"},
			FrameShape:    "Rectangle",
			FrameMaterial: "Metal",
			IsFeatured:    true,
			Rating:        4.5,
			ReviewCount:   98,
		},
		{
			ID:            "feat-003",
			Name:          "Aviator Pro",
			Type:          domain.Sunglasses,
			Brand:         "Ray-Ban",
			Price:         price("149.99"),
			Colors:        []string{"Gold", "Silver", "Black"},
			ImageURLs:     pexels("46710"),
			Description:   "Timeless aviator style with modern updates. Premium metal frame with adjustable nose pads.",
			Features:      []string{"Polarized", "UV Protection", "Adjustable nose pads", "Spring hinges"},
			FrameShape:    "Aviator",
			FrameMaterial: "Metal",
			IsFeatured:    true,
			Rating:        4.9,
			ReviewCount:   215,
		},
	}
}

func eyeglassesSeed() []domain.Product {
	return []domain.Product{
		{
			ID:            "eg-001",
			Name:          "Clarity Round",
			Type:          domain.Eyeglasses,
			Brand:         "Oliver Peoples",
			Price:         price("289.99"),
			Colors:        []string{"Black", "Tortoise", "Clear"},
			ImageURLs:     pexels("2148344"),
			Description:   "Trendy round frames with blue light filtering technology. Light and comfortable for all-day wear.",
			Features:      []string{"Blue light filtering", "Spring hinges", "Lightweight"},
			FrameShape:    "Round",
			FrameMaterial: "Acetate",
			IsNew:         true,
			Rating:        4.2,
			ReviewCount:   45,
		},
		{
			ID:            "eg-002",
			Name:          "Tech Squared",
			Type:          domain.Eyeglasses,
			Brand:         "Tom Ford",
			Price:         price("359.99"),
			Colors:        []string{"Matte Black", "Tortoise", "Navy"},
			ImageURLs:     pexels("3714743"),
			Description:   "Modern square frames with a minimalist design. Features anti-glare and anti-smudge coatings.",
			Features:      []string{"Anti-glare", "Anti-smudge", "Spring hinges"},
			FrameShape:    "Square",
			FrameMaterial: "Titanium",
			Rating:        4.6,
			ReviewCount:   87,
		},
		{
			ID:            "eg-003",
			Name:          "Thin Wire",
			Type:          domain.Eyeglasses,
			Brand:         "Moscot",
			Price:         price("249.99"),
			Colors:        []string{"Gold", "Silver", "Rose Gold"},
			ImageURLs:     pexels("1438081"),
			Description:   "Elegant wire frames with an understated design. Ultra-lightweight with adjustable nose pads.",
			Features:      []string{"Ultra-lightweight", "Adjustable nose pads", "Slim temples"},
			FrameShape:    "Oval",
			FrameMaterial: "Metal",
			Rating:        4.4,
			ReviewCount:   62,
		},
		{
			ID:            "eg-004",
			Name:          "Bold Cat Eye",
			Type:          domain.Eyeglasses,
			Brand:         "Gentle Monster",
			Price:         price("329.99"),
			Colors:        []string{"Black", "Tortoise", "Red"},
			ImageURLs:     pexels("3762624"),
			Description:   "Statement cat eye frames with a bold, fashionable look. Features blue light filtering lenses.",
			Features:      []string{"Blue light filtering", "Spring hinges", "Decorative temples"},
			FrameShape:    "Cat Eye",
			FrameMaterial: "Acetate",
			IsNew:         true,
			Rating:        4.7,
			ReviewCount:   53,
		},
	}
}

func sunglassesSeed() []domain.Product {
	return []domain.Product{
		{
			ID:            "sg-001",
			Name:          "Classic Wayfarer",
			Type:          domain.Sunglasses,
			Brand:         "Ray-Ban",
			Price:         price("169.99"),
			Colors:        []string{"Black", "Tortoise", "Blue"},
			ImageURLs:     pexels("1362558"),
			Description:   "Iconic wayfarer style with modern updates. Features polarized lenses with UV protection.",
			Features:      []string{"Polarized", "UV Protection", "Durable hinges", "Scratch-resistant lenses"},
			FrameShape:    "Wayfarer",
			FrameMaterial: "Acetate",
			Rating:        4.8,
			ReviewCount:   147,
		},
		{
			ID:            "sg-002",
			Name:          "Sport Shield",
			Type:          domain.Sunglasses,
			Brand:         "Oakley",
			Price:         price("199.99"),
			Colors:        []string{"Black", "White", "Red"},
			ImageURLs:     pexels("2158195"),
			Description:   "Performance shield sunglasses for sports and outdoor activities. Wrap-around design for full coverage.",
			Features:      []string{"Polarized", "UV Protection", "Anti-fog", "Impact-resistant"},
			FrameShape:    "Shield",
			FrameMaterial: "Carbon Fiber",
			IsNew:         true,
			Rating:        4.6,
			ReviewCount:   83,
		},
		{
			ID:            "sg-003",
			Name:          "Retro Round",
			Type:          domain.Sunglasses,
			Brand:         "Persol",
			Price:         price("279.99"),
			Colors:        []string{"Gold", "Silver", "Black"},
			ImageURLs:     pexels("1382731"),
			Description:   "Vintage-inspired round sunglasses with modern lens technology. Stylish and lightweight.",
			Features:      []string{"UV Protection", "Gradient lenses", "Adjustable nose pads"},
			FrameShape:    "Round",
			FrameMaterial: "Metal",
			Rating:        4.5,
			ReviewCount:   92,
		},
		{
			ID:            "sg-004",
			Name:          "Oversized Glam",
			Type:          domain.Sunglasses,
			Brand:         "Tom Ford",
			Price:         price("399.99"),
			Colors:        []string{"Black", "Tortoise", "Pink"},
			ImageURLs:     pexels("1374064"),
			Description:   "Glamorous oversized sunglasses with high-end detailing. Provides maximum UV protection and style.",
			Features:      []string{"Polarized", "UV Protection", "Gradient lenses", "Designer detailing"},
			FrameShape:    "Oversized",
			FrameMaterial: "Acetate",
			IsFeatured:    true,
			Rating:        4.9,
			ReviewCount:   124,
		},
	}
}
