package domain

import (
	"slices"

	"github.com/shopspring/decimal"
)

type ProductType string

const (
	Eyeglasses ProductType = "eyeglasses"
	Sunglasses ProductType = "sunglasses"
)

func (t ProductType) Valid() bool {
	return t == Eyeglasses || t == Sunglasses
}

type Product struct {
	ID            string
	Name          string
	Brand         string
	Type          ProductType
	Price         decimal.Decimal
	Colors        []string
	ImageURLs     []string
	Description   string
	Features      []string
	FrameShape    string
	FrameMaterial string

	// Optional fields, zero value means absent.
	ARModelURL  string
	IsFeatured  bool
	IsNew       bool
	Rating      float64
	ReviewCount int
}

// HasColor reports whether c is one of the product colors.
func (p Product) HasColor(c string) bool {
	return slices.Contains(p.Colors, c)
}

// Clone returns a deep copy of p.
func (p Product) Clone() Product {
	p.Colors = slices.Clone(p.Colors)
	p.ImageURLs = slices.Clone(p.ImageURLs)
	p.Features = slices.Clone(p.Features)
	return p
}
