// internal/domain/models/categories.go
package models

// Canonical product category identifiers stored in Product.Category.
const (
	CategoryGasha      = "gasha"
	CategoryNisir      = "nisir"
	CategoryEnyuma     = "enyuma"
	CategoryCodePro    = "codepro"
	CategoryBiometrics = "biometrics"
)

// ProductCategories is the full set of allowed category identifiers.
var ProductCategories = []string{
	CategoryGasha,
	CategoryNisir,
	CategoryEnyuma,
	CategoryCodePro,
	CategoryBiometrics,
}

// IsValidCategory checks if a value is a valid product category.
func IsValidCategory(value string) bool {
	for _, c := range ProductCategories {
		if c == value {
			return true
		}
	}
	return false
}
