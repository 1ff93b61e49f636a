package model

// CategoryType distinguishes spending from saving categories.
type CategoryType string

const (
	CategorySpend CategoryType = "SPEND"
	CategorySave  CategoryType = "SAVE"
)

// Category is a stored spending category.
type Category struct {
	ID        string
	UserID    string
	Name      string
	Type      CategoryType
	IsDefault bool
}
