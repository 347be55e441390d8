package model

// Category is one entry of the category catalog.
type Category struct {
	ID          string
	Name        string
	Description string
}
