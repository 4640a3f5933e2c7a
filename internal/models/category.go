package models

import "time"

type Category struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	MainCategory string    `json:"mainCategory" gorm:"not null"`
	SubCategory  string    `json:"subCategory"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}

// Tag returns the concatenated string items carry, "main" or "main > sub".
func (c *Category) Tag() string {
	return CategoryTag(c.MainCategory, c.SubCategory)
}

func CategoryTag(main, sub string) string {
	if sub == "" {
		return main
	}
	return main + " > " + sub
}
