package model

import (
	"github.com/shopspring/decimal"
)

type Category struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	NameAr        string `json:"name_ar,omitempty"`
	Description   string `json:"description,omitempty"`
	DescriptionAr string `json:"description_ar,omitempty"`
	IsActive      Flag   `json:"is_active"`
	SortOrder     *int   `json:"sort_order,omitempty"`
}

func (c Category) RecordID() int64 { return c.ID }

type Dish struct {
	ID                 int64            `json:"id"`
	Name               string           `json:"name"`
	NameAr             string           `json:"name_ar"`
	Description        string           `json:"description,omitempty"`
	DescriptionAr      string           `json:"description_ar,omitempty"`
	Price              decimal.Decimal  `json:"price"`
	CategoryID         int64            `json:"category_id"`
	ImagePath          string           `json:"image_path,omitempty"`
	IsVegetarian       Flag             `json:"is_vegetarian"`
	IsVegan            Flag             `json:"is_vegan"`
	IsGlutenFree       Flag             `json:"is_gluten_free"`
	IsAvailable        Flag             `json:"is_available"`
	PreparationTime    *int             `json:"preparation_time,omitempty"`
	Ingredients        string           `json:"ingredients,omitempty"`
	IngredientsAr      string           `json:"ingredients_ar,omitempty"`
	Allergens          string           `json:"allergens,omitempty"`
	AllergensAr        string           `json:"allergens_ar,omitempty"`
	SortOrder          *int             `json:"sort_order,omitempty"`
	Category           *Category        `json:"category,omitempty"`
	DiscountPercentage *decimal.Decimal `json:"discount_percentage,omitempty"`
	DiscountStartDate  Timestamp        `json:"discount_start_date"`
	DiscountEndDate    Timestamp        `json:"discount_end_date"`
	IsOnDiscount       Flag             `json:"is_on_discount"`
	CreatedAt          Timestamp        `json:"created_at"`
	UpdatedAt          Timestamp        `json:"updated_at"`
}

func (d Dish) RecordID() int64 { return d.ID }

// CategoryName is the display name of the dish category, or UnknownLabel.
func (d Dish) CategoryName() string {
	if d.Category != nil && d.Category.Name != "" {
		return d.Category.Name
	}
	return UnknownLabel
}

// PrepMinutes reports the preparation time when the dish has one.
func (d Dish) PrepMinutes() (float64, bool) {
	if d.PreparationTime == nil {
		return 0, false
	}
	return float64(*d.PreparationTime), true
}

// DishInput is the validated body for dish create and update.
type DishInput struct {
	Name            string          `json:"name" validate:"required"`
	NameAr          string          `json:"name_ar"`
	Description     string          `json:"description,omitempty"`
	DescriptionAr   string          `json:"description_ar,omitempty"`
	Price           decimal.Decimal `json:"price" validate:"required,gt=0"`
	CategoryID      int64           `json:"category_id" validate:"required"`
	IsVegetarian    bool            `json:"is_vegetarian"`
	IsVegan         bool            `json:"is_vegan"`
	IsGlutenFree    bool            `json:"is_gluten_free"`
	IsAvailable     bool            `json:"is_available"`
	PreparationTime *int            `json:"preparation_time,omitempty" validate:"omitempty,min=0"`
	Ingredients     string          `json:"ingredients,omitempty"`
	IngredientsAr   string          `json:"ingredients_ar,omitempty"`
	Allergens       string          `json:"allergens,omitempty"`
	AllergensAr     string          `json:"allergens_ar,omitempty"`
	SortOrder       *int            `json:"sort_order,omitempty"`
}

// DiscountInput applies a percentage discount to a dish.
type DiscountInput struct {
	Percentage decimal.Decimal `json:"discount_percentage" validate:"required,gt=0,lte=100"`
}

// CategoryInput is the validated body for category create and update.
type CategoryInput struct {
	Name          string `json:"name" validate:"required,min=2"`
	NameAr        string `json:"name_ar"`
	Description   string `json:"description,omitempty"`
	DescriptionAr string `json:"description_ar,omitempty"`
	IsActive      bool   `json:"is_active"`
	SortOrder     *int   `json:"sort_order,omitempty"`
}
