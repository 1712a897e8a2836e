package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DealCategory marks bundle products whose Items list is shown as nested
// lines on the bill.
const DealCategory = "Deals"

type ProductImage struct {
	gorm.Model
	Url       string `json:"url" binding:"required"`
	ProductID int    `json:"productId" binding:"required"`
}

type Product struct {
	gorm.Model
	Name            string         `json:"name" binding:"required"`
	Description     string         `json:"description"`
	Price           float64        `json:"price" binding:"required"`
	DiscountedPrice *float64       `json:"discountedPrice"`
	Category        string         `json:"category" binding:"required"`
	SubCategory     string         `json:"subCategory"`
	IsVegetarian    bool           `json:"isVegetarian"`
	Items           datatypes.JSON `json:"items"`
	Images          []ProductImage `json:"images" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

type Category struct {
	gorm.Model
	Name string `json:"name" binding:"required" gorm:"uniqueIndex;size:64"`
}
