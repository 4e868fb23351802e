package models

import "github.com/shopspring/decimal"

func init() {
	// The dashboard reads prices as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// Product represents a catalog entry of the dashboard table.
// Every column except id is nullable because updates overwrite all of them.
type Product struct {
	ID          uint             `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	Name        *string          `json:"Product_name" gorm:"column:Product_name;type:varchar(255)"`
	Price       *decimal.Decimal `json:"Price" gorm:"column:Price;type:decimal(10,2)"`
	Image       *string          `json:"Image" gorm:"column:Image;type:varchar(1024)"`
	Category    *string          `json:"Category" gorm:"column:Category;type:varchar(255)"`
	Description *string          `json:"Description" gorm:"column:Description;type:text"`
}

// TableName keeps the table name used by the admin dashboard.
func (Product) TableName() string {
	return "dashboard"
}
