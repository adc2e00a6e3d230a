package models

// Product is one row of the read-only product reference catalog the
// typeahead searches against.
type Product struct {
	ProductID   int64  `gorm:"column:product_id;primaryKey" json:"productId"`
	Description string `gorm:"column:description;not null" json:"description"`
}

func (Product) TableName() string {
	return "form_alternativas_imdb"
}
