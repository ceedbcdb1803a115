package domain

import "time"

// Product - товар каталога маркетплейса
type Product struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Price     float64   `json:"price" db:"price"`
	Currency  string    `json:"currency" db:"currency"`
	Unit      string    `json:"unit" db:"unit"`
	Rating    *float64  `json:"rating,omitempty" db:"rating"`
	Badge     *string   `json:"badge,omitempty" db:"badge"`
	Tags      []string  `json:"tags,omitempty" db:"-"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ProductFilter - параметры выборки каталога
type ProductFilter struct {
	Badge string
	Tag   string
	Limit int
}
