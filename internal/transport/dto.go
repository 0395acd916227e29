package transport

import "github.com/shopspring/decimal"

type CreateProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	CategoryID  uint            `json:"category_id"`
}

type PatchProductRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Image       *string          `json:"image"`
	CategoryID  *uint            `json:"category_id"`
}

type CreateCategoryRequest struct {
	Name string `json:"name"`
}

type PatchCategoryRequest struct {
	Name *string `json:"name"`
}

type PatchOrderRequest struct {
	Quantity  *uint `json:"quantity"`
	Completed *bool `json:"completed"`
}
