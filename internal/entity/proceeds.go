package entity

import (
	"fmt"
	"github.com/gosimple/slug"
)

// Proceeds is the withdrawable balance owed to a seller, accumulated across
// sales and reset to zero by a successful withdrawal.
type Proceeds struct {
	Seller string `json:"seller"`
	Amount uint64 `json:"amount"`
}

func (p Proceeds) Slug() string {
	return CreateProceedsSlug(p.Seller)
}

func CreateProceedsSlug(seller string) string {
	return slug.Make(fmt.Sprintf("proceeds-%s", seller))
}
