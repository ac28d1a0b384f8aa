package entity

import (
	"fmt"
	"github.com/gosimple/slug"
)

// Listing is an active sale offer for a single asset. The asset itself stays in
// the seller's custody on the registry; the listing only records intent.
// A zero price encodes absence.
type Listing struct {
	Contract string `json:"contract"`
	TokenId  uint64 `json:"tokenId"`
	Price    uint64 `json:"price"`
	Seller   string `json:"seller"`
}

func (l Listing) Slug() string {
	return CreateListingSlug(l.Contract, l.TokenId)
}

func (l Listing) Active() bool {
	return l.Price > 0
}

func CreateListingSlug(contract string, tokenId uint64) string {
	return slug.Make(fmt.Sprintf("listing-%s-%d", contract, tokenId))
}
