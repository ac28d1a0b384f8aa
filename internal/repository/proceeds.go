package repository

import (
	"github.com/ZilDuck/nft-marketplace/internal/entity"
	"github.com/patrickmn/go-cache"
)

type ProceedsRepository interface {
	GetProceeds(seller string) uint64
	CreditProceeds(seller string, amount uint64) uint64
	DebitProceeds(seller string, amount uint64) uint64
	ResetProceeds(seller string)
}

type proceedsRepository struct {
	store *cache.Cache
}

func NewProceedsRepository(store *cache.Cache) ProceedsRepository {
	return proceedsRepository{store}
}

func (r proceedsRepository) GetProceeds(seller string) uint64 {
	item, found := r.store.Get(entity.CreateProceedsSlug(seller))
	if !found {
		return 0
	}

	return item.(entity.Proceeds).Amount
}

// CreditProceeds adds to the seller's balance and returns the new total.
func (r proceedsRepository) CreditProceeds(seller string, amount uint64) uint64 {
	total := r.GetProceeds(seller) + amount
	r.store.Set(entity.CreateProceedsSlug(seller), entity.Proceeds{Seller: seller, Amount: total}, cache.NoExpiration)

	return total
}

// DebitProceeds removes from the seller's balance, flooring at zero, and
// returns the new total.
func (r proceedsRepository) DebitProceeds(seller string, amount uint64) uint64 {
	current := r.GetProceeds(seller)
	if amount >= current {
		r.store.Delete(entity.CreateProceedsSlug(seller))
		return 0
	}

	total := current - amount
	r.store.Set(entity.CreateProceedsSlug(seller), entity.Proceeds{Seller: seller, Amount: total}, cache.NoExpiration)

	return total
}

func (r proceedsRepository) ResetProceeds(seller string) {
	r.store.Delete(entity.CreateProceedsSlug(seller))
}
