package repository

import (
	"errors"
	"github.com/ZilDuck/nft-marketplace/internal/entity"
	"github.com/patrickmn/go-cache"
)

var (
	ErrListingNotFound = errors.New("listing not found")
)

type ListingRepository interface {
	GetListing(contract string, tokenId uint64) (entity.Listing, error)
	SaveListing(listing entity.Listing)
	DeleteListing(contract string, tokenId uint64)
}

type listingRepository struct {
	store *cache.Cache
}

func NewListingRepository(store *cache.Cache) ListingRepository {
	return listingRepository{store}
}

func (r listingRepository) GetListing(contract string, tokenId uint64) (entity.Listing, error) {
	item, found := r.store.Get(entity.CreateListingSlug(contract, tokenId))
	if !found {
		return entity.Listing{}, ErrListingNotFound
	}

	return item.(entity.Listing), nil
}

func (r listingRepository) SaveListing(listing entity.Listing) {
	r.store.Set(listing.Slug(), listing, cache.NoExpiration)
}

func (r listingRepository) DeleteListing(contract string, tokenId uint64) {
	r.store.Delete(entity.CreateListingSlug(contract, tokenId))
}
