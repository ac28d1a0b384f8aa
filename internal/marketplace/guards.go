package marketplace

import (
	"errors"
	"github.com/ZilDuck/nft-marketplace/internal/entity"
	"github.com/ZilDuck/nft-marketplace/internal/registry"
	"github.com/ZilDuck/nft-marketplace/internal/repository"
	"strings"
)

// Guards are the reusable preconditions run at the top of every operation,
// before any table write. They only read state.

func notListed(listings repository.ListingRepository, contract string, tokenId uint64) error {
	listing, err := listings.GetListing(contract, tokenId)
	if err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			return nil
		}
		return err
	}

	if listing.Active() {
		return AlreadyListedError{contract, tokenId}
	}

	return nil
}

func isListed(listings repository.ListingRepository, contract string, tokenId uint64) (entity.Listing, error) {
	listing, err := listings.GetListing(contract, tokenId)
	if err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			return entity.Listing{}, NotListedError{contract, tokenId}
		}
		return entity.Listing{}, err
	}

	if !listing.Active() {
		return entity.Listing{}, NotListedError{contract, tokenId}
	}

	return listing, nil
}

func isOwner(assetRegistry registry.Service, contract string, tokenId uint64, caller string) error {
	owner, err := assetRegistry.OwnerOf(contract, tokenId)
	if err != nil {
		return err
	}

	if !strings.EqualFold(owner, caller) {
		return ErrNotOwner
	}

	return nil
}
