package marketplace

import (
	"errors"
	"github.com/ZilDuck/nft-marketplace/internal/entity"
	"github.com/ZilDuck/nft-marketplace/internal/event"
	"github.com/ZilDuck/nft-marketplace/internal/factory"
	"github.com/ZilDuck/nft-marketplace/internal/ledger"
	"github.com/ZilDuck/nft-marketplace/internal/registry"
	"github.com/ZilDuck/nft-marketplace/internal/repository"
	"go.uber.org/zap"
	"strings"
)

// Service is the marketplace ledger. It owns the listing and proceeds tables;
// custody of the assets themselves stays with the external registry.
//
// Every operation runs validate -> mutate -> external side effect. All table
// writes commit before any registry or ledger call is made, so a re-entrant
// call from a collaborator observes already-updated state.
type Service interface {
	ListItem(contract string, tokenId uint64, price uint64, caller string) error
	BuyItem(contract string, tokenId uint64, caller string, paymentSent uint64) error
	CancelListing(contract string, tokenId uint64, caller string) error
	UpdateListing(contract string, tokenId uint64, newPrice uint64, caller string) error
	WithdrawProceeds(caller string) error

	GetListing(contract string, tokenId uint64) entity.Listing
	GetProceeds(identity string) uint64
}

type service struct {
	listings           repository.ListingRepository
	proceeds           repository.ProceedsRepository
	assetRegistry      registry.Service
	valueLedger        ledger.Service
	marketplaceAddress string
}

func NewMarketplaceService(
	listings repository.ListingRepository,
	proceeds repository.ProceedsRepository,
	assetRegistry registry.Service,
	valueLedger ledger.Service,
	marketplaceAddress string,
) Service {
	return service{listings, proceeds, assetRegistry, valueLedger, marketplaceAddress}
}

func (s service) ListItem(contract string, tokenId uint64, price uint64, caller string) error {
	if err := notListed(s.listings, contract, tokenId); err != nil {
		return err
	}
	if err := isOwner(s.assetRegistry, contract, tokenId, caller); err != nil {
		return err
	}

	if price == 0 {
		return ErrPriceMustBeAboveZero
	}

	approved, err := s.assetRegistry.GetApproved(contract, tokenId)
	if err != nil {
		return err
	}
	if !strings.EqualFold(approved, s.marketplaceAddress) {
		return ErrNotApprovedForMarketplace
	}

	listing := entity.Listing{Contract: contract, TokenId: tokenId, Price: price, Seller: caller}
	s.listings.SaveListing(listing)

	zap.L().With(
		zap.String("contract", contract),
		zap.Uint64("tokenId", tokenId),
		zap.Uint64("price", price),
		zap.String("seller", caller),
	).Info("Marketplace: Item listed")

	event.EmitEvent(event.ItemListedEvent, factory.CreateListedAction(listing))

	return nil
}

func (s service) BuyItem(contract string, tokenId uint64, caller string, paymentSent uint64) error {
	listing, err := isListed(s.listings, contract, tokenId)
	if err != nil {
		return err
	}

	if paymentSent < listing.Price {
		return PriceNotMetError{contract, tokenId, listing.Price}
	}

	// The full payment goes to the seller, overpayment included. Credit and
	// delete commit before the registry transfer so a re-entrant buy cannot
	// double-spend the listing.
	s.proceeds.CreditProceeds(listing.Seller, paymentSent)
	s.listings.DeleteListing(contract, tokenId)

	if err := s.assetRegistry.SafeTransferFrom(listing.Seller, caller, contract, tokenId); err != nil {
		s.proceeds.DebitProceeds(listing.Seller, paymentSent)
		s.listings.SaveListing(listing)

		zap.L().With(
			zap.Error(err),
			zap.String("contract", contract),
			zap.Uint64("tokenId", tokenId),
		).Error("Marketplace: Registry transfer failed, sale reverted")

		return err
	}

	zap.L().With(
		zap.String("contract", contract),
		zap.Uint64("tokenId", tokenId),
		zap.String("seller", listing.Seller),
		zap.String("buyer", caller),
		zap.Uint64("paymentSent", paymentSent),
	).Info("Marketplace: Item bought")

	event.EmitEvent(event.ItemBoughtEvent, factory.CreateBoughtAction(listing, caller, paymentSent))

	return nil
}

func (s service) CancelListing(contract string, tokenId uint64, caller string) error {
	if err := isOwner(s.assetRegistry, contract, tokenId, caller); err != nil {
		return err
	}
	listing, err := isListed(s.listings, contract, tokenId)
	if err != nil {
		return err
	}

	s.listings.DeleteListing(contract, tokenId)

	zap.L().With(
		zap.String("contract", contract),
		zap.Uint64("tokenId", tokenId),
		zap.String("seller", listing.Seller),
	).Info("Marketplace: Listing cancelled")

	event.EmitEvent(event.ItemCancelledEvent, factory.CreateCancelledAction(listing))

	return nil
}

// UpdateListing overwrites the listing price as-is. The new price is not
// re-validated and approval is not re-checked, matching the original
// marketplace behaviour; an update to zero leaves the listing absent.
func (s service) UpdateListing(contract string, tokenId uint64, newPrice uint64, caller string) error {
	if err := isOwner(s.assetRegistry, contract, tokenId, caller); err != nil {
		return err
	}
	listing, err := isListed(s.listings, contract, tokenId)
	if err != nil {
		return err
	}

	listing.Price = newPrice
	s.listings.SaveListing(listing)

	zap.L().With(
		zap.String("contract", contract),
		zap.Uint64("tokenId", tokenId),
		zap.Uint64("price", newPrice),
		zap.String("seller", listing.Seller),
	).Info("Marketplace: Listing updated")

	event.EmitEvent(event.ItemListedEvent, factory.CreateListedAction(listing))

	return nil
}

// WithdrawProceeds zeroes the balance before paying out, so a re-entrant
// withdrawal finds nothing to take. If the ledger payout fails the balance is
// restored; leaving it at zero would durably burn the seller's funds on a
// transient failure.
func (s service) WithdrawProceeds(caller string) error {
	amount := s.proceeds.GetProceeds(caller)
	if amount == 0 {
		return ErrNoProceeds
	}

	s.proceeds.ResetProceeds(caller)

	if err := s.valueLedger.Pay(caller, amount); err != nil {
		s.proceeds.CreditProceeds(caller, amount)

		zap.L().With(
			zap.Error(err),
			zap.String("seller", caller),
			zap.Uint64("amount", amount),
		).Error("Marketplace: Payout failed, proceeds restored")

		return ErrTransferFailed
	}

	zap.L().With(
		zap.String("seller", caller),
		zap.Uint64("amount", amount),
	).Info("Marketplace: Proceeds withdrawn")

	return nil
}

func (s service) GetListing(contract string, tokenId uint64) entity.Listing {
	listing, err := s.listings.GetListing(contract, tokenId)
	if err != nil {
		if !errors.Is(err, repository.ErrListingNotFound) {
			zap.L().With(zap.Error(err)).Error("Marketplace: Failed to get listing")
		}
		return entity.Listing{}
	}

	return listing
}

func (s service) GetProceeds(identity string) uint64 {
	return s.proceeds.GetProceeds(identity)
}
