package marketplace

import (
	"errors"
	"github.com/ZilDuck/nft-marketplace/internal/repository"
	"github.com/patrickmn/go-cache"
	"testing"
)

const (
	marketplaceAddr = "0x00000000000000000000000000000000000000aa"
	contractA       = "0x1111111111111111111111111111111111111111"
	sellerAddr      = "0x2222222222222222222222222222222222222222"
	buyerAddr       = "0x3333333333333333333333333333333333333333"
)

type fixture struct {
	service  Service
	registry *mockRegistry
	ledger   *mockLedger
	listings repository.ListingRepository
	proceeds repository.ProceedsRepository
}

func newFixture() fixture {
	store := cache.New(cache.NoExpiration, 0)
	listings := repository.NewListingRepository(store)
	proceeds := repository.NewProceedsRepository(store)
	reg := newMockRegistry()
	led := &mockLedger{}

	return fixture{
		service:  NewMarketplaceService(listings, proceeds, reg, led, marketplaceAddr),
		registry: reg,
		ledger:   led,
		listings: listings,
		proceeds: proceeds,
	}
}

func (f fixture) withAsset(tokenId uint64, owner string) fixture {
	f.registry.owners[assetKey(contractA, tokenId)] = owner
	f.registry.approvals[assetKey(contractA, tokenId)] = marketplaceAddr

	return f
}

func TestListItem(t *testing.T) {
	f := newFixture().withAsset(1, sellerAddr)

	if err := f.service.ListItem(contractA, 1, 100, sellerAddr); err != nil {
		t.Fatalf("expected list to succeed, got %v", err)
	}

	listing := f.service.GetListing(contractA, 1)
	if listing.Price != 100 {
		t.Errorf("expected price 100, got %d", listing.Price)
	}
	if listing.Seller != sellerAddr {
		t.Errorf("expected seller %s, got %s", sellerAddr, listing.Seller)
	}
}

func TestListItem_AlreadyListed(t *testing.T) {
	f := newFixture().withAsset(1, sellerAddr)

	if err := f.service.ListItem(contractA, 1, 100, sellerAddr); err != nil {
		t.Fatalf("expected list to succeed, got %v", err)
	}

	err := f.service.ListItem(contractA, 1, 200, sellerAddr)

	var alreadyListed AlreadyListedError
	if !errors.As(err, &alreadyListed) {
		t.Fatalf("expected AlreadyListedError, got %v", err)
	}
	if alreadyListed.Contract != contractA || alreadyListed.TokenId != 1 {
		t.Errorf("error carries wrong key: %+v", alreadyListed)
	}

	if listing := f.service.GetListing(contractA, 1); listing.Price != 100 {
		t.Errorf("existing listing changed, price now %d", listing.Price)
	}
}

func TestListItem_NotOwner(t *testing.T) {
	f := newFixture().withAsset(1, sellerAddr)

	if err := f.service.ListItem(contractA, 1, 100, buyerAddr); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
}

func TestListItem_ZeroPrice(t *testing.T) {
	f := newFixture().withAsset(1, sellerAddr)

	if err := f.service.ListItem(contractA, 1, 0, sellerAddr); !errors.Is(err, ErrPriceMustBeAboveZero) {
		t.Fatalf("expected ErrPriceMustBeAboveZero, got %v", err)
	}

	if listing := f.service.GetListing(contractA, 1); listing.Active() {
		t.Error("listing should not exist")
	}
}

func TestListItem_NotApproved(t *testing.T) {
	f := newFixture().withAsset(1, sellerAddr)
	f.registry.approvals[assetKey(contractA, 1)] = buyerAddr

	if err := f.service.ListItem(contractA, 1, 100, sellerAddr); !errors.Is(err, ErrNotApprovedForMarketplace) {
		t.Fatalf("expected ErrNotApprovedForMarketplace, got %v", err)
	}
}

func TestBuyItem(t *testing.T) {
	f := newFixture().withAsset(1, sellerAddr)

	if err := f.service.ListItem(contractA, 1, 100, sellerAddr); err != nil {
		t.Fatal(err)
	}
	if err := f.service.BuyItem(contractA, 1, buyerAddr, 100); err != nil {
		t.Fatalf("expected buy to succeed, got %v", err)
	}

	if listing := f.service.GetListing(contractA, 1); listing.Active() {
		t.Error("listing should be removed after sale")
	}
	if got := f.service.GetProceeds(sellerAddr); got != 100 {
		t.Errorf("expected proceeds 100, got %d", got)
	}

	if len(f.registry.transfers) != 1 {
		t.Fatalf("expected exactly one transfer, got %d", len(f.registry.transfers))
	}
	transfer := f.registry.transfers[0]
	if transfer.from != sellerAddr || transfer.to != buyerAddr || transfer.tokenId != 1 {
		t.Errorf("unexpected transfer: %+v", transfer)
	}
}

func TestBuyItem_OverpaymentKept(t *testing.T) {
	f := newFixture().withAsset(1, sellerAddr)

	if err := f.service.ListItem(contractA, 1, 100, sellerAddr); err != nil {
		t.Fatal(err)
	}
	if err := f.service.BuyItem(contractA, 1, buyerAddr, 150); err != nil {
		t.Fatal(err)
	}

	// The full payment is credited, not just the asking price.
	if got := f.service.GetProceeds(sellerAddr); got != 150 {
		t.Errorf("expected proceeds 150, got %d", got)
	}
}

func TestBuyItem_PriceNotMet(t *testing.T) {
	f := newFixture().withAsset(1, sellerAddr)

	if err := f.service.ListItem(contractA, 1, 100, sellerAddr); err != nil {
		t.Fatal(err)
	}

	err := f.service.BuyItem(contractA, 1, buyerAddr, 99)

	var priceNotMet PriceNotMetError
	if !errors.As(err, &priceNotMet) {
		t.Fatalf("expected PriceNotMetError, got %v", err)
	}
	if priceNotMet.Price != 100 {
		t.Errorf("expected error to carry price 100, got %d", priceNotMet.Price)
	}

	if listing := f.service.GetListing(contractA, 1); !listing.Active() {
		t.Error("listing should be unchanged")
	}
	if got := f.service.GetProceeds(sellerAddr); got != 0 {
		t.Errorf("expected no proceeds, got %d", got)
	}
	if len(f.registry.transfers) != 0 {
		t.Error("no transfer should have been made")
	}
}

func TestBuyItem_NotListed(t *testing.T) {
	f := newFixture().withAsset(1, sellerAddr)

	err := f.service.BuyItem(contractA, 1, buyerAddr, 100)

	var notListed NotListedError
	if !errors.As(err, &notListed) {
		t.Fatalf("expected NotListedError, got %v", err)
	}
}

func TestBuyItem_TransferFailureRevertsSale(t *testing.T) {
	f := newFixture().withAsset(1, sellerAddr)

	if err := f.service.ListItem(contractA, 1, 100, sellerAddr); err != nil {
		t.Fatal(err)
	}

	f.registry.transferErr = errors.New("registry rejected transfer")

	if err := f.service.BuyItem(contractA, 1, buyerAddr, 100); err == nil {
		t.Fatal("expected buy to fail")
	}

	if listing := f.service.GetListing(contractA, 1); !listing.Active() {
		t.Error("listing should be restored after failed transfer")
	}
	if got := f.service.GetProceeds(sellerAddr); got != 0 {
		t.Errorf("proceeds should be reverted, got %d", got)
	}
}

func TestCancelListing(t *testing.T) {
	f := newFixture().withAsset(1, sellerAddr)

	if err := f.service.ListItem(contractA, 1, 100, sellerAddr); err != nil {
		t.Fatal(err)
	}

	if err := f.service.CancelListing(contractA, 1, buyerAddr); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner for non-owner cancel, got %v", err)
	}

	if err := f.service.CancelListing(contractA, 1, sellerAddr); err != nil {
		t.Fatalf("expected cancel to succeed, got %v", err)
	}
	if listing := f.service.GetListing(contractA, 1); listing.Active() {
		t.Error("listing should be removed")
	}

	err := f.service.CancelListing(contractA, 1, sellerAddr)

	var notListed NotListedError
	if !errors.As(err, &notListed) {
		t.Fatalf("expected NotListedError on second cancel, got %v", err)
	}
}

func TestUpdateListing(t *testing.T) {
	f := newFixture().withAsset(1, sellerAddr)

	if err := f.service.ListItem(contractA, 1, 100, sellerAddr); err != nil {
		t.Fatal(err)
	}
	if err := f.service.UpdateListing(contractA, 1, 150, sellerAddr); err != nil {
		t.Fatalf("expected update to succeed, got %v", err)
	}

	listing := f.service.GetListing(contractA, 1)
	if listing.Price != 150 {
		t.Errorf("expected price 150, got %d", listing.Price)
	}
	if listing.Seller != sellerAddr {
		t.Errorf("seller changed to %s", listing.Seller)
	}
}

func TestUpdateListing_NotOwner(t *testing.T) {
	f := newFixture().withAsset(1, sellerAddr)

	if err := f.service.ListItem(contractA, 1, 100, sellerAddr); err != nil {
		t.Fatal(err)
	}

	if err := f.service.UpdateListing(contractA, 1, 150, buyerAddr); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
}

// An update to zero is accepted and leaves the listing encoding absence.
// The price is deliberately not re-validated on update.
func TestUpdateListing_ZeroPriceDelists(t *testing.T) {
	f := newFixture().withAsset(1, sellerAddr)

	if err := f.service.ListItem(contractA, 1, 100, sellerAddr); err != nil {
		t.Fatal(err)
	}
	if err := f.service.UpdateListing(contractA, 1, 0, sellerAddr); err != nil {
		t.Fatalf("expected update to succeed, got %v", err)
	}

	if listing := f.service.GetListing(contractA, 1); listing.Active() {
		t.Error("zero price listing should read as absent")
	}
}

func TestWithdrawProceeds_NoProceeds(t *testing.T) {
	f := newFixture()

	if err := f.service.WithdrawProceeds(sellerAddr); !errors.Is(err, ErrNoProceeds) {
		t.Fatalf("expected ErrNoProceeds, got %v", err)
	}
}

func TestWithdrawProceeds(t *testing.T) {
	f := newFixture().withAsset(1, sellerAddr)

	if err := f.service.ListItem(contractA, 1, 100, sellerAddr); err != nil {
		t.Fatal(err)
	}
	if err := f.service.BuyItem(contractA, 1, buyerAddr, 100); err != nil {
		t.Fatal(err)
	}

	if err := f.service.WithdrawProceeds(sellerAddr); err != nil {
		t.Fatalf("expected withdraw to succeed, got %v", err)
	}

	if got := f.service.GetProceeds(sellerAddr); got != 0 {
		t.Errorf("expected proceeds reset to 0, got %d", got)
	}
	if len(f.ledger.payments) != 1 {
		t.Fatalf("expected exactly one payout, got %d", len(f.ledger.payments))
	}
	if f.ledger.payments[0].recipient != sellerAddr || f.ledger.payments[0].amount != 100 {
		t.Errorf("unexpected payout: %+v", f.ledger.payments[0])
	}
}

func TestWithdrawProceeds_PayoutFailureRestoresBalance(t *testing.T) {
	f := newFixture().withAsset(1, sellerAddr)

	if err := f.service.ListItem(contractA, 1, 100, sellerAddr); err != nil {
		t.Fatal(err)
	}
	if err := f.service.BuyItem(contractA, 1, buyerAddr, 100); err != nil {
		t.Fatal(err)
	}

	f.ledger.payErr = errors.New("recipient rejected payment")

	if err := f.service.WithdrawProceeds(sellerAddr); !errors.Is(err, ErrTransferFailed) {
		t.Fatalf("expected ErrTransferFailed, got %v", err)
	}

	if got := f.service.GetProceeds(sellerAddr); got != 100 {
		t.Errorf("expected balance restored to 100, got %d", got)
	}
}

func TestListBuyWithdrawScenario(t *testing.T) {
	f := newFixture().withAsset(1, sellerAddr)

	if err := f.service.ListItem(contractA, 1, 100, sellerAddr); err != nil {
		t.Fatal(err)
	}

	listing := f.service.GetListing(contractA, 1)
	if listing.Price != 100 || listing.Seller != sellerAddr {
		t.Fatalf("unexpected listing: %+v", listing)
	}

	if err := f.service.BuyItem(contractA, 1, buyerAddr, 100); err != nil {
		t.Fatal(err)
	}

	listing = f.service.GetListing(contractA, 1)
	if listing.Price != 0 || listing.Seller != "" {
		t.Fatalf("listing should be absent, got %+v", listing)
	}
	if got := f.service.GetProceeds(sellerAddr); got != 100 {
		t.Fatalf("expected proceeds 100, got %d", got)
	}

	if err := f.service.WithdrawProceeds(sellerAddr); err != nil {
		t.Fatal(err)
	}
	if got := f.service.GetProceeds(sellerAddr); got != 0 {
		t.Fatalf("expected proceeds 0 after withdrawal, got %d", got)
	}
}

func TestRelistAfterSale(t *testing.T) {
	f := newFixture().withAsset(1, sellerAddr)

	if err := f.service.ListItem(contractA, 1, 100, sellerAddr); err != nil {
		t.Fatal(err)
	}
	if err := f.service.BuyItem(contractA, 1, buyerAddr, 100); err != nil {
		t.Fatal(err)
	}

	// Ownership moved to the buyer on the registry, so the buyer can relist.
	f.registry.approvals[assetKey(contractA, 1)] = marketplaceAddr
	if err := f.service.ListItem(contractA, 1, 250, buyerAddr); err != nil {
		t.Fatalf("expected relist by new owner to succeed, got %v", err)
	}

	listing := f.service.GetListing(contractA, 1)
	if listing.Seller != buyerAddr || listing.Price != 250 {
		t.Errorf("unexpected listing after relist: %+v", listing)
	}
}
