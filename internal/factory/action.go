package factory

import "github.com/ZilDuck/nft-marketplace/internal/entity"

func CreateListedAction(listing entity.Listing) entity.MarketAction {
	return entity.NewMarketAction(entity.ListedAction, listing.Contract, listing.TokenId, listing.Seller, "", listing.Price)
}

func CreateBoughtAction(listing entity.Listing, buyer string, paymentSent uint64) entity.MarketAction {
	return entity.NewMarketAction(entity.BoughtAction, listing.Contract, listing.TokenId, listing.Seller, buyer, paymentSent)
}

func CreateCancelledAction(listing entity.Listing) entity.MarketAction {
	return entity.NewMarketAction(entity.CancelledAction, listing.Contract, listing.TokenId, listing.Seller, "", listing.Price)
}
