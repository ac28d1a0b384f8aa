package marketplace

import (
	"errors"
	"fmt"
)

var (
	ErrPriceMustBeAboveZero      = errors.New("price must be above zero")
	ErrNotApprovedForMarketplace = errors.New("not approved for marketplace")
	ErrNotOwner                  = errors.New("not owner")
	ErrNoProceeds                = errors.New("no proceeds")
	ErrTransferFailed            = errors.New("transfer failed")
)

type AlreadyListedError struct {
	Contract string
	TokenId  uint64
}

func (e AlreadyListedError) Error() string {
	return fmt.Sprintf("already listed: %s %d", e.Contract, e.TokenId)
}

type NotListedError struct {
	Contract string
	TokenId  uint64
}

func (e NotListedError) Error() string {
	return fmt.Sprintf("not listed: %s %d", e.Contract, e.TokenId)
}

type PriceNotMetError struct {
	Contract string
	TokenId  uint64
	Price    uint64
}

func (e PriceNotMetError) Error() string {
	return fmt.Sprintf("price not met: %s %d costs %d", e.Contract, e.TokenId, e.Price)
}
