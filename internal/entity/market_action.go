package entity

import (
	"crypto/md5"
	"fmt"
	"time"
)

// MarketAction is the audit document written for every successful marketplace
// operation. It is observability only, never the source of truth.
type MarketAction struct {
	Contract  string     `json:"contract"`
	TokenId   uint64     `json:"tokenId"`
	Action    ActionType `json:"action"`
	Seller    string     `json:"seller"`
	Buyer     string     `json:"buyer"`
	Price     uint64     `json:"price"`
	Timestamp int64      `json:"timestamp"`
}

type ActionType string

const (
	ListedAction    ActionType = "listed"
	BoughtAction    ActionType = "bought"
	CancelledAction ActionType = "cancelled"
)

func (a MarketAction) Slug() string {
	return CreateMarketActionSlug(a.Contract, a.TokenId, string(a.Action), a.Timestamp)
}

func CreateMarketActionSlug(contract string, tokenId uint64, action string, timestamp int64) string {
	data := []byte(fmt.Sprintf("marketaction-%s-%d-%s-%d", contract, tokenId, action, timestamp))
	return fmt.Sprintf("%x", md5.Sum(data))
}

func NewMarketAction(action ActionType, contract string, tokenId uint64, seller, buyer string, price uint64) MarketAction {
	return MarketAction{
		Contract:  contract,
		TokenId:   tokenId,
		Action:    action,
		Seller:    seller,
		Buyer:     buyer,
		Price:     price,
		Timestamp: time.Now().UnixNano(),
	}
}
