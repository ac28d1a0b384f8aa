package ledger

import (
	"github.com/ZilDuck/nft-marketplace/internal/rpc"
	"go.uber.org/zap"
)

// Service moves payment amounts out of the marketplace account. Incoming
// payments arrive attached to buy calls; only outgoing payouts go through
// here.
type Service interface {
	Pay(recipient string, amount uint64) error
}

type service struct {
	rpcClient *rpc.Client
}

func NewLedgerService(rpcClient *rpc.Client) Service {
	return service{rpcClient}
}

func (s service) Pay(recipient string, amount uint64) error {
	_, err := s.rpcClient.Call("pay", recipient, amount)
	if err != nil {
		zap.L().With(
			zap.Error(err),
			zap.String("recipient", recipient),
			zap.Uint64("amount", amount),
		).Error("Ledger: Payment failed")
	}

	return err
}
