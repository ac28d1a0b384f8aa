package registry

import (
	"encoding/json"
	"github.com/ZilDuck/nft-marketplace/internal/rpc"
)

// Provider exposes the raw calls of the external asset registry. The registry
// is the authority on ownership and approval; it also performs transfers.
type Provider struct {
	rpcClient *rpc.Client
}

func NewProvider(rpcClient *rpc.Client) *Provider {
	return &Provider{rpcClient: rpcClient}
}

func (p *Provider) OwnerOf(contract string, tokenId uint64) (string, error) {
	response, err := p.rpcClient.Call("ownerOf", contract, tokenId)
	if err != nil {
		return "", err
	}

	var owner string
	if err := json.Unmarshal(response.Result, &owner); err != nil {
		return "", err
	}

	return owner, nil
}

func (p *Provider) GetApproved(contract string, tokenId uint64) (string, error) {
	response, err := p.rpcClient.Call("getApproved", contract, tokenId)
	if err != nil {
		return "", err
	}

	var approved string
	if err := json.Unmarshal(response.Result, &approved); err != nil {
		return "", err
	}

	return approved, nil
}

func (p *Provider) SafeTransferFrom(from, to, contract string, tokenId uint64) error {
	_, err := p.rpcClient.Call("safeTransferFrom", from, to, contract, tokenId)

	return err
}
