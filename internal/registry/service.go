package registry

type Service interface {
	OwnerOf(contract string, tokenId uint64) (string, error)
	GetApproved(contract string, tokenId uint64) (string, error)
	SafeTransferFrom(from, to, contract string, tokenId uint64) error
}

type service struct {
	provider *Provider
}

func NewRegistryService(provider *Provider) Service {
	return service{provider}
}

func (s service) OwnerOf(contract string, tokenId uint64) (string, error) {
	return s.provider.OwnerOf(contract, tokenId)
}

func (s service) GetApproved(contract string, tokenId uint64) (string, error) {
	return s.provider.GetApproved(contract, tokenId)
}

func (s service) SafeTransferFrom(from, to, contract string, tokenId uint64) error {
	return s.provider.SafeTransferFrom(from, to, contract, tokenId)
}
