package marketplace

import (
	"errors"
	"fmt"
)

type transferCall struct {
	from     string
	to       string
	contract string
	tokenId  uint64
}

type mockRegistry struct {
	owners      map[string]string
	approvals   map[string]string
	transfers   []transferCall
	transferErr error
}

func newMockRegistry() *mockRegistry {
	return &mockRegistry{
		owners:    make(map[string]string),
		approvals: make(map[string]string),
	}
}

func assetKey(contract string, tokenId uint64) string {
	return fmt.Sprintf("%s-%d", contract, tokenId)
}

func (m *mockRegistry) OwnerOf(contract string, tokenId uint64) (string, error) {
	owner, ok := m.owners[assetKey(contract, tokenId)]
	if !ok {
		return "", errors.New("unknown asset")
	}

	return owner, nil
}

func (m *mockRegistry) GetApproved(contract string, tokenId uint64) (string, error) {
	return m.approvals[assetKey(contract, tokenId)], nil
}

func (m *mockRegistry) SafeTransferFrom(from, to, contract string, tokenId uint64) error {
	if m.transferErr != nil {
		return m.transferErr
	}

	m.transfers = append(m.transfers, transferCall{from, to, contract, tokenId})
	m.owners[assetKey(contract, tokenId)] = to

	return nil
}

type payment struct {
	recipient string
	amount    uint64
}

type mockLedger struct {
	payments []payment
	payErr   error
}

func (m *mockLedger) Pay(recipient string, amount uint64) error {
	if m.payErr != nil {
		return m.payErr
	}

	m.payments = append(m.payments, payment{recipient, amount})

	return nil
}
