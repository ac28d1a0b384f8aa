package helper

import (
	"errors"
	"github.com/Zilliqa/gozilliqa-sdk/bech32"
	"strings"
)

var ErrInvalidAddress = errors.New("invalid address")

// NormaliseAddress accepts a bech32 ("zil1...") or base16 address and returns
// the lowercase 0x-prefixed base16 form used as table keys.
func NormaliseAddress(address string) (string, error) {
	addr := strings.ToLower(strings.TrimSpace(address))
	if addr == "" {
		return "", ErrInvalidAddress
	}

	if strings.HasPrefix(addr, "zil1") {
		base16, err := bech32.FromBech32Addr(addr)
		if err != nil {
			return "", err
		}
		addr = strings.ToLower(base16)
	}

	return "0x" + strings.TrimPrefix(addr, "0x"), nil
}

func ToBech32Address(address string) string {
	bech32Address, err := bech32.ToBech32Address(strings.TrimPrefix(address, "0x"))
	if err != nil {
		return ""
	}

	return bech32Address
}
