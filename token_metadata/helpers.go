package token_metadata

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// derivation records the first error of a series of derivations so the
// addresses can be taken inline.
type derivation struct {
	err error
}

func (d *derivation) take(addr solana.PublicKey, bump uint8, err error) (solana.PublicKey, uint8) {
	if err != nil && d.err == nil {
		d.err = err
	}
	return addr, bump
}

func (d *derivation) addr(addr solana.PublicKey, _ uint8, err error) solana.PublicKey {
	a, _ := d.take(addr, 0, err)
	return a
}

func orPayer(key, payer solana.PublicKey) solana.PublicKey {
	if key.IsZero() {
		return payer
	}
	return key
}

func validateNameURI(kind, name, uri string) error {
	if name == "" {
		return fmt.Errorf("%s name is required", kind)
	}
	if len(name) > MaxNameLength {
		return fmt.Errorf("%s name is %d bytes, max %d", kind, len(name), MaxNameLength)
	}
	if len(uri) > MaxURILength {
		return fmt.Errorf("%s uri is %d bytes, max %d", kind, len(uri), MaxURILength)
	}
	return nil
}
