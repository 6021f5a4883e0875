package auction_house

import (
	"errors"

	"github.com/gagliardetto/solana-go"
	"github.com/krazyTry/bokoup-go/pda"
)

var ErrZeroPrice = errors.New("price must be greater than zero")

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

func tokenSize(size uint64) uint64 {
	if size == 0 {
		return DefaultTokenSize
	}
	return size
}

func isNative(mint solana.PublicKey) bool {
	return mint.Equals(pda.NativeMint)
}

// paymentAccount is the account funds move from or to for wallet: the
// wallet itself for native SOL, its associated token account otherwise.
func (c *Client) paymentAccount(d *derivation, wallet, treasuryMint solana.PublicKey) solana.PublicKey {
	if isNative(treasuryMint) {
		return wallet
	}
	return d.addr(c.pda.AssociatedToken(wallet, treasuryMint))
}
