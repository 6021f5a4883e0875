package solana

import (
	"context"
	"fmt"

	binary "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/gagliardetto/solana-go/rpc"
)

// TokenAccount is an SPL token account together with its address.
type TokenAccount struct {
	Address solana.PublicKey
	token.Account
}

// IsDelegatedTo reports whether delegate may move at least one token.
func (a *TokenAccount) IsDelegatedTo(delegate solana.PublicKey) bool {
	return a.Delegate != nil && a.Delegate.Equals(delegate) && a.DelegatedAmount > 0
}

func DecodeTokenAccount(address solana.PublicKey, data []byte) (*TokenAccount, error) {
	out := &TokenAccount{Address: address}
	if err := out.Account.UnmarshalWithDecoder(binary.NewBinDecoder(data)); err != nil {
		return nil, fmt.Errorf("%w: token account %s: %v", ErrInvalidAccountData, address, err)
	}
	return out, nil
}

func GetTokenAccount(ctx context.Context, rpcClient RPCClient, address solana.PublicKey, commitment rpc.CommitmentType) (*TokenAccount, error) {
	acc, err := GetAccountInfo(ctx, rpcClient, address, commitment)
	if err != nil {
		return nil, err
	}
	return DecodeTokenAccount(address, acc.Data.GetBinary())
}
