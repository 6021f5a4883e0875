package solana

import (
	"context"
	"fmt"

	binary "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/gagliardetto/solana-go/rpc"
)

// Mint is an SPL mint together with its address.
type Mint struct {
	Address solana.PublicKey
	token.Mint
}

func DecodeMint(address solana.PublicKey, data []byte) (*Mint, error) {
	out := &Mint{Address: address}
	if err := out.Mint.UnmarshalWithDecoder(binary.NewBinDecoder(data)); err != nil {
		return nil, fmt.Errorf("%w: mint %s: %v", ErrInvalidAccountData, address, err)
	}
	return out, nil
}

func GetMint(ctx context.Context, rpcClient RPCClient, address solana.PublicKey, commitment rpc.CommitmentType) (*Mint, error) {
	acc, err := GetAccountInfo(ctx, rpcClient, address, commitment)
	if err != nil {
		return nil, err
	}
	return DecodeMint(address, acc.Data.GetBinary())
}
