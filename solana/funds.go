package solana

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// Balance returns the lamport balance of address.
func Balance(ctx context.Context, rpcClient RPCClient, address solana.PublicKey, commitment rpc.CommitmentType) (uint64, error) {
	out, err := rpcClient.GetBalance(ctx, address, commitment)
	if err != nil {
		return 0, fmt.Errorf("failed to get balance of %s: %w", address, err)
	}
	if out == nil {
		return 0, fmt.Errorf("empty balance response for %s", address)
	}
	return out.Value, nil
}

// Airdrop requests lamports for address from the cluster faucet and waits
// for the executor's commitment. Only local, dev and test clusters serve
// airdrops.
func (e *Executor) Airdrop(ctx context.Context, address solana.PublicKey, lamports uint64) (solana.Signature, error) {
	e.log.Debug("--> Requesting airdrop", "address", address, "lamports", lamports)
	sig, err := e.rpc.RequestAirdrop(ctx, address, lamports, e.commitment)
	if err != nil {
		return solana.Signature{}, &SubmissionError{Op: "airdrop", Err: err}
	}
	if err := e.confirm(ctx, "airdrop", sig); err != nil {
		return sig, err
	}
	return sig, nil
}
