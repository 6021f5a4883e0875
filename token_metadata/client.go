package token_metadata

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alitto/pond/v2"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/krazyTry/bokoup-go/offchain"
	"github.com/krazyTry/bokoup-go/pda"
	solanago "github.com/krazyTry/bokoup-go/solana"
)

// Client assembles, signs and submits promo program transactions and reads
// promo state.
type Client struct {
	log        *slog.Logger
	rpc        solanago.RPCClient
	exec       *solanago.Executor
	pda        pda.Deriver
	commitment rpc.CommitmentType
	fetcher    *offchain.Fetcher

	extendedPool pond.ResultPool[*PromoExtended]
}

// NewClient constructs a client for the programs in table. A nil fetcher
// gets the default off-chain fetcher.
func NewClient(log *slog.Logger, rpcClient solanago.RPCClient, programs pda.ProgramTable, fetcher *offchain.Fetcher, opts ...solanago.ExecutorOption) (*Client, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if fetcher == nil {
		var err error
		fetcher, err = offchain.NewFetcher(&offchain.Config{Logger: log})
		if err != nil {
			return nil, fmt.Errorf("failed to create metadata fetcher: %w", err)
		}
	}
	exec := solanago.NewExecutor(log, rpcClient, opts...)
	return &Client{
		log:          log,
		rpc:          rpcClient,
		exec:         exec,
		pda:          pda.NewDeriver(programs),
		commitment:   exec.Commitment(),
		fetcher:      fetcher,
		extendedPool: pond.NewResultPool[*PromoExtended](defaultExtendedPoolSize),
	}, nil
}

// Create is a convenience constructor using mainnet programs and confirmed
// commitment by default.
func Create(rpcClient solanago.RPCClient, commitment rpc.CommitmentType) (*Client, error) {
	if commitment == "" {
		commitment = rpc.CommitmentConfirmed
	}
	return NewClient(nil, rpcClient, pda.DefaultPrograms(), nil, solanago.WithCommitment(commitment))
}

func (c *Client) Deriver() pda.Deriver {
	return c.pda
}

func (c *Client) Executor() *solanago.Executor {
	return c.exec
}

// PartialSign builds a transaction from instructions with feePayer paying
// and signing, plus any of cosigners the transaction requires. Slots for
// every other signer are left empty.
func (c *Client) PartialSign(ctx context.Context, feePayer solana.PrivateKey, instructions []solana.Instruction, cosigners ...solana.PrivateKey) (string, error) {
	signers := append([]solana.PrivateKey{feePayer}, cosigners...)
	tx, err := c.exec.PartialSign(ctx, instructions, feePayer.PublicKey(), signers...)
	if err != nil {
		return "", err
	}
	c.log.Debug("--> Partially signed transaction", "feePayer", feePayer.PublicKey(), "instructions", len(instructions))
	return tx, nil
}
