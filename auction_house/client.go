package auction_house

import (
	"log/slog"

	"github.com/gagliardetto/solana-go/rpc"
	"github.com/krazyTry/bokoup-go/pda"
	solanago "github.com/krazyTry/bokoup-go/solana"
)

// Client assembles, signs and submits auction house transactions.
type Client struct {
	log        *slog.Logger
	rpc        solanago.RPCClient
	exec       *solanago.Executor
	pda        pda.Deriver
	commitment rpc.CommitmentType
}

// NewClient constructs a client for the programs in table. Zero program ids
// fall back to mainnet.
func NewClient(log *slog.Logger, rpcClient solanago.RPCClient, programs pda.ProgramTable, opts ...solanago.ExecutorOption) *Client {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	exec := solanago.NewExecutor(log, rpcClient, opts...)
	return &Client{
		log:        log,
		rpc:        rpcClient,
		exec:       exec,
		pda:        pda.NewDeriver(programs),
		commitment: exec.Commitment(),
	}
}

// Create is a convenience constructor using mainnet programs and confirmed
// commitment by default.
func Create(rpcClient solanago.RPCClient, commitment rpc.CommitmentType) *Client {
	if commitment == "" {
		commitment = rpc.CommitmentConfirmed
	}
	return NewClient(nil, rpcClient, pda.DefaultPrograms(), solanago.WithCommitment(commitment))
}

func (c *Client) Deriver() pda.Deriver {
	return c.pda
}

func (c *Client) Executor() *solanago.Executor {
	return c.exec
}
