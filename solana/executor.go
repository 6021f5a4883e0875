package solana

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/jonboulle/clockwork"
)

const defaultPollInterval = 500 * time.Millisecond

// Executor builds, signs, sends and confirms transactions.
type Executor struct {
	log            *slog.Logger
	rpc            RPCClient
	clock          clockwork.Clock
	commitment     rpc.CommitmentType
	skipPreflight  bool
	pollInterval   time.Duration
	confirmTimeout time.Duration
}

type ExecutorOption func(*Executor)

// WithCommitment sets the level a transaction must reach before Send returns.
func WithCommitment(commitment rpc.CommitmentType) ExecutorOption {
	return func(e *Executor) {
		if commitment != "" {
			e.commitment = commitment
		}
	}
}

func WithSkipPreflight(skip bool) ExecutorOption {
	return func(e *Executor) {
		e.skipPreflight = skip
	}
}

func WithPollInterval(interval time.Duration) ExecutorOption {
	return func(e *Executor) {
		if interval > 0 {
			e.pollInterval = interval
		}
	}
}

// WithConfirmationTimeout bounds the confirmation wait. Zero leaves the wait
// to the caller's context.
func WithConfirmationTimeout(timeout time.Duration) ExecutorOption {
	return func(e *Executor) {
		e.confirmTimeout = timeout
	}
}

func WithClock(clock clockwork.Clock) ExecutorOption {
	return func(e *Executor) {
		e.clock = clock
	}
}

func NewExecutor(log *slog.Logger, rpcClient RPCClient, opts ...ExecutorOption) *Executor {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	e := &Executor{
		log:          log,
		rpc:          rpcClient,
		clock:        clockwork.NewRealClock(),
		commitment:   rpc.CommitmentConfirmed,
		pollInterval: defaultPollInterval,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Executor) Commitment() rpc.CommitmentType {
	return e.commitment
}

func (e *Executor) RPC() RPCClient {
	return e.rpc
}

// BuildTransaction wraps instructions, in order, into an unsigned
// transaction paid for by payer.
func (e *Executor) BuildTransaction(ctx context.Context, instructions []solana.Instruction, payer solana.PublicKey) (*solana.Transaction, error) {
	if len(instructions) == 0 {
		return nil, errors.New("no instructions to send")
	}
	blockhash, err := GetLatestBlockhash(ctx, e.rpc, e.commitment)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest blockhash: %w", err)
	}
	tx, err := solana.NewTransaction(instructions, blockhash, solana.TransactionPayer(payer))
	if err != nil {
		return nil, fmt.Errorf("failed to build transaction: %w", err)
	}
	return tx, nil
}

func keyGetter(signers []solana.PrivateKey) func(solana.PublicKey) *solana.PrivateKey {
	return func(key solana.PublicKey) *solana.PrivateKey {
		for i := range signers {
			if signers[i].PublicKey().Equals(key) {
				return &signers[i]
			}
		}
		return nil
	}
}

// Send signs the transaction with every signer it requires, submits it and
// waits for the configured commitment. op names the operation in errors
// and logs.
func (e *Executor) Send(ctx context.Context, op string, instructions []solana.Instruction, payer solana.PublicKey, signers ...solana.PrivateKey) (solana.Signature, error) {
	tx, err := e.BuildTransaction(ctx, instructions, payer)
	if err != nil {
		return solana.Signature{}, &SubmissionError{Op: op, Err: err}
	}

	if _, err := tx.Sign(keyGetter(signers)); err != nil {
		return solana.Signature{}, fmt.Errorf("%s: failed to sign transaction: %w", op, err)
	}

	e.log.Debug("--> Sending transaction", "op", op, "instructions", len(instructions), "payer", payer)
	sig, err := e.rpc.SendTransactionWithOpts(ctx, tx, rpc.TransactionOpts{
		SkipPreflight:       e.skipPreflight,
		PreflightCommitment: e.commitment,
	})
	if err != nil {
		if pe := programErrorFromRPC(op, err); pe != nil {
			return solana.Signature{}, pe
		}
		return solana.Signature{}, &SubmissionError{Op: op, Err: err}
	}

	if err := e.confirm(ctx, op, sig); err != nil {
		return sig, err
	}
	return sig, nil
}

// PartialSign builds a transaction and signs it only with the keys given,
// leaving the remaining signature slots empty for other parties. The result
// is the base64 wire encoding.
func (e *Executor) PartialSign(ctx context.Context, instructions []solana.Instruction, payer solana.PublicKey, signers ...solana.PrivateKey) (string, error) {
	tx, err := e.BuildTransaction(ctx, instructions, payer)
	if err != nil {
		return "", err
	}
	msg, err := tx.Message.MarshalBinary()
	if err != nil {
		return "", fmt.Errorf("failed to encode message: %w", err)
	}

	required := int(tx.Message.Header.NumRequiredSignatures)
	tx.Signatures = make([]solana.Signature, required)
	get := keyGetter(signers)
	for i, key := range tx.Message.AccountKeys[:required] {
		pk := get(key)
		if pk == nil {
			continue
		}
		sig, err := pk.Sign(msg)
		if err != nil {
			return "", fmt.Errorf("failed to sign for %s: %w", key, err)
		}
		tx.Signatures[i] = sig
	}
	return tx.ToBase64()
}

// Confirm waits until sig reaches the executor's commitment.
func (e *Executor) Confirm(ctx context.Context, sig solana.Signature) error {
	return e.confirm(ctx, "confirm", sig)
}

func (e *Executor) confirm(ctx context.Context, op string, sig solana.Signature) error {
	e.log.Debug("--> Waiting for transaction", "op", op, "sig", sig, "commitment", e.commitment)
	start := e.clock.Now()

	var timeout <-chan time.Time
	if e.confirmTimeout > 0 {
		timeout = e.clock.After(e.confirmTimeout)
	}

	for {
		resp, err := e.rpc.GetSignatureStatuses(ctx, true, sig)
		if err != nil && ctx.Err() == nil {
			return &SubmissionError{Op: op, Signature: sig, Err: err}
		}
		if err == nil && resp != nil && len(resp.Value) > 0 && resp.Value[0] != nil {
			status := resp.Value[0]
			if status.Err != nil {
				return parseTransactionError(op, sig, status.Err, nil)
			}
			if reached(status.ConfirmationStatus, e.commitment) {
				e.log.Debug("--> Transaction confirmed", "op", op, "sig", sig, "status", status.ConfirmationStatus, "duration", e.clock.Since(start))
				return nil
			}
		}

		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return fmt.Errorf("%s %s: %w: %w", op, sig, ErrConfirmationTimeout, ctx.Err())
			}
			return fmt.Errorf("%s %s: %w", op, sig, ctx.Err())
		case <-timeout:
			return fmt.Errorf("%s %s: %w after %s", op, sig, ErrConfirmationTimeout, e.confirmTimeout)
		case <-e.clock.After(e.pollInterval):
		}
	}
}

func commitmentRank(level string) int {
	switch level {
	case string(rpc.CommitmentProcessed):
		return 1
	case string(rpc.CommitmentConfirmed):
		return 2
	case string(rpc.CommitmentFinalized):
		return 3
	default:
		return 0
	}
}

func reached(status rpc.ConfirmationStatusType, want rpc.CommitmentType) bool {
	got := commitmentRank(string(status))
	return got > 0 && got >= commitmentRank(string(want))
}
