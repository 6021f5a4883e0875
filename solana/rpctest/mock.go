// Package rpctest provides an in-memory RPCClient for tests.
package rpctest

import (
	"context"
	"sync"

	"github.com/gagliardetto/solana-go"
	solanarpc "github.com/gagliardetto/solana-go/rpc"
)

var (
	Blockhash = solana.MustHashFromBase58("4uQeVj5tqViQh7yWWGStvkEG1Zmhx6uasJtWCJziofM")
	Signature = solana.MustSignatureFromBase58("5VERv8NMvzbJMEkV8xnrLkEaWRtSz9CosKDYjCJjBRnbJLgp8uirBgmQpjKhoR4tjF3ZpRzrFmBV6UjKdiSZkQUW")
)

// MockRPC answers every call with its Func field when set. Unset send and
// confirmation hooks succeed with Blockhash, Signature and a finalized
// status. Unset account hooks report the account as missing.
type MockRPC struct {
	GetLatestBlockhashFunc          func(context.Context, solanarpc.CommitmentType) (*solanarpc.GetLatestBlockhashResult, error)
	SendTransactionWithOptsFunc     func(context.Context, *solana.Transaction, solanarpc.TransactionOpts) (solana.Signature, error)
	GetSignatureStatusesFunc        func(context.Context, bool, ...solana.Signature) (*solanarpc.GetSignatureStatusesResult, error)
	GetAccountInfoWithOptsFunc      func(context.Context, solana.PublicKey, *solanarpc.GetAccountInfoOpts) (*solanarpc.GetAccountInfoResult, error)
	GetMultipleAccountsWithOptsFunc func(context.Context, []solana.PublicKey, *solanarpc.GetMultipleAccountsOpts) (*solanarpc.GetMultipleAccountsResult, error)
	GetProgramAccountsWithOptsFunc  func(context.Context, solana.PublicKey, *solanarpc.GetProgramAccountsOpts) (solanarpc.GetProgramAccountsResult, error)
	GetBalanceFunc                  func(context.Context, solana.PublicKey, solanarpc.CommitmentType) (*solanarpc.GetBalanceResult, error)
	RequestAirdropFunc              func(context.Context, solana.PublicKey, uint64, solanarpc.CommitmentType) (solana.Signature, error)

	mu  sync.Mutex
	txs []*solana.Transaction
}

// Sent returns the transactions passed to SendTransactionWithOpts so far.
func (m *MockRPC) Sent() []*solana.Transaction {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*solana.Transaction(nil), m.txs...)
}

func (m *MockRPC) GetLatestBlockhash(ctx context.Context, commitment solanarpc.CommitmentType) (*solanarpc.GetLatestBlockhashResult, error) {
	if m.GetLatestBlockhashFunc != nil {
		return m.GetLatestBlockhashFunc(ctx, commitment)
	}
	return &solanarpc.GetLatestBlockhashResult{
		Value: &solanarpc.LatestBlockhashResult{Blockhash: Blockhash},
	}, nil
}

func (m *MockRPC) SendTransactionWithOpts(ctx context.Context, tx *solana.Transaction, opts solanarpc.TransactionOpts) (solana.Signature, error) {
	m.mu.Lock()
	m.txs = append(m.txs, tx)
	m.mu.Unlock()
	if m.SendTransactionWithOptsFunc != nil {
		return m.SendTransactionWithOptsFunc(ctx, tx, opts)
	}
	return Signature, nil
}

func (m *MockRPC) GetSignatureStatuses(ctx context.Context, search bool, sigs ...solana.Signature) (*solanarpc.GetSignatureStatusesResult, error) {
	if m.GetSignatureStatusesFunc != nil {
		return m.GetSignatureStatusesFunc(ctx, search, sigs...)
	}
	return &solanarpc.GetSignatureStatusesResult{
		Value: []*solanarpc.SignatureStatusesResult{
			{ConfirmationStatus: solanarpc.ConfirmationStatusFinalized},
		},
	}, nil
}

func (m *MockRPC) GetAccountInfoWithOpts(ctx context.Context, account solana.PublicKey, opts *solanarpc.GetAccountInfoOpts) (*solanarpc.GetAccountInfoResult, error) {
	if m.GetAccountInfoWithOptsFunc != nil {
		return m.GetAccountInfoWithOptsFunc(ctx, account, opts)
	}
	return nil, solanarpc.ErrNotFound
}

func (m *MockRPC) GetMultipleAccountsWithOpts(ctx context.Context, accounts []solana.PublicKey, opts *solanarpc.GetMultipleAccountsOpts) (*solanarpc.GetMultipleAccountsResult, error) {
	if m.GetMultipleAccountsWithOptsFunc != nil {
		return m.GetMultipleAccountsWithOptsFunc(ctx, accounts, opts)
	}
	return &solanarpc.GetMultipleAccountsResult{Value: make([]*solanarpc.Account, len(accounts))}, nil
}

func (m *MockRPC) GetProgramAccountsWithOpts(ctx context.Context, program solana.PublicKey, opts *solanarpc.GetProgramAccountsOpts) (solanarpc.GetProgramAccountsResult, error) {
	if m.GetProgramAccountsWithOptsFunc != nil {
		return m.GetProgramAccountsWithOptsFunc(ctx, program, opts)
	}
	return nil, nil
}

func (m *MockRPC) GetBalance(ctx context.Context, account solana.PublicKey, commitment solanarpc.CommitmentType) (*solanarpc.GetBalanceResult, error) {
	if m.GetBalanceFunc != nil {
		return m.GetBalanceFunc(ctx, account, commitment)
	}
	return &solanarpc.GetBalanceResult{}, nil
}

func (m *MockRPC) RequestAirdrop(ctx context.Context, account solana.PublicKey, lamports uint64, commitment solanarpc.CommitmentType) (solana.Signature, error) {
	if m.RequestAirdropFunc != nil {
		return m.RequestAirdropFunc(ctx, account, lamports, commitment)
	}
	return Signature, nil
}

// AccountResult wraps data as a base64 account owned by owner.
func AccountResult(owner solana.PublicKey, data []byte) *solanarpc.GetAccountInfoResult {
	return &solanarpc.GetAccountInfoResult{
		Value: Account(owner, data),
	}
}

func Account(owner solana.PublicKey, data []byte) *solanarpc.Account {
	return &solanarpc.Account{
		Owner: owner,
		Data:  solanarpc.DataBytesOrJSONFromBytes(data),
	}
}

// Accounts serves GetAccountInfoWithOpts from a fixed map.
func Accounts(owner solana.PublicKey, accounts map[solana.PublicKey][]byte) func(context.Context, solana.PublicKey, *solanarpc.GetAccountInfoOpts) (*solanarpc.GetAccountInfoResult, error) {
	return func(_ context.Context, key solana.PublicKey, _ *solanarpc.GetAccountInfoOpts) (*solanarpc.GetAccountInfoResult, error) {
		data, ok := accounts[key]
		if !ok {
			return nil, solanarpc.ErrNotFound
		}
		return AccountResult(owner, data), nil
	}
}
