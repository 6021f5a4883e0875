package solana_test

import (
	"context"
	"encoding/base64"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	solanarpc "github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/jsonrpc"
	"github.com/jonboulle/clockwork"
	solanago "github.com/krazyTry/bokoup-go/solana"
	"github.com/krazyTry/bokoup-go/solana/rpctest"
	"github.com/stretchr/testify/require"
)

func testInstruction(signers ...solana.PublicKey) solana.Instruction {
	accounts := solana.AccountMetaSlice{}
	for _, s := range signers {
		accounts = append(accounts, solana.Meta(s).WRITE().SIGNER())
	}
	return solana.NewInstruction(solana.NewWallet().PublicKey(), accounts, []byte{1, 2, 3})
}

func TestSolana_Executor_Send(t *testing.T) {
	t.Parallel()

	payer := solana.NewWallet().PrivateKey
	mockRPC := &rpctest.MockRPC{}
	exec := solanago.NewExecutor(log, mockRPC)

	sig, err := exec.Send(t.Context(), "test", []solana.Instruction{testInstruction(payer.PublicKey())}, payer.PublicKey(), payer)
	require.NoError(t, err)
	require.Equal(t, rpctest.Signature, sig)

	sent := mockRPC.Sent()
	require.Len(t, sent, 1)
	require.Len(t, sent[0].Signatures, 1)
	require.Equal(t, payer.PublicKey(), sent[0].Message.AccountKeys[0])
	require.Equal(t, rpctest.Blockhash, sent[0].Message.RecentBlockhash)
}

func TestSolana_Executor_NoInstructions(t *testing.T) {
	t.Parallel()

	payer := solana.NewWallet().PrivateKey
	exec := solanago.NewExecutor(log, &rpctest.MockRPC{})

	_, err := exec.Send(t.Context(), "test", nil, payer.PublicKey(), payer)
	var subErr *solanago.SubmissionError
	require.ErrorAs(t, err, &subErr)
	require.ErrorContains(t, err, "no instructions")
}

func TestSolana_Executor_GetLatestBlockhashError(t *testing.T) {
	t.Parallel()

	payer := solana.NewWallet().PrivateKey
	mockRPC := &rpctest.MockRPC{
		GetLatestBlockhashFunc: func(context.Context, solanarpc.CommitmentType) (*solanarpc.GetLatestBlockhashResult, error) {
			return nil, errors.New("rpc unavailable")
		},
	}
	exec := solanago.NewExecutor(log, mockRPC)

	sig, err := exec.Send(t.Context(), "sell", []solana.Instruction{testInstruction(payer.PublicKey())}, payer.PublicKey(), payer)
	require.ErrorContains(t, err, "failed to get latest blockhash")
	var subErr *solanago.SubmissionError
	require.ErrorAs(t, err, &subErr)
	require.Equal(t, "sell", subErr.Op)
	require.Empty(t, sig)
	require.Empty(t, mockRPC.Sent())
}

func TestSolana_Executor_MissingSigner(t *testing.T) {
	t.Parallel()

	payer := solana.NewWallet().PrivateKey
	other := solana.NewWallet().PublicKey()
	mockRPC := &rpctest.MockRPC{}
	exec := solanago.NewExecutor(log, mockRPC)

	_, err := exec.Send(t.Context(), "test", []solana.Instruction{testInstruction(payer.PublicKey(), other)}, payer.PublicKey(), payer)
	require.ErrorContains(t, err, "failed to sign transaction")
	require.Empty(t, mockRPC.Sent())
}

func TestSolana_Executor_SendFails(t *testing.T) {
	t.Parallel()

	payer := solana.NewWallet().PrivateKey
	mockRPC := &rpctest.MockRPC{
		SendTransactionWithOptsFunc: func(context.Context, *solana.Transaction, solanarpc.TransactionOpts) (solana.Signature, error) {
			return solana.Signature{}, errors.New("connection reset")
		},
	}
	exec := solanago.NewExecutor(log, mockRPC)

	_, err := exec.Send(t.Context(), "deposit", []solana.Instruction{testInstruction(payer.PublicKey())}, payer.PublicKey(), payer)
	var subErr *solanago.SubmissionError
	require.ErrorAs(t, err, &subErr)
	require.Equal(t, "deposit", subErr.Op)
	require.ErrorContains(t, err, "connection reset")

	var progErr *solanago.ProgramError
	require.False(t, errors.As(err, &progErr))
}

func TestSolana_Executor_PreflightProgramError(t *testing.T) {
	t.Parallel()

	payer := solana.NewWallet().PrivateKey
	mockRPC := &rpctest.MockRPC{
		SendTransactionWithOptsFunc: func(context.Context, *solana.Transaction, solanarpc.TransactionOpts) (solana.Signature, error) {
			return solana.Signature{}, &jsonrpc.RPCError{
				Code:    -32002,
				Message: "Transaction simulation failed: Error processing Instruction 1: custom program error: 0x1770",
				Data: map[string]any{
					"err": map[string]any{
						"InstructionError": []any{1, map[string]any{"Custom": 6000}},
					},
					"logs": []any{"Program log: AnchorError occurred", "Program failed"},
				},
			}
		},
	}
	exec := solanago.NewExecutor(log, mockRPC)

	_, err := exec.Send(t.Context(), "buy", []solana.Instruction{testInstruction(payer.PublicKey())}, payer.PublicKey(), payer)
	var progErr *solanago.ProgramError
	require.ErrorAs(t, err, &progErr)
	require.Equal(t, 1, progErr.InstructionIndex)
	require.True(t, progErr.HasCode)
	require.Equal(t, uint32(6000), progErr.Code)
	require.Equal(t, []string{"Program log: AnchorError occurred", "Program failed"}, progErr.Logs)
	require.Contains(t, progErr.Error(), "0x1770")
}

func TestSolana_Executor_StatusProgramError(t *testing.T) {
	t.Parallel()

	payer := solana.NewWallet().PrivateKey
	mockRPC := &rpctest.MockRPC{
		GetSignatureStatusesFunc: func(context.Context, bool, ...solana.Signature) (*solanarpc.GetSignatureStatusesResult, error) {
			return &solanarpc.GetSignatureStatusesResult{
				Value: []*solanarpc.SignatureStatusesResult{
					{
						ConfirmationStatus: solanarpc.ConfirmationStatusConfirmed,
						Err: map[string]any{
							"InstructionError": []any{0, map[string]any{"Custom": 1}},
						},
					},
				},
			}, nil
		},
	}
	exec := solanago.NewExecutor(log, mockRPC)

	sig, err := exec.Send(t.Context(), "execute_sale", []solana.Instruction{testInstruction(payer.PublicKey())}, payer.PublicKey(), payer)
	require.Equal(t, rpctest.Signature, sig)
	var progErr *solanago.ProgramError
	require.ErrorAs(t, err, &progErr)
	require.Equal(t, "execute_sale", progErr.Op)
	require.Equal(t, rpctest.Signature, progErr.Signature)
	require.Equal(t, 0, progErr.InstructionIndex)
	require.Equal(t, uint32(1), progErr.Code)
}

func TestSolana_Executor_NonCustomInstructionError(t *testing.T) {
	t.Parallel()

	payer := solana.NewWallet().PrivateKey
	mockRPC := &rpctest.MockRPC{
		GetSignatureStatusesFunc: func(context.Context, bool, ...solana.Signature) (*solanarpc.GetSignatureStatusesResult, error) {
			return &solanarpc.GetSignatureStatusesResult{
				Value: []*solanarpc.SignatureStatusesResult{
					{Err: map[string]any{"InstructionError": []any{2, "MissingRequiredSignature"}}},
				},
			}, nil
		},
	}
	exec := solanago.NewExecutor(log, mockRPC)

	_, err := exec.Send(t.Context(), "test", []solana.Instruction{testInstruction(payer.PublicKey())}, payer.PublicKey(), payer)
	var progErr *solanago.ProgramError
	require.ErrorAs(t, err, &progErr)
	require.Equal(t, 2, progErr.InstructionIndex)
	require.False(t, progErr.HasCode)
	require.Equal(t, "MissingRequiredSignature", progErr.Detail)
}

func TestSolana_Executor_WaitsForCommitment(t *testing.T) {
	t.Parallel()

	payer := solana.NewWallet().PrivateKey
	var calls atomic.Int32
	mockRPC := &rpctest.MockRPC{
		GetSignatureStatusesFunc: func(context.Context, bool, ...solana.Signature) (*solanarpc.GetSignatureStatusesResult, error) {
			status := solanarpc.ConfirmationStatusProcessed
			if calls.Add(1) >= 3 {
				status = solanarpc.ConfirmationStatusConfirmed
			}
			return &solanarpc.GetSignatureStatusesResult{
				Value: []*solanarpc.SignatureStatusesResult{{ConfirmationStatus: status}},
			}, nil
		},
	}
	exec := solanago.NewExecutor(log, mockRPC, solanago.WithPollInterval(time.Millisecond))

	_, err := exec.Send(t.Context(), "test", []solana.Instruction{testInstruction(payer.PublicKey())}, payer.PublicKey(), payer)
	require.NoError(t, err)
	require.Equal(t, int32(3), calls.Load())
}

func TestSolana_Executor_ConfirmationTimeout(t *testing.T) {
	t.Parallel()

	payer := solana.NewWallet().PrivateKey
	mockRPC := &rpctest.MockRPC{
		GetSignatureStatusesFunc: func(context.Context, bool, ...solana.Signature) (*solanarpc.GetSignatureStatusesResult, error) {
			return &solanarpc.GetSignatureStatusesResult{
				Value: []*solanarpc.SignatureStatusesResult{nil},
			}, nil
		},
	}
	fc := clockwork.NewFakeClock()
	exec := solanago.NewExecutor(log, mockRPC,
		solanago.WithClock(fc),
		solanago.WithPollInterval(time.Minute),
		solanago.WithConfirmationTimeout(30*time.Second),
	)

	errCh := make(chan error, 1)
	go func() {
		_, err := exec.Send(t.Context(), "sell", []solana.Instruction{testInstruction(payer.PublicKey())}, payer.PublicKey(), payer)
		errCh <- err
	}()

	ctx, cancel := context.WithTimeout(t.Context(), 5*time.Second)
	defer cancel()
	require.NoError(t, fc.BlockUntilContext(ctx, 2))
	fc.Advance(30 * time.Second)

	select {
	case err := <-errCh:
		require.ErrorIs(t, err, solanago.ErrConfirmationTimeout)
	case <-ctx.Done():
		t.Fatal("send did not return after the confirmation timeout")
	}
}

func TestSolana_Executor_ContextDeadline(t *testing.T) {
	t.Parallel()

	payer := solana.NewWallet().PrivateKey
	mockRPC := &rpctest.MockRPC{
		GetSignatureStatusesFunc: func(context.Context, bool, ...solana.Signature) (*solanarpc.GetSignatureStatusesResult, error) {
			return &solanarpc.GetSignatureStatusesResult{}, nil
		},
	}
	exec := solanago.NewExecutor(log, mockRPC, solanago.WithPollInterval(time.Millisecond))

	ctx, cancel := context.WithTimeout(t.Context(), 20*time.Millisecond)
	defer cancel()
	sig, err := exec.Send(ctx, "test", []solana.Instruction{testInstruction(payer.PublicKey())}, payer.PublicKey(), payer)
	require.Equal(t, rpctest.Signature, sig)
	require.ErrorIs(t, err, solanago.ErrConfirmationTimeout)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSolana_Executor_PartialSign(t *testing.T) {
	t.Parallel()

	platform := solana.NewWallet().PrivateKey
	user := solana.NewWallet().PrivateKey
	exec := solanago.NewExecutor(log, &rpctest.MockRPC{})

	encoded, err := exec.PartialSign(t.Context(), []solana.Instruction{testInstruction(platform.PublicKey(), user.PublicKey())}, platform.PublicKey(), platform)
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(encoded)
	require.NoError(t, err)
	tx, err := solana.TransactionFromDecoder(bin.NewBinDecoder(raw))
	require.NoError(t, err)

	require.Len(t, tx.Signatures, 2)
	require.Equal(t, platform.PublicKey(), tx.Message.AccountKeys[0])
	require.Equal(t, user.PublicKey(), tx.Message.AccountKeys[1])
	require.Equal(t, solana.Signature{}, tx.Signatures[1])

	msg, err := tx.Message.MarshalBinary()
	require.NoError(t, err)
	require.True(t, tx.Signatures[0].Verify(platform.PublicKey(), msg))
}

func TestSolana_Executor_Airdrop(t *testing.T) {
	t.Parallel()

	addr := solana.NewWallet().PublicKey()
	var got uint64
	mockRPC := &rpctest.MockRPC{
		RequestAirdropFunc: func(_ context.Context, account solana.PublicKey, lamports uint64, _ solanarpc.CommitmentType) (solana.Signature, error) {
			require.Equal(t, addr, account)
			got = lamports
			return rpctest.Signature, nil
		},
	}
	exec := solanago.NewExecutor(log, mockRPC)

	sig, err := exec.Airdrop(t.Context(), addr, solana.LAMPORTS_PER_SOL)
	require.NoError(t, err)
	require.Equal(t, rpctest.Signature, sig)
	require.Equal(t, solana.LAMPORTS_PER_SOL, got)
}
