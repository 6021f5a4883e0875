package solana

import (
	"bytes"
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"reflect"

	binary "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidAccountData = errors.New("invalid account data")
)

// Filter narrows a program account query to accounts whose field at Offset
// equals Owner.
type Filter struct {
	Owner  solana.PublicKey
	Offset uint64
}

func sighash(namespace, name string) []byte {
	hash := sha256.Sum256([]byte(namespace + ":" + name))
	var out [8]byte
	copy(out[:], hash[:8])
	return out[:]
}

// AccountDiscriminator is the 8-byte anchor prefix of an account named name.
func AccountDiscriminator(name string) []byte {
	return sighash("account", name)
}

// InstructionDiscriminator is the 8-byte anchor prefix of the instruction
// with the given snake_case name.
func InstructionDiscriminator(name string) []byte {
	return sighash("global", name)
}

// CheckDiscriminator verifies that data starts with the discriminator of
// account name.
func CheckDiscriminator(data []byte, name string) error {
	if len(data) < 8 {
		return fmt.Errorf("%w: %s needs at least 8 bytes, got %d", ErrInvalidAccountData, name, len(data))
	}
	if !bytes.Equal(data[:8], AccountDiscriminator(name)) {
		return fmt.Errorf("%w: discriminator mismatch for %s", ErrInvalidAccountData, name)
	}
	return nil
}

func GetLatestBlockhash(ctx context.Context, rpcClient RPCClient, commitment rpc.CommitmentType) (solana.Hash, error) {
	recent, err := rpcClient.GetLatestBlockhash(ctx, commitment)
	if err != nil {
		return solana.Hash{}, err
	}
	if recent == nil || recent.Value == nil {
		return solana.Hash{}, errors.New("empty blockhash response")
	}
	return recent.Value.Blockhash, nil
}

// GetAccountInfo fetches an account and returns ErrAccountNotFound when it
// does not exist.
func GetAccountInfo(ctx context.Context, rpcClient RPCClient, account solana.PublicKey, commitment rpc.CommitmentType) (*rpc.Account, error) {
	acc, err := rpcClient.GetAccountInfoWithOpts(ctx, account, &rpc.GetAccountInfoOpts{
		Commitment: commitment,
		Encoding:   solana.EncodingBase64,
	})
	if errors.Is(err, rpc.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, account)
	}
	if err != nil {
		return nil, err
	}
	if acc == nil || acc.Value == nil {
		return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, account)
	}
	return acc.Value, nil
}

// GetMultipleAccountInfo returns one entry per requested account, nil for
// accounts that do not exist.
func GetMultipleAccountInfo(ctx context.Context, rpcClient RPCClient, accounts []solana.PublicKey, commitment rpc.CommitmentType) ([]*rpc.Account, error) {
	out, err := rpcClient.GetMultipleAccountsWithOpts(ctx, accounts, &rpc.GetMultipleAccountsOpts{
		Commitment: commitment,
		Encoding:   solana.EncodingBase64,
	})
	if err != nil {
		return nil, err
	}
	if out == nil || len(out.Value) != len(accounts) {
		return nil, fmt.Errorf("expected %d accounts in response", len(accounts))
	}
	return out.Value, nil
}

// CreateProgramAccountFilter matches accounts of type key, optionally
// narrowed by filter.
func CreateProgramAccountFilter(key string, filter *Filter) []rpc.RPCFilter {
	filters := []rpc.RPCFilter{
		{
			Memcmp: &rpc.RPCFilterMemcmp{
				Offset: 0,
				Bytes:  AccountDiscriminator(key),
			},
		},
	}

	if filter != nil {
		filters = append(filters, rpc.RPCFilter{
			Memcmp: &rpc.RPCFilterMemcmp{
				Offset: filter.Offset,
				Bytes:  filter.Owner[:],
			},
		})
	}

	return filters
}

// ComputeStructOffset gets the byte offset of field o inside an anchor
// account whose layout is the struct pointed to by x. Only the fields
// before o are encoded, so they must have a fixed size.
func ComputeStructOffset(x any, o string) uint64 {
	t := reflect.TypeOf(x).Elem()
	fields := make([]reflect.StructField, 0)

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Name == o {
			break
		}
		fields = append(fields, f)
	}

	newValue := reflect.New(reflect.StructOf(fields)).Elem()

	buf := new(bytes.Buffer)
	enc := binary.NewBorshEncoder(buf)
	_ = enc.Encode(newValue.Interface())

	// account discriminator
	return uint64(buf.Len()) + 8
}
