package solana

import (
	"bytes"
	"fmt"

	binary "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// Option is a borsh Option<T>: a one byte tag followed by the value when
// present.
type Option[T any] struct {
	Value T
	Valid bool
}

func Some[T any](v T) Option[T] {
	return Option[T]{Value: v, Valid: true}
}

func None[T any]() Option[T] {
	return Option[T]{}
}

// OptionFromPtr maps nil to None.
func OptionFromPtr[T any](v *T) Option[T] {
	if v == nil {
		return Option[T]{}
	}
	return Some(*v)
}

// Ptr returns nil for None.
func (o Option[T]) Ptr() *T {
	if !o.Valid {
		return nil
	}
	v := o.Value
	return &v
}

func (o Option[T]) MarshalWithEncoder(enc *binary.Encoder) error {
	if err := enc.WriteBool(o.Valid); err != nil {
		return err
	}
	if !o.Valid {
		return nil
	}
	return enc.Encode(o.Value)
}

func (o *Option[T]) UnmarshalWithDecoder(dec *binary.Decoder) error {
	valid, err := dec.ReadBool()
	if err != nil {
		return err
	}
	o.Valid = valid
	if !valid {
		var zero T
		o.Value = zero
		return nil
	}
	return dec.Decode(&o.Value)
}

// NewAnchorInstruction encodes the discriminator of the instruction name
// followed by args and binds the data to accounts in the order given.
func NewAnchorInstruction(programID solana.PublicKey, name string, accounts solana.AccountMetaSlice, args ...any) (solana.Instruction, error) {
	buf := new(bytes.Buffer)
	enc := binary.NewBorshEncoder(buf)
	if err := enc.WriteBytes(InstructionDiscriminator(name), false); err != nil {
		return nil, err
	}
	for i, arg := range args {
		var err error
		if m, ok := arg.(binary.BinaryMarshaler); ok {
			err = m.MarshalWithEncoder(enc)
		} else {
			err = enc.Encode(arg)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s arg %d: %w", name, i, err)
		}
	}
	return solana.NewInstruction(programID, accounts, buf.Bytes()), nil
}
