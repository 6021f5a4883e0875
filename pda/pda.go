// Package pda derives program addresses for the auction house and promo
// programs. Every function here is pure: the same seeds and program id
// always give the same address and bump, and nothing is cached.
package pda

import (
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

const (
	maxSeeds      = 16
	maxSeedLength = 32
)

var (
	ErrDerivationExhausted = errors.New("no viable bump seed found")
	ErrInvalidSeeds        = errors.New("invalid seeds")
)

type createFunc func(seeds [][]byte, programID solana.PublicKey) (solana.PublicKey, error)

// Derive searches bumps from 255 down to 0 and returns the first address
// that lands off the ed25519 curve.
func Derive(programID solana.PublicKey, seeds ...[]byte) (solana.PublicKey, uint8, error) {
	return derive(solana.CreateProgramAddress, programID, seeds)
}

func derive(create createFunc, programID solana.PublicKey, seeds [][]byte) (solana.PublicKey, uint8, error) {
	if len(seeds) >= maxSeeds {
		return solana.PublicKey{}, 0, fmt.Errorf("%w: %d seeds, max %d", ErrInvalidSeeds, len(seeds), maxSeeds-1)
	}
	for i, s := range seeds {
		if len(s) > maxSeedLength {
			return solana.PublicKey{}, 0, fmt.Errorf("%w: seed %d is %d bytes, max %d", ErrInvalidSeeds, i, len(s), maxSeedLength)
		}
	}

	withBump := make([][]byte, len(seeds)+1)
	copy(withBump, seeds)
	for bump := 255; bump >= 0; bump-- {
		withBump[len(seeds)] = []byte{byte(bump)}
		addr, err := create(withBump, programID)
		if err == nil {
			return addr, uint8(bump), nil
		}
	}
	return solana.PublicKey{}, 0, fmt.Errorf("%w: program %s", ErrDerivationExhausted, programID)
}
