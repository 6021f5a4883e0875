package token_metadata

import (
	"context"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
	solanago "github.com/krazyTry/bokoup-go/solana"
)

var ErrEmptyMemo = errors.New("memo must not be empty")

// BuildSignMemo returns sign_memo, which records memo signed by signer in
// a transaction indexed under the promo program.
func (c *Client) BuildSignMemo(payer, signer solana.PublicKey, memo string) ([]solana.Instruction, error) {
	if memo == "" {
		return nil, ErrEmptyMemo
	}
	ix, err := NewSignMemoInstruction(c.pda.Programs(), memo, SignMemoAccounts{
		Payer:  payer,
		Signer: orPayer(signer, payer),
	})
	if err != nil {
		return nil, err
	}
	return []solana.Instruction{ix}, nil
}

// SignMemo signs memo with signer, or with the payer when signer is nil.
func (c *Client) SignMemo(ctx context.Context, payer, signer solana.PrivateKey, memo string) (solana.Signature, error) {
	var cosigners []solana.PrivateKey
	signerKey := payer.PublicKey()
	if len(signer) > 0 {
		signerKey = signer.PublicKey()
		cosigners = append(cosigners, signer)
	}
	ixs, err := c.BuildSignMemo(payer.PublicKey(), signerKey, memo)
	if err != nil {
		return solana.Signature{}, err
	}
	sig, err := c.send(ctx, instructionSignMemo, ixs, payer, cosigners)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("sign memo by %s: %w", signerKey, err)
	}
	c.log.Info("--> Memo signed", "signer", signerKey, "sig", sig)
	return sig, nil
}

// BuildCreateNonFungible generates a mint and returns create_non_fungible,
// which mints one token to the payer and creates its metadata and master
// edition.
func (c *Client) BuildCreateNonFungible(payer solana.PublicKey, params CreateNonFungibleParams) ([]solana.Instruction, *CreateNonFungibleResult, error) {
	if err := params.Metadata.Validate(); err != nil {
		return nil, nil, fmt.Errorf("create non-fungible: %w", err)
	}
	mintKey, err := solana.NewRandomPrivateKey()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate mint key: %w", err)
	}
	mint := mintKey.PublicKey()

	var d derivation
	authority := d.addr(c.pda.Authority())
	tokenAccount := d.addr(c.pda.AssociatedToken(payer, mint))
	metadata := d.addr(c.pda.Metadata(mint))
	edition := d.addr(c.pda.MasterEdition(mint))
	if d.err != nil {
		return nil, nil, fmt.Errorf("create non-fungible %s: %w", mint, d.err)
	}

	ix, err := NewCreateNonFungibleInstruction(c.pda.Programs(), CreateNonFungibleArgs{
		Metadata:  params.Metadata,
		IsMutable: params.IsMutable,
		MaxSupply: solanago.OptionFromPtr(params.MaxSupply),
	}, CreateNonFungibleAccounts{
		Payer:           payer,
		Authority:       authority,
		Mint:            mint,
		TokenAccount:    tokenAccount,
		MetadataAccount: metadata,
		EditionAccount:  edition,
	})
	if err != nil {
		return nil, nil, err
	}
	return []solana.Instruction{ix}, &CreateNonFungibleResult{
		MintKey:      mintKey,
		Mint:         mint,
		TokenAccount: tokenAccount,
		Metadata:     metadata,
		Edition:      edition,
	}, nil
}

func (c *Client) CreateNonFungible(ctx context.Context, payer solana.PrivateKey, params CreateNonFungibleParams) (*CreateNonFungibleResult, error) {
	ixs, res, err := c.BuildCreateNonFungible(payer.PublicKey(), params)
	if err != nil {
		return nil, err
	}
	sig, err := c.send(ctx, instructionCreateNonFungible, ixs, payer, []solana.PrivateKey{res.MintKey})
	if err != nil {
		return nil, fmt.Errorf("create non-fungible %s: %w", res.Mint, err)
	}
	res.Signature = sig
	c.log.Info("--> Non-fungible created", "mint", res.Mint, "edition", res.Edition, "sig", sig)
	return res, nil
}
