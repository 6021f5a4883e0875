package token_metadata

import (
	"context"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
	solanago "github.com/krazyTry/bokoup-go/solana"
)

// GetPromoExtended reads the promo of mint with its mint and metadata
// accounts in one request, then fetches the off-chain JSON the metadata
// points at.
func (c *Client) GetPromoExtended(ctx context.Context, mint solana.PublicKey) (*PromoExtended, error) {
	var d derivation
	promoAddress := d.addr(c.pda.Promo(mint))
	metadataAddress := d.addr(c.pda.Metadata(mint))
	if d.err != nil {
		return nil, fmt.Errorf("promo %s: %w", mint, d.err)
	}

	accs, err := solanago.GetMultipleAccountInfo(ctx, c.rpc, []solana.PublicKey{promoAddress, mint, metadataAddress}, c.commitment)
	if err != nil {
		return nil, fmt.Errorf("promo %s: %w", mint, err)
	}
	for i, address := range []solana.PublicKey{promoAddress, mint, metadataAddress} {
		if accs[i] == nil {
			return nil, fmt.Errorf("promo %s: %w: %s", mint, solanago.ErrAccountNotFound, address)
		}
	}
	if err := checkOwner(accs[0], promoAddress, c.pda.Programs().Promo); err != nil {
		return nil, err
	}

	promo, err := ParsePromo(accs[0].Data.GetBinary())
	if err != nil {
		return nil, fmt.Errorf("promo %s: %w", promoAddress, err)
	}
	mintAccount, err := solanago.DecodeMint(mint, accs[1].Data.GetBinary())
	if err != nil {
		return nil, err
	}
	metadata, err := solanago.DecodeMetadata(metadataAddress, accs[2].Data.GetBinary())
	if err != nil {
		return nil, err
	}

	out := &PromoExtended{
		Address:  promoAddress,
		Promo:    promo,
		Mint:     mintAccount,
		Metadata: metadata,
	}
	if metadata.URI != "" {
		doc, err := c.fetcher.Fetch(ctx, metadata.URI)
		if err != nil {
			return nil, fmt.Errorf("promo %s: %w", mint, err)
		}
		out.MetadataJSON = doc
	}
	return out, nil
}

// UpdatePromoExtended rereads the promo and mint accounts of ext. The
// metadata of ext is kept as is.
func (c *Client) UpdatePromoExtended(ctx context.Context, ext *PromoExtended) (*PromoExtended, error) {
	if ext == nil || ext.Promo == nil {
		return nil, errors.New("promo extended has no promo account")
	}
	mint := ext.Promo.Mint
	accs, err := solanago.GetMultipleAccountInfo(ctx, c.rpc, []solana.PublicKey{ext.Address, mint}, c.commitment)
	if err != nil {
		return nil, fmt.Errorf("promo %s: %w", mint, err)
	}
	if accs[0] == nil {
		return nil, fmt.Errorf("promo %s: %w: %s", mint, solanago.ErrAccountNotFound, ext.Address)
	}
	if accs[1] == nil {
		return nil, fmt.Errorf("promo %s: %w: %s", mint, solanago.ErrAccountNotFound, mint)
	}
	if err := checkOwner(accs[0], ext.Address, c.pda.Programs().Promo); err != nil {
		return nil, err
	}

	promo, err := ParsePromo(accs[0].Data.GetBinary())
	if err != nil {
		return nil, fmt.Errorf("promo %s: %w", ext.Address, err)
	}
	mintAccount, err := solanago.DecodeMint(mint, accs[1].Data.GetBinary())
	if err != nil {
		return nil, err
	}
	return &PromoExtended{
		Address:      ext.Address,
		Promo:        promo,
		Mint:         mintAccount,
		Metadata:     ext.Metadata,
		MetadataJSON: ext.MetadataJSON,
	}, nil
}

// GetPromoExtendeds runs GetPromoExtended for every mint on the client's
// worker pool. The result is keyed by mint address.
func (c *Client) GetPromoExtendeds(ctx context.Context, mints []solana.PublicKey) (map[string]*PromoExtended, error) {
	group := c.extendedPool.NewGroupContext(ctx)
	for _, mint := range mints {
		group.SubmitErr(func() (*PromoExtended, error) {
			return c.GetPromoExtended(ctx, mint)
		})
	}
	results, err := group.Wait()
	if err != nil {
		return nil, fmt.Errorf("failed to get promos: %w", err)
	}

	out := make(map[string]*PromoExtended, len(results))
	for i, result := range results {
		out[mints[i].String()] = result
	}
	return out, nil
}

// UpdatePromoExtendeds runs UpdatePromoExtended for every entry of exts.
func (c *Client) UpdatePromoExtendeds(ctx context.Context, exts map[string]*PromoExtended) (map[string]*PromoExtended, error) {
	keys := make([]string, 0, len(exts))
	group := c.extendedPool.NewGroupContext(ctx)
	for key, ext := range exts {
		keys = append(keys, key)
		group.SubmitErr(func() (*PromoExtended, error) {
			return c.UpdatePromoExtended(ctx, ext)
		})
	}
	results, err := group.Wait()
	if err != nil {
		return nil, fmt.Errorf("failed to update promos: %w", err)
	}

	out := make(map[string]*PromoExtended, len(results))
	for i, result := range results {
		out[keys[i]] = result
	}
	return out, nil
}
