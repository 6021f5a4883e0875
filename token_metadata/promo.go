package token_metadata

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	solanago "github.com/krazyTry/bokoup-go/solana"
)

// BuildCreatePromo generates the promo mint and returns the create_promo
// instruction. The platform account is read from the admin settings.
func (c *Client) BuildCreatePromo(ctx context.Context, payer solana.PublicKey, params CreatePromoParams) ([]solana.Instruction, *CreatePromoResult, error) {
	if err := params.Metadata.Validate(); err != nil {
		return nil, nil, fmt.Errorf("create promo for campaign %s: %w", params.Campaign, err)
	}
	platform, err := c.FetchPlatformAddress(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("create promo for campaign %s: %w", params.Campaign, err)
	}
	mintKey, err := solana.NewRandomPrivateKey()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate mint key: %w", err)
	}
	return c.buildCreatePromo(payer, platform, mintKey, params)
}

func (c *Client) buildCreatePromo(payer, platform solana.PublicKey, mintKey solana.PrivateKey, params CreatePromoParams) ([]solana.Instruction, *CreatePromoResult, error) {
	owner := orPayer(params.Owner, payer)
	mint := mintKey.PublicKey()

	var d derivation
	merchant := d.addr(c.pda.Merchant(owner))
	metadata := d.addr(c.pda.Metadata(mint))
	authority := d.addr(c.pda.Authority())
	promo := d.addr(c.pda.Promo(mint))
	adminSettings := d.addr(c.pda.AdminSettings())
	if d.err != nil {
		return nil, nil, fmt.Errorf("create promo for campaign %s: %w", params.Campaign, d.err)
	}

	ix, err := NewCreatePromoInstruction(c.pda.Programs(), CreatePromoArgs{
		Promo: Promo{
			Campaign: params.Campaign,
			Mint:     mint,
			Metadata: metadata,
			MaxMint:  solanago.OptionFromPtr(params.MaxMint),
			MaxBurn:  solanago.OptionFromPtr(params.MaxBurn),
			Active:   params.Active,
		},
		Metadata:  params.Metadata,
		IsMutable: params.IsMutable,
		Memo:      MemoFromPtr(params.Memo),
	}, CreatePromoAccounts{
		Payer:         payer,
		Owner:         owner,
		Merchant:      merchant,
		Campaign:      params.Campaign,
		Mint:          mint,
		Metadata:      metadata,
		Authority:     authority,
		Promo:         promo,
		Platform:      platform,
		AdminSettings: adminSettings,
	})
	if err != nil {
		return nil, nil, err
	}

	return []solana.Instruction{ix}, &CreatePromoResult{
		MintKey:  mintKey,
		Mint:     mint,
		Promo:    promo,
		Metadata: metadata,
	}, nil
}

// CreatePromo creates a promo token mint for params.Campaign with its
// metadata. The generated mint key co-signs.
func (c *Client) CreatePromo(ctx context.Context, payer solana.PrivateKey, params CreatePromoParams, cosigners ...solana.PrivateKey) (*CreatePromoResult, error) {
	ixs, res, err := c.BuildCreatePromo(ctx, payer.PublicKey(), params)
	if err != nil {
		return nil, err
	}
	sig, err := c.send(ctx, instructionCreatePromo, ixs, payer, append([]solana.PrivateKey{res.MintKey}, cosigners...))
	if err != nil {
		return nil, fmt.Errorf("create promo %s (mint %s): %w", res.Promo, res.Mint, err)
	}
	res.Signature = sig
	c.log.Info("--> Promo created", "promo", res.Promo, "mint", res.Mint, "name", params.Metadata.Name, "sig", sig)
	return res, nil
}

// promoTokenAccounts resolves the addresses shared by the promo token
// instructions. A zero campaign is read from the promo account.
type promoTokenAccounts struct {
	deviceOwner      solana.PublicKey
	tokenOwner       solana.PublicKey
	campaign         solana.PublicKey
	campaignLocation solana.PublicKey
	promo            solana.PublicKey
	authority        solana.PublicKey
	tokenAccount     solana.PublicKey
}

func (c *Client) resolvePromoToken(ctx context.Context, op string, payer solana.PublicKey, params PromoTokenParams) (*promoTokenAccounts, error) {
	out := &promoTokenAccounts{
		deviceOwner: orPayer(params.DeviceOwner, payer),
		tokenOwner:  orPayer(params.TokenOwner, payer),
		campaign:    params.Campaign,
	}

	var d derivation
	out.promo = d.addr(c.pda.Promo(params.Mint))
	out.authority = d.addr(c.pda.Authority())
	if params.TokenAccount != nil {
		out.tokenAccount = *params.TokenAccount
	} else {
		out.tokenAccount = d.addr(c.pda.AssociatedToken(out.tokenOwner, params.Mint))
	}
	if d.err != nil {
		return nil, fmt.Errorf("%s %s: %w", op, params.Mint, d.err)
	}

	if out.campaign.IsZero() {
		promo, err := c.GetPromo(ctx, out.promo)
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", op, params.Mint, err)
		}
		out.campaign = promo.Campaign
	}
	campaignLocation, _, err := c.pda.CampaignLocation(out.campaign, params.Location)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", op, params.Mint, err)
	}
	out.campaignLocation = campaignLocation
	return out, nil
}

func (r *promoTokenAccounts) result() *PromoTokenResult {
	return &PromoTokenResult{
		Promo:            r.promo,
		TokenAccount:     r.tokenAccount,
		CampaignLocation: r.campaignLocation,
	}
}

// BuildMintPromoToken returns mint_promo_token for one token of
// params.Mint to params.TokenOwner, authorized by the device.
func (c *Client) BuildMintPromoToken(ctx context.Context, payer solana.PublicKey, params PromoTokenParams) ([]solana.Instruction, *PromoTokenResult, error) {
	r, err := c.resolvePromoToken(ctx, instructionMintPromoToken, payer, params)
	if err != nil {
		return nil, nil, err
	}
	ix, err := NewMintPromoTokenInstruction(c.pda.Programs(), MemoFromPtr(params.Memo), MintPromoTokenAccounts{
		Payer:            payer,
		DeviceOwner:      r.deviceOwner,
		Device:           params.Device,
		Campaign:         r.campaign,
		CampaignLocation: r.campaignLocation,
		TokenOwner:       r.tokenOwner,
		Mint:             params.Mint,
		Authority:        r.authority,
		Promo:            r.promo,
		TokenAccount:     r.tokenAccount,
	})
	if err != nil {
		return nil, nil, err
	}
	return []solana.Instruction{ix}, r.result(), nil
}

func (c *Client) MintPromoToken(ctx context.Context, payer solana.PrivateKey, params PromoTokenParams, cosigners ...solana.PrivateKey) (*PromoTokenResult, error) {
	ixs, res, err := c.BuildMintPromoToken(ctx, payer.PublicKey(), params)
	if err != nil {
		return nil, err
	}
	sig, err := c.send(ctx, instructionMintPromoToken, ixs, payer, cosigners)
	if err != nil {
		return nil, fmt.Errorf("mint promo token %s to %s: %w", params.Mint, res.TokenAccount, err)
	}
	res.Signature = sig
	c.log.Info("--> Promo token minted", "mint", params.Mint, "tokenAccount", res.TokenAccount, "sig", sig)
	return res, nil
}

// BuildDelegatePromoToken returns delegate_promo_token, which approves
// the device owner to burn one token held by params.TokenOwner.
func (c *Client) BuildDelegatePromoToken(ctx context.Context, payer solana.PublicKey, params PromoTokenParams) ([]solana.Instruction, *PromoTokenResult, error) {
	r, err := c.resolvePromoToken(ctx, instructionDelegatePromoToken, payer, params)
	if err != nil {
		return nil, nil, err
	}
	ix, err := NewDelegatePromoTokenInstruction(c.pda.Programs(), MemoFromPtr(params.Memo), DelegatePromoTokenAccounts{
		Payer:            payer,
		DeviceOwner:      r.deviceOwner,
		Device:           params.Device,
		Campaign:         r.campaign,
		CampaignLocation: r.campaignLocation,
		TokenOwner:       r.tokenOwner,
		Mint:             params.Mint,
		Promo:            r.promo,
		TokenAccount:     r.tokenAccount,
	})
	if err != nil {
		return nil, nil, err
	}
	return []solana.Instruction{ix}, r.result(), nil
}

func (c *Client) DelegatePromoToken(ctx context.Context, payer solana.PrivateKey, params PromoTokenParams, cosigners ...solana.PrivateKey) (*PromoTokenResult, error) {
	ixs, res, err := c.BuildDelegatePromoToken(ctx, payer.PublicKey(), params)
	if err != nil {
		return nil, err
	}
	sig, err := c.send(ctx, instructionDelegatePromoToken, ixs, payer, cosigners)
	if err != nil {
		return nil, fmt.Errorf("delegate promo token %s in %s: %w", params.Mint, res.TokenAccount, err)
	}
	res.Signature = sig
	c.log.Info("--> Promo token delegated", "mint", params.Mint, "tokenAccount", res.TokenAccount, "sig", sig)
	return res, nil
}

// BuildBurnDelegatedPromoToken returns burn_delegated_promo_token. The
// token owner does not sign; the device owner burns under the delegation.
func (c *Client) BuildBurnDelegatedPromoToken(ctx context.Context, payer solana.PublicKey, params PromoTokenParams) ([]solana.Instruction, *PromoTokenResult, error) {
	r, err := c.resolvePromoToken(ctx, instructionBurnDelegatedPromoToken, payer, params)
	if err != nil {
		return nil, nil, err
	}
	platform, err := c.FetchPlatformAddress(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("burn promo token %s: %w", params.Mint, err)
	}
	adminSettings, _, err := c.pda.AdminSettings()
	if err != nil {
		return nil, nil, fmt.Errorf("burn promo token %s: %w", params.Mint, err)
	}
	ix, err := NewBurnDelegatedPromoTokenInstruction(c.pda.Programs(), MemoFromPtr(params.Memo), BurnDelegatedPromoTokenAccounts{
		Payer:            payer,
		DeviceOwner:      r.deviceOwner,
		Device:           params.Device,
		Campaign:         r.campaign,
		CampaignLocation: r.campaignLocation,
		Mint:             params.Mint,
		Authority:        r.authority,
		Promo:            r.promo,
		Platform:         platform,
		AdminSettings:    adminSettings,
		TokenAccount:     r.tokenAccount,
	})
	if err != nil {
		return nil, nil, err
	}
	return []solana.Instruction{ix}, r.result(), nil
}

func (c *Client) BurnDelegatedPromoToken(ctx context.Context, payer solana.PrivateKey, params PromoTokenParams, cosigners ...solana.PrivateKey) (*PromoTokenResult, error) {
	ixs, res, err := c.BuildBurnDelegatedPromoToken(ctx, payer.PublicKey(), params)
	if err != nil {
		return nil, err
	}
	sig, err := c.send(ctx, instructionBurnDelegatedPromoToken, ixs, payer, cosigners)
	if err != nil {
		return nil, fmt.Errorf("burn promo token %s from %s: %w", params.Mint, res.TokenAccount, err)
	}
	res.Signature = sig
	c.log.Info("--> Promo token burned", "mint", params.Mint, "tokenAccount", res.TokenAccount, "sig", sig)
	return res, nil
}
