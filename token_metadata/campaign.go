package token_metadata

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	solanago "github.com/krazyTry/bokoup-go/solana"
)

// BuildCreateCampaign returns create_campaign followed by one
// create_campaign_location per entry of params.Locations.
func (c *Client) BuildCreateCampaign(payer solana.PublicKey, params CreateCampaignParams) ([]solana.Instruction, *CreateCampaignResult, error) {
	if err := validateNameURI("campaign", params.Name, params.URI); err != nil {
		return nil, nil, err
	}
	owner := orPayer(params.Owner, payer)

	var d derivation
	merchant := d.addr(c.pda.Merchant(owner))
	campaign := d.addr(c.pda.Campaign(merchant, params.Name))
	campaignLocations := make([]solana.PublicKey, 0, len(params.Locations))
	for _, location := range params.Locations {
		campaignLocations = append(campaignLocations, d.addr(c.pda.CampaignLocation(campaign, location)))
	}
	if d.err != nil {
		return nil, nil, fmt.Errorf("create campaign %q: %w", params.Name, d.err)
	}

	programs := c.pda.Programs()
	ix, err := NewCreateCampaignInstruction(programs, Campaign{
		Merchant: merchant,
		Name:     params.Name,
		URI:      params.URI,
		Active:   params.Active,
	}, params.Lamports, MemoFromPtr(params.Memo), CreateCampaignAccounts{
		Payer:    payer,
		Owner:    owner,
		Merchant: merchant,
		Campaign: campaign,
	})
	if err != nil {
		return nil, nil, err
	}

	ixs := []solana.Instruction{ix}
	for i, location := range params.Locations {
		linkIx, err := NewCreateCampaignLocationInstruction(programs, solanago.None[string](), CreateCampaignLocationAccounts{
			Payer:            payer,
			Owner:            owner,
			Merchant:         merchant,
			Campaign:         campaign,
			CampaignLocation: campaignLocations[i],
			Location:         location,
		})
		if err != nil {
			return nil, nil, err
		}
		ixs = append(ixs, linkIx)
	}

	return ixs, &CreateCampaignResult{
		Merchant:          merchant,
		Campaign:          campaign,
		CampaignLocations: campaignLocations,
	}, nil
}

func (c *Client) CreateCampaign(ctx context.Context, payer solana.PrivateKey, params CreateCampaignParams, cosigners ...solana.PrivateKey) (*CreateCampaignResult, error) {
	ixs, res, err := c.BuildCreateCampaign(payer.PublicKey(), params)
	if err != nil {
		return nil, err
	}
	sig, err := c.send(ctx, instructionCreateCampaign, ixs, payer, cosigners)
	if err != nil {
		return nil, fmt.Errorf("create campaign %s for merchant %s: %w", res.Campaign, res.Merchant, err)
	}
	res.Signature = sig
	c.log.Info("--> Campaign created", "campaign", res.Campaign, "locations", len(res.CampaignLocations), "sig", sig)
	return res, nil
}

func (c *Client) BuildCreateCampaignLocation(payer solana.PublicKey, params CreateCampaignLocationParams) ([]solana.Instruction, *CreateCampaignLocationResult, error) {
	owner := orPayer(params.Owner, payer)

	var d derivation
	merchant := d.addr(c.pda.Merchant(owner))
	campaignLocation := d.addr(c.pda.CampaignLocation(params.Campaign, params.Location))
	if d.err != nil {
		return nil, nil, fmt.Errorf("link campaign %s to %s: %w", params.Campaign, params.Location, d.err)
	}

	ix, err := NewCreateCampaignLocationInstruction(c.pda.Programs(), MemoFromPtr(params.Memo), CreateCampaignLocationAccounts{
		Payer:            payer,
		Owner:            owner,
		Merchant:         merchant,
		Campaign:         params.Campaign,
		CampaignLocation: campaignLocation,
		Location:         params.Location,
	})
	if err != nil {
		return nil, nil, err
	}
	return []solana.Instruction{ix}, &CreateCampaignLocationResult{CampaignLocation: campaignLocation}, nil
}

// CreateCampaignLocation links an existing campaign to a location.
func (c *Client) CreateCampaignLocation(ctx context.Context, payer solana.PrivateKey, params CreateCampaignLocationParams, cosigners ...solana.PrivateKey) (*CreateCampaignLocationResult, error) {
	ixs, res, err := c.BuildCreateCampaignLocation(payer.PublicKey(), params)
	if err != nil {
		return nil, err
	}
	sig, err := c.send(ctx, instructionCreateCampaignLocation, ixs, payer, cosigners)
	if err != nil {
		return nil, fmt.Errorf("link campaign %s to %s: %w", params.Campaign, params.Location, err)
	}
	res.Signature = sig
	c.log.Info("--> Campaign location created", "campaignLocation", res.CampaignLocation, "sig", sig)
	return res, nil
}
