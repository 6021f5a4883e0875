package token_metadata

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

func (c *Client) send(ctx context.Context, op string, ixs []solana.Instruction, payer solana.PrivateKey, cosigners []solana.PrivateKey) (solana.Signature, error) {
	signers := append([]solana.PrivateKey{payer}, cosigners...)
	return c.exec.Send(ctx, op, ixs, payer.PublicKey(), signers...)
}

// BuildCreateAdminSettings returns the instruction that creates or
// overwrites the admin settings. Only the program upgrade authority may
// pay for it.
func (c *Client) BuildCreateAdminSettings(payer solana.PublicKey, settings AdminSettings) ([]solana.Instruction, *CreateAdminSettingsResult, error) {
	adminSettings, _, err := c.pda.AdminSettings()
	if err != nil {
		return nil, nil, fmt.Errorf("create admin settings: %w", err)
	}
	ix, err := NewCreateAdminSettingsInstruction(c.pda.Programs(), settings, CreateAdminSettingsAccounts{
		Payer:         payer,
		AdminSettings: adminSettings,
	})
	if err != nil {
		return nil, nil, err
	}
	return []solana.Instruction{ix}, &CreateAdminSettingsResult{AdminSettings: adminSettings}, nil
}

func (c *Client) CreateAdminSettings(ctx context.Context, payer solana.PrivateKey, settings AdminSettings) (*CreateAdminSettingsResult, error) {
	ixs, res, err := c.BuildCreateAdminSettings(payer.PublicKey(), settings)
	if err != nil {
		return nil, err
	}
	sig, err := c.send(ctx, instructionCreateAdminSettings, ixs, payer, nil)
	if err != nil {
		return nil, fmt.Errorf("create admin settings %s: %w", res.AdminSettings, err)
	}
	res.Signature = sig
	c.log.Info("--> Admin settings created", "adminSettings", res.AdminSettings, "platform", settings.Platform, "sig", sig)
	return res, nil
}

func (c *Client) BuildCreateMerchant(payer solana.PublicKey, params CreateMerchantParams) ([]solana.Instruction, *CreateMerchantResult, error) {
	if err := validateNameURI("merchant", params.Name, params.URI); err != nil {
		return nil, nil, err
	}
	owner := orPayer(params.Owner, payer)
	merchant, _, err := c.pda.Merchant(owner)
	if err != nil {
		return nil, nil, fmt.Errorf("create merchant %q: %w", params.Name, err)
	}
	ix, err := NewCreateMerchantInstruction(c.pda.Programs(), Merchant{
		Owner:  owner,
		Name:   params.Name,
		URI:    params.URI,
		Active: params.Active,
	}, MemoFromPtr(params.Memo), CreateMerchantAccounts{
		Payer:    payer,
		Owner:    owner,
		Merchant: merchant,
	})
	if err != nil {
		return nil, nil, err
	}
	return []solana.Instruction{ix}, &CreateMerchantResult{Merchant: merchant}, nil
}

// CreateMerchant creates the merchant account of params.Owner. The owner
// must be among cosigners unless it is the payer.
func (c *Client) CreateMerchant(ctx context.Context, payer solana.PrivateKey, params CreateMerchantParams, cosigners ...solana.PrivateKey) (*CreateMerchantResult, error) {
	ixs, res, err := c.BuildCreateMerchant(payer.PublicKey(), params)
	if err != nil {
		return nil, err
	}
	sig, err := c.send(ctx, instructionCreateMerchant, ixs, payer, cosigners)
	if err != nil {
		return nil, fmt.Errorf("create merchant %s: %w", res.Merchant, err)
	}
	res.Signature = sig
	c.log.Info("--> Merchant created", "merchant", res.Merchant, "name", params.Name, "sig", sig)
	return res, nil
}

func (c *Client) BuildCreateLocation(payer solana.PublicKey, params CreateLocationParams) ([]solana.Instruction, *CreateLocationResult, error) {
	if err := validateNameURI("location", params.Name, params.URI); err != nil {
		return nil, nil, err
	}
	owner := orPayer(params.Owner, payer)

	var d derivation
	merchant := d.addr(c.pda.Merchant(owner))
	location := d.addr(c.pda.Location(merchant, params.Name))
	if d.err != nil {
		return nil, nil, fmt.Errorf("create location %q: %w", params.Name, d.err)
	}

	ix, err := NewCreateLocationInstruction(c.pda.Programs(), Location{
		Merchant: merchant,
		Name:     params.Name,
		URI:      params.URI,
		Active:   params.Active,
	}, MemoFromPtr(params.Memo), CreateLocationAccounts{
		Payer:    payer,
		Owner:    owner,
		Merchant: merchant,
		Location: location,
	})
	if err != nil {
		return nil, nil, err
	}
	return []solana.Instruction{ix}, &CreateLocationResult{Merchant: merchant, Location: location}, nil
}

func (c *Client) CreateLocation(ctx context.Context, payer solana.PrivateKey, params CreateLocationParams, cosigners ...solana.PrivateKey) (*CreateLocationResult, error) {
	ixs, res, err := c.BuildCreateLocation(payer.PublicKey(), params)
	if err != nil {
		return nil, err
	}
	sig, err := c.send(ctx, instructionCreateLocation, ixs, payer, cosigners)
	if err != nil {
		return nil, fmt.Errorf("create location %s for merchant %s: %w", res.Location, res.Merchant, err)
	}
	res.Signature = sig
	c.log.Info("--> Location created", "location", res.Location, "name", params.Name, "sig", sig)
	return res, nil
}

func (c *Client) BuildCreateDevice(payer solana.PublicKey, params CreateDeviceParams) ([]solana.Instruction, *CreateDeviceResult, error) {
	if err := validateNameURI("device", params.Name, params.URI); err != nil {
		return nil, nil, err
	}
	merchantOwner := orPayer(params.MerchantOwner, payer)
	deviceOwner := orPayer(params.Owner, merchantOwner)

	var d derivation
	merchant := d.addr(c.pda.Merchant(merchantOwner))
	device := d.addr(c.pda.Device(params.Location, params.Name))
	if d.err != nil {
		return nil, nil, fmt.Errorf("create device %q: %w", params.Name, d.err)
	}

	ix, err := NewCreateDeviceInstruction(c.pda.Programs(), Device{
		Owner:    deviceOwner,
		Location: params.Location,
		Name:     params.Name,
		URI:      params.URI,
		Active:   params.Active,
	}, MemoFromPtr(params.Memo), CreateDeviceAccounts{
		Payer:         payer,
		MerchantOwner: merchantOwner,
		Merchant:      merchant,
		Location:      params.Location,
		Device:        device,
	})
	if err != nil {
		return nil, nil, err
	}
	return []solana.Instruction{ix}, &CreateDeviceResult{Merchant: merchant, Device: device}, nil
}

func (c *Client) CreateDevice(ctx context.Context, payer solana.PrivateKey, params CreateDeviceParams, cosigners ...solana.PrivateKey) (*CreateDeviceResult, error) {
	ixs, res, err := c.BuildCreateDevice(payer.PublicKey(), params)
	if err != nil {
		return nil, err
	}
	sig, err := c.send(ctx, instructionCreateDevice, ixs, payer, cosigners)
	if err != nil {
		return nil, fmt.Errorf("create device %s at %s: %w", res.Device, params.Location, err)
	}
	res.Signature = sig
	c.log.Info("--> Device created", "device", res.Device, "location", params.Location, "sig", sig)
	return res, nil
}
