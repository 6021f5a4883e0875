package token_metadata

import (
	"context"
	"fmt"

	binary "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	solanago "github.com/krazyTry/bokoup-go/solana"
)

func decodeAccount[T any](name string, data []byte) (*T, error) {
	if err := solanago.CheckDiscriminator(data, name); err != nil {
		return nil, err
	}
	out := new(T)
	if err := binary.NewBorshDecoder(data[8:]).Decode(out); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", solanago.ErrInvalidAccountData, name, err)
	}
	return out, nil
}

func ParseAdminSettings(data []byte) (*AdminSettings, error) {
	return decodeAccount[AdminSettings](AccountKeyAdminSettings, data)
}

func ParseMerchant(data []byte) (*Merchant, error) {
	return decodeAccount[Merchant](AccountKeyMerchant, data)
}

func ParseLocation(data []byte) (*Location, error) {
	return decodeAccount[Location](AccountKeyLocation, data)
}

func ParseDevice(data []byte) (*Device, error) {
	return decodeAccount[Device](AccountKeyDevice, data)
}

func ParseCampaign(data []byte) (*Campaign, error) {
	return decodeAccount[Campaign](AccountKeyCampaign, data)
}

func ParseCampaignLocation(data []byte) (*CampaignLocation, error) {
	return decodeAccount[CampaignLocation](AccountKeyCampaignLocation, data)
}

func ParsePromo(data []byte) (*Promo, error) {
	return decodeAccount[Promo](AccountKeyPromo, data)
}

func checkOwner(acc *rpc.Account, address, program solana.PublicKey) error {
	if !acc.Owner.Equals(program) {
		return fmt.Errorf("%w: %s is owned by %s", solanago.ErrInvalidAccountData, address, acc.Owner)
	}
	return nil
}

func getAccount[T any](ctx context.Context, c *Client, address solana.PublicKey, parse func([]byte) (*T, error)) (*T, error) {
	acc, err := solanago.GetAccountInfo(ctx, c.rpc, address, c.commitment)
	if err != nil {
		return nil, err
	}
	if err := checkOwner(acc, address, c.pda.Programs().Promo); err != nil {
		return nil, err
	}
	out, err := parse(acc.Data.GetBinary())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", address, err)
	}
	return out, nil
}

// GetAdminSettings reads the program's single admin settings account.
func (c *Client) GetAdminSettings(ctx context.Context) (*AdminSettings, error) {
	address, _, err := c.pda.AdminSettings()
	if err != nil {
		return nil, err
	}
	return getAccount(ctx, c, address, ParseAdminSettings)
}

// FetchPlatformAddress returns the account platform fees are paid to.
func (c *Client) FetchPlatformAddress(ctx context.Context) (solana.PublicKey, error) {
	settings, err := c.GetAdminSettings(ctx)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("failed to read platform address: %w", err)
	}
	return settings.Platform, nil
}

func (c *Client) GetMerchant(ctx context.Context, address solana.PublicKey) (*Merchant, error) {
	return getAccount(ctx, c, address, ParseMerchant)
}

func (c *Client) GetLocation(ctx context.Context, address solana.PublicKey) (*Location, error) {
	return getAccount(ctx, c, address, ParseLocation)
}

func (c *Client) GetDevice(ctx context.Context, address solana.PublicKey) (*Device, error) {
	return getAccount(ctx, c, address, ParseDevice)
}

func (c *Client) GetCampaign(ctx context.Context, address solana.PublicKey) (*Campaign, error) {
	return getAccount(ctx, c, address, ParseCampaign)
}

func (c *Client) GetCampaignLocation(ctx context.Context, address solana.PublicKey) (*CampaignLocation, error) {
	return getAccount(ctx, c, address, ParseCampaignLocation)
}

func (c *Client) GetPromo(ctx context.Context, address solana.PublicKey) (*Promo, error) {
	return getAccount(ctx, c, address, ParsePromo)
}

func (c *Client) GetTokenAccount(ctx context.Context, address solana.PublicKey) (*solanago.TokenAccount, error) {
	return solanago.GetTokenAccount(ctx, c.rpc, address, c.commitment)
}

func (c *Client) GetMintAccount(ctx context.Context, address solana.PublicKey) (*solanago.Mint, error) {
	return solanago.GetMint(ctx, c.rpc, address, c.commitment)
}

// GetMetadataAccount reads the metadata account of mint.
func (c *Client) GetMetadataAccount(ctx context.Context, mint solana.PublicKey) (*solanago.Metadata, error) {
	address, _, err := c.pda.Metadata(mint)
	if err != nil {
		return nil, err
	}
	return solanago.GetMetadata(ctx, c.rpc, address, c.commitment)
}

// GetMasterEditionAccount reads the master edition account of mint.
func (c *Client) GetMasterEditionAccount(ctx context.Context, mint solana.PublicKey) (*solanago.MasterEdition, error) {
	address, _, err := c.pda.MasterEdition(mint)
	if err != nil {
		return nil, err
	}
	return solanago.GetMasterEdition(ctx, c.rpc, address, c.commitment)
}

func (c *Client) GetLocationsByMerchant(ctx context.Context, merchant solana.PublicKey) ([]ProgramAccount[Location], error) {
	filters := solanago.CreateProgramAccountFilter(AccountKeyLocation, &solanago.Filter{
		Owner:  merchant,
		Offset: solanago.ComputeStructOffset(&Location{}, "Merchant"),
	})
	return listAccounts(ctx, c, filters, ParseLocation)
}

func (c *Client) GetDevicesByLocation(ctx context.Context, location solana.PublicKey) ([]ProgramAccount[Device], error) {
	filters := solanago.CreateProgramAccountFilter(AccountKeyDevice, &solanago.Filter{
		Owner:  location,
		Offset: solanago.ComputeStructOffset(&Device{}, "Location"),
	})
	return listAccounts(ctx, c, filters, ParseDevice)
}

func (c *Client) GetCampaignsByMerchant(ctx context.Context, merchant solana.PublicKey) ([]ProgramAccount[Campaign], error) {
	filters := solanago.CreateProgramAccountFilter(AccountKeyCampaign, &solanago.Filter{
		Owner:  merchant,
		Offset: solanago.ComputeStructOffset(&Campaign{}, "Merchant"),
	})
	return listAccounts(ctx, c, filters, ParseCampaign)
}

// GetCampaignLocationsByCampaign lists the location links of campaign.
func (c *Client) GetCampaignLocationsByCampaign(ctx context.Context, campaign solana.PublicKey) ([]ProgramAccount[CampaignLocation], error) {
	filters := solanago.CreateProgramAccountFilter(AccountKeyCampaignLocation, &solanago.Filter{
		Owner:  campaign,
		Offset: solanago.ComputeStructOffset(&CampaignLocation{}, "Campaign"),
	})
	return listAccounts(ctx, c, filters, ParseCampaignLocation)
}

func (c *Client) GetPromosByCampaign(ctx context.Context, campaign solana.PublicKey) ([]ProgramAccount[Promo], error) {
	filters := solanago.CreateProgramAccountFilter(AccountKeyPromo, &solanago.Filter{
		Owner:  campaign,
		Offset: solanago.ComputeStructOffset(&Promo{}, "Campaign"),
	})
	return listAccounts(ctx, c, filters, ParsePromo)
}

func listAccounts[T any](ctx context.Context, c *Client, filters []rpc.RPCFilter, parse func([]byte) (*T, error)) ([]ProgramAccount[T], error) {
	accounts, err := c.rpc.GetProgramAccountsWithOpts(ctx, c.pda.Programs().Promo, &rpc.GetProgramAccountsOpts{
		Commitment: c.commitment,
		Encoding:   solana.EncodingBase64,
		Filters:    filters,
	})
	if err != nil {
		return nil, err
	}
	out := make([]ProgramAccount[T], 0, len(accounts))
	for _, acc := range accounts {
		parsed, err := parse(acc.Account.Data.GetBinary())
		if err != nil {
			c.log.Warn("--> Skipping undecodable account", "address", acc.Pubkey, "error", err)
			continue
		}
		out = append(out, ProgramAccount[T]{Pubkey: acc.Pubkey, Account: parsed})
	}
	return out, nil
}
