package auction_house

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

func ParseAuctionHouse(data []byte) (*AuctionHouse, error) {
	return decodeAccount[AuctionHouse](AccountKeyAuctionHouse, data)
}

func ParseListingReceipt(data []byte) (*ListingReceipt, error) {
	return decodeAccount[ListingReceipt](AccountKeyListingReceipt, data)
}

func ParseBidReceipt(data []byte) (*BidReceipt, error) {
	return decodeAccount[BidReceipt](AccountKeyBidReceipt, data)
}

func ParsePurchaseReceipt(data []byte) (*PurchaseReceipt, error) {
	return decodeAccount[PurchaseReceipt](AccountKeyPurchaseReceipt, data)
}

func getAccount[T any](ctx context.Context, c *Client, address solana.PublicKey, parse func([]byte) (*T, error)) (*T, error) {
	acc, err := solanago.GetAccountInfo(ctx, c.rpc, address, c.commitment)
	if err != nil {
		return nil, err
	}
	if !acc.Owner.Equals(c.pda.Programs().AuctionHouse) {
		return nil, fmt.Errorf("%w: %s is owned by %s", solanago.ErrInvalidAccountData, address, acc.Owner)
	}
	out, err := parse(acc.Data.GetBinary())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", address, err)
	}
	return out, nil
}

func (c *Client) GetAuctionHouse(ctx context.Context, address solana.PublicKey) (*AuctionHouse, error) {
	return getAccount(ctx, c, address, ParseAuctionHouse)
}

func (c *Client) GetListingReceipt(ctx context.Context, address solana.PublicKey) (*ListingReceipt, error) {
	return getAccount(ctx, c, address, ParseListingReceipt)
}

func (c *Client) GetBidReceipt(ctx context.Context, address solana.PublicKey) (*BidReceipt, error) {
	return getAccount(ctx, c, address, ParseBidReceipt)
}

func (c *Client) GetPurchaseReceipt(ctx context.Context, address solana.PublicKey) (*PurchaseReceipt, error) {
	return getAccount(ctx, c, address, ParsePurchaseReceipt)
}

// GetAuctionHousesByAuthority lists the marketplaces administered by
// authority.
func (c *Client) GetAuctionHousesByAuthority(ctx context.Context, authority solana.PublicKey) ([]ProgramAccount[AuctionHouse], error) {
	filters := solanago.CreateProgramAccountFilter(AccountKeyAuctionHouse, &solanago.Filter{
		Owner:  authority,
		Offset: solanago.ComputeStructOffset(&AuctionHouse{}, "Authority"),
	})
	return listAccounts(ctx, c, filters, ParseAuctionHouse)
}

// GetListingReceiptsBySeller lists every listing receipt printed for seller.
func (c *Client) GetListingReceiptsBySeller(ctx context.Context, seller solana.PublicKey) ([]ProgramAccount[ListingReceipt], error) {
	filters := solanago.CreateProgramAccountFilter(AccountKeyListingReceipt, &solanago.Filter{
		Owner:  seller,
		Offset: solanago.ComputeStructOffset(&ListingReceipt{}, "Seller"),
	})
	return listAccounts(ctx, c, filters, ParseListingReceipt)
}

func listAccounts[T any](ctx context.Context, c *Client, filters []rpc.RPCFilter, parse func([]byte) (*T, error)) ([]ProgramAccount[T], error) {
	accounts, err := c.rpc.GetProgramAccountsWithOpts(ctx, c.pda.Programs().AuctionHouse, &rpc.GetProgramAccountsOpts{
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
