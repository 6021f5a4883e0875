package auction_house

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/krazyTry/bokoup-go/pda"
)

// BuildCreateAuctionHouse returns the create_auction_house instruction for
// a marketplace administered by authority.
func (c *Client) BuildCreateAuctionHouse(authority solana.PublicKey, params CreateAuctionHouseParams) ([]solana.Instruction, *CreateAuctionHouseResult, error) {
	if params.SellerFeeBasisPoints > MaxBasisPoints {
		return nil, nil, fmt.Errorf("seller fee basis points %d exceeds %d", params.SellerFeeBasisPoints, MaxBasisPoints)
	}
	treasuryMint := pda.NativeMint
	if params.TreasuryMint != nil {
		treasuryMint = *params.TreasuryMint
	}
	feeWithdrawalDestination := authority
	if params.FeeWithdrawalDestination != nil {
		feeWithdrawalDestination = *params.FeeWithdrawalDestination
	}
	treasuryWithdrawalOwner := authority
	if params.TreasuryWithdrawalDestinationOwner != nil {
		treasuryWithdrawalOwner = *params.TreasuryWithdrawalDestinationOwner
	}

	var d derivation
	auctionHouse, bump := d.take(c.pda.AuctionHouse(authority, treasuryMint))
	feeAccount, feePayerBump := d.take(c.pda.AuctionHouseFeeAccount(auctionHouse))
	treasury, treasuryBump := d.take(c.pda.AuctionHouseTreasury(auctionHouse))
	treasuryWithdrawalDestination := c.paymentAccount(&d, treasuryWithdrawalOwner, treasuryMint)
	if d.err != nil {
		return nil, nil, fmt.Errorf("create auction house for %s: %w", authority, d.err)
	}

	ix, err := NewCreateAuctionHouseInstruction(c.pda.Programs(), CreateAuctionHouseArgs{
		Bump:                 bump,
		FeePayerBump:         feePayerBump,
		TreasuryBump:         treasuryBump,
		SellerFeeBasisPoints: params.SellerFeeBasisPoints,
		RequiresSignOff:      params.RequiresSignOff,
		CanChangeSalePrice:   params.CanChangeSalePrice,
	}, CreateAuctionHouseAccounts{
		TreasuryMint:                       treasuryMint,
		Payer:                              authority,
		Authority:                          authority,
		FeeWithdrawalDestination:           feeWithdrawalDestination,
		TreasuryWithdrawalDestination:      treasuryWithdrawalDestination,
		TreasuryWithdrawalDestinationOwner: treasuryWithdrawalOwner,
		AuctionHouse:                       auctionHouse,
		AuctionHouseFeeAccount:             feeAccount,
		AuctionHouseTreasury:               treasury,
	})
	if err != nil {
		return nil, nil, err
	}

	return []solana.Instruction{ix}, &CreateAuctionHouseResult{
		AuctionHouse: auctionHouse,
		FeeAccount:   feeAccount,
		Treasury:     treasury,
	}, nil
}

// CreateAuctionHouse creates a marketplace owned by authority, which also
// pays for the transaction.
func (c *Client) CreateAuctionHouse(ctx context.Context, authority solana.PrivateKey, params CreateAuctionHouseParams) (*CreateAuctionHouseResult, error) {
	ixs, res, err := c.BuildCreateAuctionHouse(authority.PublicKey(), params)
	if err != nil {
		return nil, err
	}
	sig, err := c.exec.Send(ctx, instructionCreateAuctionHouse, ixs, authority.PublicKey(), authority)
	if err != nil {
		return nil, fmt.Errorf("create auction house %s: %w", res.AuctionHouse, err)
	}
	res.Signature = sig
	c.log.Info("--> Auction house created", "auctionHouse", res.AuctionHouse, "sig", sig)
	return res, nil
}
