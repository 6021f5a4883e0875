package auction_house

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// BuildSellOffer reads the auction house and returns the sell and
// print_listing_receipt instructions.
func (c *Client) BuildSellOffer(ctx context.Context, seller solana.PublicKey, params SellParams) ([]solana.Instruction, *SellResult, error) {
	if params.Price == 0 {
		return nil, nil, ErrZeroPrice
	}
	ah, err := c.GetAuctionHouse(ctx, params.AuctionHouse)
	if err != nil {
		return nil, nil, fmt.Errorf("sell %s: %w", params.Mint, err)
	}
	return c.buildSellOffer(seller, ah, params)
}

func (c *Client) buildSellOffer(seller solana.PublicKey, ah *AuctionHouse, params SellParams) ([]solana.Instruction, *SellResult, error) {
	size := tokenSize(params.TokenSize)

	var d derivation
	tokenAccount := params.TokenAccount
	if tokenAccount == nil {
		ata := d.addr(c.pda.AssociatedToken(seller, params.Mint))
		tokenAccount = &ata
	}
	metadata := d.addr(c.pda.Metadata(params.Mint))
	sellerTradeState, tradeStateBump := d.take(c.pda.TradeState(seller, params.AuctionHouse, *tokenAccount, ah.TreasuryMint, params.Mint, params.Price, size))
	freeTradeState, freeTradeStateBump := d.take(c.pda.TradeState(seller, params.AuctionHouse, *tokenAccount, ah.TreasuryMint, params.Mint, 0, size))
	programAsSigner, programAsSignerBump := d.take(c.pda.ProgramAsSigner())
	listingReceipt, receiptBump := d.take(c.pda.ListingReceipt(sellerTradeState))
	if d.err != nil {
		return nil, nil, fmt.Errorf("sell %s on %s: %w", params.Mint, params.AuctionHouse, d.err)
	}

	programs := c.pda.Programs()
	sellIx, err := NewSellInstruction(programs, SellArgs{
		TradeStateBump:      tradeStateBump,
		FreeTradeStateBump:  freeTradeStateBump,
		ProgramAsSignerBump: programAsSignerBump,
		BuyerPrice:          params.Price,
		TokenSize:           size,
	}, SellAccounts{
		Wallet:                 seller,
		TokenAccount:           *tokenAccount,
		Metadata:               metadata,
		Authority:              ah.Authority,
		AuctionHouse:           params.AuctionHouse,
		AuctionHouseFeeAccount: ah.AuctionHouseFeeAccount,
		SellerTradeState:       sellerTradeState,
		FreeSellerTradeState:   freeTradeState,
		ProgramAsSigner:        programAsSigner,
	})
	if err != nil {
		return nil, nil, err
	}
	receiptIx, err := NewPrintListingReceiptInstruction(programs, receiptBump, PrintReceiptAccounts{
		Receipt:    listingReceipt,
		Bookkeeper: seller,
	})
	if err != nil {
		return nil, nil, err
	}

	return []solana.Instruction{sellIx, receiptIx}, &SellResult{
		ListingReceipt:       listingReceipt,
		TokenAccount:         *tokenAccount,
		SellerTradeState:     sellerTradeState,
		FreeSellerTradeState: freeTradeState,
	}, nil
}

// CreateSellOffer lists params.Mint at params.Price and prints the listing
// receipt in the same transaction.
func (c *Client) CreateSellOffer(ctx context.Context, seller solana.PrivateKey, params SellParams) (*SellResult, error) {
	ixs, res, err := c.BuildSellOffer(ctx, seller.PublicKey(), params)
	if err != nil {
		return nil, err
	}
	sig, err := c.exec.Send(ctx, instructionSell, ixs, seller.PublicKey(), seller)
	if err != nil {
		return nil, fmt.Errorf("sell %s on %s (trade state %s): %w", params.Mint, params.AuctionHouse, res.SellerTradeState, err)
	}
	res.Signature = sig
	c.log.Info("--> Sell offer created", "mint", params.Mint, "price", params.Price, "listingReceipt", res.ListingReceipt, "sig", sig)
	return res, nil
}
