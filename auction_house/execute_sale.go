package auction_house

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	solanago "github.com/krazyTry/bokoup-go/solana"
)

// BuildExecuteSale reads the auction house and the mint's metadata and
// returns the execute_sale and print_purchase_receipt instructions. Every
// creator in the metadata is appended to execute_sale in stored order.
func (c *Client) BuildExecuteSale(ctx context.Context, buyer solana.PublicKey, params ExecuteSaleParams) ([]solana.Instruction, *ExecuteSaleResult, error) {
	ah, err := c.GetAuctionHouse(ctx, params.AuctionHouse)
	if err != nil {
		return nil, nil, fmt.Errorf("execute sale %s: %w", params.Mint, err)
	}
	metadataAddress, _, err := c.pda.Metadata(params.Mint)
	if err != nil {
		return nil, nil, fmt.Errorf("execute sale %s: %w", params.Mint, err)
	}
	metadata, err := solanago.GetMetadata(ctx, c.rpc, metadataAddress, c.commitment)
	if err != nil {
		return nil, nil, fmt.Errorf("execute sale %s: metadata %s: %w", params.Mint, metadataAddress, err)
	}
	creators := make([]solana.PublicKey, 0, len(metadata.Creators))
	for _, creator := range metadata.Creators {
		creators = append(creators, creator.Address)
	}
	return c.buildExecuteSale(buyer, ah, metadataAddress, creators, params)
}

func (c *Client) buildExecuteSale(buyer solana.PublicKey, ah *AuctionHouse, metadata solana.PublicKey, creators []solana.PublicKey, params ExecuteSaleParams) ([]solana.Instruction, *ExecuteSaleResult, error) {
	size := tokenSize(params.TokenSize)

	var d derivation
	tokenAccount := params.TokenAccount
	if tokenAccount == nil {
		ata := d.addr(c.pda.AssociatedToken(params.Seller, params.Mint))
		tokenAccount = &ata
	}
	buyerTokenAccount := d.addr(c.pda.AssociatedToken(buyer, params.Mint))
	escrow, escrowBump := d.take(c.pda.EscrowPayment(params.AuctionHouse, buyer))
	sellerPaymentReceipt := c.paymentAccount(&d, params.Seller, ah.TreasuryMint)
	sellerTradeState, _ := d.take(c.pda.TradeState(params.Seller, params.AuctionHouse, *tokenAccount, ah.TreasuryMint, params.Mint, params.Price, size))
	freeTradeState, freeTradeStateBump := d.take(c.pda.TradeState(params.Seller, params.AuctionHouse, *tokenAccount, ah.TreasuryMint, params.Mint, 0, size))
	var buyerTradeState solana.PublicKey
	if params.Public {
		buyerTradeState = d.addr(c.pda.PublicBidTradeState(buyer, params.AuctionHouse, ah.TreasuryMint, params.Mint, params.Price, size))
	} else {
		buyerTradeState = d.addr(c.pda.TradeState(buyer, params.AuctionHouse, *tokenAccount, ah.TreasuryMint, params.Mint, params.Price, size))
	}
	programAsSigner, programAsSignerBump := d.take(c.pda.ProgramAsSigner())
	listingReceipt := d.addr(c.pda.ListingReceipt(sellerTradeState))
	bidReceipt := d.addr(c.pda.BidReceipt(buyerTradeState))
	purchaseReceipt, purchaseReceiptBump := d.take(c.pda.PurchaseReceipt(sellerTradeState, buyerTradeState))

	remaining := make([]solana.PublicKey, 0, 2*len(creators))
	for _, creator := range creators {
		remaining = append(remaining, creator)
		if !isNative(ah.TreasuryMint) {
			remaining = append(remaining, d.addr(c.pda.AssociatedToken(creator, ah.TreasuryMint)))
		}
	}
	if d.err != nil {
		return nil, nil, fmt.Errorf("execute sale %s on %s: %w", params.Mint, params.AuctionHouse, d.err)
	}

	programs := c.pda.Programs()
	saleIx, err := NewExecuteSaleInstruction(programs, ExecuteSaleArgs{
		EscrowPaymentBump:   escrowBump,
		FreeTradeStateBump:  freeTradeStateBump,
		ProgramAsSignerBump: programAsSignerBump,
		BuyerPrice:          params.Price,
		TokenSize:           size,
	}, ExecuteSaleAccounts{
		Buyer:                       buyer,
		Seller:                      params.Seller,
		TokenAccount:                *tokenAccount,
		TokenMint:                   params.Mint,
		Metadata:                    metadata,
		TreasuryMint:                ah.TreasuryMint,
		EscrowPaymentAccount:        escrow,
		SellerPaymentReceiptAccount: sellerPaymentReceipt,
		BuyerReceiptTokenAccount:    buyerTokenAccount,
		Authority:                   ah.Authority,
		AuctionHouse:                params.AuctionHouse,
		AuctionHouseFeeAccount:      ah.AuctionHouseFeeAccount,
		AuctionHouseTreasury:        ah.AuctionHouseTreasury,
		BuyerTradeState:             buyerTradeState,
		SellerTradeState:            sellerTradeState,
		FreeTradeState:              freeTradeState,
		ProgramAsSigner:             programAsSigner,
		Creators:                    remaining,
	})
	if err != nil {
		return nil, nil, err
	}

	receiptIx, err := NewPrintPurchaseReceiptInstruction(programs, purchaseReceiptBump, PrintPurchaseReceiptAccounts{
		PurchaseReceipt: purchaseReceipt,
		ListingReceipt:  listingReceipt,
		BidReceipt:      bidReceipt,
		Bookkeeper:      buyer,
	})
	if err != nil {
		return nil, nil, err
	}

	return []solana.Instruction{saleIx, receiptIx}, &ExecuteSaleResult{
		PurchaseReceipt:      purchaseReceipt,
		EscrowPaymentAccount: escrow,
		BuyerTokenAccount:    buyerTokenAccount,
		SellerTokenAccount:   *tokenAccount,
	}, nil
}

// ExecuteSale settles a matching listing and bid, paying royalties to the
// creators recorded in the mint's metadata, and prints the purchase
// receipt. The buyer pays for and signs the transaction.
func (c *Client) ExecuteSale(ctx context.Context, buyer solana.PrivateKey, params ExecuteSaleParams) (*ExecuteSaleResult, error) {
	ixs, res, err := c.BuildExecuteSale(ctx, buyer.PublicKey(), params)
	if err != nil {
		return nil, err
	}
	sig, err := c.exec.Send(ctx, instructionExecuteSale, ixs, buyer.PublicKey(), buyer)
	if err != nil {
		return nil, fmt.Errorf("execute sale %s on %s (seller %s): %w", params.Mint, params.AuctionHouse, params.Seller, err)
	}
	res.Signature = sig
	c.log.Info("--> Sale executed", "mint", params.Mint, "price", params.Price, "purchaseReceipt", res.PurchaseReceipt, "sig", sig)
	return res, nil
}
