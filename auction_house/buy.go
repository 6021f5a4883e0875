package auction_house

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// BuildBuyOffer reads the auction house and returns the deposit, buy (or
// public_buy) and print_bid_receipt instructions. The deposit funds escrow
// with exactly the bid price.
func (c *Client) BuildBuyOffer(ctx context.Context, buyer solana.PublicKey, params BuyParams) ([]solana.Instruction, *BuyResult, error) {
	if params.Price == 0 {
		return nil, nil, ErrZeroPrice
	}
	ah, err := c.GetAuctionHouse(ctx, params.AuctionHouse)
	if err != nil {
		return nil, nil, fmt.Errorf("buy %s: %w", params.Mint, err)
	}
	return c.buildBuyOffer(buyer, ah, params)
}

func (c *Client) buildBuyOffer(buyer solana.PublicKey, ah *AuctionHouse, params BuyParams) ([]solana.Instruction, *BuyResult, error) {
	size := tokenSize(params.TokenSize)

	var d derivation
	tokenAccount := params.TokenAccount
	if tokenAccount == nil {
		ata := d.addr(c.pda.AssociatedToken(params.Seller, params.Mint))
		tokenAccount = &ata
	}
	metadata := d.addr(c.pda.Metadata(params.Mint))
	escrow, escrowBump := d.take(c.pda.EscrowPayment(params.AuctionHouse, buyer))
	paymentAccount := c.paymentAccount(&d, buyer, ah.TreasuryMint)

	var buyerTradeState solana.PublicKey
	var tradeStateBump uint8
	if params.Public {
		buyerTradeState, tradeStateBump = d.take(c.pda.PublicBidTradeState(buyer, params.AuctionHouse, ah.TreasuryMint, params.Mint, params.Price, size))
	} else {
		buyerTradeState, tradeStateBump = d.take(c.pda.TradeState(buyer, params.AuctionHouse, *tokenAccount, ah.TreasuryMint, params.Mint, params.Price, size))
	}
	bidReceipt, receiptBump := d.take(c.pda.BidReceipt(buyerTradeState))
	if d.err != nil {
		return nil, nil, fmt.Errorf("buy %s on %s: %w", params.Mint, params.AuctionHouse, d.err)
	}

	programs := c.pda.Programs()
	depositIx, err := NewDepositInstruction(programs, DepositArgs{
		EscrowPaymentBump: escrowBump,
		Amount:            params.Price,
	}, DepositAccounts{
		Wallet:                 buyer,
		PaymentAccount:         paymentAccount,
		TransferAuthority:      buyer,
		EscrowPaymentAccount:   escrow,
		TreasuryMint:           ah.TreasuryMint,
		Authority:              ah.Authority,
		AuctionHouse:           params.AuctionHouse,
		AuctionHouseFeeAccount: ah.AuctionHouseFeeAccount,
	})
	if err != nil {
		return nil, nil, err
	}

	newBuy := NewBuyInstruction
	if params.Public {
		newBuy = NewPublicBuyInstruction
	}
	buyIx, err := newBuy(programs, BuyArgs{
		TradeStateBump:    tradeStateBump,
		EscrowPaymentBump: escrowBump,
		BuyerPrice:        params.Price,
		TokenSize:         size,
	}, BuyAccounts{
		Wallet:                 buyer,
		PaymentAccount:         paymentAccount,
		TransferAuthority:      buyer,
		TreasuryMint:           ah.TreasuryMint,
		TokenAccount:           *tokenAccount,
		Metadata:               metadata,
		EscrowPaymentAccount:   escrow,
		Authority:              ah.Authority,
		AuctionHouse:           params.AuctionHouse,
		AuctionHouseFeeAccount: ah.AuctionHouseFeeAccount,
		BuyerTradeState:        buyerTradeState,
	})
	if err != nil {
		return nil, nil, err
	}

	receiptIx, err := NewPrintBidReceiptInstruction(programs, receiptBump, PrintReceiptAccounts{
		Receipt:    bidReceipt,
		Bookkeeper: buyer,
	})
	if err != nil {
		return nil, nil, err
	}

	return []solana.Instruction{depositIx, buyIx, receiptIx}, &BuyResult{
		BidReceipt:           bidReceipt,
		EscrowPaymentAccount: escrow,
		BuyerTradeState:      buyerTradeState,
	}, nil
}

// CreateBuyOffer deposits params.Price into escrow, places the bid and
// prints the bid receipt in one transaction.
func (c *Client) CreateBuyOffer(ctx context.Context, buyer solana.PrivateKey, params BuyParams) (*BuyResult, error) {
	ixs, res, err := c.BuildBuyOffer(ctx, buyer.PublicKey(), params)
	if err != nil {
		return nil, err
	}
	op := instructionBuy
	if params.Public {
		op = instructionPublicBuy
	}
	sig, err := c.exec.Send(ctx, op, ixs, buyer.PublicKey(), buyer)
	if err != nil {
		return nil, fmt.Errorf("buy %s on %s (trade state %s): %w", params.Mint, params.AuctionHouse, res.BuyerTradeState, err)
	}
	res.Signature = sig
	c.log.Info("--> Buy offer created", "mint", params.Mint, "price", params.Price, "public", params.Public, "bidReceipt", res.BidReceipt, "sig", sig)
	return res, nil
}
