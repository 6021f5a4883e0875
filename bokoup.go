// Package bokoup is a client for the Metaplex auction house and the bokoup
// promo program.
package bokoup

import (
	ah "github.com/krazyTry/bokoup-go/auction_house"
	tm "github.com/krazyTry/bokoup-go/token_metadata"
)

// NewAuctionHouseClient creates a new auction house client.
//
// Example:
//
// houseClient := NewAuctionHouseClient(log, rpcClient, pda.DefaultPrograms())
//
// house, _ := houseClient.CreateAuctionHouse(ctx, authority, auction_house.CreateAuctionHouseParams{SellerFeeBasisPoints: 250})
//
// houseClient.CreateSellOffer(ctx, seller, auction_house.SellParams{AuctionHouse: house.AuctionHouse, Mint: mint, Price: price})
var NewAuctionHouseClient = ah.NewClient

// NewPromoClient creates a new promo client. A nil fetcher uses the default
// off-chain metadata fetcher.
//
// Example:
//
// promoClient, _ := NewPromoClient(log, rpcClient, pda.DefaultPrograms(), nil)
//
// merchant, _ := promoClient.CreateMerchant(ctx, payer, token_metadata.CreateMerchantParams{Name: "Cafe", URI: uri})
//
// promoClient.MintPromoToken(ctx, payer, token_metadata.PromoTokenParams{Device: device, Location: location, Mint: mint, TokenOwner: owner})
var NewPromoClient = tm.NewClient
