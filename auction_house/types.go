package auction_house

import (
	"github.com/gagliardetto/solana-go"
	solanago "github.com/krazyTry/bokoup-go/solana"
)

type ProgramAccount[T any] = solanago.ProgramAccount[T]

// AuctionHouse is the on-chain marketplace account.
type AuctionHouse struct {
	AuctionHouseFeeAccount        solana.PublicKey
	AuctionHouseTreasury          solana.PublicKey
	TreasuryWithdrawalDestination solana.PublicKey
	FeeWithdrawalDestination      solana.PublicKey
	TreasuryMint                  solana.PublicKey
	Authority                     solana.PublicKey
	Creator                       solana.PublicKey
	Bump                          uint8
	TreasuryBump                  uint8
	FeePayerBump                  uint8
	SellerFeeBasisPoints          uint16
	RequiresSignOff               bool
	CanChangeSalePrice            bool
}

type ListingReceipt struct {
	TradeState      solana.PublicKey
	Bookkeeper      solana.PublicKey
	AuctionHouse    solana.PublicKey
	Seller          solana.PublicKey
	Metadata        solana.PublicKey
	PurchaseReceipt solanago.Option[solana.PublicKey]
	Price           uint64
	TokenSize       uint64
	Bump            uint8
	TradeStateBump  uint8
	CreatedAt       int64
	CanceledAt      solanago.Option[int64]
}

type BidReceipt struct {
	TradeState      solana.PublicKey
	Bookkeeper      solana.PublicKey
	AuctionHouse    solana.PublicKey
	Buyer           solana.PublicKey
	Metadata        solana.PublicKey
	TokenAccount    solanago.Option[solana.PublicKey]
	PurchaseReceipt solanago.Option[solana.PublicKey]
	Price           uint64
	TokenSize       uint64
	Bump            uint8
	TradeStateBump  uint8
	CreatedAt       int64
	CanceledAt      solanago.Option[int64]
}

type PurchaseReceipt struct {
	Bookkeeper   solana.PublicKey
	Buyer        solana.PublicKey
	Seller       solana.PublicKey
	AuctionHouse solana.PublicKey
	Metadata     solana.PublicKey
	TokenSize    uint64
	Price        uint64
	Bump         uint8
	CreatedAt    int64
}

// CreateAuctionHouseParams configures a new marketplace. Nil addresses
// default to the authority, and a nil treasury mint to native SOL.
type CreateAuctionHouseParams struct {
	SellerFeeBasisPoints               uint16
	RequiresSignOff                    bool
	CanChangeSalePrice                 bool
	TreasuryMint                       *solana.PublicKey
	FeeWithdrawalDestination           *solana.PublicKey
	TreasuryWithdrawalDestinationOwner *solana.PublicKey
}

type CreateAuctionHouseResult struct {
	Signature    solana.Signature
	AuctionHouse solana.PublicKey
	FeeAccount   solana.PublicKey
	Treasury     solana.PublicKey
}

// SellParams lists a token. TokenAccount defaults to the seller's
// associated token account and TokenSize to 1.
type SellParams struct {
	AuctionHouse solana.PublicKey
	Mint         solana.PublicKey
	Price        uint64
	TokenSize    uint64
	TokenAccount *solana.PublicKey
}

type SellResult struct {
	Signature            solana.Signature
	ListingReceipt       solana.PublicKey
	TokenAccount         solana.PublicKey
	SellerTradeState     solana.PublicKey
	FreeSellerTradeState solana.PublicKey
}

// BuyParams places a bid. A private bid targets the token account of
// Seller; a public bid targets any holder of Mint.
type BuyParams struct {
	AuctionHouse solana.PublicKey
	Mint         solana.PublicKey
	Seller       solana.PublicKey
	Price        uint64
	TokenSize    uint64
	TokenAccount *solana.PublicKey
	Public       bool
}

type BuyResult struct {
	Signature            solana.Signature
	BidReceipt           solana.PublicKey
	EscrowPaymentAccount solana.PublicKey
	BuyerTradeState      solana.PublicKey
}

// ExecuteSaleParams matches a listing with a bid placed at the same price
// and size.
type ExecuteSaleParams struct {
	AuctionHouse solana.PublicKey
	Mint         solana.PublicKey
	Seller       solana.PublicKey
	Price        uint64
	TokenSize    uint64
	TokenAccount *solana.PublicKey
	Public       bool
}

type ExecuteSaleResult struct {
	Signature            solana.Signature
	PurchaseReceipt      solana.PublicKey
	EscrowPaymentAccount solana.PublicKey
	BuyerTokenAccount    solana.PublicKey
	SellerTokenAccount   solana.PublicKey
}
