package pda

import (
	token_metadata "github.com/gagliardetto/metaplex-go/clients/token-metadata"
	"github.com/gagliardetto/solana-go"
)

var (
	AuctionHouseProgramID = solana.MustPublicKeyFromBase58("hausS13jsjafwWwGqZTUQRmWyvyxn9EQpqMwV1PBBmk")
	PromoProgramID        = solana.MustPublicKeyFromBase58("HB53jiCac5VtNdokJeibrfd1QJsyWWFe56M1TQUSKQfY")
	MemoProgramID         = solana.MustPublicKeyFromBase58("MemoSq4gqABAXKb96qnH8TysNcWxMyWCqXgDLGmfcHr")
	BPFLoaderUpgradeable  = solana.MustPublicKeyFromBase58("BPFLoaderUpgradeab1e11111111111111111111111")

	// NativeMint is the wrapped SOL mint used as the default treasury mint.
	NativeMint = solana.WrappedSol
)

// ProgramTable maps every program role to the id it is deployed at.
type ProgramTable struct {
	AuctionHouse         solana.PublicKey
	Promo                solana.PublicKey
	TokenMetadata        solana.PublicKey
	AssociatedToken      solana.PublicKey
	Token                solana.PublicKey
	Memo                 solana.PublicKey
	BPFLoaderUpgradeable solana.PublicKey
}

// DefaultPrograms returns the mainnet deployment ids.
func DefaultPrograms() ProgramTable {
	return ProgramTable{
		AuctionHouse:         AuctionHouseProgramID,
		Promo:                PromoProgramID,
		TokenMetadata:        token_metadata.ProgramID,
		AssociatedToken:      solana.SPLAssociatedTokenAccountProgramID,
		Token:                solana.TokenProgramID,
		Memo:                 MemoProgramID,
		BPFLoaderUpgradeable: BPFLoaderUpgradeable,
	}
}

// WithDefaults fills every zero id with its mainnet value.
func (t ProgramTable) WithDefaults() ProgramTable {
	d := DefaultPrograms()
	fill := func(dst *solana.PublicKey, def solana.PublicKey) {
		if dst.IsZero() {
			*dst = def
		}
	}
	fill(&t.AuctionHouse, d.AuctionHouse)
	fill(&t.Promo, d.Promo)
	fill(&t.TokenMetadata, d.TokenMetadata)
	fill(&t.AssociatedToken, d.AssociatedToken)
	fill(&t.Token, d.Token)
	fill(&t.Memo, d.Memo)
	fill(&t.BPFLoaderUpgradeable, d.BPFLoaderUpgradeable)
	return t
}

var seed = struct {
	AuctionHouse     []byte
	FeePayer         []byte
	Treasury         []byte
	Signer           []byte
	ListingReceipt   []byte
	BidReceipt       []byte
	PurchaseReceipt  []byte
	Metadata         []byte
	Edition          []byte
	Admin            []byte
	Authority        []byte
	Merchant         []byte
	Location         []byte
	Device           []byte
	Campaign         []byte
	CampaignLocation []byte
	Promo            []byte
}{
	AuctionHouse:     []byte("auction_house"),
	FeePayer:         []byte("fee_payer"),
	Treasury:         []byte("treasury"),
	Signer:           []byte("signer"),
	ListingReceipt:   []byte("listing_receipt"),
	BidReceipt:       []byte("bid_receipt"),
	PurchaseReceipt:  []byte("purchase_receipt"),
	Metadata:         []byte("metadata"),
	Edition:          []byte("edition"),
	Admin:            []byte("admin"),
	Authority:        []byte("authority"),
	Merchant:         []byte("merchant"),
	Location:         []byte("location"),
	Device:           []byte("device"),
	Campaign:         []byte("campaign"),
	CampaignLocation: []byte("campaign_location"),
	Promo:            []byte("promo"),
}
