package pda

import (
	"encoding/binary"

	"github.com/gagliardetto/solana-go"
)

// Deriver binds the recipes to a program table. The zero value is not
// usable; build one with NewDeriver.
type Deriver struct {
	programs ProgramTable
}

func NewDeriver(programs ProgramTable) Deriver {
	return Deriver{programs: programs.WithDefaults()}
}

// Programs returns the table the deriver was built with.
func (d Deriver) Programs() ProgramTable {
	return d.programs
}

func le64(v uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, v)
	return b
}

func (d Deriver) AuctionHouse(creator, treasuryMint solana.PublicKey) (solana.PublicKey, uint8, error) {
	return Derive(d.programs.AuctionHouse, seed.AuctionHouse, creator.Bytes(), treasuryMint.Bytes())
}

func (d Deriver) AuctionHouseFeeAccount(auctionHouse solana.PublicKey) (solana.PublicKey, uint8, error) {
	return Derive(d.programs.AuctionHouse, seed.AuctionHouse, auctionHouse.Bytes(), seed.FeePayer)
}

func (d Deriver) AuctionHouseTreasury(auctionHouse solana.PublicKey) (solana.PublicKey, uint8, error) {
	return Derive(d.programs.AuctionHouse, seed.AuctionHouse, auctionHouse.Bytes(), seed.Treasury)
}

func (d Deriver) ProgramAsSigner() (solana.PublicKey, uint8, error) {
	return Derive(d.programs.AuctionHouse, seed.AuctionHouse, seed.Signer)
}

// TradeState derives the private trade state of an offer. A free trade
// state is the same recipe with price 0.
func (d Deriver) TradeState(
	wallet solana.PublicKey,
	auctionHouse solana.PublicKey,
	tokenAccount solana.PublicKey,
	treasuryMint solana.PublicKey,
	tokenMint solana.PublicKey,
	price uint64,
	size uint64,
) (solana.PublicKey, uint8, error) {
	return Derive(d.programs.AuctionHouse,
		seed.AuctionHouse,
		wallet.Bytes(),
		auctionHouse.Bytes(),
		tokenAccount.Bytes(),
		treasuryMint.Bytes(),
		tokenMint.Bytes(),
		le64(price),
		le64(size),
	)
}

// PublicBidTradeState is TradeState without the token account seed.
func (d Deriver) PublicBidTradeState(
	wallet solana.PublicKey,
	auctionHouse solana.PublicKey,
	treasuryMint solana.PublicKey,
	tokenMint solana.PublicKey,
	price uint64,
	size uint64,
) (solana.PublicKey, uint8, error) {
	return Derive(d.programs.AuctionHouse,
		seed.AuctionHouse,
		wallet.Bytes(),
		auctionHouse.Bytes(),
		treasuryMint.Bytes(),
		tokenMint.Bytes(),
		le64(price),
		le64(size),
	)
}

func (d Deriver) EscrowPayment(auctionHouse, wallet solana.PublicKey) (solana.PublicKey, uint8, error) {
	return Derive(d.programs.AuctionHouse, seed.AuctionHouse, auctionHouse.Bytes(), wallet.Bytes())
}

func (d Deriver) ListingReceipt(tradeState solana.PublicKey) (solana.PublicKey, uint8, error) {
	return Derive(d.programs.AuctionHouse, seed.ListingReceipt, tradeState.Bytes())
}

func (d Deriver) BidReceipt(tradeState solana.PublicKey) (solana.PublicKey, uint8, error) {
	return Derive(d.programs.AuctionHouse, seed.BidReceipt, tradeState.Bytes())
}

func (d Deriver) PurchaseReceipt(sellerTradeState, buyerTradeState solana.PublicKey) (solana.PublicKey, uint8, error) {
	return Derive(d.programs.AuctionHouse, seed.PurchaseReceipt, sellerTradeState.Bytes(), buyerTradeState.Bytes())
}

// AssociatedToken derives the associated token account of wallet for mint
// under the associated token program.
func (d Deriver) AssociatedToken(wallet, mint solana.PublicKey) (solana.PublicKey, uint8, error) {
	return Derive(d.programs.AssociatedToken, wallet.Bytes(), d.programs.Token.Bytes(), mint.Bytes())
}

func (d Deriver) Metadata(mint solana.PublicKey) (solana.PublicKey, uint8, error) {
	return Derive(d.programs.TokenMetadata, seed.Metadata, d.programs.TokenMetadata.Bytes(), mint.Bytes())
}

func (d Deriver) MasterEdition(mint solana.PublicKey) (solana.PublicKey, uint8, error) {
	return Derive(d.programs.TokenMetadata, seed.Metadata, d.programs.TokenMetadata.Bytes(), mint.Bytes(), seed.Edition)
}

func (d Deriver) AdminSettings() (solana.PublicKey, uint8, error) {
	return Derive(d.programs.Promo, seed.Admin)
}

// Authority is the promo program's mint and metadata authority.
func (d Deriver) Authority() (solana.PublicKey, uint8, error) {
	return Derive(d.programs.Promo, seed.Authority)
}

func (d Deriver) Merchant(owner solana.PublicKey) (solana.PublicKey, uint8, error) {
	return Derive(d.programs.Promo, seed.Merchant, owner.Bytes())
}

func (d Deriver) Location(merchant solana.PublicKey, name string) (solana.PublicKey, uint8, error) {
	return Derive(d.programs.Promo, seed.Location, merchant.Bytes(), []byte(name))
}

func (d Deriver) Device(location solana.PublicKey, name string) (solana.PublicKey, uint8, error) {
	return Derive(d.programs.Promo, seed.Device, location.Bytes(), []byte(name))
}

func (d Deriver) Campaign(merchant solana.PublicKey, name string) (solana.PublicKey, uint8, error) {
	return Derive(d.programs.Promo, seed.Campaign, merchant.Bytes(), []byte(name))
}

func (d Deriver) CampaignLocation(campaign, location solana.PublicKey) (solana.PublicKey, uint8, error) {
	return Derive(d.programs.Promo, seed.CampaignLocation, campaign.Bytes(), location.Bytes())
}

func (d Deriver) Promo(mint solana.PublicKey) (solana.PublicKey, uint8, error) {
	return Derive(d.programs.Promo, seed.Promo, mint.Bytes())
}

// ProgramData derives the upgradeable loader's program data account.
func (d Deriver) ProgramData(programID solana.PublicKey) (solana.PublicKey, uint8, error) {
	return Derive(d.programs.BPFLoaderUpgradeable, programID.Bytes())
}
