package pda_test

import (
	"bytes"
	"encoding/binary"
	"testing"

	token_metadata "github.com/gagliardetto/metaplex-go/clients/token-metadata"
	"github.com/gagliardetto/solana-go"
	"github.com/krazyTry/bokoup-go/pda"
	"github.com/stretchr/testify/require"
)

func TestPDA_Derive_Deterministic(t *testing.T) {
	t.Parallel()

	programID := solana.NewWallet().PublicKey()
	seeds := [][]byte{[]byte("auction_house"), solana.NewWallet().PublicKey().Bytes()}

	addr1, bump1, err := pda.Derive(programID, seeds...)
	require.NoError(t, err)
	addr2, bump2, err := pda.Derive(programID, seeds...)
	require.NoError(t, err)

	require.Equal(t, addr1, addr2)
	require.Equal(t, bump1, bump2)
}

func TestPDA_Derive_MatchesFindProgramAddress(t *testing.T) {
	t.Parallel()

	for range 16 {
		programID := solana.NewWallet().PublicKey()
		seeds := [][]byte{[]byte("listing_receipt"), solana.NewWallet().PublicKey().Bytes()}

		want, wantBump, err := solana.FindProgramAddress(seeds, programID)
		require.NoError(t, err)

		got, gotBump, err := pda.Derive(programID, seeds...)
		require.NoError(t, err)
		require.Equal(t, want, got)
		require.Equal(t, wantBump, gotBump)
	}
}

func TestPDA_Derive_DoesNotMutateSeeds(t *testing.T) {
	t.Parallel()

	backing := make([][]byte, 2, 8)
	backing[0] = []byte("promo")
	backing[1] = solana.NewWallet().PublicKey().Bytes()
	before := bytes.Clone(backing[1])

	_, _, err := pda.Derive(pda.PromoProgramID, backing...)
	require.NoError(t, err)
	require.Len(t, backing, 2)
	require.Equal(t, before, backing[1])
	require.Nil(t, backing[:3][2])
}

func TestPDA_Derive_SingleByteChange(t *testing.T) {
	t.Parallel()

	programID := pda.AuctionHouseProgramID
	key := solana.NewWallet().PublicKey()

	base, _, err := pda.Derive(programID, []byte("auction_house"), key.Bytes())
	require.NoError(t, err)

	for i := range key {
		flipped := key
		flipped[i] ^= 0x01
		other, _, err := pda.Derive(programID, []byte("auction_house"), flipped.Bytes())
		require.NoError(t, err)
		require.NotEqual(t, base, other, "flipping byte %d should change the address", i)
	}

	prefixChanged, _, err := pda.Derive(programID, []byte("auction_housf"), key.Bytes())
	require.NoError(t, err)
	require.NotEqual(t, base, prefixChanged)
}

func TestPDA_Derive_InvalidSeeds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		seeds [][]byte
	}{
		{
			name:  "seed_too_long",
			seeds: [][]byte{bytes.Repeat([]byte{1}, 33)},
		},
		{
			name:  "too_many_seeds",
			seeds: make([][]byte, 16),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, _, err := pda.Derive(pda.PromoProgramID, tt.seeds...)
			require.ErrorIs(t, err, pda.ErrInvalidSeeds)
		})
	}
}

func TestPDA_Deriver_TradeState(t *testing.T) {
	t.Parallel()

	d := pda.NewDeriver(pda.DefaultPrograms())
	wallet := solana.NewWallet().PublicKey()
	auctionHouse := solana.NewWallet().PublicKey()
	tokenAccount := solana.NewWallet().PublicKey()
	mint := solana.NewWallet().PublicKey()

	priced, _, err := d.TradeState(wallet, auctionHouse, tokenAccount, pda.NativeMint, mint, 1_000_000, 1)
	require.NoError(t, err)
	again, _, err := d.TradeState(wallet, auctionHouse, tokenAccount, pda.NativeMint, mint, 1_000_000, 1)
	require.NoError(t, err)
	require.Equal(t, priced, again)

	free, _, err := d.TradeState(wallet, auctionHouse, tokenAccount, pda.NativeMint, mint, 0, 1)
	require.NoError(t, err)
	require.NotEqual(t, priced, free)

	zero := make([]byte, 8)
	size := make([]byte, 8)
	binary.LittleEndian.PutUint64(size, 1)
	want, _, err := solana.FindProgramAddress([][]byte{
		[]byte("auction_house"),
		wallet.Bytes(),
		auctionHouse.Bytes(),
		tokenAccount.Bytes(),
		pda.NativeMint.Bytes(),
		mint.Bytes(),
		zero,
		size,
	}, pda.AuctionHouseProgramID)
	require.NoError(t, err)
	require.Equal(t, want, free)
}

func TestPDA_Deriver_PublicBidTradeState(t *testing.T) {
	t.Parallel()

	d := pda.NewDeriver(pda.DefaultPrograms())
	wallet := solana.NewWallet().PublicKey()
	auctionHouse := solana.NewWallet().PublicKey()
	tokenAccount := solana.NewWallet().PublicKey()
	mint := solana.NewWallet().PublicKey()

	private, _, err := d.TradeState(wallet, auctionHouse, tokenAccount, pda.NativeMint, mint, 5, 1)
	require.NoError(t, err)
	public, _, err := d.PublicBidTradeState(wallet, auctionHouse, pda.NativeMint, mint, 5, 1)
	require.NoError(t, err)
	require.NotEqual(t, private, public)

	price := make([]byte, 8)
	binary.LittleEndian.PutUint64(price, 5)
	size := make([]byte, 8)
	binary.LittleEndian.PutUint64(size, 1)
	want, _, err := solana.FindProgramAddress([][]byte{
		[]byte("auction_house"),
		wallet.Bytes(),
		auctionHouse.Bytes(),
		pda.NativeMint.Bytes(),
		mint.Bytes(),
		price,
		size,
	}, pda.AuctionHouseProgramID)
	require.NoError(t, err)
	require.Equal(t, want, public)
}

func TestPDA_Deriver_AuctionHouseAccounts(t *testing.T) {
	t.Parallel()

	d := pda.NewDeriver(pda.DefaultPrograms())
	authority := solana.NewWallet().PublicKey()

	ah, bump, err := d.AuctionHouse(authority, pda.NativeMint)
	require.NoError(t, err)
	want, wantBump, err := solana.FindProgramAddress([][]byte{
		[]byte("auction_house"), authority.Bytes(), solana.WrappedSol.Bytes(),
	}, pda.AuctionHouseProgramID)
	require.NoError(t, err)
	require.Equal(t, want, ah)
	require.Equal(t, wantBump, bump)

	fee, _, err := d.AuctionHouseFeeAccount(ah)
	require.NoError(t, err)
	treasury, _, err := d.AuctionHouseTreasury(ah)
	require.NoError(t, err)
	require.NotEqual(t, fee, treasury)

	wantFee, _, err := solana.FindProgramAddress([][]byte{
		[]byte("auction_house"), ah.Bytes(), []byte("fee_payer"),
	}, pda.AuctionHouseProgramID)
	require.NoError(t, err)
	require.Equal(t, wantFee, fee)

	escrow, _, err := d.EscrowPayment(ah, authority)
	require.NoError(t, err)
	wantEscrow, _, err := solana.FindProgramAddress([][]byte{
		[]byte("auction_house"), ah.Bytes(), authority.Bytes(),
	}, pda.AuctionHouseProgramID)
	require.NoError(t, err)
	require.Equal(t, wantEscrow, escrow)
}

func TestPDA_Deriver_Receipts(t *testing.T) {
	t.Parallel()

	d := pda.NewDeriver(pda.DefaultPrograms())
	sellerTS := solana.NewWallet().PublicKey()
	buyerTS := solana.NewWallet().PublicKey()

	listing, _, err := d.ListingReceipt(sellerTS)
	require.NoError(t, err)
	bid, _, err := d.BidReceipt(sellerTS)
	require.NoError(t, err)
	require.NotEqual(t, listing, bid)

	purchase, _, err := d.PurchaseReceipt(sellerTS, buyerTS)
	require.NoError(t, err)
	swapped, _, err := d.PurchaseReceipt(buyerTS, sellerTS)
	require.NoError(t, err)
	require.NotEqual(t, purchase, swapped)
}

func TestPDA_Deriver_AssociatedTokenAndMetadata(t *testing.T) {
	t.Parallel()

	d := pda.NewDeriver(pda.DefaultPrograms())
	wallet := solana.NewWallet().PublicKey()
	mint := solana.NewWallet().PublicKey()

	ata, _, err := d.AssociatedToken(wallet, mint)
	require.NoError(t, err)
	want, _, err := solana.FindAssociatedTokenAddress(wallet, mint)
	require.NoError(t, err)
	require.Equal(t, want, ata)

	metadata, _, err := d.Metadata(mint)
	require.NoError(t, err)
	wantMetadata, _, err := solana.FindTokenMetadataAddress(mint)
	require.NoError(t, err)
	require.Equal(t, wantMetadata, metadata)

	edition, _, err := d.MasterEdition(mint)
	require.NoError(t, err)
	wantEdition, _, err := solana.FindProgramAddress([][]byte{
		[]byte("metadata"), token_metadata.ProgramID.Bytes(), mint.Bytes(), []byte("edition"),
	}, token_metadata.ProgramID)
	require.NoError(t, err)
	require.Equal(t, wantEdition, edition)
}

func TestPDA_Deriver_PromoRecipes(t *testing.T) {
	t.Parallel()

	d := pda.NewDeriver(pda.DefaultPrograms())
	owner := solana.NewWallet().PublicKey()

	merchant, _, err := d.Merchant(owner)
	require.NoError(t, err)
	wantMerchant, _, err := solana.FindProgramAddress([][]byte{[]byte("merchant"), owner.Bytes()}, pda.PromoProgramID)
	require.NoError(t, err)
	require.Equal(t, wantMerchant, merchant)

	campaign, _, err := d.Campaign(merchant, "spring")
	require.NoError(t, err)
	location, _, err := d.Location(merchant, "downtown")
	require.NoError(t, err)
	require.NotEqual(t, campaign, location)

	cl, _, err := d.CampaignLocation(campaign, location)
	require.NoError(t, err)
	wantCL, _, err := solana.FindProgramAddress([][]byte{
		[]byte("campaign_location"), campaign.Bytes(), location.Bytes(),
	}, pda.PromoProgramID)
	require.NoError(t, err)
	require.Equal(t, wantCL, cl)

	_, _, err = d.Campaign(merchant, "a name that is longer than thirty-two bytes")
	require.ErrorIs(t, err, pda.ErrInvalidSeeds)
}

func TestPDA_Deriver_CustomProgramTable(t *testing.T) {
	t.Parallel()

	custom := pda.ProgramTable{Promo: solana.NewWallet().PublicKey()}
	d := pda.NewDeriver(custom)
	require.Equal(t, custom.Promo, d.Programs().Promo)
	require.Equal(t, pda.AuctionHouseProgramID, d.Programs().AuctionHouse)

	admin, _, err := d.AdminSettings()
	require.NoError(t, err)
	defaultAdmin, _, err := pda.NewDeriver(pda.DefaultPrograms()).AdminSettings()
	require.NoError(t, err)
	require.NotEqual(t, defaultAdmin, admin)
}
