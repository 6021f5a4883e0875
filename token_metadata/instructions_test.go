package token_metadata_test

import (
	"testing"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/google/go-cmp/cmp"
	"github.com/krazyTry/bokoup-go/pda"
	solanago "github.com/krazyTry/bokoup-go/solana"
	tm "github.com/krazyTry/bokoup-go/token_metadata"
	"github.com/near/borsh-go"
	"github.com/stretchr/testify/require"
)

func instructionData(t *testing.T, ix solana.Instruction, name string) []byte {
	t.Helper()
	data, err := ix.Data()
	require.NoError(t, err)
	require.Equal(t, solanago.InstructionDiscriminator(name), data[:8])
	return data[8:]
}

func strPtr(s string) *string {
	return &s
}

func TestTokenMetadata_NewCreateMerchantInstruction(t *testing.T) {
	t.Parallel()

	programs := pda.DefaultPrograms()
	accounts := tm.CreateMerchantAccounts{
		Payer:    solana.NewWallet().PublicKey(),
		Owner:    solana.NewWallet().PublicKey(),
		Merchant: solana.NewWallet().PublicKey(),
	}
	ix, err := tm.NewCreateMerchantInstruction(programs, tm.Merchant{
		Owner:  accounts.Owner,
		Name:   "Coffee",
		URI:    "https://example.com/coffee.json",
		Active: true,
	}, tm.MemoFromPtr(strPtr("opening day")), accounts)
	require.NoError(t, err)
	require.Equal(t, pda.PromoProgramID, ix.ProgramID())

	want := []*solana.AccountMeta{
		{PublicKey: accounts.Payer, IsWritable: true, IsSigner: true},
		{PublicKey: accounts.Owner, IsSigner: true},
		{PublicKey: accounts.Merchant, IsWritable: true},
		{PublicKey: programs.Memo},
		{PublicKey: solana.SysVarRentPubkey},
		{PublicKey: solana.SystemProgramID},
	}
	if diff := cmp.Diff(want, ix.Accounts()); diff != "" {
		t.Fatalf("create_merchant accounts mismatch (-want +got):\n%s", diff)
	}

	var args struct {
		Owner  solana.PublicKey
		Name   string
		URI    string
		Active bool
		Memo   *string
	}
	require.NoError(t, borsh.Deserialize(&args, instructionData(t, ix, "create_merchant")))
	require.Equal(t, accounts.Owner, args.Owner)
	require.Equal(t, "Coffee", args.Name)
	require.Equal(t, "https://example.com/coffee.json", args.URI)
	require.True(t, args.Active)
	require.NotNil(t, args.Memo)
	require.Equal(t, "opening day", *args.Memo)
}

func TestTokenMetadata_NewCreateCampaignInstruction(t *testing.T) {
	t.Parallel()

	merchant := solana.NewWallet().PublicKey()
	ix, err := tm.NewCreateCampaignInstruction(pda.DefaultPrograms(), tm.Campaign{
		Merchant: merchant,
		Name:     "Summer",
		URI:      "https://example.com/summer.json",
	}, 5_000_000, tm.MemoFromPtr(nil), tm.CreateCampaignAccounts{
		Payer:    solana.NewWallet().PublicKey(),
		Owner:    solana.NewWallet().PublicKey(),
		Merchant: merchant,
		Campaign: solana.NewWallet().PublicKey(),
	})
	require.NoError(t, err)

	metas := ix.Accounts()
	require.Len(t, metas, 6)
	require.True(t, metas[1].IsWritable, "owner funds the campaign")
	require.True(t, metas[1].IsSigner)

	data := instructionData(t, ix, "create_campaign")
	var args struct {
		Merchant solana.PublicKey
		Name     string
		URI      string
		Active   bool
		Lamports uint64
	}
	require.NoError(t, borsh.Deserialize(&args, data))
	require.Equal(t, merchant, args.Merchant)
	require.Equal(t, "Summer", args.Name)
	require.False(t, args.Active)
	require.Equal(t, uint64(5_000_000), args.Lamports)
	require.Equal(t, byte(0), data[len(data)-1], "absent memo encodes as None")
}

func TestTokenMetadata_NewCreatePromoInstruction(t *testing.T) {
	t.Parallel()

	programs := pda.DefaultPrograms()
	accounts := tm.CreatePromoAccounts{
		Payer:         solana.NewWallet().PublicKey(),
		Owner:         solana.NewWallet().PublicKey(),
		Merchant:      solana.NewWallet().PublicKey(),
		Campaign:      solana.NewWallet().PublicKey(),
		Mint:          solana.NewWallet().PublicKey(),
		Metadata:      solana.NewWallet().PublicKey(),
		Authority:     solana.NewWallet().PublicKey(),
		Promo:         solana.NewWallet().PublicKey(),
		Platform:      solana.NewWallet().PublicKey(),
		AdminSettings: solana.NewWallet().PublicKey(),
	}
	args := tm.CreatePromoArgs{
		Promo: tm.Promo{
			Campaign: accounts.Campaign,
			Mint:     accounts.Mint,
			Metadata: accounts.Metadata,
			MaxMint:  solanago.Some[uint32](1_000),
			Active:   true,
		},
		Metadata: solanago.DataV2{
			Name:                 "Free Coffee",
			Symbol:               "BKP",
			URI:                  "https://example.com/promo.json",
			SellerFeeBasisPoints: 100,
			Creators: solanago.Some([]solanago.Creator{
				{Address: accounts.Owner, Share: 100},
			}),
		},
		IsMutable: true,
		Memo:      tm.MemoFromPtr(strPtr("launch")),
	}
	ix, err := tm.NewCreatePromoInstruction(programs, args, accounts)
	require.NoError(t, err)

	want := []*solana.AccountMeta{
		{PublicKey: accounts.Payer, IsWritable: true, IsSigner: true},
		{PublicKey: accounts.Owner, IsSigner: true},
		{PublicKey: accounts.Merchant, IsWritable: true},
		{PublicKey: accounts.Campaign, IsWritable: true},
		{PublicKey: accounts.Mint, IsWritable: true, IsSigner: true},
		{PublicKey: accounts.Metadata, IsWritable: true},
		{PublicKey: accounts.Authority},
		{PublicKey: accounts.Promo, IsWritable: true},
		{PublicKey: accounts.Platform, IsWritable: true},
		{PublicKey: accounts.AdminSettings},
		{PublicKey: programs.TokenMetadata},
		{PublicKey: programs.Token},
		{PublicKey: programs.Memo},
		{PublicKey: solana.SysVarRentPubkey},
		{PublicKey: solana.SystemProgramID},
	}
	if diff := cmp.Diff(want, ix.Accounts()); diff != "" {
		t.Fatalf("create_promo accounts mismatch (-want +got):\n%s", diff)
	}

	var got tm.CreatePromoArgs
	require.NoError(t, bin.NewBorshDecoder(instructionData(t, ix, "create_promo")).Decode(&got))
	require.Equal(t, args, got)
}

func TestTokenMetadata_NewCreatePromoInstruction_Layout(t *testing.T) {
	t.Parallel()

	ix, err := tm.NewCreatePromoInstruction(pda.DefaultPrograms(), tm.CreatePromoArgs{
		Promo: tm.Promo{
			MaxMint: solanago.Some[uint32](10),
			MaxBurn: solanago.Some[uint32](5),
		},
		Metadata: solanago.DataV2{Name: "P", Symbol: "S", URI: "u"},
	}, tm.CreatePromoAccounts{})
	require.NoError(t, err)

	var args struct {
		Campaign  solana.PublicKey
		Mint      solana.PublicKey
		Metadata  solana.PublicKey
		MintCount uint32
		BurnCount uint32
		MaxMint   *uint32
		MaxBurn   *uint32
		Active    bool
		Name      string
		Symbol    string
		URI       string
	}
	require.NoError(t, borsh.Deserialize(&args, instructionData(t, ix, "create_promo")))
	require.Equal(t, uint32(10), *args.MaxMint)
	require.Equal(t, uint32(5), *args.MaxBurn)
	require.Equal(t, "P", args.Name)
	require.Equal(t, "S", args.Symbol)
	require.Equal(t, "u", args.URI)
}

func TestTokenMetadata_NewBurnDelegatedPromoTokenInstruction(t *testing.T) {
	t.Parallel()

	programs := pda.DefaultPrograms()
	accounts := tm.BurnDelegatedPromoTokenAccounts{
		Payer:            solana.NewWallet().PublicKey(),
		DeviceOwner:      solana.NewWallet().PublicKey(),
		Device:           solana.NewWallet().PublicKey(),
		Campaign:         solana.NewWallet().PublicKey(),
		CampaignLocation: solana.NewWallet().PublicKey(),
		Mint:             solana.NewWallet().PublicKey(),
		Authority:        solana.NewWallet().PublicKey(),
		Promo:            solana.NewWallet().PublicKey(),
		Platform:         solana.NewWallet().PublicKey(),
		AdminSettings:    solana.NewWallet().PublicKey(),
		TokenAccount:     solana.NewWallet().PublicKey(),
	}
	ix, err := tm.NewBurnDelegatedPromoTokenInstruction(programs, tm.MemoFromPtr(nil), accounts)
	require.NoError(t, err)

	metas := ix.Accounts()
	require.Len(t, metas, 16)
	signers := 0
	for _, meta := range metas {
		if meta.IsSigner {
			signers++
		}
	}
	require.Equal(t, 2, signers, "token owner does not sign a delegated burn")
	require.Equal(t, &solana.AccountMeta{PublicKey: accounts.Platform, IsWritable: true}, metas[8])
	require.Equal(t, &solana.AccountMeta{PublicKey: accounts.TokenAccount, IsWritable: true}, metas[10])
	require.Equal(t, []byte{0}, instructionData(t, ix, "burn_delegated_promo_token"))
}

func TestTokenMetadata_NewMintAndDelegateInstructions(t *testing.T) {
	t.Parallel()

	programs := pda.DefaultPrograms()
	owner := solana.NewWallet().PublicKey()

	mintIx, err := tm.NewMintPromoTokenInstruction(programs, tm.MemoFromPtr(strPtr("m")), tm.MintPromoTokenAccounts{TokenOwner: owner})
	require.NoError(t, err)
	require.Len(t, mintIx.Accounts(), 15)
	require.Equal(t, &solana.AccountMeta{PublicKey: owner, IsSigner: true}, mintIx.Accounts()[5])
	require.Equal(t, []byte{1, 1, 0, 0, 0, 'm'}, instructionData(t, mintIx, "mint_promo_token"))

	delegateIx, err := tm.NewDelegatePromoTokenInstruction(programs, tm.MemoFromPtr(nil), tm.DelegatePromoTokenAccounts{TokenOwner: owner})
	require.NoError(t, err)
	require.Len(t, delegateIx.Accounts(), 12)
	require.Equal(t, &solana.AccountMeta{PublicKey: owner, IsSigner: true}, delegateIx.Accounts()[5])
	require.Equal(t, programs.Memo, delegateIx.Accounts()[9].PublicKey)
	require.Equal(t, programs.Token, delegateIx.Accounts()[10].PublicKey)
}

func TestTokenMetadata_NewSignMemoInstruction(t *testing.T) {
	t.Parallel()

	programs := pda.DefaultPrograms()
	accounts := tm.SignMemoAccounts{
		Payer:  solana.NewWallet().PublicKey(),
		Signer: solana.NewWallet().PublicKey(),
	}
	ix, err := tm.NewSignMemoInstruction(programs, "redeemed at counter 2", accounts)
	require.NoError(t, err)

	want := []*solana.AccountMeta{
		{PublicKey: accounts.Payer, IsWritable: true, IsSigner: true},
		{PublicKey: accounts.Signer, IsSigner: true},
		{PublicKey: programs.Memo},
		{PublicKey: solana.SystemProgramID},
	}
	if diff := cmp.Diff(want, ix.Accounts()); diff != "" {
		t.Fatalf("sign_memo accounts mismatch (-want +got):\n%s", diff)
	}

	var args struct {
		Memo string
	}
	require.NoError(t, borsh.Deserialize(&args, instructionData(t, ix, "sign_memo")))
	require.Equal(t, "redeemed at counter 2", args.Memo)
}

func TestTokenMetadata_NewCreateNonFungibleInstruction(t *testing.T) {
	t.Parallel()

	programs := pda.DefaultPrograms()
	accounts := tm.CreateNonFungibleAccounts{
		Payer:           solana.NewWallet().PublicKey(),
		Authority:       solana.NewWallet().PublicKey(),
		Mint:            solana.NewWallet().PublicKey(),
		TokenAccount:    solana.NewWallet().PublicKey(),
		MetadataAccount: solana.NewWallet().PublicKey(),
		EditionAccount:  solana.NewWallet().PublicKey(),
	}
	ix, err := tm.NewCreateNonFungibleInstruction(programs, tm.CreateNonFungibleArgs{
		Metadata:  solanago.DataV2{Name: "Ticket", Symbol: "TIX", URI: "https://example.com/t.json"},
		IsMutable: false,
		MaxSupply: solanago.Some[uint64](0),
	}, accounts)
	require.NoError(t, err)

	metas := ix.Accounts()
	require.Len(t, metas, 11)
	require.Equal(t, &solana.AccountMeta{PublicKey: accounts.Mint, IsWritable: true, IsSigner: true}, metas[2])
	require.Equal(t, &solana.AccountMeta{PublicKey: accounts.EditionAccount, IsWritable: true}, metas[5])
	require.Equal(t, programs.TokenMetadata, metas[6].PublicKey)

	var got tm.CreateNonFungibleArgs
	require.NoError(t, bin.NewBorshDecoder(instructionData(t, ix, "create_non_fungible")).Decode(&got))
	require.Equal(t, "Ticket", got.Metadata.Name)
	require.False(t, got.IsMutable)
	require.True(t, got.MaxSupply.Valid)
	require.Equal(t, uint64(0), got.MaxSupply.Value)
}
