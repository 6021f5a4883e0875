package token_metadata

import (
	"github.com/gagliardetto/solana-go"
	"github.com/krazyTry/bokoup-go/pda"
	solanago "github.com/krazyTry/bokoup-go/solana"
)

type Memo = solanago.Option[string]

// MemoFromPtr maps a nil memo to None.
func MemoFromPtr(memo *string) Memo {
	return solanago.OptionFromPtr(memo)
}

type CreateAdminSettingsAccounts struct {
	Payer         solana.PublicKey
	AdminSettings solana.PublicKey
}

func NewCreateAdminSettingsInstruction(programs pda.ProgramTable, data AdminSettings, accounts CreateAdminSettingsAccounts) (solana.Instruction, error) {
	return solanago.NewAnchorInstruction(programs.Promo, instructionCreateAdminSettings, solana.AccountMetaSlice{
		solana.Meta(accounts.Payer).WRITE().SIGNER(),
		solana.Meta(accounts.AdminSettings).WRITE(),
		solana.Meta(solana.SystemProgramID),
	}, data)
}

type CreateMerchantAccounts struct {
	Payer    solana.PublicKey
	Owner    solana.PublicKey
	Merchant solana.PublicKey
}

func NewCreateMerchantInstruction(programs pda.ProgramTable, data Merchant, memo Memo, accounts CreateMerchantAccounts) (solana.Instruction, error) {
	return solanago.NewAnchorInstruction(programs.Promo, instructionCreateMerchant, solana.AccountMetaSlice{
		solana.Meta(accounts.Payer).WRITE().SIGNER(),
		solana.Meta(accounts.Owner).SIGNER(),
		solana.Meta(accounts.Merchant).WRITE(),
		solana.Meta(programs.Memo),
		solana.Meta(solana.SysVarRentPubkey),
		solana.Meta(solana.SystemProgramID),
	}, data, memo)
}

type CreateLocationAccounts struct {
	Payer    solana.PublicKey
	Owner    solana.PublicKey
	Merchant solana.PublicKey
	Location solana.PublicKey
}

func NewCreateLocationInstruction(programs pda.ProgramTable, data Location, memo Memo, accounts CreateLocationAccounts) (solana.Instruction, error) {
	return solanago.NewAnchorInstruction(programs.Promo, instructionCreateLocation, solana.AccountMetaSlice{
		solana.Meta(accounts.Payer).WRITE().SIGNER(),
		solana.Meta(accounts.Owner).SIGNER(),
		solana.Meta(accounts.Merchant),
		solana.Meta(accounts.Location).WRITE(),
		solana.Meta(programs.Memo),
		solana.Meta(solana.SysVarRentPubkey),
		solana.Meta(solana.SystemProgramID),
	}, data, memo)
}

type CreateDeviceAccounts struct {
	Payer         solana.PublicKey
	MerchantOwner solana.PublicKey
	Merchant      solana.PublicKey
	Location      solana.PublicKey
	Device        solana.PublicKey
}

func NewCreateDeviceInstruction(programs pda.ProgramTable, data Device, memo Memo, accounts CreateDeviceAccounts) (solana.Instruction, error) {
	return solanago.NewAnchorInstruction(programs.Promo, instructionCreateDevice, solana.AccountMetaSlice{
		solana.Meta(accounts.Payer).WRITE().SIGNER(),
		solana.Meta(accounts.MerchantOwner).SIGNER(),
		solana.Meta(accounts.Merchant),
		solana.Meta(accounts.Location),
		solana.Meta(accounts.Device).WRITE(),
		solana.Meta(programs.Memo),
		solana.Meta(solana.SysVarRentPubkey),
		solana.Meta(solana.SystemProgramID),
	}, data, memo)
}

type CreateCampaignAccounts struct {
	Payer    solana.PublicKey
	Owner    solana.PublicKey
	Merchant solana.PublicKey
	Campaign solana.PublicKey
}

func NewCreateCampaignInstruction(programs pda.ProgramTable, data Campaign, lamports uint64, memo Memo, accounts CreateCampaignAccounts) (solana.Instruction, error) {
	return solanago.NewAnchorInstruction(programs.Promo, instructionCreateCampaign, solana.AccountMetaSlice{
		solana.Meta(accounts.Payer).WRITE().SIGNER(),
		solana.Meta(accounts.Owner).WRITE().SIGNER(),
		solana.Meta(accounts.Merchant),
		solana.Meta(accounts.Campaign).WRITE(),
		solana.Meta(programs.Memo),
		solana.Meta(solana.SystemProgramID),
	}, data, lamports, memo)
}

type CreateCampaignLocationAccounts struct {
	Payer            solana.PublicKey
	Owner            solana.PublicKey
	Merchant         solana.PublicKey
	Campaign         solana.PublicKey
	CampaignLocation solana.PublicKey
	Location         solana.PublicKey
}

func NewCreateCampaignLocationInstruction(programs pda.ProgramTable, memo Memo, accounts CreateCampaignLocationAccounts) (solana.Instruction, error) {
	return solanago.NewAnchorInstruction(programs.Promo, instructionCreateCampaignLocation, solana.AccountMetaSlice{
		solana.Meta(accounts.Payer).WRITE().SIGNER(),
		solana.Meta(accounts.Owner).SIGNER(),
		solana.Meta(accounts.Merchant),
		solana.Meta(accounts.Campaign),
		solana.Meta(accounts.CampaignLocation).WRITE(),
		solana.Meta(accounts.Location),
		solana.Meta(programs.Memo),
		solana.Meta(solana.SystemProgramID),
	}, memo)
}

type CreatePromoArgs struct {
	Promo     Promo
	Metadata  solanago.DataV2
	IsMutable bool
	Memo      Memo
}

type CreatePromoAccounts struct {
	Payer         solana.PublicKey
	Owner         solana.PublicKey
	Merchant      solana.PublicKey
	Campaign      solana.PublicKey
	Mint          solana.PublicKey
	Metadata      solana.PublicKey
	Authority     solana.PublicKey
	Promo         solana.PublicKey
	Platform      solana.PublicKey
	AdminSettings solana.PublicKey
}

func NewCreatePromoInstruction(programs pda.ProgramTable, args CreatePromoArgs, accounts CreatePromoAccounts) (solana.Instruction, error) {
	return solanago.NewAnchorInstruction(programs.Promo, instructionCreatePromo, solana.AccountMetaSlice{
		solana.Meta(accounts.Payer).WRITE().SIGNER(),
		solana.Meta(accounts.Owner).SIGNER(),
		solana.Meta(accounts.Merchant).WRITE(),
		solana.Meta(accounts.Campaign).WRITE(),
		solana.Meta(accounts.Mint).WRITE().SIGNER(),
		solana.Meta(accounts.Metadata).WRITE(),
		solana.Meta(accounts.Authority),
		solana.Meta(accounts.Promo).WRITE(),
		solana.Meta(accounts.Platform).WRITE(),
		solana.Meta(accounts.AdminSettings),
		solana.Meta(programs.TokenMetadata),
		solana.Meta(programs.Token),
		solana.Meta(programs.Memo),
		solana.Meta(solana.SysVarRentPubkey),
		solana.Meta(solana.SystemProgramID),
	}, args.Promo, args.Metadata, args.IsMutable, args.Memo)
}

type MintPromoTokenAccounts struct {
	Payer            solana.PublicKey
	DeviceOwner      solana.PublicKey
	Device           solana.PublicKey
	Campaign         solana.PublicKey
	CampaignLocation solana.PublicKey
	TokenOwner       solana.PublicKey
	Mint             solana.PublicKey
	Authority        solana.PublicKey
	Promo            solana.PublicKey
	TokenAccount     solana.PublicKey
}

func NewMintPromoTokenInstruction(programs pda.ProgramTable, memo Memo, accounts MintPromoTokenAccounts) (solana.Instruction, error) {
	return solanago.NewAnchorInstruction(programs.Promo, instructionMintPromoToken, solana.AccountMetaSlice{
		solana.Meta(accounts.Payer).WRITE().SIGNER(),
		solana.Meta(accounts.DeviceOwner).SIGNER(),
		solana.Meta(accounts.Device),
		solana.Meta(accounts.Campaign).WRITE(),
		solana.Meta(accounts.CampaignLocation),
		solana.Meta(accounts.TokenOwner).SIGNER(),
		solana.Meta(accounts.Mint).WRITE(),
		solana.Meta(accounts.Authority),
		solana.Meta(accounts.Promo).WRITE(),
		solana.Meta(accounts.TokenAccount).WRITE(),
		solana.Meta(programs.Token),
		solana.Meta(programs.Memo),
		solana.Meta(programs.AssociatedToken),
		solana.Meta(solana.SysVarRentPubkey),
		solana.Meta(solana.SystemProgramID),
	}, memo)
}

type DelegatePromoTokenAccounts struct {
	Payer            solana.PublicKey
	DeviceOwner      solana.PublicKey
	Device           solana.PublicKey
	Campaign         solana.PublicKey
	CampaignLocation solana.PublicKey
	TokenOwner       solana.PublicKey
	Mint             solana.PublicKey
	Promo            solana.PublicKey
	TokenAccount     solana.PublicKey
}

func NewDelegatePromoTokenInstruction(programs pda.ProgramTable, memo Memo, accounts DelegatePromoTokenAccounts) (solana.Instruction, error) {
	return solanago.NewAnchorInstruction(programs.Promo, instructionDelegatePromoToken, solana.AccountMetaSlice{
		solana.Meta(accounts.Payer).WRITE().SIGNER(),
		solana.Meta(accounts.DeviceOwner).SIGNER(),
		solana.Meta(accounts.Device),
		solana.Meta(accounts.Campaign),
		solana.Meta(accounts.CampaignLocation),
		solana.Meta(accounts.TokenOwner).SIGNER(),
		solana.Meta(accounts.Mint),
		solana.Meta(accounts.Promo),
		solana.Meta(accounts.TokenAccount).WRITE(),
		solana.Meta(programs.Memo),
		solana.Meta(programs.Token),
		solana.Meta(solana.SystemProgramID),
	}, memo)
}

type BurnDelegatedPromoTokenAccounts struct {
	Payer            solana.PublicKey
	DeviceOwner      solana.PublicKey
	Device           solana.PublicKey
	Campaign         solana.PublicKey
	CampaignLocation solana.PublicKey
	Mint             solana.PublicKey
	Authority        solana.PublicKey
	Promo            solana.PublicKey
	Platform         solana.PublicKey
	AdminSettings    solana.PublicKey
	TokenAccount     solana.PublicKey
}

func NewBurnDelegatedPromoTokenInstruction(programs pda.ProgramTable, memo Memo, accounts BurnDelegatedPromoTokenAccounts) (solana.Instruction, error) {
	return solanago.NewAnchorInstruction(programs.Promo, instructionBurnDelegatedPromoToken, solana.AccountMetaSlice{
		solana.Meta(accounts.Payer).WRITE().SIGNER(),
		solana.Meta(accounts.DeviceOwner).SIGNER(),
		solana.Meta(accounts.Device),
		solana.Meta(accounts.Campaign).WRITE(),
		solana.Meta(accounts.CampaignLocation),
		solana.Meta(accounts.Mint).WRITE(),
		solana.Meta(accounts.Authority),
		solana.Meta(accounts.Promo).WRITE(),
		solana.Meta(accounts.Platform).WRITE(),
		solana.Meta(accounts.AdminSettings),
		solana.Meta(accounts.TokenAccount).WRITE(),
		solana.Meta(programs.Memo),
		solana.Meta(programs.Token),
		solana.Meta(programs.AssociatedToken),
		solana.Meta(solana.SysVarRentPubkey),
		solana.Meta(solana.SystemProgramID),
	}, memo)
}

type SignMemoAccounts struct {
	Payer  solana.PublicKey
	Signer solana.PublicKey
}

func NewSignMemoInstruction(programs pda.ProgramTable, memo string, accounts SignMemoAccounts) (solana.Instruction, error) {
	return solanago.NewAnchorInstruction(programs.Promo, instructionSignMemo, solana.AccountMetaSlice{
		solana.Meta(accounts.Payer).WRITE().SIGNER(),
		solana.Meta(accounts.Signer).SIGNER(),
		solana.Meta(programs.Memo),
		solana.Meta(solana.SystemProgramID),
	}, memo)
}

type CreateNonFungibleArgs struct {
	Metadata  solanago.DataV2
	IsMutable bool
	MaxSupply solanago.Option[uint64]
}

type CreateNonFungibleAccounts struct {
	Payer           solana.PublicKey
	Authority       solana.PublicKey
	Mint            solana.PublicKey
	TokenAccount    solana.PublicKey
	MetadataAccount solana.PublicKey
	EditionAccount  solana.PublicKey
}

func NewCreateNonFungibleInstruction(programs pda.ProgramTable, args CreateNonFungibleArgs, accounts CreateNonFungibleAccounts) (solana.Instruction, error) {
	return solanago.NewAnchorInstruction(programs.Promo, instructionCreateNonFungible, solana.AccountMetaSlice{
		solana.Meta(accounts.Payer).WRITE().SIGNER(),
		solana.Meta(accounts.Authority),
		solana.Meta(accounts.Mint).WRITE().SIGNER(),
		solana.Meta(accounts.TokenAccount).WRITE(),
		solana.Meta(accounts.MetadataAccount).WRITE(),
		solana.Meta(accounts.EditionAccount).WRITE(),
		solana.Meta(programs.TokenMetadata),
		solana.Meta(programs.Token),
		solana.Meta(programs.AssociatedToken),
		solana.Meta(solana.SysVarRentPubkey),
		solana.Meta(solana.SystemProgramID),
	}, args.Metadata, args.IsMutable, args.MaxSupply)
}
