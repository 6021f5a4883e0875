package auction_house

import (
	"github.com/gagliardetto/solana-go"
	"github.com/krazyTry/bokoup-go/pda"
	solanago "github.com/krazyTry/bokoup-go/solana"
)

type CreateAuctionHouseArgs struct {
	Bump                 uint8
	FeePayerBump         uint8
	TreasuryBump         uint8
	SellerFeeBasisPoints uint16
	RequiresSignOff      bool
	CanChangeSalePrice   bool
}

type CreateAuctionHouseAccounts struct {
	TreasuryMint                       solana.PublicKey
	Payer                              solana.PublicKey
	Authority                          solana.PublicKey
	FeeWithdrawalDestination           solana.PublicKey
	TreasuryWithdrawalDestination      solana.PublicKey
	TreasuryWithdrawalDestinationOwner solana.PublicKey
	AuctionHouse                       solana.PublicKey
	AuctionHouseFeeAccount             solana.PublicKey
	AuctionHouseTreasury               solana.PublicKey
}

func NewCreateAuctionHouseInstruction(programs pda.ProgramTable, args CreateAuctionHouseArgs, accounts CreateAuctionHouseAccounts) (solana.Instruction, error) {
	return solanago.NewAnchorInstruction(programs.AuctionHouse, instructionCreateAuctionHouse, solana.AccountMetaSlice{
		solana.Meta(accounts.TreasuryMint),
		solana.Meta(accounts.Payer).WRITE().SIGNER(),
		solana.Meta(accounts.Authority),
		solana.Meta(accounts.FeeWithdrawalDestination).WRITE(),
		solana.Meta(accounts.TreasuryWithdrawalDestination).WRITE(),
		solana.Meta(accounts.TreasuryWithdrawalDestinationOwner),
		solana.Meta(accounts.AuctionHouse).WRITE(),
		solana.Meta(accounts.AuctionHouseFeeAccount).WRITE(),
		solana.Meta(accounts.AuctionHouseTreasury).WRITE(),
		solana.Meta(programs.Token),
		solana.Meta(solana.SystemProgramID),
		solana.Meta(programs.AssociatedToken),
		solana.Meta(solana.SysVarRentPubkey),
	}, args)
}

type SellArgs struct {
	TradeStateBump      uint8
	FreeTradeStateBump  uint8
	ProgramAsSignerBump uint8
	BuyerPrice          uint64
	TokenSize           uint64
}

type SellAccounts struct {
	Wallet                 solana.PublicKey
	TokenAccount           solana.PublicKey
	Metadata               solana.PublicKey
	Authority              solana.PublicKey
	AuctionHouse           solana.PublicKey
	AuctionHouseFeeAccount solana.PublicKey
	SellerTradeState       solana.PublicKey
	FreeSellerTradeState   solana.PublicKey
	ProgramAsSigner        solana.PublicKey
}

func NewSellInstruction(programs pda.ProgramTable, args SellArgs, accounts SellAccounts) (solana.Instruction, error) {
	return solanago.NewAnchorInstruction(programs.AuctionHouse, instructionSell, solana.AccountMetaSlice{
		solana.Meta(accounts.Wallet).SIGNER(),
		solana.Meta(accounts.TokenAccount).WRITE(),
		solana.Meta(accounts.Metadata),
		solana.Meta(accounts.Authority),
		solana.Meta(accounts.AuctionHouse),
		solana.Meta(accounts.AuctionHouseFeeAccount).WRITE(),
		solana.Meta(accounts.SellerTradeState).WRITE(),
		solana.Meta(accounts.FreeSellerTradeState).WRITE(),
		solana.Meta(programs.Token),
		solana.Meta(solana.SystemProgramID),
		solana.Meta(accounts.ProgramAsSigner),
		solana.Meta(solana.SysVarRentPubkey),
	}, args)
}

type DepositArgs struct {
	EscrowPaymentBump uint8
	Amount            uint64
}

type DepositAccounts struct {
	Wallet                 solana.PublicKey
	PaymentAccount         solana.PublicKey
	TransferAuthority      solana.PublicKey
	EscrowPaymentAccount   solana.PublicKey
	TreasuryMint           solana.PublicKey
	Authority              solana.PublicKey
	AuctionHouse           solana.PublicKey
	AuctionHouseFeeAccount solana.PublicKey
}

func NewDepositInstruction(programs pda.ProgramTable, args DepositArgs, accounts DepositAccounts) (solana.Instruction, error) {
	return solanago.NewAnchorInstruction(programs.AuctionHouse, instructionDeposit, solana.AccountMetaSlice{
		solana.Meta(accounts.Wallet).SIGNER(),
		solana.Meta(accounts.PaymentAccount).WRITE(),
		solana.Meta(accounts.TransferAuthority),
		solana.Meta(accounts.EscrowPaymentAccount).WRITE(),
		solana.Meta(accounts.TreasuryMint),
		solana.Meta(accounts.Authority),
		solana.Meta(accounts.AuctionHouse),
		solana.Meta(accounts.AuctionHouseFeeAccount).WRITE(),
		solana.Meta(programs.Token),
		solana.Meta(solana.SystemProgramID),
		solana.Meta(solana.SysVarRentPubkey),
	}, args)
}

type BuyArgs struct {
	TradeStateBump    uint8
	EscrowPaymentBump uint8
	BuyerPrice        uint64
	TokenSize         uint64
}

type BuyAccounts struct {
	Wallet                 solana.PublicKey
	PaymentAccount         solana.PublicKey
	TransferAuthority      solana.PublicKey
	TreasuryMint           solana.PublicKey
	TokenAccount           solana.PublicKey
	Metadata               solana.PublicKey
	EscrowPaymentAccount   solana.PublicKey
	Authority              solana.PublicKey
	AuctionHouse           solana.PublicKey
	AuctionHouseFeeAccount solana.PublicKey
	BuyerTradeState        solana.PublicKey
}

func (a BuyAccounts) metas(programs pda.ProgramTable) solana.AccountMetaSlice {
	return solana.AccountMetaSlice{
		solana.Meta(a.Wallet).SIGNER(),
		solana.Meta(a.PaymentAccount).WRITE(),
		solana.Meta(a.TransferAuthority),
		solana.Meta(a.TreasuryMint),
		solana.Meta(a.TokenAccount),
		solana.Meta(a.Metadata),
		solana.Meta(a.EscrowPaymentAccount).WRITE(),
		solana.Meta(a.Authority),
		solana.Meta(a.AuctionHouse),
		solana.Meta(a.AuctionHouseFeeAccount).WRITE(),
		solana.Meta(a.BuyerTradeState).WRITE(),
		solana.Meta(programs.Token),
		solana.Meta(solana.SystemProgramID),
		solana.Meta(solana.SysVarRentPubkey),
	}
}

func NewBuyInstruction(programs pda.ProgramTable, args BuyArgs, accounts BuyAccounts) (solana.Instruction, error) {
	return solanago.NewAnchorInstruction(programs.AuctionHouse, instructionBuy, accounts.metas(programs), args)
}

// NewPublicBuyInstruction takes the same accounts as NewBuyInstruction; the
// trade state must come from the public bid recipe.
func NewPublicBuyInstruction(programs pda.ProgramTable, args BuyArgs, accounts BuyAccounts) (solana.Instruction, error) {
	return solanago.NewAnchorInstruction(programs.AuctionHouse, instructionPublicBuy, accounts.metas(programs), args)
}

type ExecuteSaleArgs struct {
	EscrowPaymentBump   uint8
	FreeTradeStateBump  uint8
	ProgramAsSignerBump uint8
	BuyerPrice          uint64
	TokenSize           uint64
}

type ExecuteSaleAccounts struct {
	Buyer                       solana.PublicKey
	Seller                      solana.PublicKey
	TokenAccount                solana.PublicKey
	TokenMint                   solana.PublicKey
	Metadata                    solana.PublicKey
	TreasuryMint                solana.PublicKey
	EscrowPaymentAccount        solana.PublicKey
	SellerPaymentReceiptAccount solana.PublicKey
	BuyerReceiptTokenAccount    solana.PublicKey
	Authority                   solana.PublicKey
	AuctionHouse                solana.PublicKey
	AuctionHouseFeeAccount      solana.PublicKey
	AuctionHouseTreasury        solana.PublicKey
	BuyerTradeState             solana.PublicKey
	SellerTradeState            solana.PublicKey
	FreeTradeState              solana.PublicKey
	ProgramAsSigner             solana.PublicKey

	// Creators are appended writable in the order given. For a non-native
	// treasury mint each creator is followed by its treasury token account.
	Creators []solana.PublicKey
}

func NewExecuteSaleInstruction(programs pda.ProgramTable, args ExecuteSaleArgs, accounts ExecuteSaleAccounts) (solana.Instruction, error) {
	metas := solana.AccountMetaSlice{
		solana.Meta(accounts.Buyer).WRITE(),
		solana.Meta(accounts.Seller).WRITE(),
		solana.Meta(accounts.TokenAccount).WRITE(),
		solana.Meta(accounts.TokenMint),
		solana.Meta(accounts.Metadata),
		solana.Meta(accounts.TreasuryMint),
		solana.Meta(accounts.EscrowPaymentAccount).WRITE(),
		solana.Meta(accounts.SellerPaymentReceiptAccount).WRITE(),
		solana.Meta(accounts.BuyerReceiptTokenAccount).WRITE(),
		solana.Meta(accounts.Authority),
		solana.Meta(accounts.AuctionHouse),
		solana.Meta(accounts.AuctionHouseFeeAccount).WRITE(),
		solana.Meta(accounts.AuctionHouseTreasury).WRITE(),
		solana.Meta(accounts.BuyerTradeState).WRITE(),
		solana.Meta(accounts.SellerTradeState).WRITE(),
		solana.Meta(accounts.FreeTradeState).WRITE(),
		solana.Meta(programs.Token),
		solana.Meta(solana.SystemProgramID),
		solana.Meta(programs.AssociatedToken),
		solana.Meta(accounts.ProgramAsSigner),
		solana.Meta(solana.SysVarRentPubkey),
	}
	for _, creator := range accounts.Creators {
		metas = append(metas, solana.Meta(creator).WRITE())
	}
	return solanago.NewAnchorInstruction(programs.AuctionHouse, instructionExecuteSale, metas, args)
}

type PrintReceiptAccounts struct {
	Receipt    solana.PublicKey
	Bookkeeper solana.PublicKey
}

func receiptMetas(accounts PrintReceiptAccounts) solana.AccountMetaSlice {
	return solana.AccountMetaSlice{
		solana.Meta(accounts.Receipt).WRITE(),
		solana.Meta(accounts.Bookkeeper).WRITE().SIGNER(),
		solana.Meta(solana.SystemProgramID),
		solana.Meta(solana.SysVarRentPubkey),
		solana.Meta(solana.SysVarInstructionsPubkey),
	}
}

// NewPrintListingReceiptInstruction must directly follow the sell
// instruction it records.
func NewPrintListingReceiptInstruction(programs pda.ProgramTable, receiptBump uint8, accounts PrintReceiptAccounts) (solana.Instruction, error) {
	return solanago.NewAnchorInstruction(programs.AuctionHouse, instructionPrintListingReceipt, receiptMetas(accounts), receiptBump)
}

// NewPrintBidReceiptInstruction must directly follow the buy or public buy
// instruction it records.
func NewPrintBidReceiptInstruction(programs pda.ProgramTable, receiptBump uint8, accounts PrintReceiptAccounts) (solana.Instruction, error) {
	return solanago.NewAnchorInstruction(programs.AuctionHouse, instructionPrintBidReceipt, receiptMetas(accounts), receiptBump)
}

type PrintPurchaseReceiptAccounts struct {
	PurchaseReceipt solana.PublicKey
	ListingReceipt  solana.PublicKey
	BidReceipt      solana.PublicKey
	Bookkeeper      solana.PublicKey
}

func NewPrintPurchaseReceiptInstruction(programs pda.ProgramTable, purchaseReceiptBump uint8, accounts PrintPurchaseReceiptAccounts) (solana.Instruction, error) {
	return solanago.NewAnchorInstruction(programs.AuctionHouse, instructionPrintPurchaseReceipt, solana.AccountMetaSlice{
		solana.Meta(accounts.PurchaseReceipt).WRITE(),
		solana.Meta(accounts.ListingReceipt).WRITE(),
		solana.Meta(accounts.BidReceipt).WRITE(),
		solana.Meta(accounts.Bookkeeper).WRITE().SIGNER(),
		solana.Meta(solana.SystemProgramID),
		solana.Meta(solana.SysVarRentPubkey),
		solana.Meta(solana.SysVarInstructionsPubkey),
	}, purchaseReceiptBump)
}
