package auction_house_test

import (
	"bytes"
	"context"
	"testing"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	solanarpc "github.com/gagliardetto/solana-go/rpc"
	ah "github.com/krazyTry/bokoup-go/auction_house"
	"github.com/krazyTry/bokoup-go/pda"
	solanago "github.com/krazyTry/bokoup-go/solana"
	"github.com/krazyTry/bokoup-go/solana/rpctest"
	"github.com/near/borsh-go"
	"github.com/stretchr/testify/require"
)

func borshDecode(data []byte, out any) error {
	return borsh.Deserialize(out, data)
}

func TestAuctionHouse_GetAuctionHouse(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	got, err := f.client.GetAuctionHouse(t.Context(), f.auctionHouse)
	require.NoError(t, err)
	require.Equal(t, f.state, *got)

	_, err = f.client.GetAuctionHouse(t.Context(), solana.NewWallet().PublicKey())
	require.ErrorIs(t, err, solanago.ErrAccountNotFound)
}

func TestAuctionHouse_GetAuctionHouse_WrongOwner(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	data := encodeAuctionHouse(t, f.state)
	f.rpc.GetAccountInfoWithOptsFunc = func(context.Context, solana.PublicKey, *solanarpc.GetAccountInfoOpts) (*solanarpc.GetAccountInfoResult, error) {
		return rpctest.AccountResult(solana.SystemProgramID, data), nil
	}
	_, err := f.client.GetAuctionHouse(t.Context(), f.auctionHouse)
	require.ErrorIs(t, err, solanago.ErrInvalidAccountData)
}

func TestAuctionHouse_ParseAuctionHouse_Discriminator(t *testing.T) {
	t.Parallel()

	data := encodeAuctionHouse(t, ah.AuctionHouse{})
	copy(data, solanago.AccountDiscriminator(ah.AccountKeyBidReceipt))
	_, err := ah.ParseAuctionHouse(data)
	require.ErrorIs(t, err, solanago.ErrInvalidAccountData)
}

func TestAuctionHouse_ParseListingReceipt(t *testing.T) {
	t.Parallel()

	want := ah.ListingReceipt{
		TradeState:      solana.NewWallet().PublicKey(),
		Bookkeeper:      solana.NewWallet().PublicKey(),
		AuctionHouse:    solana.NewWallet().PublicKey(),
		Seller:          solana.NewWallet().PublicKey(),
		Metadata:        solana.NewWallet().PublicKey(),
		PurchaseReceipt: solanago.Some(solana.NewWallet().PublicKey()),
		Price:           1_000_000,
		TokenSize:       1,
		Bump:            254,
		TradeStateBump:  253,
		CreatedAt:       1_700_000_000,
	}
	buf := new(bytes.Buffer)
	buf.Write(solanago.AccountDiscriminator(ah.AccountKeyListingReceipt))
	require.NoError(t, bin.NewBorshEncoder(buf).Encode(want))

	got, err := ah.ParseListingReceipt(buf.Bytes())
	require.NoError(t, err)
	require.Equal(t, want, *got)
}

func TestAuctionHouse_GetListingReceiptsBySeller(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	seller := solana.NewWallet().PublicKey()
	receipt := ah.ListingReceipt{Seller: seller, Price: 7, TokenSize: 1}
	buf := new(bytes.Buffer)
	buf.Write(solanago.AccountDiscriminator(ah.AccountKeyListingReceipt))
	require.NoError(t, bin.NewBorshEncoder(buf).Encode(receipt))
	address := solana.NewWallet().PublicKey()

	var gotOpts *solanarpc.GetProgramAccountsOpts
	f.rpc.GetProgramAccountsWithOptsFunc = func(_ context.Context, program solana.PublicKey, opts *solanarpc.GetProgramAccountsOpts) (solanarpc.GetProgramAccountsResult, error) {
		require.Equal(t, pda.AuctionHouseProgramID, program)
		gotOpts = opts
		return solanarpc.GetProgramAccountsResult{
			{Pubkey: address, Account: rpctest.Account(program, buf.Bytes())},
			{Pubkey: solana.NewWallet().PublicKey(), Account: rpctest.Account(program, []byte{1, 2, 3})},
		}, nil
	}

	out, err := f.client.GetListingReceiptsBySeller(t.Context(), seller)
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, address, out[0].Pubkey)
	require.Equal(t, uint64(7), out[0].Account.Price)

	require.Len(t, gotOpts.Filters, 2)
	require.Equal(t, uint64(8+32*3), gotOpts.Filters[1].Memcmp.Offset)
}
