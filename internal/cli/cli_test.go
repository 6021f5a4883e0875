package cli

import (
	"bytes"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/krazyTry/bokoup-go/pda"
	solanago "github.com/krazyTry/bokoup-go/solana"
	"github.com/stretchr/testify/require"
)

// execute runs the root command offline with an env file that does not
// exist, so only the process environment and flags apply.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append(args, "--env-file", filepath.Join(t.TempDir(), "missing.env")))
	err := root.Execute()
	return out.String(), err
}

func TestCLI_DeriveMerchant(t *testing.T) {
	t.Parallel()

	owner := solana.NewWallet().PublicKey()
	out, err := execute(t, "derive", "merchant", "--owner", owner.String(), "--location", "store", "--device", "till", "--campaign", "spring")
	require.NoError(t, err)

	d := pda.NewDeriver(pda.DefaultPrograms())
	merchant, _, err := d.Merchant(owner)
	require.NoError(t, err)
	location, _, err := d.Location(merchant, "store")
	require.NoError(t, err)
	device, _, err := d.Device(location, "till")
	require.NoError(t, err)
	campaign, _, err := d.Campaign(merchant, "spring")
	require.NoError(t, err)

	for _, want := range []solana.PublicKey{merchant, location, device, campaign} {
		require.Contains(t, out, want.String())
	}
	require.Contains(t, out, `location "store"`)
	require.Contains(t, out, `device "till"`)
}

func TestCLI_DerivePromo(t *testing.T) {
	t.Parallel()

	mint := solana.NewWallet().PublicKey()
	out, err := execute(t, "derive", "promo", "--mint", mint.String())
	require.NoError(t, err)

	d := pda.NewDeriver(pda.DefaultPrograms())
	promo, bump, err := d.Promo(mint)
	require.NoError(t, err)
	metadata, _, err := d.Metadata(mint)
	require.NoError(t, err)
	admin, _, err := d.AdminSettings()
	require.NoError(t, err)

	require.Contains(t, out, promo.String())
	require.Contains(t, out, metadata.String())
	require.Contains(t, out, admin.String())

	var promoLine string
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, promo.String()) {
			promoLine = line
		}
	}
	require.Contains(t, promoLine, " "+strconv.Itoa(int(bump))+" ")
}

func TestCLI_DeriveTradeState(t *testing.T) {
	t.Parallel()

	wallet := solana.NewWallet().PublicKey()
	house := solana.NewWallet().PublicKey()
	mint := solana.NewWallet().PublicKey()
	out, err := execute(t, "derive", "trade-state",
		"--wallet", wallet.String(),
		"--auction-house", house.String(),
		"--mint", mint.String(),
		"--price", "1.5",
	)
	require.NoError(t, err)

	d := pda.NewDeriver(pda.DefaultPrograms())
	account, _, err := d.AssociatedToken(wallet, mint)
	require.NoError(t, err)
	ts, _, err := d.TradeState(wallet, house, account, pda.NativeMint, mint, 1_500_000_000, 1)
	require.NoError(t, err)
	free, _, err := d.TradeState(wallet, house, account, pda.NativeMint, mint, 0, 1)
	require.NoError(t, err)

	require.Contains(t, out, account.String())
	require.Contains(t, out, ts.String())
	require.Contains(t, out, free.String())

	out, err = execute(t, "derive", "trade-state",
		"--wallet", wallet.String(),
		"--auction-house", house.String(),
		"--mint", mint.String(),
		"--price", "2",
		"--public",
	)
	require.NoError(t, err)
	public, _, err := d.PublicBidTradeState(wallet, house, pda.NativeMint, mint, 2_000_000_000, 1)
	require.NoError(t, err)
	require.Contains(t, out, public.String())
}

func TestCLI_DeriveErrors(t *testing.T) {
	t.Parallel()

	owner := solana.NewWallet().PublicKey().String()
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "missing flag", args: []string{"derive", "promo"}, want: `required flag(s) "mint" not set`},
		{name: "bad key", args: []string{"derive", "merchant", "--owner", "nope"}, want: `invalid owner "nope"`},
		{name: "long seed", args: []string{"derive", "merchant", "--owner", owner, "--location", strings.Repeat("x", 33)}, want: pda.ErrInvalidSeeds.Error()},
		{name: "bad cluster", args: []string{"derive", "merchant", "--owner", owner, "-u", "moon"}, want: "cluster must be one of"},
		{name: "zero airdrop", args: []string{"airdrop", owner, "--sol", "0"}, want: "must be positive"},
		{name: "bad address", args: []string{"balance", "nope"}, want: `invalid address "nope"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := execute(t, tt.args...)
			require.ErrorContains(t, err, tt.want)
		})
	}
}

func TestCLI_Run(t *testing.T) {
	t.Parallel()

	require.Equal(t, exitCodeError, Run([]string{"derive", "promo", "--mint", "nope"}))
}

func TestCLI_Limit(t *testing.T) {
	t.Parallel()

	require.Equal(t, "3", limit(3, solanago.None[uint32]()))
	require.Equal(t, "3/10", limit(3, solanago.Some[uint32](10)))
}
