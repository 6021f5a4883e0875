package cli

import (
	"fmt"
	"strconv"

	"github.com/gagliardetto/solana-go"
	ah "github.com/krazyTry/bokoup-go/auction_house"
	"github.com/krazyTry/bokoup-go/offchain"
	solanago "github.com/krazyTry/bokoup-go/solana"
	tm "github.com/krazyTry/bokoup-go/token_metadata"
	"github.com/spf13/cobra"
)

type AuctionHouseCmd struct{}

func NewAuctionHouseCmd() *AuctionHouseCmd {
	return &AuctionHouseCmd{}
}

func (c *AuctionHouseCmd) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auction-house",
		Short: "Read auction house state",
	}
	cmd.AddCommand(c.getCommand(), c.listingsCommand())
	return cmd
}

func (c *AuctionHouseCmd) getCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <address>",
		Short: "Show an auction house",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			address, err := parseKey("address", args[0])
			if err != nil {
				return err
			}
			e, cancel, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			defer cancel()

			client := ah.NewClient(e.log, e.cfg.RPCClient(), e.cfg.Programs, e.cfg.ExecutorOptions()...)
			house, err := client.GetAuctionHouse(e.ctx, address)
			if err != nil {
				return err
			}

			table := newTable(cmd.OutOrStdout(), "Field", "Value")
			table.AppendBulk([][]string{
				{"address", address.String()},
				{"authority", house.Authority.String()},
				{"creator", house.Creator.String()},
				{"treasury mint", house.TreasuryMint.String()},
				{"fee account", house.AuctionHouseFeeAccount.String()},
				{"treasury", house.AuctionHouseTreasury.String()},
				{"fee withdrawal destination", house.FeeWithdrawalDestination.String()},
				{"treasury withdrawal destination", house.TreasuryWithdrawalDestination.String()},
				{"seller fee basis points", strconv.Itoa(int(house.SellerFeeBasisPoints))},
				{"requires sign off", strconv.FormatBool(house.RequiresSignOff)},
				{"can change sale price", strconv.FormatBool(house.CanChangeSalePrice)},
			})
			table.Render()
			return nil
		},
	}
}

func (c *AuctionHouseCmd) listingsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "listings",
		Short: "List the listing receipts of a seller",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			seller, err := keyFlag(cmd, "seller")
			if err != nil {
				return err
			}
			e, cancel, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			defer cancel()

			client := ah.NewClient(e.log, e.cfg.RPCClient(), e.cfg.Programs, e.cfg.ExecutorOptions()...)
			receipts, err := client.GetListingReceiptsBySeller(e.ctx, seller)
			if err != nil {
				return err
			}

			table := newTable(cmd.OutOrStdout(), "Receipt", "Auction House", "Price (SOL)", "Size", "Canceled", "Sold")
			for _, r := range receipts {
				table.Append([]string{
					r.Pubkey.String(),
					r.Account.AuctionHouse.String(),
					solanago.LamportsToSOL(r.Account.Price).String(),
					strconv.FormatUint(r.Account.TokenSize, 10),
					strconv.FormatBool(r.Account.CanceledAt.Valid),
					strconv.FormatBool(r.Account.PurchaseReceipt.Valid),
				})
			}
			table.Render()
			return nil
		},
	}
	requireKeys(cmd, "seller")
	return cmd
}

type PromoCmd struct{}

func NewPromoCmd() *PromoCmd {
	return &PromoCmd{}
}

func (c *PromoCmd) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "promo",
		Short: "Read promo state",
	}
	cmd.AddCommand(c.getCommand(), c.listCommand())
	return cmd
}

func newPromoClient(e *env) (*tm.Client, error) {
	fetcher, err := offchain.NewFetcher(e.cfg.FetcherConfig(e.log))
	if err != nil {
		return nil, err
	}
	return tm.NewClient(e.log, e.cfg.RPCClient(), e.cfg.Programs, fetcher, e.cfg.ExecutorOptions()...)
}

func (c *PromoCmd) getCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <mint>",
		Short: "Show a promo with its mint and metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mint, err := parseKey("mint", args[0])
			if err != nil {
				return err
			}
			e, cancel, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			defer cancel()

			client, err := newPromoClient(e)
			if err != nil {
				return err
			}
			ext, err := client.GetPromoExtended(e.ctx, mint)
			if err != nil {
				return err
			}

			rows := [][]string{
				{"promo", ext.Address.String()},
				{"campaign", ext.Promo.Campaign.String()},
				{"mint", mint.String()},
				{"supply", strconv.FormatUint(ext.Mint.Supply, 10)},
				{"mint count", limit(ext.Promo.MintCount, ext.Promo.MaxMint)},
				{"burn count", limit(ext.Promo.BurnCount, ext.Promo.MaxBurn)},
				{"active", strconv.FormatBool(ext.Promo.Active)},
				{"name", ext.Metadata.Name},
				{"symbol", ext.Metadata.Symbol},
				{"uri", ext.Metadata.URI},
			}
			if doc := ext.MetadataJSON; doc != nil {
				rows = append(rows,
					[]string{"description", doc.Description},
					[]string{"image", doc.Image},
				)
				for _, attr := range doc.Attributes {
					rows = append(rows, []string{"attribute " + attr.TraitType, fmt.Sprint(attr.Value)})
				}
			}
			table := newTable(cmd.OutOrStdout(), "Field", "Value")
			table.AppendBulk(rows)
			table.Render()
			return nil
		},
	}
}

func (c *PromoCmd) listCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the promos of a campaign",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			campaign, err := keyFlag(cmd, "campaign")
			if err != nil {
				return err
			}
			e, cancel, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			defer cancel()

			client, err := newPromoClient(e)
			if err != nil {
				return err
			}
			promos, err := client.GetPromosByCampaign(e.ctx, campaign)
			if err != nil {
				return err
			}
			mints := make([]solana.PublicKey, 0, len(promos))
			for _, p := range promos {
				mints = append(mints, p.Account.Mint)
			}
			exts, err := client.GetPromoExtendeds(e.ctx, mints)
			if err != nil {
				return err
			}

			table := newTable(cmd.OutOrStdout(), "Mint", "Name", "Minted", "Burned", "Active")
			for _, mint := range mints {
				ext, ok := exts[mint.String()]
				if !ok {
					continue
				}
				table.Append([]string{
					mint.String(),
					ext.Metadata.Name,
					limit(ext.Promo.MintCount, ext.Promo.MaxMint),
					limit(ext.Promo.BurnCount, ext.Promo.MaxBurn),
					strconv.FormatBool(ext.Promo.Active),
				})
			}
			table.Render()
			return nil
		},
	}
	requireKeys(cmd, "campaign")
	return cmd
}

// limit renders a counter with its optional cap, e.g. "3/100".
func limit(count uint32, maxCount solanago.Option[uint32]) string {
	if !maxCount.Valid {
		return strconv.FormatUint(uint64(count), 10)
	}
	return fmt.Sprintf("%d/%d", count, maxCount.Value)
}
