package cli

import (
	"fmt"
	"strconv"

	"github.com/gagliardetto/solana-go"
	"github.com/krazyTry/bokoup-go/pda"
	solanago "github.com/krazyTry/bokoup-go/solana"
	"github.com/spf13/cobra"
)

type DeriveCmd struct{}

func NewDeriveCmd() *DeriveCmd {
	return &DeriveCmd{}
}

// derived is one row of derive output.
type derived struct {
	name string
	addr solana.PublicKey
	bump uint8
}

type deriveFunc func(cmd *cobra.Command, d pda.Deriver) ([]derived, error)

func (c *DeriveCmd) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "derive",
		Short: "Derive program addresses offline",
	}
	cmd.AddCommand(
		c.auctionHouseCommand(),
		c.tradeStateCommand(),
		c.escrowCommand(),
		c.receiptsCommand(),
		c.promoCommand(),
		c.merchantCommand(),
		c.campaignLocationCommand(),
	)
	return cmd
}

func (c *DeriveCmd) newCommand(use, short string, run deriveFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, cancel, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			defer cancel()

			rows, err := run(cmd, pda.NewDeriver(e.cfg.Programs))
			if err != nil {
				return err
			}
			table := newTable(cmd.OutOrStdout(), "Account", "Address", "Bump")
			for _, row := range rows {
				table.Append([]string{row.name, row.addr.String(), strconv.Itoa(int(row.bump))})
			}
			table.Render()
			return nil
		},
	}
}

func keyFlag(cmd *cobra.Command, name string) (solana.PublicKey, error) {
	value, err := cmd.Flags().GetString(name)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("failed to get %s flag: %w", name, err)
	}
	return parseKey(name, value)
}

// keys reads every named key flag in order.
func keys(cmd *cobra.Command, names ...string) ([]solana.PublicKey, error) {
	out := make([]solana.PublicKey, len(names))
	for i, name := range names {
		key, err := keyFlag(cmd, name)
		if err != nil {
			return nil, err
		}
		out[i] = key
	}
	return out, nil
}

func requireKeys(cmd *cobra.Command, names ...string) {
	for _, name := range names {
		cmd.Flags().String(name, "", name+" address")
		_ = cmd.MarkFlagRequired(name)
	}
}

func (c *DeriveCmd) auctionHouseCommand() *cobra.Command {
	cmd := c.newCommand("auction-house", "Derive an auction house with its fee and treasury accounts", func(cmd *cobra.Command, d pda.Deriver) ([]derived, error) {
		k, err := keys(cmd, "creator", "treasury-mint")
		if err != nil {
			return nil, err
		}
		ah, bump, err := d.AuctionHouse(k[0], k[1])
		if err != nil {
			return nil, err
		}
		fee, feeBump, err := d.AuctionHouseFeeAccount(ah)
		if err != nil {
			return nil, err
		}
		treasury, treasuryBump, err := d.AuctionHouseTreasury(ah)
		if err != nil {
			return nil, err
		}
		signer, signerBump, err := d.ProgramAsSigner()
		if err != nil {
			return nil, err
		}
		return []derived{
			{"auction house", ah, bump},
			{"fee account", fee, feeBump},
			{"treasury", treasury, treasuryBump},
			{"program as signer", signer, signerBump},
		}, nil
	})
	requireKeys(cmd, "creator")
	cmd.Flags().String("treasury-mint", pda.NativeMint.String(), "treasury mint address")
	return cmd
}

func (c *DeriveCmd) tradeStateCommand() *cobra.Command {
	cmd := c.newCommand("trade-state", "Derive the trade state of an offer", func(cmd *cobra.Command, d pda.Deriver) ([]derived, error) {
		k, err := keys(cmd, "wallet", "auction-house", "treasury-mint", "mint")
		if err != nil {
			return nil, err
		}
		wallet, ah, treasuryMint, mint := k[0], k[1], k[2], k[3]

		priceStr, _ := cmd.Flags().GetString("price")
		decimals, _ := cmd.Flags().GetInt32("decimals")
		size, _ := cmd.Flags().GetUint64("size")
		public, _ := cmd.Flags().GetBool("public")
		price, err := solanago.ToBaseUnits(priceStr, decimals)
		if err != nil {
			return nil, err
		}

		if public {
			ts, bump, err := d.PublicBidTradeState(wallet, ah, treasuryMint, mint, price, size)
			if err != nil {
				return nil, err
			}
			return []derived{{"public bid trade state", ts, bump}}, nil
		}

		tokenAccount, _ := cmd.Flags().GetString("token-account")
		var account solana.PublicKey
		if tokenAccount != "" {
			if account, err = parseKey("token-account", tokenAccount); err != nil {
				return nil, err
			}
		} else if account, _, err = d.AssociatedToken(wallet, mint); err != nil {
			return nil, err
		}
		ts, bump, err := d.TradeState(wallet, ah, account, treasuryMint, mint, price, size)
		if err != nil {
			return nil, err
		}
		free, freeBump, err := d.TradeState(wallet, ah, account, treasuryMint, mint, 0, size)
		if err != nil {
			return nil, err
		}
		return []derived{
			{"token account", account, 0},
			{"trade state", ts, bump},
			{"free trade state", free, freeBump},
		}, nil
	})
	requireKeys(cmd, "wallet", "auction-house", "mint")
	cmd.Flags().String("treasury-mint", pda.NativeMint.String(), "treasury mint address")
	cmd.Flags().String("token-account", "", "token account holding the mint (default the wallet's associated account)")
	cmd.Flags().String("price", "0", "price in treasury mint units, e.g. 1.5")
	cmd.Flags().Int32("decimals", 9, "treasury mint decimals")
	cmd.Flags().Uint64("size", 1, "token size")
	cmd.Flags().Bool("public", false, "derive a public bid trade state")
	return cmd
}

func (c *DeriveCmd) escrowCommand() *cobra.Command {
	cmd := c.newCommand("escrow", "Derive a buyer's escrow payment account", func(cmd *cobra.Command, d pda.Deriver) ([]derived, error) {
		k, err := keys(cmd, "auction-house", "wallet")
		if err != nil {
			return nil, err
		}
		escrow, bump, err := d.EscrowPayment(k[0], k[1])
		if err != nil {
			return nil, err
		}
		return []derived{{"escrow payment", escrow, bump}}, nil
	})
	requireKeys(cmd, "auction-house", "wallet")
	return cmd
}

func (c *DeriveCmd) receiptsCommand() *cobra.Command {
	cmd := c.newCommand("receipts", "Derive the receipts of a sale", func(cmd *cobra.Command, d pda.Deriver) ([]derived, error) {
		k, err := keys(cmd, "seller-trade-state", "buyer-trade-state")
		if err != nil {
			return nil, err
		}
		listing, listingBump, err := d.ListingReceipt(k[0])
		if err != nil {
			return nil, err
		}
		bid, bidBump, err := d.BidReceipt(k[1])
		if err != nil {
			return nil, err
		}
		purchase, purchaseBump, err := d.PurchaseReceipt(k[0], k[1])
		if err != nil {
			return nil, err
		}
		return []derived{
			{"listing receipt", listing, listingBump},
			{"bid receipt", bid, bidBump},
			{"purchase receipt", purchase, purchaseBump},
		}, nil
	})
	requireKeys(cmd, "seller-trade-state", "buyer-trade-state")
	return cmd
}

func (c *DeriveCmd) promoCommand() *cobra.Command {
	cmd := c.newCommand("promo", "Derive the promo accounts of a mint", func(cmd *cobra.Command, d pda.Deriver) ([]derived, error) {
		mint, err := keyFlag(cmd, "mint")
		if err != nil {
			return nil, err
		}
		promo, promoBump, err := d.Promo(mint)
		if err != nil {
			return nil, err
		}
		metadata, metadataBump, err := d.Metadata(mint)
		if err != nil {
			return nil, err
		}
		edition, editionBump, err := d.MasterEdition(mint)
		if err != nil {
			return nil, err
		}
		authority, authorityBump, err := d.Authority()
		if err != nil {
			return nil, err
		}
		admin, adminBump, err := d.AdminSettings()
		if err != nil {
			return nil, err
		}
		return []derived{
			{"promo", promo, promoBump},
			{"metadata", metadata, metadataBump},
			{"master edition", edition, editionBump},
			{"authority", authority, authorityBump},
			{"admin settings", admin, adminBump},
		}, nil
	})
	requireKeys(cmd, "mint")
	return cmd
}

func (c *DeriveCmd) merchantCommand() *cobra.Command {
	cmd := c.newCommand("merchant", "Derive a merchant and, when named, its location, device and campaign", func(cmd *cobra.Command, d pda.Deriver) ([]derived, error) {
		owner, err := keyFlag(cmd, "owner")
		if err != nil {
			return nil, err
		}
		merchant, bump, err := d.Merchant(owner)
		if err != nil {
			return nil, err
		}
		rows := []derived{{"merchant", merchant, bump}}

		locationName, _ := cmd.Flags().GetString("location")
		if locationName != "" {
			location, locationBump, err := d.Location(merchant, locationName)
			if err != nil {
				return nil, err
			}
			rows = append(rows, derived{"location " + strconv.Quote(locationName), location, locationBump})

			deviceName, _ := cmd.Flags().GetString("device")
			if deviceName != "" {
				device, deviceBump, err := d.Device(location, deviceName)
				if err != nil {
					return nil, err
				}
				rows = append(rows, derived{"device " + strconv.Quote(deviceName), device, deviceBump})
			}
		}

		campaignName, _ := cmd.Flags().GetString("campaign")
		if campaignName != "" {
			campaign, campaignBump, err := d.Campaign(merchant, campaignName)
			if err != nil {
				return nil, err
			}
			rows = append(rows, derived{"campaign " + strconv.Quote(campaignName), campaign, campaignBump})
		}
		return rows, nil
	})
	requireKeys(cmd, "owner")
	cmd.Flags().String("location", "", "location name")
	cmd.Flags().String("device", "", "device name at --location")
	cmd.Flags().String("campaign", "", "campaign name")
	return cmd
}

func (c *DeriveCmd) campaignLocationCommand() *cobra.Command {
	cmd := c.newCommand("campaign-location", "Derive the link between a campaign and a location", func(cmd *cobra.Command, d pda.Deriver) ([]derived, error) {
		k, err := keys(cmd, "campaign", "location")
		if err != nil {
			return nil, err
		}
		link, bump, err := d.CampaignLocation(k[0], k[1])
		if err != nil {
			return nil, err
		}
		return []derived{{"campaign location", link, bump}}, nil
	})
	requireKeys(cmd, "campaign", "location")
	return cmd
}
