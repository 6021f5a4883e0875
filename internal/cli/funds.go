package cli

import (
	"fmt"

	solanago "github.com/krazyTry/bokoup-go/solana"
	"github.com/spf13/cobra"
)

type FundsCmd struct{}

func NewFundsCmd() *FundsCmd {
	return &FundsCmd{}
}

func (c *FundsCmd) BalanceCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "balance <address>",
		Short: "Show the SOL balance of an address",
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

			lamports, err := solanago.Balance(e.ctx, e.cfg.RPCClient(), address, e.cfg.Commitment)
			if err != nil {
				return err
			}
			table := newTable(cmd.OutOrStdout(), "Address", "Lamports", "SOL")
			table.Append([]string{address.String(), fmt.Sprintf("%d", lamports), solanago.LamportsToSOL(lamports).String()})
			table.Render()
			return nil
		},
	}
}

func (c *FundsCmd) AirdropCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "airdrop <address>",
		Short: "Request an airdrop on a local, dev or test cluster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			address, err := parseKey("address", args[0])
			if err != nil {
				return err
			}
			sol, err := cmd.Flags().GetString("sol")
			if err != nil {
				return fmt.Errorf("failed to get sol flag: %w", err)
			}
			lamports, err := solanago.SOLToLamports(sol)
			if err != nil {
				return err
			}
			if lamports == 0 {
				return fmt.Errorf("airdrop amount must be positive")
			}

			e, cancel, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			defer cancel()

			exec := solanago.NewExecutor(e.log, e.cfg.RPCClient(), e.cfg.ExecutorOptions()...)
			sig, err := exec.Airdrop(e.ctx, address, lamports)
			if err != nil {
				return err
			}
			e.log.Info("--> Airdrop confirmed", "address", address, "sol", sol, "sig", sig)
			return nil
		},
	}
	cmd.Flags().String("sol", "1", "amount of SOL to request")
	return cmd
}
