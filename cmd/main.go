package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/Kuuhaku-web/Arcana/cmd/commands"
)

var rootCmd = &cobra.Command{
	Use:          "arcana",
	Short:        "arcana casts quadratic votes on a token-weighted DAO",
	SilenceUsage: true,
}

func addCommands() {
	commands.AddGlobalFlags(rootCmd)
	rootCmd.AddCommand(commands.BotCmd())
	rootCmd.AddCommand(commands.ProposalsCmd())
	rootCmd.AddCommand(commands.ProposalCmd())
	rootCmd.AddCommand(commands.CostCmd())
	rootCmd.AddCommand(commands.BalanceCmd())
	rootCmd.AddCommand(commands.VoteCmd())
}

func main() {
	addCommands()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
