package commands

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/Kuuhaku-web/Arcana/internal/vote"
)

const queryTimeout = 30 * time.Second

var activeOnly bool

var ProposalsCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "proposals",
		Short: "list proposals with their tallies",
		Args:  cobra.NoArgs,
		RunE:  listProposals,
	}
	cmd.Flags().BoolVarP(&activeOnly, "active", "a", false, "only proposals open for voting")
	return cmd
}

var ProposalCmd = func() *cobra.Command {
	return &cobra.Command{
		Use:   "proposal <id>",
		Short: "show one proposal with every ballot cast on it",
		Args:  cobra.ExactArgs(1),
		RunE:  showProposal,
	}
}

var CostCmd = func() *cobra.Command {
	return &cobra.Command{
		Use:   "cost <weight>",
		Short: "show what a vote of the given weight costs",
		Args:  cobra.ExactArgs(1),
		RunE:  showCost,
	}
}

var BalanceCmd = func() *cobra.Command {
	return &cobra.Command{
		Use:   "balance",
		Short: "show the voter's token balance and the DAO's allowance",
		Args:  cobra.NoArgs,
		RunE:  showBalance,
	}
}

func listProposals(cmd *cobra.Command, args []string) error {
	conf, err := loadConfig()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), queryTimeout)
	defer cancel()
	n, err := newNode(ctx, conf)
	if err != nil {
		return err
	}
	defer n.close()

	var proposals []vote.Proposal
	if activeOnly {
		proposals, err = n.service.GetVoting(ctx)
	} else {
		proposals, err = n.service.ListProposals(ctx)
	}
	if err != nil {
		return err
	}
	if len(proposals) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no proposals")
		return nil
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tYES\tNO\tABSTAIN\tDEADLINE\tSTATE")
	now := time.Now()
	for _, p := range proposals {
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%d\t%s\t%s\n",
			p.ID, p.Title, p.Tally.Yes, p.Tally.No, p.Tally.Abstain,
			p.Deadline.UTC().Format(time.RFC3339), proposalState(p, now))
	}
	return w.Flush()
}

func proposalState(p vote.Proposal, now time.Time) string {
	switch {
	case p.Executed:
		return "executed"
	case p.Open(now):
		return "open"
	}
	return "closed"
}

func parseProposalID(arg string) (uint64, error) {
	id, err := strconv.ParseUint(arg, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "bad proposal id %q", arg)
	}
	if id == 0 {
		return 0, errors.New("proposal ids start at 1")
	}
	return id, nil
}

func showProposal(cmd *cobra.Command, args []string) error {
	id, err := parseProposalID(args[0])
	if err != nil {
		return err
	}
	conf, err := loadConfig()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), queryTimeout)
	defer cancel()
	n, err := newNode(ctx, conf)
	if err != nil {
		return err
	}
	defer n.close()

	p, err := n.service.Proposal(ctx, id)
	if err != nil {
		return err
	}
	ballots, err := n.service.Votes(ctx, id)
	if err != nil {
		return err
	}
	writeProposal(cmd.OutOrStdout(), p, ballots, conf.TokenDecimals, time.Now())
	return nil
}

func writeProposal(out io.Writer, p vote.Proposal, ballots []vote.ProposalVote, decimals uint8, now time.Time) {
	yes, no, abstain := p.Tally.Shares()
	fmt.Fprintf(out, "proposal %d: %s\n", p.ID, p.Title)
	if p.Description != "" {
		fmt.Fprintf(out, "%s\n", p.Description)
	}
	fmt.Fprintf(out, "state:    %s, ends %s\n", proposalState(p, now), p.Deadline.UTC().Format(time.RFC3339))
	fmt.Fprintf(out, "tally:    yes %d (%d%%), no %d (%d%%), abstain %d (%d%%)\n",
		p.Tally.Yes, yes, p.Tally.No, no, p.Tally.Abstain, abstain)
	if len(ballots) == 0 {
		fmt.Fprintln(out, "no ballots")
		return
	}
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "VOTER\tCHOICE\tSPENT")
	for _, b := range ballots {
		fmt.Fprintf(w, "%s\t%s\t%s\n", b.Voter, b.Choice, vote.FormatUnits(b.TokensSpent, decimals))
	}
	w.Flush()
}

func showCost(cmd *cobra.Command, args []string) error {
	conf, err := loadConfig()
	if err != nil {
		return err
	}
	weight, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		return errors.Wrapf(err, "bad weight %q", args[0])
	}
	// pricing is local, no backend needed
	quote, err := vote.PriceBallot(weight, conf.MaxWeight, conf.TokenDecimals)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "weight %d costs %s (%s base units)\n", weight, quote, quote.Amount)
	return nil
}

func showBalance(cmd *cobra.Command, args []string) error {
	conf, err := loadConfig()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), queryTimeout)
	defer cancel()
	n, err := newNode(ctx, conf)
	if err != nil {
		return err
	}
	defer n.close()

	funds, err := n.service.Funds(ctx)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "voter:     %s\n", n.orchestrator.Voter())
	fmt.Fprintf(out, "balance:   %s %s\n", vote.FormatUnits(funds.Balance, funds.Token.Decimals), funds.Token.Symbol)
	fmt.Fprintf(out, "allowance: %s %s\n", vote.FormatUnits(funds.Allowance, funds.Token.Decimals), funds.Token.Symbol)
	return nil
}
