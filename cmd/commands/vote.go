package commands

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/Kuuhaku-web/Arcana/internal/vote"
)

var voteTimeout time.Duration

var VoteCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vote <proposal id> <yes|no|abstain> <weight>",
		Short: "cast a quadratic vote, approving the DAO for the cost if needed",
		Args:  cobra.ExactArgs(3),
		RunE:  castVote,
	}
	cmd.Flags().DurationVarP(&voteTimeout, "timeout", "t", 0, "overall deadline, defaults to vote_timeout from the config")
	return cmd
}

func parseVoteArgs(args []string) (vote.VoteRequest, error) {
	proposalID, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		return vote.VoteRequest{}, errors.Wrapf(err, "bad proposal id %q", args[0])
	}
	choice, err := vote.ParseChoice(args[1])
	if err != nil {
		return vote.VoteRequest{}, err
	}
	weight, err := strconv.ParseUint(args[2], 10, 64)
	if err != nil {
		return vote.VoteRequest{}, errors.Wrapf(err, "bad weight %q", args[2])
	}
	return vote.VoteRequest{ProposalID: proposalID, Weight: weight, Choice: choice}, nil
}

func castVote(cmd *cobra.Command, args []string) error {
	req, err := parseVoteArgs(args)
	if err != nil {
		return err
	}
	conf, err := loadConfig()
	if err != nil {
		return err
	}
	timeout := voteTimeout
	if timeout == 0 {
		timeout = conf.VoteTimeout
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()
	n, err := newNode(ctx, conf)
	if err != nil {
		return err
	}
	defer n.close()

	switch res := n.service.Vote(ctx, req).(type) {
	case vote.Success:
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "voted %s on proposal %d with weight %d, paid %d tokens\n",
			req.Choice, req.ProposalID, req.Weight, res.CostPaid)
		if res.GrantTxID != "" {
			fmt.Fprintf(out, "approve tx: %s\n", res.GrantTxID)
		}
		fmt.Fprintf(out, "vote tx:    %s\n", res.TxID)
		return nil
	case vote.Failure:
		return res
	}
	return errors.New("vote ended with an unknown result")
}
