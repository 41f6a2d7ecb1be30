package app

import (
	"fmt"
	"strings"

	"github.com/Kuuhaku-web/Arcana/internal/vote"
)

func renderResult(req vote.VoteRequest, res vote.Result) string {
	switch r := res.(type) {
	case vote.Success:
		text := fmt.Sprintf("You voted %s on proposal %d with weight %d and paid %d tokens\nVote tx: %s",
			req.Choice, req.ProposalID, req.Weight, r.CostPaid, r.TxID)
		if r.GrantTxID != "" {
			text += "\nApproval tx: " + r.GrantTxID
		}
		return text
	case vote.Failure:
		return renderFailure(req, r)
	}
	return fmt.Sprintf("Vote on proposal %d ended with an unexpected result %T", req.ProposalID, res)
}

func renderFailure(req vote.VoteRequest, f vote.Failure) string {
	switch f.Kind {
	case vote.KindInvalidRequest:
		return fmt.Sprintf("Vote not sent, the request is invalid: %s", f.Reason)
	case vote.KindInsufficientBalance:
		return fmt.Sprintf("Not enough tokens for weight %d: %s", req.Weight, f.Reason)
	case vote.KindAuthorizationFailed:
		return fmt.Sprintf("Could not approve the DAO to spend the vote cost, nothing was voted: %s", f.Reason)
	case vote.KindVoteRejected:
		return fmt.Sprintf("Proposal %d rejected the vote: %s", req.ProposalID, f.Reason)
	case vote.KindNetworkUnavailable:
		return fmt.Sprintf("The chain is unreachable, try again later: %s", f.Reason)
	case vote.KindIntegrationError:
		return fmt.Sprintf("The DAO contract answered unexpectedly, check the configuration: %s", f.Reason)
	case vote.KindVoteInProgress:
		return "Another vote is still being processed, wait for it to finish"
	}
	return fmt.Sprintf("Vote failed: %s", f.Reason)
}

func renderBallots(ballots []vote.ProposalVote, decimals uint8) string {
	if len(ballots) == 0 {
		return "No ballots yet"
	}
	lines := make([]string, 0, len(ballots)+1)
	lines = append(lines, fmt.Sprintf("%d ballots:", len(ballots)))
	for _, b := range ballots {
		lines = append(lines, fmt.Sprintf("%s %s, spent %s", b.Voter, b.Choice, vote.FormatUnits(b.TokensSpent, decimals)))
	}
	return strings.Join(lines, "\n")
}
