package vote

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var _ Voter = (*Service)(nil)

// Service is the read side of the DAO plus the orchestrator, bound to one
// voter.
type Service struct {
	ledger       Ledger
	token        TokenLedger
	orchestrator *Orchestrator
}

func NewService(ledger Ledger, token TokenLedger, orchestrator *Orchestrator) *Service {
	return &Service{
		ledger:       ledger,
		token:        token,
		orchestrator: orchestrator,
	}
}

// ListProposals returns every proposal the ledger knows about, oldest first.
// A failed query is an error, never an empty list.
func (s *Service) ListProposals(ctx context.Context) ([]Proposal, error) {
	count, err := s.ledger.ProposalCount(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query proposal count")
	}
	proposals := make([]Proposal, 0, count)
	for id := uint64(1); id <= count; id++ {
		prop, err := s.ledger.GetProposal(ctx, id)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to query proposal %d", id)
		}
		proposals = append(proposals, prop)
	}
	return proposals, nil
}

// GetVoting returns the proposals currently open for voting.
func (s *Service) GetVoting(ctx context.Context) ([]Proposal, error) {
	proposals, err := s.ListProposals(ctx)
	if err != nil {
		return nil, err
	}
	active := make([]Proposal, 0, len(proposals))
	for _, prop := range proposals {
		ok, err := s.ledger.IsVotingActive(ctx, prop.ID)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to query voting status of proposal %d", prop.ID)
		}
		if !ok {
			log.Debugf("proposal %d is not open for voting", prop.ID)
			continue
		}
		active = append(active, prop)
	}
	return active, nil
}

func (s *Service) Proposal(ctx context.Context, id uint64) (Proposal, error) {
	prop, err := s.ledger.GetProposal(ctx, id)
	if err != nil {
		return Proposal{}, errors.Wrapf(err, "failed to query proposal %d", id)
	}
	return prop, nil
}

func (s *Service) Votes(ctx context.Context, id uint64) ([]ProposalVote, error) {
	votes, err := s.ledger.GetProposalVotes(ctx, id)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to query votes of proposal %d", id)
	}
	return votes, nil
}

// HasVoted reports whether the service's voter already cast a ballot on the
// proposal.
func (s *Service) HasVoted(ctx context.Context, id uint64) (bool, error) {
	votes, err := s.Votes(ctx, id)
	if err != nil {
		return false, err
	}
	for _, v := range votes {
		if strings.EqualFold(v.Voter, s.orchestrator.Voter()) {
			return true, nil
		}
	}
	return false, nil
}

func (s *Service) Funds(ctx context.Context) (Funds, error) {
	voter := s.orchestrator.Voter()
	info, err := s.token.Info(ctx)
	if err != nil {
		return Funds{}, errors.Wrap(err, "failed to query token info")
	}
	balance, err := s.token.BalanceOf(ctx, voter)
	if err != nil {
		return Funds{}, errors.Wrapf(err, "failed to query balance of %s", voter)
	}
	allowance, err := s.token.Allowance(ctx, voter, s.ledger.Address())
	if err != nil {
		return Funds{}, errors.Wrapf(err, "failed to query allowance of %s", voter)
	}
	return Funds{Balance: balance, Allowance: allowance, Token: info}, nil
}

func (s *Service) Quote(weight uint64) (Quote, error) {
	return s.orchestrator.Quote(weight)
}

func (s *Service) Vote(ctx context.Context, req VoteRequest) Result {
	return s.orchestrator.CastVote(ctx, req.ProposalID, req.Weight, req.Choice)
}
