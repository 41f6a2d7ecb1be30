package cast

import (
	"context"
	"math/big"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/Kuuhaku-web/Arcana/internal/vote"
)

const (
	sigProposalCount    = "getTotalProposals()(uint256)"
	sigGetProposal      = "getProposal(uint256)(uint256,string,string,uint256,uint256,bool,uint256,uint256,uint256)"
	sigIsVotingActive   = "isVotingActive(uint256)(bool)"
	sigCalculateCost    = "calculateVoteCost(uint256)(uint256)"
	sigGetProposalVotes = "getProposalVotes(uint256)((address,uint8,uint256)[])"
	sigVote             = "vote(uint256,uint256,uint8)"
)

var _ vote.Ledger = (*Ledger)(nil)

type Ledger struct {
	client  *Client
	address string
}

func (c *Client) Ledger(address string) *Ledger {
	return &Ledger{client: c, address: address}
}

func (l *Ledger) Address() string {
	return l.address
}

func (l *Ledger) ProposalCount(ctx context.Context) (uint64, error) {
	out, err := l.client.call(ctx, l.address, sigProposalCount)
	if err != nil {
		return 0, err
	}
	n, err := parseUint64(out[0])
	return n, errors.Wrap(err, "failed to parse proposal count")
}

func (l *Ledger) GetProposal(ctx context.Context, id uint64) (vote.Proposal, error) {
	out, err := l.client.call(ctx, l.address, sigGetProposal, strconv.FormatUint(id, 10))
	if err != nil {
		return vote.Proposal{}, err
	}
	if len(out) != 9 {
		return vote.Proposal{}, errors.Errorf("getProposal returned %d values, expected 9", len(out))
	}
	nums := make(map[int]uint64, 6)
	for _, i := range []int{0, 3, 4, 6, 7, 8} {
		if nums[i], err = parseUint64(out[i]); err != nil {
			return vote.Proposal{}, errors.Wrapf(err, "failed to parse field %d of proposal %d", i, id)
		}
	}
	executed, err := parseBool(out[5])
	if err != nil {
		return vote.Proposal{}, errors.Wrapf(err, "failed to parse executed flag of proposal %d", id)
	}
	return vote.Proposal{
		ID:          nums[0],
		Title:       parseString(out[1]),
		Description: parseString(out[2]),
		CreatedAt:   time.Unix(int64(nums[3]), 0),
		Deadline:    time.Unix(int64(nums[4]), 0),
		Executed:    executed,
		Tally: vote.Tally{
			Yes:     nums[6],
			No:      nums[7],
			Abstain: nums[8],
		},
	}, nil
}

func (l *Ledger) IsVotingActive(ctx context.Context, id uint64) (bool, error) {
	out, err := l.client.call(ctx, l.address, sigIsVotingActive, strconv.FormatUint(id, 10))
	if err != nil {
		return false, err
	}
	active, err := parseBool(out[0])
	return active, errors.Wrap(err, "failed to parse voting status")
}

func (l *Ledger) CalculateVoteCost(ctx context.Context, weight uint64) (*big.Int, error) {
	out, err := l.client.call(ctx, l.address, sigCalculateCost, strconv.FormatUint(weight, 10))
	if err != nil {
		return nil, err
	}
	cost, err := parseUint(out[0])
	return cost, errors.Wrap(err, "failed to parse vote cost")
}

func (l *Ledger) GetProposalVotes(ctx context.Context, id uint64) ([]vote.ProposalVote, error) {
	out, err := l.client.call(ctx, l.address, sigGetProposalVotes, strconv.FormatUint(id, 10))
	if err != nil {
		return nil, err
	}
	tuples := parseTuples(out[0])
	votes := make([]vote.ProposalVote, 0, len(tuples))
	for _, fields := range tuples {
		if len(fields) != 3 {
			return nil, errors.Errorf("vote record %v has %d fields, expected 3", fields, len(fields))
		}
		choice, err := parseUint64(fields[1])
		if err != nil {
			return nil, errors.Wrap(err, "failed to parse vote choice")
		}
		spent, err := parseUint(fields[2])
		if err != nil {
			return nil, errors.Wrap(err, "failed to parse tokens spent")
		}
		votes = append(votes, vote.ProposalVote{
			Voter:       fields[0],
			Choice:      vote.Choice(choice),
			TokensSpent: spent,
		})
	}
	return votes, nil
}

func (l *Ledger) Vote(ctx context.Context, id uint64, weight uint64, choice vote.Choice) (vote.PendingTx, error) {
	return l.client.send(ctx, l.address, sigVote,
		strconv.FormatUint(id, 10),
		strconv.FormatUint(weight, 10),
		strconv.FormatUint(uint64(choice), 10),
	)
}
