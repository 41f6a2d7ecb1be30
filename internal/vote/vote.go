package vote

import (
	"context"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"
)

// Choice is the ballot option as the DAO contract encodes it.
type Choice uint8

const (
	ChoiceYes     Choice = 1
	ChoiceNo      Choice = 2
	ChoiceAbstain Choice = 3
)

func (c Choice) Valid() bool {
	return c >= ChoiceYes && c <= ChoiceAbstain
}

func (c Choice) String() string {
	switch c {
	case ChoiceYes:
		return "yes"
	case ChoiceNo:
		return "no"
	case ChoiceAbstain:
		return "abstain"
	default:
		return fmt.Sprintf("choice(%d)", uint8(c))
	}
}

// ParseChoice accepts the option name or its numeric code, case-insensitively.
func ParseChoice(s string) (Choice, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "1":
		return ChoiceYes, nil
	case "no", "2":
		return ChoiceNo, nil
	case "abstain", "3":
		return ChoiceAbstain, nil
	}
	return 0, fmt.Errorf("choice %q is not [yes|no|abstain]", s)
}

type Tally struct {
	Yes     uint64
	No      uint64
	Abstain uint64
}

func (t Tally) Total() uint64 {
	return t.Yes + t.No + t.Abstain
}

// Shares returns the percentage of the total weight behind each option,
// rounded down. All zeros when nobody voted yet.
func (t Tally) Shares() (yes, no, abstain int) {
	all := t.Total()
	if all == 0 {
		return 0, 0, 0
	}
	return int(t.Yes * 100 / all), int(t.No * 100 / all), int(t.Abstain * 100 / all)
}

type Proposal struct {
	ID          uint64
	Title       string
	Description string
	CreatedAt   time.Time
	Deadline    time.Time
	Executed    bool
	Tally       Tally
}

// Open reports whether the proposal still accepts votes at the given time
// according to its own fields. The ledger stays the authority on this.
func (p Proposal) Open(now time.Time) bool {
	return !p.Executed && now.Before(p.Deadline)
}

func (p Proposal) DeadlineIn(now time.Time) time.Duration {
	return p.Deadline.Sub(now).Round(time.Minute)
}

// ProposalVote is one voter's recorded ballot on a proposal.
type ProposalVote struct {
	Voter       string
	Choice      Choice
	TokensSpent *big.Int
}

type TokenInfo struct {
	Name     string
	Symbol   string
	Decimals uint8
}

// Funds is the voter's standing on the token ledger.
type Funds struct {
	Balance   *big.Int
	Allowance *big.Int
	Token     TokenInfo
}

type VoteRequest struct {
	ProposalID uint64
	Weight     uint64
	Choice     Choice
}

func (r VoteRequest) String() string {
	return "proposal " + strconv.FormatUint(r.ProposalID, 10) +
		" weight " + strconv.FormatUint(r.Weight, 10) +
		" choice " + r.Choice.String()
}

// PendingTx is a submitted ledger transaction whose outcome is not known yet.
//
//go:generate mockgen -source vote.go -destination vote_mock.go -package vote
type PendingTx interface {
	Hash() string
	// Wait blocks until the transaction is confirmed. A nil error means it
	// was included and succeeded.
	Wait(context.Context) error
}

// Ledger is the governance contract.
type Ledger interface {
	Address() string
	ProposalCount(ctx context.Context) (uint64, error)
	GetProposal(ctx context.Context, id uint64) (Proposal, error)
	IsVotingActive(ctx context.Context, id uint64) (bool, error)
	CalculateVoteCost(ctx context.Context, weight uint64) (*big.Int, error)
	GetProposalVotes(ctx context.Context, id uint64) ([]ProposalVote, error)
	Vote(ctx context.Context, id uint64, weight uint64, choice Choice) (PendingTx, error)
}

// TokenLedger is the ERC20-like token the ledger charges votes in.
type TokenLedger interface {
	BalanceOf(ctx context.Context, account string) (*big.Int, error)
	Allowance(ctx context.Context, owner, spender string) (*big.Int, error)
	Approve(ctx context.Context, spender string, amount *big.Int) (PendingTx, error)
	Info(ctx context.Context) (TokenInfo, error)
}

// Voter is what front-ends need from the voting service.
type Voter interface {
	GetVoting(context.Context) ([]Proposal, error)
	Proposal(context.Context, uint64) (Proposal, error)
	Votes(context.Context, uint64) ([]ProposalVote, error)
	HasVoted(context.Context, uint64) (bool, error)
	Vote(context.Context, VoteRequest) Result
	Funds(context.Context) (Funds, error)
	Quote(weight uint64) (Quote, error)
}
