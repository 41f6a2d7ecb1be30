package evm

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/Kuuhaku-web/Arcana/internal/vote"
)

// Backend is what the contract bindings need from a node connection.
// *ethclient.Client satisfies it.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
}

var _ vote.Ledger = (*Ledger)(nil)

type Ledger struct {
	address  common.Address
	abi      abi.ABI
	contract *bind.BoundContract
	backend  Backend
	// nil for a read-only ledger
	opts *bind.TransactOpts
}

type voteRecord struct {
	Voter       common.Address
	Choice      uint8
	TokensSpent *big.Int
}

func NewLedger(address common.Address, backend Backend, opts *bind.TransactOpts) (*Ledger, error) {
	daoABI, _, err := contractABIs()
	if err != nil {
		return nil, err
	}
	return &Ledger{
		address:  address,
		abi:      daoABI,
		contract: bind.NewBoundContract(address, daoABI, backend, backend, backend),
		backend:  backend,
		opts:     opts,
	}, nil
}

func (l *Ledger) Address() string {
	return l.address.Hex()
}

func (l *Ledger) ProposalCount(ctx context.Context) (uint64, error) {
	out, err := l.call(ctx, "getTotalProposals")
	if err != nil {
		return 0, err
	}
	return toUint64(out[0])
}

func (l *Ledger) GetProposal(ctx context.Context, id uint64) (vote.Proposal, error) {
	out, err := l.call(ctx, "getProposal", new(big.Int).SetUint64(id))
	if err != nil {
		return vote.Proposal{}, err
	}
	if len(out) != 9 {
		return vote.Proposal{}, errors.Errorf("getProposal returned %d values, expected 9", len(out))
	}
	nums := make(map[int]uint64, 6)
	for _, i := range []int{0, 3, 4, 6, 7, 8} {
		if nums[i], err = toUint64(out[i]); err != nil {
			return vote.Proposal{}, errors.Wrapf(err, "field %d of proposal %d", i, id)
		}
	}
	title, _ := out[1].(string)
	description, _ := out[2].(string)
	executed, _ := out[5].(bool)
	return vote.Proposal{
		ID:          nums[0],
		Title:       title,
		Description: description,
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
	out, err := l.call(ctx, "isVotingActive", new(big.Int).SetUint64(id))
	if err != nil {
		return false, err
	}
	active, ok := out[0].(bool)
	if !ok {
		return false, errors.Errorf("isVotingActive returned %T", out[0])
	}
	return active, nil
}

func (l *Ledger) CalculateVoteCost(ctx context.Context, weight uint64) (*big.Int, error) {
	out, err := l.call(ctx, "calculateVoteCost", new(big.Int).SetUint64(weight))
	if err != nil {
		return nil, err
	}
	return toBig(out[0])
}

func (l *Ledger) GetProposalVotes(ctx context.Context, id uint64) ([]vote.ProposalVote, error) {
	out, err := l.call(ctx, "getProposalVotes", new(big.Int).SetUint64(id))
	if err != nil {
		return nil, err
	}
	records := *abi.ConvertType(out[0], new([]voteRecord)).(*[]voteRecord)
	votes := make([]vote.ProposalVote, 0, len(records))
	for _, r := range records {
		votes = append(votes, vote.ProposalVote{
			Voter:       r.Voter.Hex(),
			Choice:      vote.Choice(r.Choice),
			TokensSpent: r.TokensSpent,
		})
	}
	return votes, nil
}

func (l *Ledger) Vote(ctx context.Context, id uint64, weight uint64, choice vote.Choice) (vote.PendingTx, error) {
	if l.opts == nil {
		return nil, errors.New("ledger has no signer configured")
	}
	opts := *l.opts
	opts.Context = ctx
	tx, err := l.contract.Transact(&opts, "vote",
		new(big.Int).SetUint64(id),
		new(big.Int).SetUint64(weight),
		uint8(choice),
	)
	if err != nil {
		return nil, errors.Wrap(classify(err, l.abi), "vote transaction failed")
	}
	return newPendingTx(l.backend, tx, opts.From, l.abi), nil
}

func (l *Ledger) call(ctx context.Context, method string, args ...interface{}) ([]interface{}, error) {
	var out []interface{}
	opts := &bind.CallOpts{Context: ctx}
	if l.opts != nil {
		opts.From = l.opts.From
	}
	if err := l.contract.Call(opts, &out, method, args...); err != nil {
		return nil, errors.Wrapf(classify(err, l.abi), "%s call failed", method)
	}
	if len(out) == 0 {
		return nil, errors.Errorf("%s returned nothing", method)
	}
	return out, nil
}

func toBig(v interface{}) (*big.Int, error) {
	n, ok := v.(*big.Int)
	if !ok || n == nil {
		return nil, errors.Errorf("expected uint256, got %T", v)
	}
	return n, nil
}

func toUint64(v interface{}) (uint64, error) {
	n, err := toBig(v)
	if err != nil {
		return 0, err
	}
	if !n.IsUint64() {
		return 0, errors.Errorf("value %s overflows uint64", n)
	}
	return n.Uint64(), nil
}
