package vote

import (
	"context"
	"math/big"
	"testing"
	"time"

	gomock "github.com/golang/mock/gomock"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, ctrl *gomock.Controller) (*Service, *MockLedger, *MockTokenLedger) {
	ledger := NewMockLedger(ctrl)
	token := NewMockTokenLedger(ctrl)
	o := newTestOrchestrator(t, ledger, token)
	return NewService(ledger, token, o), ledger, token
}

func dummyProposal(id uint64) Proposal {
	return Proposal{
		ID:          id,
		Title:       "Dummy proposal",
		Description: "Dummy proposal\nmultiline",
		CreatedAt:   time.Unix(1700000000, 0),
		Deadline:    time.Unix(1700604800, 0),
		Tally:       Tally{Yes: 70, No: 30},
	}
}

func TestService_ListProposals(t *testing.T) {
	ctrl := gomock.NewController(t)
	s, ledger, _ := newTestService(t, ctrl)
	ledger.EXPECT().ProposalCount(gomock.Any()).Return(uint64(2), nil)
	ledger.EXPECT().GetProposal(gomock.Any(), uint64(1)).Return(dummyProposal(1), nil)
	ledger.EXPECT().GetProposal(gomock.Any(), uint64(2)).Return(dummyProposal(2), nil)

	proposals, err := s.ListProposals(context.Background())
	require.NoError(t, err)
	require.Len(t, proposals, 2)
	assert.Equal(t, uint64(2), proposals[1].ID)
}

func TestService_ListProposalsFailureIsNotEmptyList(t *testing.T) {
	ctrl := gomock.NewController(t)
	s, ledger, _ := newTestService(t, ctrl)
	ledgerErr := errors.New("get proposals failed")
	ledger.EXPECT().ProposalCount(gomock.Any()).Return(uint64(3), nil)
	ledger.EXPECT().GetProposal(gomock.Any(), uint64(1)).Return(dummyProposal(1), nil)
	ledger.EXPECT().GetProposal(gomock.Any(), uint64(2)).Return(Proposal{}, ledgerErr)

	proposals, err := s.ListProposals(context.Background())
	assert.Nil(t, proposals)
	assert.ErrorIs(t, err, ledgerErr)
}

func TestService_NoProposals(t *testing.T) {
	ctrl := gomock.NewController(t)
	s, ledger, _ := newTestService(t, ctrl)
	ledger.EXPECT().ProposalCount(gomock.Any()).Return(uint64(0), nil)

	proposals, err := s.GetVoting(context.Background())
	assert.NoError(t, err)
	assert.NotNil(t, proposals)
	assert.Empty(t, proposals)
}

func TestService_GetVotingFiltersClosedProposals(t *testing.T) {
	ctrl := gomock.NewController(t)
	s, ledger, _ := newTestService(t, ctrl)
	ledger.EXPECT().ProposalCount(gomock.Any()).Return(uint64(2), nil)
	ledger.EXPECT().GetProposal(gomock.Any(), uint64(1)).Return(dummyProposal(1), nil)
	ledger.EXPECT().GetProposal(gomock.Any(), uint64(2)).Return(dummyProposal(2), nil)
	ledger.EXPECT().IsVotingActive(gomock.Any(), uint64(1)).Return(false, nil)
	ledger.EXPECT().IsVotingActive(gomock.Any(), uint64(2)).Return(true, nil)

	proposals, err := s.GetVoting(context.Background())
	require.NoError(t, err)
	require.Len(t, proposals, 1)
	assert.Equal(t, uint64(2), proposals[0].ID)
}

func TestService_ProposalAndVotes(t *testing.T) {
	ctrl := gomock.NewController(t)
	s, ledger, _ := newTestService(t, ctrl)
	ballots := []ProposalVote{
		{Voter: testVoter, Choice: ChoiceAbstain, TokensSpent: big.NewInt(9)},
	}
	ledger.EXPECT().GetProposal(gomock.Any(), uint64(3)).Return(dummyProposal(3), nil)
	ledger.EXPECT().GetProposal(gomock.Any(), uint64(4)).Return(Proposal{}, errors.New("proposal does not exist"))
	ledger.EXPECT().GetProposalVotes(gomock.Any(), uint64(3)).Return(ballots, nil)

	prop, err := s.Proposal(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, dummyProposal(3), prop)

	_, err = s.Proposal(context.Background(), 4)
	assert.ErrorContains(t, err, "failed to query proposal 4")

	votes, err := s.Votes(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, ballots, votes)
}

func TestService_HasVoted(t *testing.T) {
	ctrl := gomock.NewController(t)
	s, ledger, _ := newTestService(t, ctrl)
	ledger.EXPECT().GetProposalVotes(gomock.Any(), uint64(1)).Return([]ProposalVote{
		{Voter: "0x00000000000000000000000000000000000000bb", Choice: ChoiceNo, TokensSpent: big.NewInt(4)},
		// the ledger reports checksummed addresses
		{Voter: "0x00000000000000000000000000000000000000AA", Choice: ChoiceYes, TokensSpent: big.NewInt(1)},
	}, nil)
	ledger.EXPECT().GetProposalVotes(gomock.Any(), uint64(2)).Return(nil, nil)

	voted, err := s.HasVoted(context.Background(), 1)
	assert.NoError(t, err)
	assert.True(t, voted)

	voted, err = s.HasVoted(context.Background(), 2)
	assert.NoError(t, err)
	assert.False(t, voted)
}

func TestService_Funds(t *testing.T) {
	ctrl := gomock.NewController(t)
	s, ledger, token := newTestService(t, ctrl)
	ledger.EXPECT().Address().Return(testDAO).AnyTimes()
	token.EXPECT().Info(gomock.Any()).Return(TokenInfo{Name: "Campus Token", Symbol: "ARC", Decimals: 18}, nil)
	token.EXPECT().BalanceOf(gomock.Any(), testVoter).Return(big.NewInt(500), nil)
	token.EXPECT().Allowance(gomock.Any(), testVoter, testDAO).Return(big.NewInt(25), nil)

	funds, err := s.Funds(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ARC", funds.Token.Symbol)
	assert.Equal(t, int64(500), funds.Balance.Int64())
	assert.Equal(t, int64(25), funds.Allowance.Int64())
}

func TestService_VoteDelegatesToOrchestrator(t *testing.T) {
	ctrl := gomock.NewController(t)
	s, _, _ := newTestService(t, ctrl)

	res := s.Vote(context.Background(), VoteRequest{ProposalID: 1, Weight: 0, Choice: ChoiceYes})
	f, ok := res.(Failure)
	require.True(t, ok)
	assert.Equal(t, KindInvalidRequest, f.Kind)
}
