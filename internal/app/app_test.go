package app

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kuuhaku-web/Arcana/internal/vote"
)

const (
	owner  = "alice"
	chatID = int64(42)
)

type sentMessage struct {
	text     string
	keyboard *tgbotapi.InlineKeyboardMarkup
	edited   int
}

// fakeMessenger records what the app sends instead of talking to Telegram.
type fakeMessenger struct {
	mu       sync.Mutex
	sent     []sentMessage
	answered []string
}

func (f *fakeMessenger) ProcessUpdates(ctx context.Context, handler func(tgbotapi.Update) error) error {
	<-ctx.Done()
	return nil
}

func (f *fakeMessenger) SendText(chatID int64, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMessage{text: text})
	return nil
}

func (f *fakeMessenger) SendKeyboard(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMessage{text: text, keyboard: &keyboard})
	return nil
}

func (f *fakeMessenger) EditText(chatID int64, messageID int, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMessage{text: text, edited: messageID})
	return nil
}

func (f *fakeMessenger) AnswerCallback(callbackID, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.answered = append(f.answered, callbackID)
	return nil
}

func (f *fakeMessenger) texts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	texts := make([]string, 0, len(f.sent))
	for _, m := range f.sent {
		texts = append(texts, m.text)
	}
	return texts
}

func newTestApp(t *testing.T) (*App, *vote.MockVoter, *fakeMessenger) {
	t.Helper()
	ctrl := gomock.NewController(t)
	voter := vote.NewMockVoter(ctrl)
	bot := &fakeMessenger{}
	app := NewApp(voter, bot, owner, time.Minute)
	app.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	return app, voter, bot
}

func commandUpdate(user, text string) tgbotapi.Update {
	command := strings.Fields(text)[0]
	return tgbotapi.Update{
		UpdateID: 1,
		Message: &tgbotapi.Message{
			MessageID: 10,
			From:      &tgbotapi.User{UserName: user},
			Chat:      &tgbotapi.Chat{ID: chatID},
			Text:      text,
			Entities: &[]tgbotapi.MessageEntity{
				{Type: "bot_command", Offset: 0, Length: len(command)},
			},
		},
	}
}

func callbackUpdate(user, data string) tgbotapi.Update {
	return tgbotapi.Update{
		UpdateID: 2,
		CallbackQuery: &tgbotapi.CallbackQuery{
			ID:   "cb-1",
			From: &tgbotapi.User{UserName: user},
			Message: &tgbotapi.Message{
				MessageID: 77,
				Chat:      &tgbotapi.Chat{ID: chatID},
			},
			Data: data,
		},
	}
}

func expectQuotes(voter *vote.MockVoter, maxWeight uint64) {
	voter.EXPECT().Quote(gomock.Any()).DoAndReturn(func(weight uint64) (vote.Quote, error) {
		if weight > maxWeight {
			return vote.Quote{}, fmt.Errorf("weight %d is outside [1, %d]", weight, maxWeight)
		}
		return vote.Quote{Weight: weight, Cost: weight * weight}, nil
	}).AnyTimes()
}

func TestApp_StartSendsPrompts(t *testing.T) {
	app, voter, bot := newTestApp(t)
	deadline := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	props := []vote.Proposal{
		{ID: 1, Title: "Dummy proposal", Description: "Dummy proposal", Deadline: deadline,
			Tally: vote.Tally{Yes: 70, No: 30}},
		{ID: 2, Title: "Already voted", Description: "skip me", Deadline: deadline},
	}
	voter.EXPECT().GetVoting(gomock.Any()).Return(props, nil)
	voter.EXPECT().HasVoted(gomock.Any(), uint64(1)).Return(false, nil)
	voter.EXPECT().HasVoted(gomock.Any(), uint64(2)).Return(true, nil)
	expectQuotes(voter, 5)

	require.NoError(t, app.HandleUpdate(context.Background(), commandUpdate(owner, "/start")))

	require.Len(t, bot.sent, 2)
	prompt := bot.sent[0].text
	assert.Contains(t, prompt, "Proposal #1: Dummy proposal")
	assert.Contains(t, prompt, "Yes 70% | No 30% | Abstain 0% (100 votes)")
	assert.Contains(t, prompt, "2026-03-02 12:00 UTC")
	assert.Contains(t, prompt, "in 24h0m0s")

	keyboard := bot.sent[1].keyboard
	require.NotNil(t, keyboard)
	require.Len(t, keyboard.InlineKeyboard, 4)
	// weight 10 is above the max weight and gets no button
	assert.Len(t, keyboard.InlineKeyboard[0], 3)
	assert.Equal(t, "Yes 5 (25)", keyboard.InlineKeyboard[0][2].Text)
	assert.Equal(t, "vote yes 5 1", *keyboard.InlineKeyboard[0][2].CallbackData)
	assert.Equal(t, "vote skip 0 1", *keyboard.InlineKeyboard[3][0].CallbackData)
}

func TestApp_GetPropsFailed(t *testing.T) {
	app, voter, bot := newTestApp(t)
	voter.EXPECT().GetVoting(gomock.Any()).Return(nil, fmt.Errorf("get proposals failed"))

	require.NoError(t, app.HandleUpdate(context.Background(), commandUpdate(owner, "/proposals")))
	assert.Equal(t, []string{"Could not load proposals: get proposals failed"}, bot.texts())
}

func TestApp_NoProposals(t *testing.T) {
	app, voter, bot := newTestApp(t)
	voter.EXPECT().GetVoting(gomock.Any()).Return([]vote.Proposal{}, nil)

	require.NoError(t, app.HandleUpdate(context.Background(), commandUpdate(owner, "/start")))
	assert.Equal(t, []string{"No active proposals found"}, bot.texts())
}

func TestApp_IgnoresStrangers(t *testing.T) {
	app, _, bot := newTestApp(t)

	require.NoError(t, app.HandleUpdate(context.Background(), commandUpdate("mallory", "/start")))
	require.NoError(t, app.HandleUpdate(context.Background(), callbackUpdate("mallory", "vote yes 1 1")))
	assert.Empty(t, bot.sent)
	assert.Equal(t, []string{"cb-1"}, bot.answered)
}

func TestApp_UnknownCommand(t *testing.T) {
	app, _, bot := newTestApp(t)

	require.NoError(t, app.HandleUpdate(context.Background(), commandUpdate(owner, "/frobnicate")))
	require.Len(t, bot.sent, 1)
	assert.True(t, strings.HasPrefix(bot.sent[0].text, "Unknown command: frobnicate"))
}

func TestApp_VoteCallback(t *testing.T) {
	app, voter, bot := newTestApp(t)
	req := vote.VoteRequest{ProposalID: 3, Weight: 2, Choice: vote.ChoiceNo}
	voter.EXPECT().Vote(gomock.Any(), req).DoAndReturn(func(ctx context.Context, _ vote.VoteRequest) vote.Result {
		_, ok := ctx.Deadline()
		assert.True(t, ok)
		return vote.Success{TxID: "0xvote", CostPaid: 4, Amount: big.NewInt(4), GrantTxID: "0xgrant"}
	})

	require.NoError(t, app.HandleUpdate(context.Background(), callbackUpdate(owner, "vote no 2 3")))
	require.Len(t, bot.sent, 1)
	assert.Equal(t, 77, bot.sent[0].edited)
	assert.Equal(t,
		"You voted no on proposal 3 with weight 2 and paid 4 tokens\nVote tx: 0xvote\nApproval tx: 0xgrant",
		bot.sent[0].text)
	assert.Equal(t, []string{"cb-1"}, bot.answered)
}

func TestApp_SkipCallback(t *testing.T) {
	app, _, bot := newTestApp(t)

	require.NoError(t, app.HandleUpdate(context.Background(), callbackUpdate(owner, "vote skip 0 3")))
	assert.Equal(t, []string{"Skipped proposal 3"}, bot.texts())
}

func TestApp_BadCallbackData(t *testing.T) {
	app, _, bot := newTestApp(t)

	require.NoError(t, app.HandleUpdate(context.Background(), callbackUpdate(owner, "vote maybe 1 3")))
	require.NoError(t, app.HandleUpdate(context.Background(), callbackUpdate(owner, "garbage")))
	texts := bot.texts()
	require.Len(t, texts, 2)
	for _, text := range texts {
		assert.True(t, strings.HasPrefix(text, "Failed to process callback data"), text)
	}
}

func TestApp_FailureKindsRenderDistinctly(t *testing.T) {
	kinds := []vote.FailureKind{
		vote.KindInvalidRequest,
		vote.KindInsufficientBalance,
		vote.KindAuthorizationFailed,
		vote.KindVoteRejected,
		vote.KindNetworkUnavailable,
		vote.KindIntegrationError,
		vote.KindVoteInProgress,
	}
	app, voter, bot := newTestApp(t)
	for _, kind := range kinds {
		voter.EXPECT().Vote(gomock.Any(), gomock.Any()).Return(vote.Failure{Kind: kind, Reason: "boom"})
	}

	for range kinds {
		require.NoError(t, app.HandleUpdate(context.Background(), commandUpdate(owner, "/vote 1 yes 3")))
	}
	texts := bot.texts()
	require.Len(t, texts, len(kinds))
	seen := map[string]bool{}
	for _, text := range texts {
		assert.False(t, seen[text], "duplicate message %q", text)
		seen[text] = true
	}
}

func TestApp_VoteCommand(t *testing.T) {
	app, voter, bot := newTestApp(t)
	voter.EXPECT().Vote(gomock.Any(), vote.VoteRequest{ProposalID: 8, Weight: 7, Choice: vote.ChoiceAbstain}).
		Return(vote.Failure{Kind: vote.KindInsufficientBalance, Reason: "insufficient balance: need 49, have 10"})

	require.NoError(t, app.HandleUpdate(context.Background(), commandUpdate(owner, "/vote 8 abstain 7")))
	require.NoError(t, app.HandleUpdate(context.Background(), commandUpdate(owner, "/vote 8 abstain")))
	require.NoError(t, app.HandleUpdate(context.Background(), commandUpdate(owner, "/vote x yes 1")))
	assert.Equal(t, []string{
		"Not enough tokens for weight 7: insufficient balance: need 49, have 10",
		"Usage: /vote <proposal id> <yes|no|abstain> <weight>",
		`Bad proposal id "x"`,
	}, bot.texts())
}

func TestApp_CostAndBalance(t *testing.T) {
	app, voter, bot := newTestApp(t)
	expectQuotes(voter, 100)
	voter.EXPECT().Funds(gomock.Any()).Return(vote.Funds{
		Balance:   big.NewInt(12500),
		Allowance: big.NewInt(900),
		Token:     vote.TokenInfo{Symbol: "ARC", Decimals: 2},
	}, nil)

	require.NoError(t, app.HandleUpdate(context.Background(), commandUpdate(owner, "/cost 4")))
	require.NoError(t, app.HandleUpdate(context.Background(), commandUpdate(owner, "/cost")))
	require.NoError(t, app.HandleUpdate(context.Background(), commandUpdate(owner, "/balance")))
	assert.Equal(t, []string{
		"A vote of weight 4 costs 4² = 16 tokens",
		"Usage: /cost <weight>",
		"Balance: 125 ARC\nApproved for voting: 9 ARC",
	}, bot.texts())
}

func TestApp_ProposalCommand(t *testing.T) {
	app, voter, bot := newTestApp(t)
	deadline := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	prop := vote.Proposal{ID: 3, Title: "Fund the docs", Deadline: deadline, Tally: vote.Tally{Yes: 4, No: 1}}
	ballots := []vote.ProposalVote{
		{Voter: "0xA11ce", Choice: vote.ChoiceYes, TokensSpent: big.NewInt(400)},
		{Voter: "0xB0b", Choice: vote.ChoiceNo, TokensSpent: big.NewInt(100)},
	}
	voter.EXPECT().Proposal(gomock.Any(), uint64(3)).Return(prop, nil)
	voter.EXPECT().Votes(gomock.Any(), uint64(3)).Return(ballots, nil)
	voter.EXPECT().HasVoted(gomock.Any(), uint64(3)).Return(false, nil)
	voter.EXPECT().Quote(gomock.Any()).DoAndReturn(func(weight uint64) (vote.Quote, error) {
		return vote.Quote{Weight: weight, Cost: weight * weight, Decimals: 2}, nil
	}).AnyTimes()

	require.NoError(t, app.HandleUpdate(context.Background(), commandUpdate(owner, "/proposal 3")))

	require.Len(t, bot.sent, 2)
	text := bot.sent[0].text
	assert.Contains(t, text, "Proposal #3: Fund the docs")
	assert.Contains(t, text, "2 ballots:\n0xA11ce yes, spent 4\n0xB0b no, spent 1")
	require.NotNil(t, bot.sent[1].keyboard)
	assert.Equal(t, "vote skip 0 3", *bot.sent[1].keyboard.InlineKeyboard[3][0].CallbackData)
}

func TestApp_ProposalCommandClosedOrMissing(t *testing.T) {
	app, voter, bot := newTestApp(t)
	closed := vote.Proposal{ID: 5, Title: "Old", Deadline: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)}
	voter.EXPECT().Proposal(gomock.Any(), uint64(5)).Return(closed, nil)
	voter.EXPECT().Votes(gomock.Any(), uint64(5)).Return(nil, nil)
	voter.EXPECT().Proposal(gomock.Any(), uint64(9)).Return(vote.Proposal{}, fmt.Errorf("proposal does not exist"))
	expectQuotes(voter, 100)

	require.NoError(t, app.HandleUpdate(context.Background(), commandUpdate(owner, "/proposal 5")))
	require.NoError(t, app.HandleUpdate(context.Background(), commandUpdate(owner, "/proposal 9")))
	require.NoError(t, app.HandleUpdate(context.Background(), commandUpdate(owner, "/proposal abc")))

	texts := bot.texts()
	require.Len(t, texts, 3)
	assert.Contains(t, texts[0], "Proposal #5: Old")
	assert.Contains(t, texts[0], "No ballots yet")
	assert.Equal(t, "Could not load proposal 9: proposal does not exist", texts[1])
	assert.Equal(t, "Usage: /proposal <id>", texts[2])
}

func TestApp_RunStopsWithContext(t *testing.T) {
	app, _, _ := newTestApp(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, app.Run(ctx))
}

func TestVoteDataRoundTrip(t *testing.T) {
	data := encodeVoteData("abstain", 10, 12345)
	assert.LessOrEqual(t, len(data), 64)
	choice, weight, id, err := parseVoteData(data)
	require.NoError(t, err)
	assert.Equal(t, "abstain", choice)
	assert.Equal(t, uint64(10), weight)
	assert.Equal(t, uint64(12345), id)

	_, _, _, err = parseVoteData("vote yes one 2")
	assert.Error(t, err)
}
