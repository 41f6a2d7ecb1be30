package app

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"strconv"
	"strings"
	"text/template"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/Kuuhaku-web/Arcana/internal/vote"
)

const (
	cmdTimeout = time.Second * 15

	voteButtonData = "vote %s %d %d"
	skipChoice     = "skip"
)

var (
	//go:embed votePrompt.tmpl
	votePromptText string
	votePromptTmpl = template.Must(template.New("votePrompt").Parse(votePromptText))

	presetWeights = []uint64{1, 2, 5, 10}
	choices       = []vote.Choice{vote.ChoiceYes, vote.ChoiceNo, vote.ChoiceAbstain}
)

// Messenger is the chat surface the app talks through. *tgbot.TgBot
// implements it.
type Messenger interface {
	ProcessUpdates(ctx context.Context, handler func(tgbotapi.Update) error) error
	SendText(chatID int64, text string) error
	SendKeyboard(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) error
	EditText(chatID int64, messageID int, text string) error
	AnswerCallback(callbackID, text string) error
}

type App struct {
	voter       vote.Voter
	bot         Messenger
	username    string
	voteTimeout time.Duration
	now         func() time.Time
}

func NewApp(voter vote.Voter, bot Messenger, username string, voteTimeout time.Duration) *App {
	return &App{
		voter:       voter,
		bot:         bot,
		username:    username,
		voteTimeout: voteTimeout,
		now:         time.Now,
	}
}

// Run serves updates until ctx is done. A failed update is logged and does
// not stop the bot.
func (app *App) Run(ctx context.Context) error {
	return app.bot.ProcessUpdates(
		ctx,
		func(update tgbotapi.Update) error {
			if err := app.HandleUpdate(ctx, update); err != nil {
				log.Errorf("failed to process update %d: %v", update.UpdateID, err)
			}
			return nil
		},
	)
}

func (app *App) HandleUpdate(ctx context.Context, update tgbotapi.Update) error {
	if update.Message != nil && update.Message.IsCommand() {
		if err := app.ProcessCommand(ctx, update.Message); err != nil {
			return errors.Wrapf(err, "failed to process command '%s'", update.Message.Command())
		}
		return nil
	}
	if update.CallbackQuery == nil {
		return nil
	}
	if err := app.ProcessVoteCallback(ctx, update.CallbackQuery); err != nil {
		return errors.Wrapf(err, "failed to process vote callback '%s'", update.CallbackQuery.Data)
	}
	return nil
}

func (app *App) ProcessCommand(ctx context.Context, msg *tgbotapi.Message) error {
	log.Infof("received /%s", msg.Command())
	if ok := app.validateUser(msg.From); !ok {
		log.Error("skipping command")
		return nil
	}
	chatID := msg.Chat.ID
	switch msg.Command() {
	case "start", "proposals":
		return app.sendPrompts(ctx, chatID)
	case "proposal":
		return app.proposalCommand(ctx, chatID, msg.CommandArguments())
	case "vote":
		return app.voteCommand(ctx, chatID, msg.CommandArguments())
	case "cost":
		return app.costCommand(chatID, msg.CommandArguments())
	case "balance":
		return app.balanceCommand(ctx, chatID)
	}
	return app.bot.SendText(chatID, fmt.Sprintf(
		"Unknown command: %s\nTry /proposals, /proposal <id>, /vote <id> <yes|no|abstain> <weight>, /cost <weight> or /balance",
		msg.Command(),
	))
}

func (app *App) sendPrompts(ctx context.Context, chatID int64) error {
	ctx, cancel := context.WithTimeout(ctx, cmdTimeout)
	defer cancel()
	proposals, err := app.voter.GetVoting(ctx)
	if err != nil {
		log.Errorf("failed to get proposals: %v", err)
		return app.bot.SendText(chatID, fmt.Sprintf("Could not load proposals: %v", errors.Cause(err)))
	}
	if len(proposals) == 0 {
		log.Info("found 0 proposals")
		return app.bot.SendText(chatID, "No active proposals found")
	}
	for _, prop := range proposals {
		log.Infof("found proposal: %d", prop.ID)
		if voted, _ := app.voter.HasVoted(ctx, prop.ID); voted {
			log.Infof("skipped already voted proposal %d", prop.ID)
			continue
		}
		if err := app.SendVotePrompt(prop, chatID); err != nil {
			return errors.Wrap(err, "failed to send vote prompt")
		}
		log.Infof("sent prompt for proposal: %d", prop.ID)
	}
	return nil
}

type promptView struct {
	vote.Proposal
	YesShare, NoShare, AbstainShare int
	Total                           uint64
	Left                            time.Duration
}

func (app *App) SendVotePrompt(prop vote.Proposal, chatID int64) error {
	prompt, err := app.renderPrompt(prop)
	if err != nil {
		return err
	}
	if err := app.bot.SendText(chatID, prompt); err != nil {
		return err
	}
	return app.sendKeyboard(chatID, prop.ID)
}

func (app *App) sendKeyboard(chatID int64, proposalID uint64) error {
	return app.bot.SendKeyboard(chatID, "Pick an option and a weight, the cost is weight squared", app.voteKeyboard(proposalID))
}

func (app *App) renderPrompt(prop vote.Proposal) (string, error) {
	view := promptView{
		Proposal: prop,
		Total:    prop.Tally.Total(),
		Left:     prop.DeadlineIn(app.now()),
	}
	view.YesShare, view.NoShare, view.AbstainShare = prop.Tally.Shares()
	promptBuf := &bytes.Buffer{}
	if err := votePromptTmpl.Execute(promptBuf, view); err != nil {
		return "", errors.Wrap(err, "failed to render vote prompt")
	}
	return promptBuf.String(), nil
}

// proposalCommand shows one proposal with its ballots and offers the vote
// keyboard while it is open and the voter has not voted yet.
func (app *App) proposalCommand(ctx context.Context, chatID int64, args string) error {
	proposalID, err := strconv.ParseUint(strings.TrimSpace(args), 10, 64)
	if err != nil || proposalID == 0 {
		return app.bot.SendText(chatID, "Usage: /proposal <id>")
	}
	ctx, cancel := context.WithTimeout(ctx, cmdTimeout)
	defer cancel()
	prop, err := app.voter.Proposal(ctx, proposalID)
	if err != nil {
		log.Errorf("failed to get proposal %d: %v", proposalID, err)
		return app.bot.SendText(chatID, fmt.Sprintf("Could not load proposal %d: %v", proposalID, errors.Cause(err)))
	}
	ballots, err := app.voter.Votes(ctx, proposalID)
	if err != nil {
		log.Errorf("failed to get votes of proposal %d: %v", proposalID, err)
		return app.bot.SendText(chatID, fmt.Sprintf("Could not load votes of proposal %d: %v", proposalID, errors.Cause(err)))
	}
	prompt, err := app.renderPrompt(prop)
	if err != nil {
		return err
	}
	if err := app.bot.SendText(chatID, prompt+"\n"+renderBallots(ballots, app.tokenDecimals())); err != nil {
		return err
	}
	if !prop.Open(app.now()) {
		return nil
	}
	if voted, _ := app.voter.HasVoted(ctx, proposalID); voted {
		return nil
	}
	return app.sendKeyboard(chatID, proposalID)
}

// tokenDecimals reads the token precision from a local quote.
func (app *App) tokenDecimals() uint8 {
	quote, err := app.voter.Quote(vote.MinWeight)
	if err != nil {
		return vote.DefaultDecimals
	}
	return quote.Decimals
}

func (app *App) voteKeyboard(proposalID uint64) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(choices)+1)
	for _, choice := range choices {
		row := make([]tgbotapi.InlineKeyboardButton, 0, len(presetWeights))
		for _, weight := range presetWeights {
			quote, err := app.voter.Quote(weight)
			if err != nil {
				continue
			}
			label := fmt.Sprintf("%s %d (%d)", title(choice.String()), weight, quote.Cost)
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(label, encodeVoteData(choice.String(), weight, proposalID)))
		}
		if len(row) > 0 {
			rows = append(rows, row)
		}
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("Skip", encodeVoteData(skipChoice, 0, proposalID)),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func (app *App) ProcessVoteCallback(ctx context.Context, query *tgbotapi.CallbackQuery) error {
	log.Infof("received callback: %s", query.Data)
	if query.Message == nil {
		return errors.New("callback without a message")
	}
	chatID, messageID := query.Message.Chat.ID, query.Message.MessageID
	if ok := app.validateUser(query.From); !ok {
		log.Error("skipping callback")
		return app.bot.AnswerCallback(query.ID, "")
	}
	reply := func(text string) error {
		if err := app.bot.EditText(chatID, messageID, text); err != nil {
			return err
		}
		return app.bot.AnswerCallback(query.ID, "")
	}

	choiceStr, weight, proposalID, err := parseVoteData(query.Data)
	if err != nil {
		log.Errorf("bad callback data '%s': %v", query.Data, err)
		return reply(fmt.Sprintf("Failed to process callback data '%s', err: %v", query.Data, err))
	}
	if choiceStr == skipChoice {
		return reply(fmt.Sprintf("Skipped proposal %d", proposalID))
	}
	choice, err := vote.ParseChoice(choiceStr)
	if err != nil {
		return reply(fmt.Sprintf("Failed to process callback data '%s', err: %v", query.Data, err))
	}
	req := vote.VoteRequest{ProposalID: proposalID, Weight: weight, Choice: choice}
	return reply(app.castVote(ctx, req))
}

func (app *App) voteCommand(ctx context.Context, chatID int64, args string) error {
	fields := strings.Fields(args)
	if len(fields) != 3 {
		return app.bot.SendText(chatID, "Usage: /vote <proposal id> <yes|no|abstain> <weight>")
	}
	proposalID, err := strconv.ParseUint(fields[0], 10, 64)
	if err != nil {
		return app.bot.SendText(chatID, fmt.Sprintf("Bad proposal id %q", fields[0]))
	}
	choice, err := vote.ParseChoice(fields[1])
	if err != nil {
		return app.bot.SendText(chatID, err.Error())
	}
	weight, err := strconv.ParseUint(fields[2], 10, 64)
	if err != nil {
		return app.bot.SendText(chatID, fmt.Sprintf("Bad weight %q", fields[2]))
	}
	req := vote.VoteRequest{ProposalID: proposalID, Weight: weight, Choice: choice}
	return app.bot.SendText(chatID, app.castVote(ctx, req))
}

func (app *App) castVote(ctx context.Context, req vote.VoteRequest) string {
	ctx, cancel := context.WithTimeout(ctx, app.voteTimeout)
	defer cancel()
	log.Infof("voting: %s", req)
	res := app.voter.Vote(ctx, req)
	if _, ok := res.(vote.Success); ok {
		log.Infof("voted %s", req)
	}
	return renderResult(req, res)
}

func (app *App) costCommand(chatID int64, args string) error {
	weight, err := strconv.ParseUint(strings.TrimSpace(args), 10, 64)
	if err != nil {
		return app.bot.SendText(chatID, "Usage: /cost <weight>")
	}
	quote, err := app.voter.Quote(weight)
	if err != nil {
		return app.bot.SendText(chatID, err.Error())
	}
	return app.bot.SendText(chatID, fmt.Sprintf("A vote of weight %d costs %s", weight, quote))
}

func (app *App) balanceCommand(ctx context.Context, chatID int64) error {
	ctx, cancel := context.WithTimeout(ctx, cmdTimeout)
	defer cancel()
	funds, err := app.voter.Funds(ctx)
	if err != nil {
		log.Errorf("failed to get funds: %v", err)
		return app.bot.SendText(chatID, fmt.Sprintf("Could not load balance: %v", errors.Cause(err)))
	}
	sym := funds.Token.Symbol
	return app.bot.SendText(chatID, fmt.Sprintf(
		"Balance: %s %s\nApproved for voting: %s %s",
		vote.FormatUnits(funds.Balance, funds.Token.Decimals), sym,
		vote.FormatUnits(funds.Allowance, funds.Token.Decimals), sym,
	))
}

func (app *App) validateUser(from *tgbotapi.User) bool {
	if from == nil {
		log.Error("unknown user")
		return false
	}
	if from.UserName != app.username {
		log.Errorf("command from unexpected user: %s", from.UserName)
		return false
	}
	return true
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func encodeVoteData(choice string, weight, proposalID uint64) string {
	return fmt.Sprintf(voteButtonData, choice, weight, proposalID)
}

func parseVoteData(data string) (choice string, weight, proposalID uint64, err error) {
	if _, err = fmt.Sscanf(data, voteButtonData, &choice, &weight, &proposalID); err != nil {
		return "", 0, 0, errors.Wrap(err, "malformed vote data")
	}
	return choice, weight, proposalID, nil
}
