package vote

import (
	"context"
	"fmt"
	"math/big"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const verifiedCostsCacheSize = 256

type Config struct {
	// Voter is the account whose tokens pay for the ballots.
	Voter     string
	MaxWeight uint64
	Decimals  uint8
}

func (c Config) Validate() error {
	if c.Voter == "" {
		return errors.New("voter account is required")
	}
	if c.MaxWeight < MinWeight {
		return errors.Errorf("max weight must be at least %d", MinWeight)
	}
	if c.MaxWeight > maxExactWeight {
		return errors.Errorf("max weight %d overflows the cost computation", c.MaxWeight)
	}
	return nil
}

// Recorder observes finished vote attempts.
type Recorder interface {
	Observe(res Result, elapsed time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) Observe(Result, time.Duration) {}

type Option func(*Orchestrator)

// WithGuard shares an in-flight guard between orchestrators.
func WithGuard(g *InFlight) Option {
	return func(o *Orchestrator) {
		o.guard = g
	}
}

func WithRecorder(r Recorder) Option {
	return func(o *Orchestrator) {
		o.recorder = r
	}
}

// Orchestrator casts quadratic votes: it prices the ballot, makes sure the
// ledger may draw the cost from the voter's tokens and submits the vote.
type Orchestrator struct {
	ledger   Ledger
	token    TokenLedger
	conf     Config
	guard    *InFlight
	recorder Recorder
	// weights whose cost the ledger already confirmed
	verified *lru.Cache
}

func NewOrchestrator(ledger Ledger, token TokenLedger, conf Config, opts ...Option) (*Orchestrator, error) {
	if err := conf.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid orchestrator config")
	}
	verified, err := lru.New(verifiedCostsCacheSize)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create cost cache")
	}
	o := &Orchestrator{
		ledger:   ledger,
		token:    token,
		conf:     conf,
		guard:    NewInFlight(),
		recorder: nopRecorder{},
		verified: verified,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o, nil
}

func (o *Orchestrator) Voter() string {
	return o.conf.Voter
}

// Quote prices a ballot without touching the ledger.
func (o *Orchestrator) Quote(weight uint64) (Quote, error) {
	return PriceBallot(weight, o.conf.MaxWeight, o.conf.Decimals)
}

// CastVote runs the whole vote protocol and never returns an error: every
// outcome is a Success or a Failure. Nothing is retried. A caller deadline
// on ctx that expires mid-way is reported as KindNetworkUnavailable; any
// transaction already submitted is left to the ledger.
func (o *Orchestrator) CastVote(ctx context.Context, proposalID, weight uint64, choice Choice) (res Result) {
	started := time.Now()
	logger := log.WithFields(log.Fields{
		"proposal": proposalID,
		"weight":   weight,
		"choice":   choice.String(),
	})
	defer func() {
		o.recorder.Observe(res, time.Since(started))
		if f, ok := res.(Failure); ok {
			logger.WithField("kind", f.Kind).Warnf("vote failed: %s", f.Reason)
		}
	}()

	if proposalID == 0 {
		return failure(KindInvalidRequest, "proposal id must be positive", nil)
	}
	if !choice.Valid() {
		return failure(KindInvalidRequest, fmt.Sprintf("%s is not [yes|no|abstain]", choice), nil)
	}
	quote, err := o.Quote(weight)
	if err != nil {
		return failure(KindInvalidRequest, err.Error(), err)
	}

	release, ok := o.guard.Acquire(o.conf.Voter)
	if !ok {
		return failure(KindVoteInProgress, "another vote from this voter is still in progress", nil)
	}
	defer release()

	logger = logger.WithField("cost", quote.Cost)
	if f, ok := o.verifyCost(ctx, quote); !ok {
		return f
	}

	balance, err := o.token.BalanceOf(ctx, o.conf.Voter)
	if err != nil {
		return o.queryFailure(ctx, err, "balance query failed")
	}
	if balance == nil {
		return failure(KindIntegrationError, "balance query returned no value", nil)
	}
	if balance.Cmp(quote.Amount) < 0 {
		return failure(KindInsufficientBalance, fmt.Sprintf(
			"insufficient balance: need %s, have %s",
			FormatUnits(quote.Amount, o.conf.Decimals), FormatUnits(balance, o.conf.Decimals),
		), nil)
	}

	grantTx, f, ok := o.ensureAllowance(ctx, logger, quote.Amount)
	if !ok {
		return f
	}

	tx, err := o.ledger.Vote(ctx, proposalID, weight, choice)
	if err != nil {
		return o.stepFailure(ctx, KindVoteRejected, err, "vote submission failed")
	}
	if tx == nil {
		return failure(KindIntegrationError, "vote submission returned no transaction", nil)
	}
	logger.Infof("vote tx %s submitted", tx.Hash())
	if err := tx.Wait(ctx); err != nil {
		return o.stepFailure(ctx, KindVoteRejected, err, "vote was not confirmed")
	}
	logger.Infof("vote tx %s confirmed", tx.Hash())
	return Success{
		TxID:      tx.Hash(),
		CostPaid:  quote.Cost,
		Amount:    quote.Amount,
		GrantTxID: grantTx,
	}
}

// verifyCost checks that the ledger prices the ballot the same way we do.
func (o *Orchestrator) verifyCost(ctx context.Context, quote Quote) (Failure, bool) {
	if _, ok := o.verified.Get(quote.Weight); ok {
		return Failure{}, true
	}
	ledgerCost, err := o.ledger.CalculateVoteCost(ctx, quote.Weight)
	if err != nil {
		return o.queryFailure(ctx, err, "vote cost query failed"), false
	}
	if ledgerCost == nil || ledgerCost.Cmp(new(big.Int).SetUint64(quote.Cost)) != 0 {
		return failure(KindIntegrationError, fmt.Sprintf(
			"ledger prices weight %d at %v, expected %d", quote.Weight, ledgerCost, quote.Cost,
		), nil), false
	}
	o.verified.Add(quote.Weight, quote.Cost)
	return Failure{}, true
}

// ensureAllowance grants the ledger exactly amount when the standing
// allowance is short of it, and waits for the grant to be confirmed.
func (o *Orchestrator) ensureAllowance(ctx context.Context, logger *log.Entry, amount *big.Int) (string, Failure, bool) {
	spender := o.ledger.Address()
	allowance, err := o.token.Allowance(ctx, o.conf.Voter, spender)
	if err != nil {
		return "", o.queryFailure(ctx, err, "allowance query failed"), false
	}
	if allowance == nil {
		return "", failure(KindIntegrationError, "allowance query returned no value", nil), false
	}
	if allowance.Cmp(amount) >= 0 {
		return "", Failure{}, true
	}
	logger.Infof("allowance %s is below %s, approving", allowance, amount)
	tx, err := o.token.Approve(ctx, spender, amount)
	if err != nil {
		return "", o.stepFailure(ctx, KindAuthorizationFailed, err, "approve submission failed"), false
	}
	if tx == nil {
		return "", failure(KindIntegrationError, "approve submission returned no transaction", nil), false
	}
	logger.Infof("approve tx %s submitted", tx.Hash())
	if err := tx.Wait(ctx); err != nil {
		return "", o.stepFailure(ctx, KindAuthorizationFailed, err, "approve was not confirmed"), false
	}
	logger.Infof("approve tx %s confirmed", tx.Hash())
	return tx.Hash(), Failure{}, true
}

// queryFailure classifies a failed read. Reads do not change ledger state,
// so anything that is not an outage means the ledger answered something
// we cannot use.
func (o *Orchestrator) queryFailure(ctx context.Context, err error, msg string) Failure {
	return o.stepFailure(ctx, KindIntegrationError, err, msg)
}

func (o *Orchestrator) stepFailure(ctx context.Context, kind FailureKind, err error, msg string) Failure {
	err = errors.Wrap(err, msg)
	switch {
	case ctx.Err() != nil:
		return failure(KindNetworkUnavailable, msg+": "+ctx.Err().Error(), err)
	case errors.Is(err, ErrUnavailable), errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return failure(KindNetworkUnavailable, msg+": "+errors.Cause(err).Error(), err)
	default:
		return failure(kind, reasonOf(err), err)
	}
}
