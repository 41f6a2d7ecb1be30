package vote

import (
	"math/big"
)

type FailureKind int

const (
	// KindInvalidRequest is a bad weight, choice or proposal id caught
	// before any ledger call.
	KindInvalidRequest FailureKind = iota + 1
	KindInsufficientBalance
	KindAuthorizationFailed
	KindVoteRejected
	// KindNetworkUnavailable covers unreachable collaborators and expired
	// caller deadlines.
	KindNetworkUnavailable
	// KindIntegrationError means the client and the ledger disagree, e.g.
	// on the vote cost. Nothing was submitted.
	KindIntegrationError
	// KindVoteInProgress rejects a vote while another one from the same
	// voter has not finished.
	KindVoteInProgress
)

func (k FailureKind) String() string {
	switch k {
	case KindInvalidRequest:
		return "invalid_request"
	case KindInsufficientBalance:
		return "insufficient_balance"
	case KindAuthorizationFailed:
		return "authorization_failed"
	case KindVoteRejected:
		return "vote_rejected"
	case KindNetworkUnavailable:
		return "network_unavailable"
	case KindIntegrationError:
		return "integration_error"
	case KindVoteInProgress:
		return "vote_in_progress"
	default:
		return "unknown"
	}
}

// Result is either Success or Failure.
type Result interface {
	result()
}

type Success struct {
	TxID string
	// CostPaid is weight squared in whole tokens.
	CostPaid uint64
	// Amount is CostPaid in token base units.
	Amount *big.Int
	// GrantTxID is the authorization grant submitted for this vote, empty
	// when the standing allowance already covered it.
	GrantTxID string
}

type Failure struct {
	Kind   FailureKind
	Reason string
	Err    error
}

func (Success) result() {}
func (Failure) result() {}

func (f Failure) Error() string {
	return f.Kind.String() + ": " + f.Reason
}

func (f Failure) Unwrap() error {
	return f.Err
}

func failure(kind FailureKind, reason string, err error) Failure {
	return Failure{Kind: kind, Reason: reason, Err: err}
}
