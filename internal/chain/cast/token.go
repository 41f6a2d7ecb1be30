package cast

import (
	"context"
	"math/big"

	"github.com/pkg/errors"

	"github.com/Kuuhaku-web/Arcana/internal/vote"
)

const (
	sigBalanceOf = "balanceOf(address)(uint256)"
	sigAllowance = "allowance(address,address)(uint256)"
	sigApprove   = "approve(address,uint256)"
	sigName      = "name()(string)"
	sigSymbol    = "symbol()(string)"
	sigDecimals  = "decimals()(uint8)"
)

var _ vote.TokenLedger = (*TokenLedger)(nil)

type TokenLedger struct {
	client  *Client
	address string
}

func (c *Client) TokenLedger(address string) *TokenLedger {
	return &TokenLedger{client: c, address: address}
}

func (t *TokenLedger) BalanceOf(ctx context.Context, account string) (*big.Int, error) {
	return t.amount(ctx, sigBalanceOf, account)
}

func (t *TokenLedger) Allowance(ctx context.Context, owner, spender string) (*big.Int, error) {
	return t.amount(ctx, sigAllowance, owner, spender)
}

func (t *TokenLedger) Approve(ctx context.Context, spender string, amount *big.Int) (vote.PendingTx, error) {
	return t.client.send(ctx, t.address, sigApprove, spender, amount.String())
}

func (t *TokenLedger) Info(ctx context.Context) (vote.TokenInfo, error) {
	info := vote.TokenInfo{}
	name, err := t.client.call(ctx, t.address, sigName)
	if err != nil {
		return info, err
	}
	symbol, err := t.client.call(ctx, t.address, sigSymbol)
	if err != nil {
		return info, err
	}
	decimals, err := t.client.call(ctx, t.address, sigDecimals)
	if err != nil {
		return info, err
	}
	d, err := parseUint64(decimals[0])
	if err != nil || d > 255 {
		return info, errors.Errorf("invalid token decimals %q", decimals[0])
	}
	info.Name = parseString(name[0])
	info.Symbol = parseString(symbol[0])
	info.Decimals = uint8(d)
	return info, nil
}

func (t *TokenLedger) amount(ctx context.Context, sig string, args ...string) (*big.Int, error) {
	out, err := t.client.call(ctx, t.address, sig, args...)
	if err != nil {
		return nil, err
	}
	n, err := parseUint(out[0])
	return n, errors.Wrapf(err, "failed to parse %s result", sig)
}
