package evm

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/Kuuhaku-web/Arcana/internal/vote"
)

var _ vote.TokenLedger = (*TokenLedger)(nil)

type TokenLedger struct {
	address  common.Address
	abi      abi.ABI
	contract *bind.BoundContract
	backend  Backend
	opts     *bind.TransactOpts
}

func NewTokenLedger(address common.Address, backend Backend, opts *bind.TransactOpts) (*TokenLedger, error) {
	_, erc20ABI, err := contractABIs()
	if err != nil {
		return nil, err
	}
	return &TokenLedger{
		address:  address,
		abi:      erc20ABI,
		contract: bind.NewBoundContract(address, erc20ABI, backend, backend, backend),
		backend:  backend,
		opts:     opts,
	}, nil
}

func (t *TokenLedger) BalanceOf(ctx context.Context, account string) (*big.Int, error) {
	owner, err := parseAddress(account)
	if err != nil {
		return nil, err
	}
	return t.amount(ctx, "balanceOf", owner)
}

func (t *TokenLedger) Allowance(ctx context.Context, owner, spender string) (*big.Int, error) {
	ownerAddr, err := parseAddress(owner)
	if err != nil {
		return nil, err
	}
	spenderAddr, err := parseAddress(spender)
	if err != nil {
		return nil, err
	}
	return t.amount(ctx, "allowance", ownerAddr, spenderAddr)
}

// Approve sets the spender's allowance to amount. ERC20 approve replaces
// the previous allowance rather than adding to it.
func (t *TokenLedger) Approve(ctx context.Context, spender string, amount *big.Int) (vote.PendingTx, error) {
	if t.opts == nil {
		return nil, errors.New("token ledger has no signer configured")
	}
	spenderAddr, err := parseAddress(spender)
	if err != nil {
		return nil, err
	}
	opts := *t.opts
	opts.Context = ctx
	tx, err := t.contract.Transact(&opts, "approve", spenderAddr, amount)
	if err != nil {
		return nil, errors.Wrap(classify(err, t.abi), "approve transaction failed")
	}
	return newPendingTx(t.backend, tx, opts.From, t.abi), nil
}

func (t *TokenLedger) Info(ctx context.Context) (vote.TokenInfo, error) {
	info := vote.TokenInfo{}
	out, err := t.call(ctx, "name")
	if err != nil {
		return info, err
	}
	info.Name, _ = out[0].(string)
	if out, err = t.call(ctx, "symbol"); err != nil {
		return info, err
	}
	info.Symbol, _ = out[0].(string)
	if out, err = t.call(ctx, "decimals"); err != nil {
		return info, err
	}
	decimals, ok := out[0].(uint8)
	if !ok {
		return info, errors.Errorf("decimals returned %T", out[0])
	}
	info.Decimals = decimals
	return info, nil
}

func (t *TokenLedger) amount(ctx context.Context, method string, args ...interface{}) (*big.Int, error) {
	out, err := t.call(ctx, method, args...)
	if err != nil {
		return nil, err
	}
	return toBig(out[0])
}

func (t *TokenLedger) call(ctx context.Context, method string, args ...interface{}) ([]interface{}, error) {
	var out []interface{}
	if err := t.contract.Call(&bind.CallOpts{Context: ctx}, &out, method, args...); err != nil {
		return nil, errors.Wrapf(classify(err, t.abi), "%s call failed", method)
	}
	if len(out) == 0 {
		return nil, errors.Errorf("%s returned nothing", method)
	}
	return out, nil
}

func parseAddress(s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, errors.Errorf("invalid address %q", s)
	}
	return common.HexToAddress(s), nil
}
