package evm

import (
	"context"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/Kuuhaku-web/Arcana/internal/vote"
)

type pendingTx struct {
	backend Backend
	tx      *types.Transaction
	from    common.Address
	abis    []abi.ABI
}

func newPendingTx(backend Backend, tx *types.Transaction, from common.Address, abis ...abi.ABI) *pendingTx {
	return &pendingTx{
		backend: backend,
		tx:      tx,
		from:    from,
		abis:    abis,
	}
}

func (p *pendingTx) Hash() string {
	return p.tx.Hash().Hex()
}

func (p *pendingTx) Wait(ctx context.Context) error {
	receipt, err := bind.WaitMined(ctx, p.backend, p.tx)
	if err != nil {
		return errors.Wrapf(classify(err), "waiting for tx %s failed", p.Hash())
	}
	if receipt.Status == types.ReceiptStatusSuccessful {
		log.Debugf("tx %s mined in block %s", p.Hash(), receipt.BlockNumber)
		return nil
	}
	return &vote.RejectedError{
		Reason: p.revertReason(ctx, receipt),
		Err:    errors.Errorf("transaction %s reverted in block %s", p.Hash(), receipt.BlockNumber),
	}
}

// revertReason replays the transaction as a call against the block it was
// mined in to recover the reason the receipt does not carry.
func (p *pendingTx) revertReason(ctx context.Context, receipt *types.Receipt) string {
	msg := ethereum.CallMsg{
		From:  p.from,
		To:    p.tx.To(),
		Gas:   p.tx.Gas(),
		Value: p.tx.Value(),
		Data:  p.tx.Data(),
	}
	_, err := p.backend.CallContract(ctx, msg, receipt.BlockNumber)
	if err == nil {
		return ""
	}
	var rejected *vote.RejectedError
	if errors.As(classify(err, p.abis...), &rejected) {
		return rejected.Reason
	}
	log.Debugf("replay of tx %s failed: %v", p.Hash(), err)
	return ""
}
