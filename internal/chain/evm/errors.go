package evm

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"syscall"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/pkg/errors"

	"github.com/Kuuhaku-web/Arcana/internal/vote"
)

const revertedMarker = "execution reverted"

// classify sorts an RPC error into a ledger rejection, an outage or
// neither. Custom errors are decoded with the given ABIs.
func classify(err error, abis ...abi.ABI) error {
	if err == nil {
		return nil
	}
	if data, ok := revertData(err); ok {
		reason, _ := decodeRevert(data, abis...)
		return &vote.RejectedError{Reason: reason, Err: err}
	}
	if msg := err.Error(); strings.Contains(msg, revertedMarker) {
		reason := msg[strings.Index(msg, revertedMarker)+len(revertedMarker):]
		return &vote.RejectedError{Reason: strings.TrimSpace(strings.TrimPrefix(reason, ":")), Err: err}
	}
	if unreachable(err) {
		return vote.MarkUnavailable(err)
	}
	return err
}

func unreachable(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var httpErr rpc.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode >= http.StatusInternalServerError ||
			httpErr.StatusCode == http.StatusTooManyRequests
	}
	for _, target := range []error{
		io.EOF,
		io.ErrUnexpectedEOF,
		syscall.ECONNREFUSED,
		syscall.ECONNRESET,
		context.DeadlineExceeded,
		context.Canceled,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// revertData extracts the revert payload a node attaches to a failed call.
func revertData(err error) ([]byte, bool) {
	var dataErr rpc.DataError
	if !errors.As(err, &dataErr) {
		return nil, false
	}
	switch data := dataErr.ErrorData().(type) {
	case string:
		b, err := hexutil.Decode(data)
		return b, err == nil && len(b) > 0
	case []byte:
		return data, len(data) > 0
	}
	return nil, false
}

// decodeRevert renders revert data as Error(string)'s message or as a
// custom error with its arguments.
func decodeRevert(data []byte, abis ...abi.ABI) (string, bool) {
	if reason, err := abi.UnpackRevert(data); err == nil {
		return reason, true
	}
	if len(data) < 4 {
		return "", false
	}
	for _, contractABI := range abis {
		for name, abiErr := range contractABI.Errors {
			if !bytes.Equal(abiErr.ID[:4], data[:4]) {
				continue
			}
			args, err := abiErr.Unpack(data)
			if err != nil {
				return name, true
			}
			return name + formatArgs(args), true
		}
	}
	return "", false
}

func formatArgs(args interface{}) string {
	values, ok := args.([]interface{})
	if !ok {
		return fmt.Sprintf("(%v)", args)
	}
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, fmt.Sprint(v))
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
