// Package cast reaches the DAO and token contracts through Foundry's cast
// command line tool.
package cast

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/Kuuhaku-web/Arcana/internal/cmdrunner"
	"github.com/Kuuhaku-web/Arcana/internal/vote"
)

const (
	defaultBinary        = "cast"
	defaultConfirmations = 1

	passwordEnv = "ETH_PASSWORD"
)

var (
	// The reason runs to the end of the line, minus the ", data: ..." suffix
	// cast appends when the node returns revert data.
	revertReasonRe = regexp.MustCompile(`(?m)(?:execution reverted|reverted with reason string|revert)(?::\s*(.*?)(?:, data: .*)?$)?`)
	tupleRe        = regexp.MustCompile(`\(([^()]*)\)`)

	unreachableMarkers = []string{
		"connection refused",
		"error sending request",
		"connection reset",
		"operation timed out",
		"dns error",
		"no such host",
	}
)

type Config struct {
	Binary   string
	RPCURL   string
	Keystore string
	// Password unlocks Keystore. It is handed to cast through the
	// environment, never as an argument.
	Password      string
	From          string
	Confirmations uint
}

type Client struct {
	runner cmdrunner.CmdRunner
	conf   Config
}

func NewClient(runner cmdrunner.CmdRunner, conf Config) *Client {
	if conf.Binary == "" {
		conf.Binary = defaultBinary
	}
	if conf.Confirmations == 0 {
		conf.Confirmations = defaultConfirmations
	}
	return &Client{
		runner: runner,
		conf:   conf,
	}
}

func (c *Client) Account() string {
	return c.conf.From
}

// call runs a read-only contract call and returns one output line per
// return value.
func (c *Client) call(ctx context.Context, to, sig string, args ...string) ([]string, error) {
	cmdArgs := append([]string{"call", to, sig}, args...)
	cmdArgs = append(cmdArgs, "--rpc-url", c.conf.RPCURL)
	stdout, err := c.run(ctx, cmdrunner.Command{Name: c.conf.Binary, Args: cmdArgs})
	if err != nil {
		return nil, errors.Wrapf(err, "cast call %s on %s failed", sig, to)
	}
	lines := strings.Split(strings.TrimSpace(string(stdout)), "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	return lines, nil
}

// send submits a transaction without waiting for it to be mined.
func (c *Client) send(ctx context.Context, to, sig string, args ...string) (vote.PendingTx, error) {
	cmdArgs := append([]string{"send", to, sig}, args...)
	cmdArgs = append(cmdArgs,
		"--rpc-url", c.conf.RPCURL,
		"--keystore", c.conf.Keystore,
		"--from", c.conf.From,
		"--async",
	)
	stdout, err := c.run(ctx, cmdrunner.Command{
		Name: c.conf.Binary,
		Args: cmdArgs,
		Env:  []string{passwordEnv + "=" + c.conf.Password},
	})
	if err != nil {
		return nil, errors.Wrapf(err, "cast send %s to %s failed", sig, to)
	}
	hash := strings.TrimSpace(string(stdout))
	if !strings.HasPrefix(hash, "0x") {
		return nil, errors.Errorf("unexpected cast send output %q", hash)
	}
	return &pendingTx{client: c, hash: hash}, nil
}

func (c *Client) run(ctx context.Context, command cmdrunner.Command) ([]byte, error) {
	stdout, stderr, err := c.runner.Run(ctx, command)
	if err != nil {
		logCmdErr(command, stdout, stderr)
		return stdout, classify(ctx, err, stderr)
	}
	return stdout, nil
}

type pendingTx struct {
	client *Client
	hash   string
}

type receipt struct {
	Status          string `json:"status"`
	TransactionHash string `json:"transactionHash"`
	BlockNumber     string `json:"blockNumber"`
}

func (tx *pendingTx) Hash() string {
	return tx.hash
}

// Wait blocks in cast receipt until the transaction has the configured
// number of confirmations.
func (tx *pendingTx) Wait(ctx context.Context) error {
	stdout, err := tx.client.run(ctx, cmdrunner.Command{
		Name: tx.client.conf.Binary,
		Args: []string{
			"receipt", tx.hash,
			"--json",
			"--confirmations", strconv.FormatUint(uint64(tx.client.conf.Confirmations), 10),
			"--rpc-url", tx.client.conf.RPCURL,
		},
	})
	if err != nil {
		return errors.Wrapf(err, "waiting for tx %s failed", tx.hash)
	}
	rcpt := receipt{}
	if err := json.Unmarshal(stdout, &rcpt); err != nil {
		return errors.Wrapf(err, "failed to unmarshal receipt of tx %s", tx.hash)
	}
	status, err := parseUint(rcpt.Status)
	if err != nil {
		return errors.Wrapf(err, "bad status in receipt of tx %s", tx.hash)
	}
	if status.Sign() == 0 {
		return &vote.RejectedError{Err: fmt.Errorf("transaction %s reverted in block %s", tx.hash, rcpt.BlockNumber)}
	}
	log.Debugf("tx %s mined in block %s", tx.hash, rcpt.BlockNumber)
	return nil
}

// classify turns a failed cast invocation into a rejection, an outage or a
// plain error.
func classify(ctx context.Context, err error, stderr []byte) error {
	msg := strings.TrimSpace(string(stderr))
	if ctx.Err() != nil || errors.Is(err, cmdrunner.ErrTimedOut) {
		return vote.MarkUnavailable(err)
	}
	if m := revertReasonRe.FindStringSubmatch(msg); m != nil {
		return &vote.RejectedError{Reason: strings.TrimSpace(m[1]), Err: errors.New(firstLine(msg))}
	}
	lower := strings.ToLower(msg)
	for _, marker := range unreachableMarkers {
		if strings.Contains(lower, marker) {
			return vote.MarkUnavailable(errors.Wrap(err, firstLine(msg)))
		}
	}
	if msg != "" {
		return errors.Wrap(err, firstLine(msg))
	}
	return err
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// parseUint reads a cast number: decimal or 0x hex, optionally followed by
// a scientific notation hint such as "1000000 [1e6]".
func parseUint(s string) (*big.Int, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, errors.New("empty number")
	}
	n, ok := new(big.Int).SetString(fields[0], 0)
	if !ok || n.Sign() < 0 {
		return nil, errors.Errorf("invalid number %q", s)
	}
	return n, nil
}

func parseUint64(s string) (uint64, error) {
	n, err := parseUint(s)
	if err != nil {
		return 0, err
	}
	if !n.IsUint64() {
		return 0, errors.Errorf("number %s overflows uint64", n)
	}
	return n.Uint64(), nil
}

func parseString(s string) string {
	if unquoted, err := strconv.Unquote(s); err == nil {
		return unquoted
	}
	return s
}

func parseBool(s string) (bool, error) {
	return strconv.ParseBool(strings.TrimSpace(s))
}

// parseTuples splits cast's rendering of a tuple array, e.g.
// "[(0xab, 1, 100 [1e2]), (0xcd, 2, 4)]", into the fields of each tuple.
func parseTuples(s string) [][]string {
	var tuples [][]string
	for _, m := range tupleRe.FindAllStringSubmatch(s, -1) {
		parts := strings.Split(m[1], ",")
		fields := make([]string, 0, len(parts))
		for _, p := range parts {
			fields = append(fields, strings.TrimSpace(p))
		}
		tuples = append(tuples, fields)
	}
	return tuples
}

func logCmdErr(command cmdrunner.Command, stdout []byte, stderr []byte) {
	log.Errorf(
		"Command %s failed\nCaptured stdout:\n%s\nCaptured stderr:\n%s\n",
		command, string(stdout), string(stderr),
	)
}
