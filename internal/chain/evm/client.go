// Package evm reaches the DAO and token contracts over Ethereum JSON-RPC.
package evm

import (
	"context"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/Kuuhaku-web/Arcana/internal/vote"
)

type Config struct {
	RPCURL string
	// ChainID guards against signing for the wrong network. Zero accepts
	// whatever the node reports.
	ChainID  uint64
	Keystore string
	Password string
	// Voter is used as the account when no keystore is given; otherwise it
	// must match the keystore's address if set.
	Voter string
}

type Client struct {
	eth     *ethclient.Client
	opts    *bind.TransactOpts
	account common.Address
}

func Dial(ctx context.Context, conf Config) (*Client, error) {
	eth, err := ethclient.DialContext(ctx, conf.RPCURL)
	if err != nil {
		return nil, vote.MarkUnavailable(errors.Wrapf(err, "failed to dial %s", conf.RPCURL))
	}
	chainID, err := eth.ChainID(ctx)
	if err != nil {
		eth.Close()
		return nil, errors.Wrap(classify(err), "failed to query chain id")
	}
	if conf.ChainID != 0 && chainID.Uint64() != conf.ChainID {
		eth.Close()
		return nil, errors.Errorf("wrong network: node reports chain id %s, expected %d", chainID, conf.ChainID)
	}
	c := &Client{eth: eth}
	if conf.Keystore == "" {
		if !common.IsHexAddress(conf.Voter) {
			eth.Close()
			return nil, errors.Errorf("invalid voter address %q", conf.Voter)
		}
		c.account = common.HexToAddress(conf.Voter)
		log.Warn("no keystore configured, votes cannot be submitted")
		return c, nil
	}
	keyJSON, err := os.ReadFile(conf.Keystore)
	if err != nil {
		eth.Close()
		return nil, errors.Wrapf(err, "failed to read keystore %s", conf.Keystore)
	}
	key, err := keystore.DecryptKey(keyJSON, conf.Password)
	if err != nil {
		eth.Close()
		return nil, errors.Wrapf(err, "failed to decrypt keystore %s", conf.Keystore)
	}
	if conf.Voter != "" && !strings.EqualFold(conf.Voter, key.Address.Hex()) {
		eth.Close()
		return nil, errors.Errorf("keystore holds %s, configured voter is %s", key.Address.Hex(), conf.Voter)
	}
	c.opts, err = bind.NewKeyedTransactorWithChainID(key.PrivateKey, chainID)
	if err != nil {
		eth.Close()
		return nil, errors.Wrap(err, "failed to create transactor")
	}
	c.account = key.Address
	log.Infof("connected to chain %s as %s", chainID, c.account.Hex())
	return c, nil
}

func (c *Client) Account() string {
	return c.account.Hex()
}

func (c *Client) Ledger(address string) (*Ledger, error) {
	addr, err := parseAddress(address)
	if err != nil {
		return nil, errors.Wrap(err, "bad DAO address")
	}
	return NewLedger(addr, c.eth, c.opts)
}

func (c *Client) TokenLedger(address string) (*TokenLedger, error) {
	addr, err := parseAddress(address)
	if err != nil {
		return nil, errors.Wrap(err, "bad token address")
	}
	return NewTokenLedger(addr, c.eth, c.opts)
}

func (c *Client) Close() {
	c.eth.Close()
}
