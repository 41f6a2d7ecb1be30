package commands

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Kuuhaku-web/Arcana/internal/chain/cast"
	"github.com/Kuuhaku-web/Arcana/internal/chain/evm"
	"github.com/Kuuhaku-web/Arcana/internal/cmdrunner"
	"github.com/Kuuhaku-web/Arcana/internal/config"
	"github.com/Kuuhaku-web/Arcana/internal/logging"
	"github.com/Kuuhaku-web/Arcana/internal/vote"
)

const defaultConfigFile = "config.yaml"

var configFile string

func AddGlobalFlags(root *cobra.Command) {
	root.PersistentFlags().StringVarP(&configFile, "config", "c", defaultConfigFile, "path to the YAML config file")
}

func loadConfig() (*config.Config, error) {
	conf, err := config.ParseConfig(configFile)
	if err != nil {
		return nil, err
	}
	if err := logging.Setup(conf.LogLevel, conf.LogFormat); err != nil {
		return nil, errors.Wrap(err, "failed to set up logging")
	}
	return conf, nil
}

// node bundles what the subcommands share: the voting service and the
// backend connection behind it.
type node struct {
	conf         *config.Config
	service      *vote.Service
	orchestrator *vote.Orchestrator
	close        func()
}

func newNode(ctx context.Context, conf *config.Config, opts ...vote.Option) (*node, error) {
	ledger, token, voter, closeFn, err := connect(ctx, conf)
	if err != nil {
		return nil, err
	}
	decimals := conf.TokenDecimals
	if info, err := token.Info(ctx); err != nil {
		log.Warnf("failed to query token info, using %d decimals: %v", decimals, err)
	} else if info.Decimals != decimals {
		closeFn()
		return nil, errors.Errorf("token %s has %d decimals, config says %d", info.Symbol, info.Decimals, decimals)
	}
	orchestrator, err := vote.NewOrchestrator(ledger, token, vote.Config{
		Voter:     voter,
		MaxWeight: conf.MaxWeight,
		Decimals:  decimals,
	}, opts...)
	if err != nil {
		closeFn()
		return nil, err
	}
	return &node{
		conf:         conf,
		service:      vote.NewService(ledger, token, orchestrator),
		orchestrator: orchestrator,
		close:        closeFn,
	}, nil
}

func connect(ctx context.Context, conf *config.Config) (vote.Ledger, vote.TokenLedger, string, func(), error) {
	switch strings.ToLower(conf.Backend) {
	case config.BackendCast:
		client := cast.NewClient(cmdrunner.NewCmdRunner(), cast.Config{
			Binary:        conf.CastPath,
			RPCURL:        conf.RPCURL,
			Keystore:      conf.KeystorePath,
			Password:      conf.KeyChainPass,
			From:          conf.VoterWallet,
			Confirmations: conf.Confirmations,
		})
		log.Infof("using cast backend %s against %s", conf.CastPath, conf.RPCURL)
		return client.Ledger(conf.DAOAddress), client.TokenLedger(conf.TokenAddress), client.Account(), func() {}, nil
	default:
		client, err := evm.Dial(ctx, evm.Config{
			RPCURL:   conf.RPCURL,
			ChainID:  conf.ChainID,
			Keystore: conf.KeystorePath,
			Password: conf.KeyChainPass,
			Voter:    conf.VoterWallet,
		})
		if err != nil {
			return nil, nil, "", nil, err
		}
		ledger, err := client.Ledger(conf.DAOAddress)
		if err != nil {
			client.Close()
			return nil, nil, "", nil, err
		}
		token, err := client.TokenLedger(conf.TokenAddress)
		if err != nil {
			client.Close()
			return nil, nil, "", nil, err
		}
		return ledger, token, client.Account(), client.Close, nil
	}
}
