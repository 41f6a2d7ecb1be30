package commands

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Kuuhaku-web/Arcana/internal/app"
	"github.com/Kuuhaku-web/Arcana/internal/metrics"
	"github.com/Kuuhaku-web/Arcana/internal/tgbot"
	"github.com/Kuuhaku-web/Arcana/internal/vote"
)

const metricsNamespace = "arcana"

var BotCmd = func() *cobra.Command {
	return &cobra.Command{
		Use:   "bot",
		Short: "serve the Telegram bot and the metrics endpoint",
		Args:  cobra.NoArgs,
		RunE:  runBot,
	}
}

func runBot(cmd *cobra.Command, args []string) error {
	conf, err := loadConfig()
	if err != nil {
		return err
	}
	if err := conf.RequireBot(); err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := prometheus.NewRegistry()
	voteMetrics, err := metrics.New(metricsNamespace, registry)
	if err != nil {
		return err
	}
	n, err := newNode(ctx, conf, vote.WithRecorder(voteMetrics))
	if err != nil {
		return err
	}
	defer n.close()

	if conf.MetricsAddr != "" {
		srv := &http.Server{
			Addr:              conf.MetricsAddr,
			Handler:           promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			log.Infof("serving metrics on %s", conf.MetricsAddr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Errorf("metrics server failed: %v", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	bot, err := tgbot.NewTgBot(conf.BotToken)
	if err != nil {
		return err
	}
	log.Infof("voting as %s", n.orchestrator.Voter())
	return app.NewApp(n.service, bot, conf.AllowedUser, conf.VoteTimeout).Run(ctx)
}
