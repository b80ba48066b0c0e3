package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/PacktPublishing/fizzbuzz/printer"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"
	"golang.org/x/xerrors"
)

var (
	appName = "fizzbuzz"
	appSha  = "populated-at-link-time"
	logger  *logrus.Entry
)

func main() {
	host, _ := os.Hostname()
	rootLogger := logrus.New()
	rootLogger.SetFormatter(new(logrus.JSONFormatter))
	logger = rootLogger.WithFields(logrus.Fields{
		"app":  appName,
		"sha":  appSha,
		"host": host,
	})

	if err := makeApp().Run(os.Args); err != nil {
		logger.WithField("err", err).Error("shutting down due to error")
		_ = os.Stderr.Sync()
		os.Exit(1)
	}
}

func makeApp() *cli.App {
	app := cli.NewApp()
	app.Name = appName
	app.Version = appSha
	app.Usage = "print the fizzbuzz labels for a range of numbers"
	app.Flags = []cli.Flag{
		cli.IntFlag{
			Name:   "from",
			Value:  1,
			EnvVar: "FIZZBUZZ_FROM",
			Usage:  "The first number to classify",
		},
		cli.IntFlag{
			Name:   "to",
			Value:  100,
			EnvVar: "FIZZBUZZ_TO",
			Usage:  "The last number (inclusive) to classify",
		},
	}
	app.Action = runMain
	return app
}

func runMain(appCtx *cli.Context) error {
	ctx, cancelFn := context.WithCancel(context.Background())
	defer cancelFn()

	reg := prometheus.NewRegistry()
	p, err := printer.New(printer.Config{
		From:       appCtx.Int("from"),
		To:         appCtx.Int("to"),
		Output:     appCtx.App.Writer,
		Registerer: reg,
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	// Start signal watcher
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGHUP)
		defer signal.Stop(sigCh)
		select {
		case s := <-sigCh:
			logger.WithField("signal", s.String()).Infof("shutting down due to signal")
			cancelFn()
		case <-ctx.Done():
		}
	}()

	if err = p.Run(ctx); err != nil {
		return err
	}
	return logLabelTotals(reg)
}

// logLabelTotals emits the per-kind label counts collected during the run.
func logLabelTotals(reg prometheus.Gatherer) error {
	families, err := reg.Gather()
	if err != nil {
		return xerrors.Errorf("unable to gather metrics: %w", err)
	}

	fields := make(logrus.Fields)
	for _, family := range families {
		for _, m := range family.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() == "kind" {
					fields[l.GetValue()] = m.GetCounter().GetValue()
				}
			}
		}
	}
	logger.WithFields(fields).Info("label totals")
	return nil
}
