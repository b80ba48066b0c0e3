package printer

import (
	"bufio"
	"context"
	"io"
	"io/ioutil"

	"github.com/PacktPublishing/fizzbuzz"
	"github.com/hashicorp/go-multierror"
	"github.com/juju/clock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"
)

//go:generate mockgen -package mocks -destination mocks/mocks.go github.com/PacktPublishing/fizzbuzz/printer Classifier

// Classifier is implemented by types that can map an integer to a fizzbuzz
// label.
type Classifier interface {
	Classify(n int) string
}

// ClassifierFunc is an adapter that allows a plain function to be used as a
// Classifier.
type ClassifierFunc func(int) string

// Classify calls f(n).
func (f ClassifierFunc) Classify(n int) string { return f(n) }

// Default is the Classifier used when none is specified in the config.
var Default Classifier = ClassifierFunc(fizzbuzz.Classify)

// Config encapsulates the settings for configuring a Printer.
type Config struct {
	// The first number to print.
	From int

	// The last number to print (inclusive).
	To int

	// The writer where labels are written to, one per line.
	Output io.Writer

	// The classifier to use. If not specified, Default will be used instead.
	Classifier Classifier

	// A registerer for the per-kind label counter. If not specified, the
	// counter is still maintained but not exported.
	Registerer prometheus.Registerer

	// A clock instance for timing runs. If not specified, the default
	// wall-clock will be used instead.
	Clock clock.Clock

	// The logger to use. If not defined an output-discarding logger will
	// be used instead.
	Logger *logrus.Entry
}

func (cfg *Config) validate() error {
	var err error
	if cfg.Output == nil {
		err = multierror.Append(err, xerrors.Errorf("output writer has not been provided"))
	}
	if cfg.From > cfg.To {
		err = multierror.Append(err, xerrors.Errorf("invalid value for range: from (%d) is greater than to (%d)", cfg.From, cfg.To))
	}
	if cfg.Classifier == nil {
		cfg.Classifier = Default
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.WallClock
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.NewEntry(&logrus.Logger{Out: ioutil.Discard})
	}
	return err
}

// Printer writes the fizzbuzz labels for a range of numbers.
type Printer struct {
	cfg          Config
	labelCounter *prometheus.CounterVec
}

// New creates a new Printer instance with the specified config.
func New(cfg Config) (*Printer, error) {
	if err := cfg.validate(); err != nil {
		return nil, xerrors.Errorf("printer: config validation failed: %w", err)
	}

	labelCounter := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "fizzbuzz_labels_total",
		Help: "The total number of printed labels, partitioned by kind",
	}, []string{"kind"})
	if cfg.Registerer != nil {
		if err := cfg.Registerer.Register(labelCounter); err != nil {
			return nil, xerrors.Errorf("printer: unable to register metrics: %w", err)
		}
	}

	return &Printer{
		cfg:          cfg,
		labelCounter: labelCounter,
	}, nil
}

// Run writes the label for each number in the configured range, in
// increasing order. It returns early if ctx is cancelled.
func (p *Printer) Run(ctx context.Context) error {
	startAt := p.cfg.Clock.Now()
	w := bufio.NewWriter(p.cfg.Output)

	var printed int
	for n := p.cfg.From; ; n++ {
		if err := ctx.Err(); err != nil {
			_ = w.Flush()
			return xerrors.Errorf("printer: run interrupted after %d labels: %w", printed, err)
		}

		label := p.cfg.Classifier.Classify(n)
		if _, err := w.WriteString(label); err != nil {
			return xerrors.Errorf("printer: write label for %d: %w", n, err)
		} else if err = w.WriteByte('\n'); err != nil {
			return xerrors.Errorf("printer: write label for %d: %w", n, err)
		}
		p.labelCounter.WithLabelValues(kindOf(label).String()).Inc()
		printed++

		// Checked here rather than in the loop condition so that a range
		// ending at math.MaxInt does not wrap around.
		if n == p.cfg.To {
			break
		}
	}

	if err := w.Flush(); err != nil {
		return xerrors.Errorf("printer: flush output: %w", err)
	}

	p.cfg.Logger.WithFields(logrus.Fields{
		"from":           p.cfg.From,
		"to":             p.cfg.To,
		"printed":        printed,
		"total_run_time": p.cfg.Clock.Now().Sub(startAt).String(),
	}).Info("completed fizzbuzz run")
	return nil
}

// kindOf maps a label produced by a Classifier back to its kind. Anything
// other than the three fixed labels counts as a number.
func kindOf(label string) fizzbuzz.Kind {
	switch label {
	case fizzbuzz.FizzBuzz:
		return fizzbuzz.KindFizzBuzz
	case fizzbuzz.Fizz:
		return fizzbuzz.KindFizz
	case fizzbuzz.Buzz:
		return fizzbuzz.KindBuzz
	default:
		return fizzbuzz.KindNumber
	}
}
