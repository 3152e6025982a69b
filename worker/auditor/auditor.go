package auditor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/pandodao/card-transfer/core"
)

const (
	propertyLedgerBaseline = "ledger_baseline"
)

var ErrLedgerImbalance = errors.New("ledger imbalance")

type Config struct {
	Interval time.Duration `valid:"required"`
}

func New(
	cards core.CardStore,
	properties core.PropertyStore,
	logger *slog.Logger,
	cfg Config,
) *Auditor {
	if _, err := govalidator.ValidateStruct(cfg); err != nil {
		panic(err)
	}

	return &Auditor{
		cards:      cards,
		properties: properties,
		logger:     logger.With("worker", "auditor"),
		cfg:        cfg,
	}
}

// Auditor checks that transfers only move money: the total over all cards is
// compared against a baseline that is reset whenever the set of cards changes.
type Auditor struct {
	cards      core.CardStore
	properties core.PropertyStore
	logger     *slog.Logger
	cfg        Config
}

func (w *Auditor) Run(ctx context.Context) error {
	w.logger.Info("auditor start", "interval", w.cfg.Interval)

	for {
		_ = w.run(ctx)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(w.cfg.Interval):
		}
	}
}

func (w *Auditor) run(ctx context.Context) error {
	ledger, err := w.cards.Sum(ctx)
	if err != nil {
		w.logger.Error("cards.Sum", "err", err)
		return err
	}

	if ledger.Negative > 0 {
		w.logger.Error("negative balances found", "cards", ledger.Negative)
		return fmt.Errorf("%w: %d negative balances", ErrLedgerImbalance, ledger.Negative)
	}

	var baseline core.Ledger
	if err := w.properties.Get(ctx, propertyLedgerBaseline, &baseline); err != nil {
		w.logger.Error("properties.Get", "err", err)
		return err
	}

	if baseline.Cards != ledger.Cards {
		w.logger.Info("ledger baseline reset", "cards", ledger.Cards, "total", ledger.Total)

		if err := w.properties.Set(ctx, propertyLedgerBaseline, ledger); err != nil {
			w.logger.Error("properties.Set", "err", err)
			return err
		}

		return nil
	}

	if baseline.Total != ledger.Total {
		w.logger.Error("ledger total changed", "want", baseline.Total, "got", ledger.Total)
		return fmt.Errorf("%w: total %d, baseline %d", ErrLedgerImbalance, ledger.Total, baseline.Total)
	}

	w.logger.Debug("ledger balanced", "cards", ledger.Cards, "total", ledger.Total)
	return nil
}
