// Package settler processes a stream of account operations into a final
// balance snapshot.
//
// Run is the single entry point: it decodes CSV rows into typed
// transactions, applies each to the ledger engine in arrival order, and
// writes the sorted account snapshot. Rejected operations are diagnostics,
// not failures of the run; malformed input is.
package settler

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"

	"settler/csvio"
	"settler/ledger"
	"settler/log"
)

// Run performs one single-pass processing run. It consumes every row of
// input exactly once, in order, then writes the snapshot to output.
//
// A rejected operation is logged on the diagnostic channel and processing
// continues; a decode failure aborts the run and is returned.
func Run(ctx context.Context, input io.Reader, output io.Writer, logger log.Logger) error {
	if logger == nil {
		logger = log.NewNop()
	}

	logger = logger.With(log.String("run_id", uuid.NewString()))

	engine := ledger.NewEngine(logger)
	reader := csvio.NewReader(input)

	var applied, rejected int

	for {
		transaction, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			logger.Log(ctx, log.LevelError, "decoding input failed", log.Err(err))
			return fmt.Errorf("decoding input: %w", err)
		}

		if err := engine.Apply(ctx, transaction); err != nil {
			rejected++
			logger.Log(ctx, log.LevelWarn, "transaction failed",
				log.Err(err),
				log.Stringer("kind", transaction.Op.Kind),
				log.Int("client", int(transaction.Client)),
				log.Uint32("tx", uint32(transaction.Op.TX)),
			)

			continue
		}

		applied++
	}

	logger.Log(ctx, log.LevelInfo, "run finished",
		log.Int("applied", applied),
		log.Int("rejected", rejected),
	)

	if err := csvio.WriteSnapshot(output, engine.Snapshot()); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}

	return nil
}
