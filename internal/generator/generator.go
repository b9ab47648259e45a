// Package generator turns content repositories into friendly URL lists.
package generator

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pfassina/wikiseo/internal/logging"
	"github.com/pfassina/wikiseo/internal/seo"
)

var errNoTopicLister = errors.New("no topic lister configured")

func wrapListErr(err error) error {
	return fmt.Errorf("list topics: %w", err)
}

// RunAll runs the generators in order and concatenates their URLs. A failing
// generator is logged and skipped; its error is included in the returned
// joined error so callers can decide whether a partial result is acceptable.
func RunAll(generators []seo.Generator, options seo.GeneratorOptions, logger *zap.Logger) ([]seo.FriendlyURL, error) {
	if options.RunID == "" {
		options.RunID = uuid.NewString()
	}
	logger = logging.OrNop(logger).With(zap.String("run_id", options.RunID))

	var (
		all  []seo.FriendlyURL
		errs []error
	)
	for _, gen := range generators {
		log := logger.With(zap.String("generator", gen.Name()))
		urls, err := gen.Run(options)
		if err != nil {
			log.Error("generator failed", zap.Error(err))
			errs = append(errs, fmt.Errorf("%s: %w", gen.Name(), err))
			continue
		}
		log.Info("generator finished", zap.Int("urls", len(urls)))
		all = append(all, urls...)
	}
	return all, errors.Join(errs...)
}
