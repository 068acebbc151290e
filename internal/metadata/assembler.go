package metadata

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Assembler produces Records from external pages and from the local layout.
type Assembler struct {
	fetcher  Fetcher
	assets   AssetStore
	defaults Defaults
	logger   *zap.Logger
}

// NewAssembler wires an Assembler. A nil logger disables logging.
func NewAssembler(fetcher Fetcher, assets AssetStore, defaults Defaults, logger *zap.Logger) *Assembler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Assembler{
		fetcher:  fetcher,
		assets:   assets,
		defaults: defaults,
		logger:   logger,
	}
}

// External extracts metadata from the page at rawTarget. On error no Record is
// returned; the error wraps one of ErrMissingTarget, ErrInvalidTarget,
// ErrTargetTimeout, ErrTargetUnreachable, ErrUpstream or is an *HTTPStatusError.
func (a *Assembler) External(ctx context.Context, rawTarget string) (Record, error) {
	target, err := ResolveTarget(rawTarget)
	if err != nil {
		return Record{}, err
	}

	doc, err := a.fetcher.Fetch(ctx, target)
	if err != nil {
		return Record{}, a.classifyFetchError(target.String(), err)
	}

	fields := Extract(doc.Text, ExternalHTMLProfile)
	origin := OriginOf(target)

	rec := Record{Hostname: strPtr(target.Hostname())}
	if v, ok := fields[FieldTitle]; ok {
		rec.Title = strPtr(v)
	}
	if v, ok := fields[FieldDescription]; ok {
		rec.Description = strPtr(v)
	}
	if v, ok := fields[FieldImage]; ok {
		rec.Image = strPtr(Absolutize(v, origin))
	}
	favicon, ok := fields[FieldFavicon]
	if !ok {
		favicon = "/favicon.ico"
	}
	rec.Favicon = strPtr(Absolutize(favicon, origin))

	a.logger.Debug("external metadata assembled",
		zap.String("target", target.String()),
		zap.String("final_url", doc.FinalURL),
		zap.Int("fields", len(fields)),
	)
	return rec, nil
}

func (a *Assembler) classifyFetchError(target string, err error) error {
	var statusErr *HTTPStatusError
	switch {
	case errors.As(err, &statusErr):
		return statusErr
	case errors.Is(err, ErrFetchTimeout):
		return fmt.Errorf("%w: %s", ErrTargetTimeout, target)
	case errors.Is(err, ErrConnectionFailed):
		return fmt.Errorf("%w: %s: %w", ErrTargetUnreachable, target, err)
	default:
		a.logger.Error("external fetch failed", zap.String("target", target), zap.Error(err))
		return fmt.Errorf("%w: %w", ErrUpstream, err)
	}
}
