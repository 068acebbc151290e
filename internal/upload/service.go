// Package upload stores preview images and favicons in the site's public directory.
package upload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder for dimension probing
	_ "image/jpeg" // register JPEG decoder for dimension probing
	_ "image/png"  // register PNG decoder for dimension probing
	"path"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/JakeFAU/share-preview/internal/clock"
	"github.com/JakeFAU/share-preview/internal/metadata"
)

// Kind selects which site asset an upload replaces.
type Kind string

const (
	// KindOG replaces the Open Graph preview image.
	KindOG Kind = "og"
	// KindFavicon replaces the site favicon.
	KindFavicon Kind = "favicon"
)

var (
	// ErrNoFile reports an upload without file content.
	ErrNoFile = errors.New("no file provided")
	// ErrTooLarge reports an upload above the configured size limit.
	ErrTooLarge = errors.New("file exceeds upload size limit")
)

// ParseKind maps the form value to a Kind. Anything other than "og" is a favicon.
func ParseKind(s string) Kind {
	if strings.EqualFold(strings.TrimSpace(s), string(KindOG)) {
		return KindOG
	}
	return KindFavicon
}

// Result describes a stored upload.
type Result struct {
	Success    bool      `json:"success"`
	URL        string    `json:"url"`
	Size       int       `json:"size"`
	UploadDate time.Time `json:"uploadDate"`
	Width      *int      `json:"width,omitempty"`
	Height     *int      `json:"height,omitempty"`
}

// Service writes uploads into an asset store.
type Service struct {
	assets    metadata.AssetStore
	publicDir string
	maxBytes  int64
	clock     clock.Clock
	logger    *zap.Logger
}

// NewService constructs a Service. A maxBytes of zero disables the size check.
func NewService(assets metadata.AssetStore, publicDir string, maxBytes int64, clk clock.Clock, logger *zap.Logger) *Service {
	if clk == nil {
		clk = clock.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if publicDir == "" {
		publicDir = "public"
	}
	return &Service{
		assets:    assets,
		publicDir: publicDir,
		maxBytes:  maxBytes,
		clock:     clk,
		logger:    logger,
	}
}

// Save writes data as og-image<ext> or favicon<ext>, keeping the extension of filename.
func (s *Service) Save(ctx context.Context, kind Kind, filename string, data []byte) (Result, error) {
	if len(data) == 0 {
		return Result{}, ErrNoFile
	}
	if s.maxBytes > 0 && int64(len(data)) > s.maxBytes {
		return Result{}, fmt.Errorf("%w: %d > %d bytes", ErrTooLarge, len(data), s.maxBytes)
	}

	name := TargetName(kind, filename)
	if err := s.assets.Write(ctx, path.Join(s.publicDir, name), data); err != nil {
		return Result{}, fmt.Errorf("write %s: %w", name, err)
	}

	res := Result{
		Success:    true,
		URL:        "/" + name,
		Size:       len(data),
		UploadDate: s.clock.Now(),
	}
	if kind == KindOG {
		cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
		if err != nil {
			s.logger.Warn("image dimensions unavailable", zap.String("file", name), zap.Error(err))
		} else {
			res.Width, res.Height = &cfg.Width, &cfg.Height
		}
	}
	s.logger.Info("upload stored",
		zap.String("kind", string(kind)),
		zap.String("file", name),
		zap.Int("bytes", len(data)),
	)
	return res, nil
}

// TargetName returns the public file name an upload of kind is stored under.
func TargetName(kind Kind, filename string) string {
	ext := path.Ext(path.Base(strings.ReplaceAll(filename, "\\", "/")))
	if kind == KindOG {
		return "og-image" + ext
	}
	return "favicon" + ext
}
