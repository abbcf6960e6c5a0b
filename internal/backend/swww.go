package backend

import (
	"context"
	"fmt"
	"time"

	"al.essio.dev/pkg/shellescape"
	"github.com/chronowall/chronowall/internal/index"
)

const (
	swwwAttempts    = 5
	swwwRetryDelay  = time.Second
	swwwSettleDelay = time.Second
	swwwBinary      = "swww"
)

var swwwDefaultArgs = []string{"-t", "fade"}

// swww drives the swww wayland wallpaper daemon.
type swww struct {
	opts Options
}

func newSwww(opts Options) *swww { return &swww{opts: opts} }

func (*swww) Name() string { return swwwBinary }

// Initialize polls "swww query" until the daemon answers. A fresh daemon
// answers before it can draw, so a successful poll is followed by a short
// settle delay.
func (s *swww) Initialize(ctx context.Context) error {
	var lastErr error
	for attempt := 1; attempt <= swwwAttempts; attempt++ {
		_, err := s.opts.Runner.Run(ctx, swwwBinary, "query")
		if err == nil {
			return s.opts.Sleep(ctx, swwwSettleDelay)
		}
		lastErr = err
		if err := s.opts.Sleep(ctx, swwwRetryDelay); err != nil {
			return err
		}
	}
	return fmt.Errorf("%w: swww query failed %d times: %v", ErrUnavailable, swwwAttempts, lastErr)
}

func (s *swww) Apply(ctx context.Context, path string) error {
	extra := swwwDefaultArgs
	if s.opts.Args != nil {
		extra = s.opts.Args
	}
	args := append([]string{"img", path}, extra...)
	if _, err := s.opts.Runner.Run(ctx, swwwBinary, args...); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrApplyFailed, shellescape.QuoteCommand(append([]string{swwwBinary}, args...)), err)
	}
	return nil
}

func (*swww) SupportedExtensions() index.ExtensionSet {
	return index.NewExtensionSet("jpg", "jpeg", "png", "gif", "webp", "bmp", "pnm", "tga", "tiff")
}
