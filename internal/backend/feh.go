package backend

import (
	"context"
	"fmt"

	"al.essio.dev/pkg/shellescape"
	"github.com/chronowall/chronowall/internal/index"
)

const fehBinary = "feh"

var fehDefaultArgs = []string{"--bg-center"}

// feh sets the X11 root window background.
type feh struct {
	opts Options
}

func newFeh(opts Options) *feh { return &feh{opts: opts} }

func (*feh) Name() string { return fehBinary }

func (f *feh) Initialize(ctx context.Context) error {
	if _, err := f.opts.Runner.Run(ctx, fehBinary, "--version"); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

func (f *feh) Apply(ctx context.Context, path string) error {
	args := fehDefaultArgs
	if f.opts.Args != nil {
		args = f.opts.Args
	}
	args = append(append([]string(nil), args...), path)
	if _, err := f.opts.Runner.Run(ctx, fehBinary, args...); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrApplyFailed, shellescape.QuoteCommand(append([]string{fehBinary}, args...)), err)
	}
	return nil
}

func (*feh) SupportedExtensions() index.ExtensionSet {
	return index.NewExtensionSet("jpg", "jpeg", "png", "webp", "bmp")
}
