// Package notify delivers desktop notifications when an interval finishes
package notify

import (
	"log/slog"
	"sync"

	"github.com/gen2brain/beeep"
)

// Desktop shows notifications through the operating system. Notify returns
// immediately; delivery and the optional chime happen in the background.
type Desktop struct {
	send   func(title, msg string) error
	chime  func() error
	logger *slog.Logger
	wg     sync.WaitGroup
}

// Option configures a Desktop notifier.
type Option func(*Desktop)

// WithIcon sets the path of the notification icon.
func WithIcon(path string) Option {
	return func(d *Desktop) {
		d.send = func(title, msg string) error {
			return beeep.Notify(title, msg, path)
		}
	}
}

// WithSound plays a chime alongside each notification.
func WithSound(enabled bool) Option {
	return func(d *Desktop) {
		if enabled {
			d.chime = Chime
		} else {
			d.chime = nil
		}
	}
}

// WithLogger sets the logger delivery failures are reported to.
func WithLogger(l *slog.Logger) Option {
	return func(d *Desktop) {
		d.logger = l
	}
}

// WithSender replaces the function that displays the notification.
func WithSender(fn func(title, msg string) error) Option {
	return func(d *Desktop) {
		d.send = fn
	}
}

// New returns a Desktop notifier.
func New(opts ...Option) *Desktop {
	d := &Desktop{
		logger: slog.Default(),
	}

	WithIcon("")(d)

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// RequestPermission is a no-op: desktop notifications need no grant.
func (d *Desktop) RequestPermission() error {
	return nil
}

func (d *Desktop) Notify(title, msg string) error {
	d.wg.Add(1)

	go func() {
		defer d.wg.Done()

		if err := d.send(title, msg); err != nil {
			d.logger.Warn("unable to display notification", slog.Any("error", err))
		}
	}()

	if d.chime == nil {
		return nil
	}

	d.wg.Add(1)

	go func() {
		defer d.wg.Done()

		if err := d.chime(); err != nil {
			d.logger.Warn("unable to play sound", slog.Any("error", err))
		}
	}()

	return nil
}

// Wait blocks until pending notifications have been delivered.
func (d *Desktop) Wait() {
	d.wg.Wait()
}
