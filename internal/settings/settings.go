// Package settings resolves runtime-overridable configuration values.
//
// A [Settings] engine owns an ordered chain of [Handler] links. Reads walk the
// chain in order and the first handler holding the key wins; a lookup in a
// named scope that finds nothing falls back once to the global scope, and a
// global lookup that finds nothing falls back to the [Defaults] table.
// Writes go to every link flagged writable.
//
// Neither the engine nor the handlers in this package lock. Callers that
// share an engine between goroutines must serialise access themselves.
package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-settings/internal/codec"
	"github.com/MKhiriev/go-settings/internal/logger"
	"github.com/MKhiriev/go-settings/models"
)

// Settings is the resolution engine.
type Settings struct {
	links    []Link
	defaults Defaults

	ignoreUnsupportedForget bool

	logger *logger.Logger
}

// Option configures a [Settings] engine.
type Option func(*Settings)

// WithDefaults sets the last-resort defaults collaborator.
func WithDefaults(defaults Defaults) Option {
	return func(s *Settings) {
		s.defaults = defaults
	}
}

// WithIgnoreUnsupportedForget makes Forget skip writable handlers that
// return [ErrNotSupported] instead of failing.
func WithIgnoreUnsupportedForget() Option {
	return func(s *Settings) {
		s.ignoreUnsupportedForget = true
	}
}

// WithLogger sets the logger used for engine-level diagnostics.
func WithLogger(l *logger.Logger) Option {
	return func(s *Settings) {
		s.logger = l
	}
}

// New builds an engine over links, read in the given order.
func New(links []Link, opts ...Option) *Settings {
	s := &Settings{
		links:  append([]Link(nil), links...),
		logger: logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.logger.Debug().Int("handlers", len(s.links)).Msg("settings engine created")
	return s
}

// Handlers returns a copy of the chain.
func (s *Settings) Handlers() []Link {
	return append([]Link(nil), s.links...)
}

// Get resolves key in scope.
//
// The boolean result reports whether a value was found at all: a stored nil
// is (nil, true, nil) while "nothing stored and no default" is
// (nil, false, nil).
func (s *Settings) Get(ctx context.Context, key string, scope models.Scope) (any, bool, error) {
	k, err := s.parseKey(key)
	if err != nil {
		return nil, false, err
	}

	value, found, err := s.lookup(ctx, k, scope)
	if err != nil || found {
		return value, found, err
	}

	// single hop: named scope -> global
	if !scope.IsGlobal() {
		value, found, err = s.lookup(ctx, k, models.GlobalScope)
		if err != nil || found {
			return value, found, err
		}
	}

	value, found = s.defaultFor(k)
	logger.FromContext(ctx).Debug().
		Str("key", k.String()).
		Stringer("scope", scope).
		Bool("default", found).
		Msg("setting resolved from defaults")

	return value, found, nil
}

// Set stores value for key in scope on every writable handler, in chain
// order. The first failure stops the loop; handlers written before it keep
// the new value.
func (s *Settings) Set(ctx context.Context, key string, value any, scope models.Scope) error {
	k, err := s.parseKey(key)
	if err != nil {
		return err
	}

	// reject unstorable values before any handler is written
	if _, err = codec.Prepare(value); err != nil {
		return err
	}

	targets, err := s.writeTargets()
	if err != nil {
		return err
	}

	log := logger.FromContext(ctx)
	for _, link := range targets {
		if err = link.Handler.Set(ctx, k.Namespace, k.Property, value, scope); err != nil {
			log.Err(err).
				Str("func", "*Settings.Set").
				Str("handler", link.Name).
				Str("key", k.String()).
				Stringer("scope", scope).
				Msg("error storing setting")
			return wrapHandlerError("set", link, err)
		}
	}

	return nil
}

// Forget removes the override for key in scope from every writable handler,
// reverting it to whatever the remaining chain or the defaults supply.
// Forgetting a key that was never stored is not an error.
func (s *Settings) Forget(ctx context.Context, key string, scope models.Scope) error {
	k, err := s.parseKey(key)
	if err != nil {
		return err
	}

	targets, err := s.writeTargets()
	if err != nil {
		return err
	}

	log := logger.FromContext(ctx)
	for _, link := range targets {
		err = link.Handler.Forget(ctx, k.Namespace, k.Property, scope)
		if err == nil {
			continue
		}

		if s.ignoreUnsupportedForget && errors.Is(err, ErrNotSupported) {
			log.Debug().Str("handler", link.Name).Msg("handler cannot forget values, skipping")
			continue
		}

		log.Err(err).
			Str("func", "*Settings.Forget").
			Str("handler", link.Name).
			Str("key", k.String()).
			Stringer("scope", scope).
			Msg("error forgetting setting")
		return wrapHandlerError("forget", link, err)
	}

	return nil
}

// Flush clears every writable handler, including its backing store.
func (s *Settings) Flush(ctx context.Context) error {
	targets, err := s.writeTargets()
	if err != nil {
		return err
	}

	for _, link := range targets {
		if err = link.Handler.Flush(ctx); err != nil {
			logger.FromContext(ctx).Err(err).
				Str("func", "*Settings.Flush").
				Str("handler", link.Name).
				Msg("error flushing settings handler")
			return wrapHandlerError("flush", link, err)
		}
	}

	return nil
}

func (s *Settings) lookup(ctx context.Context, k models.SettingKey, scope models.Scope) (any, bool, error) {
	for _, link := range s.links {
		has, err := link.Handler.Has(ctx, k.Namespace, k.Property, scope)
		if err != nil {
			return nil, false, wrapHandlerError("has", link, err)
		}
		if !has {
			continue
		}

		value, err := link.Handler.Get(ctx, k.Namespace, k.Property, scope)
		if err != nil {
			return nil, false, wrapHandlerError("get", link, err)
		}

		logger.FromContext(ctx).Debug().
			Str("key", k.String()).
			Stringer("scope", scope).
			Str("handler", link.Name).
			Msg("setting resolved")
		return value, true, nil
	}

	return nil, false, nil
}

func (s *Settings) defaultFor(k models.SettingKey) (any, bool) {
	if s.defaults == nil {
		return nil, false
	}

	return s.defaults.Default(k.Namespace, k.Property)
}

func (s *Settings) parseKey(key string) (models.SettingKey, error) {
	k, err := ParseKey(key)
	if err != nil {
		return models.SettingKey{}, err
	}

	if s.defaults != nil {
		k.Namespace = s.defaults.Canonical(k.Namespace)
	}
	return k, nil
}

func (s *Settings) writeTargets() ([]Link, error) {
	targets := make([]Link, 0, len(s.links))
	for _, link := range s.links {
		if link.Writable {
			targets = append(targets, link)
		}
	}

	if len(targets) == 0 {
		return nil, ErrNoWritableHandler
	}
	return targets, nil
}

// wrapHandlerError tags err with the handler name. Errors that are not
// already classified are reported as storage failures.
func wrapHandlerError(op string, link Link, err error) error {
	if isClassified(err) {
		return fmt.Errorf("%s on %q handler: %w", op, link.Name, err)
	}
	return fmt.Errorf("%s on %q handler: %w: %w", op, link.Name, ErrStorage, err)
}

func isClassified(err error) bool {
	for _, target := range []error{
		ErrStorage,
		ErrNotSupported,
		codec.ErrUnsupportedValue,
		codec.ErrCorruptValue,
		context.Canceled,
		context.DeadlineExceeded,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
