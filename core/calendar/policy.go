package calendar

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
)

// conversion directions
const (
	DirectionToGregorian = "to_gregorian"
	DirectionToBS        = "to_bs"
)

// Served describes which strategy answered a conversion.
// Fallback holds the authoritative failure when the tabulated strategy took over.
type Served struct {
	Direction string
	Strategy  string
	Fallback  error
}

// Policy prefers an authoritative source and falls back to the tabulated
// converter whenever the source is missing, unavailable, does not cover the
// date or fails. Both paths return the same shapes; callers cannot tell them apart.
type Policy struct {
	authoritative AuthoritativeSource
	tabulated     *Tabulated
	observe       func(Served)
}

var _ Converter = (*Policy)(nil)

// NewPolicy returns a Policy. authoritative and observe may be nil.
func NewPolicy(tabulated *Tabulated, authoritative AuthoritativeSource, observe func(Served)) *Policy {
	return &Policy{
		authoritative: authoritative,
		tabulated:     tabulated,
		observe:       observe,
	}
}

func (p *Policy) Tabulated() *Tabulated { return p.tabulated }

func (p *Policy) ToGregorian(d Date) (time.Time, error) {
	var fallbackErr error
	if p.usable() && p.authoritative.Covers(d.year) {
		var t time.Time
		err := guard(func() (err error) {
			t, err = p.authoritative.ToGregorian(d)
			return err
		})
		if err == nil {
			p.served(DirectionToGregorian, p.authoritative.Name(), nil)
			return t, nil
		}
		if !notCovered(err) {
			fallbackErr = err
		}
	}

	t, err := p.tabulated.ToGregorian(d)
	if err != nil {
		return time.Time{}, err
	}
	p.served(DirectionToGregorian, p.tabulated.Name(), fallbackErr)
	return t, nil
}

func (p *Policy) ToBS(t time.Time) (Date, error) {
	var fallbackErr error
	if p.usable() {
		var d Date
		err := guard(func() (err error) {
			d, err = p.authoritative.ToBS(t)
			return err
		})
		switch {
		case err == nil && p.authoritative.Covers(d.year):
			p.served(DirectionToBS, p.authoritative.Name(), nil)
			return d, nil
		case err != nil && !notCovered(err):
			fallbackErr = err
		}
	}

	d, err := p.tabulated.ToBS(t)
	if err != nil {
		return Date{}, err
	}
	p.served(DirectionToBS, p.tabulated.Name(), fallbackErr)
	return d, nil
}

func (p *Policy) usable() bool {
	return p.authoritative != nil && p.authoritative.Available()
}

func (p *Policy) served(direction, strategy string, fallbackErr error) {
	if p.observe != nil {
		p.observe(Served{Direction: direction, Strategy: strategy, Fallback: fallbackErr})
	}
}

// notCovered reports a date the source does not publish, which is not a failure.
func notCovered(err error) bool {
	switch errors.Cause(err) {
	case ErrNotCovered, ErrBeforeEpoch:
		return true
	}
	return false
}

// guard turns a panicking external source into an ordinary failure.
func guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Wrap(ErrSourceUnavailable, fmt.Sprintf("panic: %v", r))
		}
	}()
	return fn()
}
