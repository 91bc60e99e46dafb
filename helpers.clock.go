package main

import (
	"time"

	"github.com/gofrs/uuid"
)

var (
	_ Clocker       = (*Clock)(nil)             // ensure Clock implements Clocker
	_ TickerClocker = (*TickClock)(nil)         // ensure TickClock implements TickerClocker
	_ UIDGenerator  = (*ObjectIDGenerator)(nil) // ensure ObjectIDGenerator implements UIDGenerator
)

// Clocker is an interface for getting current real time.
type Clocker interface {
	Now() time.Time
}

// TickerClocker is an interface which can provide the current time and a
// ticker. It satisfies the zapcore clock contract.
type TickerClocker interface {
	Clocker
	NewTicker(time.Duration) *time.Ticker
}

// UIDGenerator is an interface for getting a uid.
type UIDGenerator interface {
	Generate() string
}

// Clock implements the Clocker interface.
type Clock struct {
	tz *time.Location
}

// NewClock returns a ready to use Clock with timezone set to UTC in
// production environment and Local in dev env.
func NewClock(isProd bool) *Clock {
	if isProd {
		return &Clock{time.UTC}
	}
	return &Clock{time.Local}
}

// Now provides current clock time.
func (ck *Clock) Now() time.Time {
	return time.Now().In(ck.tz)
}

// TickClock adds the ticker capability to a given clock.
type TickClock struct {
	clock Clocker
}

func NewTickClock(ck Clocker) *TickClock {
	return &TickClock{ck}
}

func (tc *TickClock) Now() time.Time {
	return tc.clock.Now()
}

func (tc *TickClock) NewTicker(d time.Duration) *time.Ticker {
	return time.NewTicker(d)
}

// ObjectIDGenerator implements the UIDGenerator interface.
type ObjectIDGenerator struct{}

// NewObjectIDGenerator returns a ready to use ObjectIDGenerator.
func NewObjectIDGenerator() *ObjectIDGenerator {
	return &ObjectIDGenerator{}
}

// Generate provides a random unique identifier.
func (g *ObjectIDGenerator) Generate() string {
	id, _ := uuid.NewV4()
	return id.String()
}
