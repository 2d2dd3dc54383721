// Package scenario provides canned maintenance sequences that run on the
// simulated platform and check what each bus master observes afterwards.
//
// Some scenarios leave out a maintenance step on purpose. They pass when the
// stale data shows up.
package scenario

import (
	"bytes"
	"fmt"
	"sort"

	log "github.com/sirupsen/logrus"

	"github.com/sarchlab/cmu"
	"github.com/sarchlab/cmu/hooking"
	"github.com/sarchlab/cmu/platform/sim"
)

// A Scenario is a named maintenance sequence.
type Scenario struct {
	Name        string
	Description string

	// Negative scenarios omit a required step and expect stale data.
	Negative bool

	run func(e *env) error
}

// A Result is the outcome of running a scenario.
type Result struct {
	Name  string
	Err   error
	Stats sim.Stats
}

// Passed tells if the scenario observed what it expected.
func (r Result) Passed() bool {
	return r.Err == nil
}

// A Mismatch reports that a bus master observed unexpected data.
type Mismatch struct {
	What string
	Addr uint64
	Want []byte
	Got  []byte
}

func (m *Mismatch) Error() string {
	return fmt.Sprintf("%s at 0x%x: want % x, got % x",
		m.What, m.Addr, m.Want, m.Got)
}

var registry = map[string]Scenario{}

func register(s Scenario) {
	if _, ok := registry[s.Name]; ok {
		panic("scenario " + s.Name + " registered twice")
	}

	registry[s.Name] = s
}

// All returns every scenario sorted by name.
func All() []Scenario {
	all := make([]Scenario, 0, len(registry))
	for _, s := range registry {
		all = append(all, s)
	}

	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })

	return all
}

// Lookup finds a scenario by name.
func Lookup(name string) (Scenario, error) {
	s, ok := registry[name]
	if !ok {
		return Scenario{}, fmt.Errorf("unknown scenario %q", name)
	}

	return s, nil
}

// Run builds a platform from config, installs it, and runs s on it. The
// previously installed platform is restored afterwards.
func Run(s Scenario, config sim.Config, hooks ...hooking.Hook) Result {
	p := sim.New(config)
	for _, h := range hooks {
		p.AcceptHook(h)
	}

	prev := cmu.SetPlatform(p)
	defer cmu.SetPlatform(prev)

	logger := log.WithField("scenario", s.Name)
	logger.Debug("Scenario started")

	err := runCatching(s, &env{p: p, logger: logger})

	res := Result{
		Name:  s.Name,
		Err:   err,
		Stats: p.Stats(),
	}

	if err != nil {
		logger.WithError(err).Warn("Scenario failed")
	} else {
		logger.Debug("Scenario passed")
	}

	return res
}

// runCatching turns a bus fault of the simulated core into an error.
func runCatching(s Scenario, e *env) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("scenario %s aborted: %v", s.Name, r)
		}
	}()

	return s.run(e)
}

// env is what a scenario works with.
type env struct {
	p      *sim.Platform
	logger *log.Entry
}

func (e *env) step(msg string) {
	e.logger.Debug(msg)
}

func (e *env) expectMemory(what string, addr uint64, want []byte) error {
	got, err := e.p.DMA().Read(addr, len(want))
	if err != nil {
		return err
	}

	return compare(what, addr, want, got)
}

func (e *env) expectLoad(what string, addr uint64, want []byte) error {
	return compare(what, addr, want, e.p.Core().Load(addr, len(want)))
}

func (e *env) expectFetch(what string, addr uint64, want uint32) error {
	got := e.p.Core().Fetch(addr)

	return compare(what, addr, wordBytes(want), wordBytes(got))
}

func compare(what string, addr uint64, want, got []byte) error {
	if bytes.Equal(want, got) {
		return nil
	}

	return &Mismatch{What: what, Addr: addr, Want: want, Got: got}
}

func wordBytes(w uint32) []byte {
	return []byte{byte(w), byte(w >> 8), byte(w >> 16), byte(w >> 24)}
}

func pattern(n int, seed byte) []byte {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = seed ^ byte(i*7)
	}

	return buf
}
