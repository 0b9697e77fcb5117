package storetest

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/courtprep/backend/internal/model"
	"github.com/courtprep/backend/internal/store"
)

// Fake is an in-memory store.Store for handler and service tests.
// Creation times are strictly monotonic so ordering assertions are stable.
type Fake struct {
	mu       sync.Mutex
	clock    time.Time
	profiles map[string]*model.Profile
	cases    map[string]*model.Case
	events   map[string]*model.CaseEvent

	// FailNext, when set, makes the next operation return the error once.
	FailNext error
}

func NewFake() *Fake {
	return &Fake{
		clock:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		profiles: map[string]*model.Profile{},
		cases:    map[string]*model.Case{},
		events:   map[string]*model.CaseEvent{},
	}
}

func (f *Fake) Profiles() store.Profiles { return fakeProfiles{f} }
func (f *Fake) Cases() store.Cases       { return fakeCases{f} }
func (f *Fake) Events() store.Events     { return fakeEvents{f} }

// HealthPing implements health.Pinger.
func (f *Fake) HealthPing(ctx context.Context) error { return nil }

func (f *Fake) tick() time.Time {
	f.clock = f.clock.Add(time.Second)
	return f.clock
}

func (f *Fake) takeErr() error {
	err := f.FailNext
	f.FailNext = nil
	return err
}

// SeedProfile registers a profile directly.
func (f *Fake) SeedProfile(userID string, privateBeta bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profiles[userID] = &model.Profile{UserID: userID, IsPrivateBeta: privateBeta, CreationTime: f.tick()}
}

// SeedEvent inserts an event with an explicit creation time.
func (f *Fake) SeedEvent(e model.CaseEvent) model.CaseEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	if e.EventID == "" {
		e.EventID = uuid.New().String()
	}
	if e.CreationTime.IsZero() {
		e.CreationTime = f.tick()
	}
	cp := e
	f.events[e.EventID] = &cp
	return e
}

type fakeProfiles struct{ f *Fake }

func (p fakeProfiles) Get(ctx context.Context, userID string) (*model.Profile, error) {
	p.f.mu.Lock()
	defer p.f.mu.Unlock()
	if err := p.f.takeErr(); err != nil {
		return nil, err
	}
	pr, ok := p.f.profiles[userID]
	if !ok {
		return nil, fmt.Errorf("profile %s: %w", userID, model.ErrNotFound)
	}
	cp := *pr
	return &cp, nil
}

func (p fakeProfiles) SetPrivateBeta(ctx context.Context, userID string, enabled bool) error {
	p.f.mu.Lock()
	defer p.f.mu.Unlock()
	if err := p.f.takeErr(); err != nil {
		return err
	}
	pr, ok := p.f.profiles[userID]
	if !ok {
		p.f.profiles[userID] = &model.Profile{UserID: userID, IsPrivateBeta: enabled, CreationTime: p.f.tick()}
		return nil
	}
	pr.IsPrivateBeta = enabled
	return nil
}

type fakeCases struct{ f *Fake }

func (c fakeCases) Create(ctx context.Context, mc *model.Case) (*model.Case, error) {
	c.f.mu.Lock()
	defer c.f.mu.Unlock()
	if err := c.f.takeErr(); err != nil {
		return nil, err
	}
	out := *mc
	if out.CaseID == "" {
		out.CaseID = uuid.New().String()
	}
	out.CreationTime = c.f.tick()
	cp := out
	c.f.cases[out.CaseID] = &cp
	return &out, nil
}

func (c fakeCases) Get(ctx context.Context, ownerID, caseID string) (*model.Case, error) {
	c.f.mu.Lock()
	defer c.f.mu.Unlock()
	if err := c.f.takeErr(); err != nil {
		return nil, err
	}
	mc, ok := c.f.cases[caseID]
	if !ok || mc.OwnerID != ownerID {
		return nil, fmt.Errorf("case %s: %w", caseID, model.ErrNotFound)
	}
	cp := *mc
	return &cp, nil
}

func (c fakeCases) List(ctx context.Context, ownerID string) ([]*model.Case, error) {
	c.f.mu.Lock()
	defer c.f.mu.Unlock()
	if err := c.f.takeErr(); err != nil {
		return nil, err
	}
	var out []*model.Case
	for _, mc := range c.f.cases {
		if mc.OwnerID == ownerID {
			cp := *mc
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreationTime.After(out[j].CreationTime) })
	return out, nil
}

func (c fakeCases) UpdateHeading(ctx context.Context, ownerID, caseID string, h model.CaseHeading) error {
	c.f.mu.Lock()
	defer c.f.mu.Unlock()
	if err := c.f.takeErr(); err != nil {
		return err
	}
	mc, ok := c.f.cases[caseID]
	if !ok || mc.OwnerID != ownerID {
		return fmt.Errorf("case %s: %w", caseID, model.ErrNotFound)
	}
	mc.Heading = h
	return nil
}

func (c fakeCases) Delete(ctx context.Context, ownerID, caseID string) error {
	c.f.mu.Lock()
	defer c.f.mu.Unlock()
	if err := c.f.takeErr(); err != nil {
		return err
	}
	mc, ok := c.f.cases[caseID]
	if !ok || mc.OwnerID != ownerID {
		return nil
	}
	delete(c.f.cases, caseID)
	for id, ev := range c.f.events {
		if ev.CaseID == caseID {
			delete(c.f.events, id)
		}
	}
	return nil
}

type fakeEvents struct{ f *Fake }

func (e fakeEvents) Create(ctx context.Context, me *model.CaseEvent) (*model.CaseEvent, error) {
	e.f.mu.Lock()
	defer e.f.mu.Unlock()
	if err := e.f.takeErr(); err != nil {
		return nil, err
	}
	out := *me
	if out.EventID == "" {
		out.EventID = uuid.New().String()
	}
	out.CreationTime = e.f.tick()
	cp := out
	e.f.events[out.EventID] = &cp
	return &out, nil
}

func (e fakeEvents) Get(ctx context.Context, caseID, eventID string) (*model.CaseEvent, error) {
	e.f.mu.Lock()
	defer e.f.mu.Unlock()
	if err := e.f.takeErr(); err != nil {
		return nil, err
	}
	ev, ok := e.f.events[eventID]
	if !ok || ev.CaseID != caseID {
		return nil, fmt.Errorf("event %s: %w", eventID, model.ErrNotFound)
	}
	cp := *ev
	return &cp, nil
}

func (e fakeEvents) ListByCase(ctx context.Context, caseID string) ([]*model.CaseEvent, error) {
	e.f.mu.Lock()
	defer e.f.mu.Unlock()
	if err := e.f.takeErr(); err != nil {
		return nil, err
	}
	var out []*model.CaseEvent
	for _, ev := range e.f.events {
		if ev.CaseID == caseID {
			cp := *ev
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreationTime.Before(out[j].CreationTime) })
	return out, nil
}

func (e fakeEvents) Update(ctx context.Context, me *model.CaseEvent) error {
	e.f.mu.Lock()
	defer e.f.mu.Unlock()
	if err := e.f.takeErr(); err != nil {
		return err
	}
	ev, ok := e.f.events[me.EventID]
	if !ok || ev.CaseID != me.CaseID {
		return fmt.Errorf("event %s: %w", me.EventID, model.ErrNotFound)
	}
	ev.EventDate = me.EventDate
	ev.DateUnknown = me.DateUnknown
	ev.Summary = me.Summary
	ev.Evidence = me.Evidence
	return nil
}

func (e fakeEvents) Delete(ctx context.Context, eventID string) error {
	e.f.mu.Lock()
	defer e.f.mu.Unlock()
	if err := e.f.takeErr(); err != nil {
		return err
	}
	delete(e.f.events, eventID)
	return nil
}
