package player

import (
	"fmt"
	"sync"

	"github.com/desertthunder/showfinder/internal/shared"
)

// Scheduler runs fn on the next tick of the owning event loop.
type Scheduler interface {
	Next(fn func())
}

// SchedulerFunc adapts a function to [Scheduler].
type SchedulerFunc func(fn func())

func (f SchedulerFunc) Next(fn func()) { f(fn) }

// ChannelScheduler hands deferred work to an event loop that drains C.
type ChannelScheduler struct {
	ch chan func()
}

// NewChannelScheduler creates a scheduler with a buffer of size.
func NewChannelScheduler(size int) *ChannelScheduler {
	return &ChannelScheduler{ch: make(chan func(), size)}
}

// Next never blocks the caller, which is usually the loop that drains the channel.
func (s *ChannelScheduler) Next(fn func()) {
	select {
	case s.ch <- fn:
	default:
		go func() { s.ch <- fn }()
	}
}

// C is the channel of deferred work.
func (s *ChannelScheduler) C() <-chan func() {
	return s.ch
}

// NowPlaying is a snapshot of the slot. The zero value means nothing is playing.
type NowPlaying struct {
	VideoID  string
	Metadata Metadata
}

// Active reports whether a video is playing.
func (n NowPlaying) Active() bool {
	return n.VideoID != ""
}

// Role is the role of the active variant.
func (n NowPlaying) Role() Role {
	return n.Metadata.RoleOf(n.VideoID)
}

// Player is the now-playing slot and its only writer.
type Player struct {
	mu      sync.Mutex
	current NowPlaying
	gen     uint64
	sched   Scheduler
	subs    map[int]func(NowPlaying)
	nextSub int
}

// New creates an idle player that defers the second step of a video switch to sched.
func New(sched Scheduler) *Player {
	return &Player{sched: sched, subs: map[int]func(NowPlaying){}}
}

// Current returns a snapshot of the slot.
func (p *Player) Current() NowPlaying {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshot()
}

// Subscribe registers fn to receive every change. The returned func unregisters it.
func (p *Player) Subscribe(fn func(NowPlaying)) (unsubscribe func()) {
	p.mu.Lock()
	defer p.mu.Unlock()

	id := p.nextSub
	p.nextSub++
	p.subs[id] = fn

	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		delete(p.subs, id)
	}
}

// Play makes videoID the active video.
//
// A missing id or nil metadata is treated as [Player.Stop]. Playing the id that is already
// active replaces the metadata in one step. Any other id clears the slot now and commits on
// the next scheduler tick; a later Play or Stop supersedes the pending commit.
func (p *Player) Play(videoID string, meta *Metadata) {
	if videoID == "" || meta == nil {
		p.Stop()
		return
	}

	m := meta.clone()

	p.mu.Lock()
	p.gen++
	gen := p.gen

	if p.current.VideoID == videoID {
		p.current = NowPlaying{VideoID: videoID, Metadata: m}
		p.notifyLocked()
		return
	}

	cleared := p.current.Active()
	p.current = NowPlaying{}
	if cleared {
		p.notifyLocked()
	} else {
		p.mu.Unlock()
	}

	p.sched.Next(func() {
		p.mu.Lock()
		if p.gen != gen {
			p.mu.Unlock()
			return
		}
		p.current = NowPlaying{VideoID: videoID, Metadata: m}
		p.notifyLocked()
	})
}

// Stop clears the slot and cancels any pending switch.
func (p *Player) Stop() {
	p.mu.Lock()
	p.gen++
	if !p.current.Active() {
		p.mu.Unlock()
		return
	}
	p.current = NowPlaying{}
	p.notifyLocked()
}

// SwitchVariant swaps the active video for another known variant of the same artist. The
// metadata is untouched and there is no reset step.
func (p *Player) SwitchVariant(videoID string) error {
	p.mu.Lock()

	if !p.current.Active() {
		p.mu.Unlock()
		return shared.ErrNotPlaying
	}
	if !p.current.Metadata.Has(videoID) {
		p.mu.Unlock()
		return fmt.Errorf("%w: %s", shared.ErrUnknownVariant, videoID)
	}
	if p.current.VideoID == videoID {
		p.mu.Unlock()
		return nil
	}

	p.current.VideoID = videoID
	p.notifyLocked()
	return nil
}

// NextVariant switches to the variant after the active one.
func (p *Player) NextVariant() error {
	cur := p.Current()
	if !cur.Active() {
		return shared.ErrNotPlaying
	}
	next, ok := cur.Metadata.After(cur.VideoID)
	if !ok {
		return nil
	}
	return p.SwitchVariant(next.VideoID)
}

func (p *Player) snapshot() NowPlaying {
	return NowPlaying{VideoID: p.current.VideoID, Metadata: p.current.Metadata.clone()}
}

// notifyLocked releases the lock and then calls every subscriber with the new state.
func (p *Player) notifyLocked() {
	state := p.snapshot()
	subs := make([]func(NowPlaying), 0, len(p.subs))
	for _, fn := range p.subs {
		subs = append(subs, fn)
	}
	p.mu.Unlock()

	for _, fn := range subs {
		fn(state)
	}
}
