// Package app holds the interactive side of the terminal site: the hub
// goroutine that owns every visitor's page state, runs skin lookups and
// broadcasts frames.
package app

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"termfolio/internal/colorgame"
	"termfolio/internal/glow"
	"termfolio/internal/render"
	"termfolio/internal/skin"
	"termfolio/internal/tasks"
)

const InputChanSize = 256

// Resolver turns a display name into a skin source. Failures resolve to
// the fallback source.
type Resolver interface {
	Resolve(ctx context.Context, name string) skin.Source
	Fallback() skin.Source
}

// SheetSource loads decoded skin sheets.
type SheetSource interface {
	Load(ctx context.Context, url string) (image.Image, error)
}

// ScoreStore keeps colour game best scores.
type ScoreStore interface {
	BestScore(ctx context.Context, player string) (int, error)
	RecordScore(ctx context.Context, player string, score int) (int, error)
}

// Frame is what a session draws on each tick.
type Frame struct {
	View render.View
	Quit bool
}

// FrameChan is the per-session channel that receives frames.
type FrameChan chan Frame

// Deps are the collaborators of a Hub. Scores, Tasks and Gallery may be
// empty.
type Deps struct {
	Resolver Resolver
	Sheets   SheetSource
	Scores   ScoreStore
	Tasks    []tasks.Task
	Gallery  *render.Gallery
	Logger   *slog.Logger
	Debounce time.Duration
	Seed     uint64
}

type lookupResult struct {
	visitorID string
	seq       uint64
	source    skin.Source
	sheet     image.Image
}

// Hub is the single goroutine owning all visitor state.
type Hub struct {
	deps     Deps
	log      *slog.Logger
	debounce uint64
	rng      *rand.Rand

	inputCh   chan InputEvent
	resultCh  chan lookupResult
	tickCount uint64

	ctx    context.Context
	cancel context.CancelFunc

	mu         sync.RWMutex
	visitors   map[string]*Visitor
	frameChans map[string]FrameChan
}

// NewHub creates a hub. Call Run to start ticking.
func NewHub(d Deps) *Hub {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Debounce <= 0 {
		d.Debounce = DefaultDebounce
	}
	if d.Seed == 0 {
		d.Seed = uint64(time.Now().UnixNano())
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		deps:       d,
		log:        d.Logger,
		debounce:   uint64(SecsToTicks(d.Debounce.Seconds())),
		rng:        rand.New(rand.NewPCG(d.Seed, d.Seed^0x9e3779b97f4a7c15)),
		inputCh:    make(chan InputEvent, InputChanSize),
		resultCh:   make(chan lookupResult, InputChanSize),
		ctx:        ctx,
		cancel:     cancel,
		visitors:   make(map[string]*Visitor),
		frameChans: make(map[string]FrameChan),
	}
}

// InputChan returns the shared input channel for sessions to send events.
func (h *Hub) InputChan() chan<- InputEvent {
	return h.inputCh
}

// AddVisitor registers a session for name with its terminal size. Returns
// the effective visitor ID and the frame channel.
func (h *Hub) AddVisitor(name string, width, height int) (string, FrameChan) {
	best := 0
	if h.deps.Scores != nil && name != "" {
		var err error
		if best, err = h.deps.Scores.BestScore(h.ctx, name); err != nil {
			h.log.Warn("best score read failed", "player", name, "error", err)
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	// If this name is already online, add a suffix
	id := name
	if _, online := h.visitors[id]; online || id == "" {
		id = fmt.Sprintf("%s_%04d", name, time.Now().UnixNano()%10000)
	}

	v := &Visitor{
		ID:      id,
		Name:    name,
		Width:   width,
		Height:  height,
		best:    best,
		source:  h.deps.Resolver.Fallback(),
		pending: true,
		book:    glow.NewBook(rand.Uint64()),
	}
	h.visitors[id] = v
	ch := make(FrameChan, 2)
	h.frameChans[id] = ch
	return id, ch
}

// RemoveVisitor unregisters a session and closes its frame channel.
func (h *Hub) RemoveVisitor(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.visitors, id)
	if ch, ok := h.frameChans[id]; ok {
		close(ch)
		delete(h.frameChans, id)
	}
}

// Run ticks the hub until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	defer h.cancel()

	ticker := time.NewTicker(FrameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.tick()
		}
	}
}

func (h *Hub) tick() {
	// Drain all pending input events
	for {
		select {
		case ev := <-h.inputCh:
			h.processInput(ev)
		default:
			goto inputDrained
		}
	}
inputDrained:

	for {
		select {
		case r := <-h.resultCh:
			h.applyResult(r)
		default:
			goto resultsDrained
		}
	}
resultsDrained:

	h.tickCount++

	h.mu.RLock()
	defer h.mu.RUnlock()

	for id, v := range h.visitors {
		if v.pending && h.tickCount >= v.dueTick {
			h.dispatch(v)
		}
		if v.Page == PageLife {
			v.book.Step(FrameInterval)
		}

		frame := Frame{Quit: v.quit}
		if !v.quit {
			frame.View = h.view(v)
		}

		// Non-blocking send; slow clients drop frames
		select {
		case h.frameChans[id] <- frame:
		default:
		}
	}
}

func (h *Hub) visitor(id string) *Visitor {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.visitors[id]
}

func (h *Hub) processInput(ev InputEvent) {
	v := h.visitor(ev.VisitorID)
	if v == nil {
		return
	}

	switch ev.Action {
	case ActionQuit:
		v.quit = true
		return
	case ActionResize:
		v.Width, v.Height = ev.Width, ev.Height
		h.recomposite(v)
		return
	case ActionBack:
		if v.Page == PageLife && v.large {
			v.large = false
			return
		}
		v.Page = PageHome
		return
	}

	switch v.Page {
	case PageHome:
		h.homeInput(v, ev)
	case PageColour:
		h.colourInput(v, ev)
	case PageLife:
		h.lifeInput(v, ev)
	}
}

func (h *Hub) homeInput(v *Visitor, ev InputEvent) {
	switch ev.Action {
	case ActionUp:
		v.homeSel = cycle(v.homeSel, len(homeItems), -1)
	case ActionDown:
		v.homeSel = cycle(v.homeSel, len(homeItems), 1)
	case ActionRune:
		if ev.Rune == 'q' {
			v.quit = true
		}
	case ActionEnter:
		switch v.homeSel {
		case homeColour:
			if v.game == nil {
				v.game = colorgame.New(h.rng, v.best)
			}
			v.Page = PageColour
		case homeLife:
			v.Page = PageLife
		case homeQuit:
			v.quit = true
		}
	}
}

func (h *Hub) colourInput(v *Visitor, ev InputEvent) {
	g := v.game
	n := len(g.Colors())
	switch ev.Action {
	case ActionLeft, ActionUp:
		v.colourSel = cycle(v.colourSel, n, -1)
	case ActionRight, ActionDown:
		v.colourSel = cycle(v.colourSel, n, 1)
	case ActionEnter:
		if g.Outcome() == colorgame.Pending {
			if _, err := g.Guess(v.colourSel); err != nil {
				h.log.Debug("guess rejected", "visitor", v.ID, "error", err)
			}
			return
		}
		if err := nextRound(g); err != nil {
			h.log.Debug("round advance rejected", "visitor", v.ID, "outcome", g.Outcome().String(), "error", err)
			return
		}
		v.colourSel = 0
		if g.Best() > v.best {
			v.best = g.Best()
			h.recordScore(v.Name, v.best)
		}
	}
}

// nextRound continues after a win and starts over after a loss.
func nextRound(g *colorgame.Game) error {
	if g.Outcome() == colorgame.Correct {
		return g.Continue()
	}
	return g.Retry()
}

func (h *Hub) recordScore(player string, best int) {
	if h.deps.Scores == nil || player == "" {
		return
	}
	go func() {
		if _, err := h.deps.Scores.RecordScore(h.ctx, player, best); err != nil {
			h.log.Warn("best score write failed", "player", player, "error", err)
		}
	}()
}

func (h *Hub) lifeInput(v *Visitor, ev InputEvent) {
	if ev.Action == ActionTab {
		if v.focus == render.FocusSearch {
			v.focus = render.FocusInfo
		} else {
			v.focus = render.FocusSearch
		}
		return
	}

	if v.large {
		switch ev.Action {
		case ActionLeft:
			v.image = cycle(v.image, h.deps.Gallery.Len(), -1)
		case ActionRight:
			v.image = cycle(v.image, h.deps.Gallery.Len(), 1)
		case ActionEnter:
			v.large = false
		}
		return
	}

	if v.focus == render.FocusSearch {
		h.searchInput(v, ev)
		return
	}

	switch ev.Action {
	case ActionEnter:
		if v.menuOpen && v.menu == render.MenuGallery && h.deps.Gallery.Len() > 0 {
			v.large = true
			return
		}
		v.menuOpen = !v.menuOpen
	case ActionUp:
		if v.menuOpen {
			v.menu = cycle(v.menu, len(render.MenuNames), -1)
		}
	case ActionDown:
		if v.menuOpen {
			v.menu = cycle(v.menu, len(render.MenuNames), 1)
		}
	case ActionLeft, ActionRight:
		dir := 1
		if ev.Action == ActionLeft {
			dir = -1
		}
		switch {
		case !v.menuOpen:
		case v.menu == render.MenuGallery:
			v.image = cycle(v.image, h.deps.Gallery.Len(), dir)
		case v.menu == render.MenuTasks:
			v.task = cycle(v.task, len(h.deps.Tasks), dir)
		}
	case ActionRune:
		switch ev.Rune {
		case 'e':
			v.book.Toggle()
		case 'r':
			v.menuOpen = !v.menuOpen
		}
	}
}

func (h *Hub) searchInput(v *Visitor, ev InputEvent) {
	switch ev.Action {
	case ActionRune:
		if len([]rune(v.query)) >= MaxQueryLen || ev.Rune < ' ' {
			return
		}
		v.query += string(ev.Rune)
	case ActionBackspace:
		q := []rune(v.query)
		if len(q) == 0 {
			return
		}
		v.query = string(q[:len(q)-1])
	case ActionEnter:
		if v.pending {
			v.dueTick = h.tickCount
		}
		return
	default:
		return
	}
	v.pending = true
	v.dueTick = h.tickCount + h.debounce
}

// dispatch starts a lookup for the visitor's current query. Only the result
// carrying the latest sequence number is applied.
func (h *Hub) dispatch(v *Visitor) {
	v.pending = false
	v.seq++
	v.searching = true

	id, seq, query := v.ID, v.seq, v.query
	go func() {
		src, sheet := h.lookup(query)
		select {
		case h.resultCh <- lookupResult{visitorID: id, seq: seq, source: src, sheet: sheet}:
		case <-h.ctx.Done():
		}
	}()
}

func (h *Hub) lookup(query string) (skin.Source, image.Image) {
	return ResolveSheet(h.ctx, h.deps.Resolver, h.deps.Sheets, query, h.log)
}

// ResolveSheet resolves name to a source and loads its sheet. A sheet that
// cannot be loaded falls back to the fallback skin, then to the built-in
// one, so a sheet is always returned.
func ResolveSheet(ctx context.Context, r Resolver, sheets SheetSource, name string, logger *slog.Logger) (skin.Source, image.Image) {
	src := r.Resolve(ctx, name)
	sheet, err := sheets.Load(ctx, src.URL)
	if err == nil {
		return src, sheet
	}
	logger.Warn("skin sheet load failed", "url", src.URL, "error", err)

	src = r.Fallback()
	if sheet, err = sheets.Load(ctx, src.URL); err == nil {
		return src, sheet
	}
	logger.Warn("fallback sheet load failed", "url", src.URL, "error", err)
	return src, skin.DefaultSheet()
}

func (h *Hub) applyResult(r lookupResult) {
	v := h.visitor(r.visitorID)
	if v == nil || r.seq != v.seq {
		return
	}
	v.searching = false
	v.source = r.source
	v.sheet = r.sheet
	v.canvasW, v.canvasH = 0, 0
	h.recomposite(v)
}

// recomposite paints the visitor's sheet onto a fresh surface sized for the
// terminal. The previous image stays untouched, so frames already handed to
// sessions never change.
func (h *Hub) recomposite(v *Visitor) {
	if v.sheet == nil {
		return
	}
	w, hh := render.CharacterCanvas(v.Width, v.Height)
	if w == v.canvasW && hh == v.canvasH {
		return
	}
	v.character, v.overlay = skin.CompositeImage(v.sheet, w, hh)
	v.canvasW, v.canvasH = w, hh
}
