package system

import (
	"context"
	"errors"
	stdnet "net"
	"testing"
	"time"

	"github.com/hoverpick/hoverpick/internal/component"
	"github.com/hoverpick/hoverpick/internal/core/ecs"
	"github.com/hoverpick/hoverpick/internal/core/event"
	coresys "github.com/hoverpick/hoverpick/internal/core/system"
	"github.com/hoverpick/hoverpick/internal/data"
	"github.com/hoverpick/hoverpick/internal/handler"
	"github.com/hoverpick/hoverpick/internal/net"
	"github.com/hoverpick/hoverpick/internal/net/packet"
	"github.com/hoverpick/hoverpick/internal/persist"
	"github.com/hoverpick/hoverpick/internal/picking"
	"github.com/hoverpick/hoverpick/internal/world"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const frame = 16 * time.Millisecond

type harness struct {
	state  *world.State
	bus    *event.Bus
	runner *coresys.Runner
	hovers []event.HoverChanged
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		state:  world.NewState(),
		bus:    event.NewBus(),
		runner: coresys.NewRunner(),
	}
	h.state.Screen = world.ScreenDimensions{Width: 800, Height: 600}
	h.state.Sheets.Put("tiles", []world.Sprite{{Width: 4, Height: 4}})
	event.Subscribe(h.bus, func(e event.HoverChanged) { h.hovers = append(h.hovers, e) })

	log := zap.NewNop()
	h.runner.Register(NewEventDispatchSystem(h.bus))
	h.runner.Register(NewPickingSystem(h.state, h.bus, log))
	h.runner.Register(NewFeedbackSystem(h.state, log))
	h.runner.Register(NewCleanupSystem(h.state.ECS, log))
	return h
}

// addCamera looks straight down from slightly off the origin so rounded
// positions never straddle zero.
func (h *harness) addCamera() ecs.EntityID {
	return h.state.SpawnCamera(component.Standard3D(800, 600), component.NewTransform(0.3, 0.3, 10))
}

func (h *harness) addFloor() ecs.EntityID {
	return h.state.SpawnPickable("Floor", component.NewTransform(0, 0, 0), component.SpriteRender{Sheet: "tiles"})
}

func (h *harness) addSlots() {
	h.state.SpawnUIText(picking.SlotMousePosition, "-", 10, 10)
	h.state.SpawnUIText(picking.SlotUnderMouse, "-", 10, 30)
}

func (h *harness) slot(t *testing.T, key string) string {
	t.Helper()
	text, ok := h.state.UI.Text(key)
	if !ok {
		t.Fatalf("slot %q missing", key)
	}
	return text
}

func TestPickingNoCameraWritesNothing(t *testing.T) {
	h := newHarness(t)
	h.addFloor()
	h.addSlots()
	h.state.Pointer.MoveTo(400, 300)

	h.runner.Tick(frame)

	if h.state.Pick.Valid {
		t.Error("pick should be invalid without a camera")
	}
	if got := h.slot(t, picking.SlotMousePosition); got != "-" {
		t.Errorf("mouse_position = %q, want untouched", got)
	}
	if got := h.slot(t, picking.SlotUnderMouse); got != "-" {
		t.Errorf("under_mouse = %q, want untouched", got)
	}
}

func TestPickingHoverAndExit(t *testing.T) {
	h := newHarness(t)
	h.addCamera()
	floor := h.addFloor()
	h.addSlots()

	h.state.Pointer.MoveTo(400, 300)
	h.runner.Tick(frame)

	if got := h.slot(t, picking.SlotUnderMouse); got != "Floor" {
		t.Errorf("under_mouse = %q, want Floor", got)
	}
	if got := h.slot(t, picking.SlotMousePosition); got != "(0, 0)" {
		t.Errorf("mouse_position = %q, want (0, 0)", got)
	}
	if h.state.Pick.Hovered != floor {
		t.Errorf("hovered = %v, want %v", h.state.Pick.Hovered, floor)
	}

	// Top-left corner lands at about (-7.4, 6.1), off the 4×4 floor.
	h.state.Pointer.MoveTo(0, 0)
	h.runner.Tick(frame)

	if got := h.slot(t, picking.SlotUnderMouse); got != "" {
		t.Errorf("under_mouse = %q, want empty", got)
	}
	if got := h.slot(t, picking.SlotMousePosition); got != "(-7, 6)" {
		t.Errorf("mouse_position = %q, want (-7, 6)", got)
	}

	// HoverChanged is delivered the frame after it is emitted.
	h.runner.Tick(frame)
	if len(h.hovers) != 2 {
		t.Fatalf("hover events = %d, want 2", len(h.hovers))
	}
	if h.hovers[0].Next != "Floor" || h.hovers[0].Prev != "" {
		t.Errorf("first transition = %+v", h.hovers[0])
	}
	if h.hovers[1].Prev != "Floor" || h.hovers[1].Next != "" || !h.hovers[1].NextID.IsZero() {
		t.Errorf("second transition = %+v", h.hovers[1])
	}
}

func TestPickingParallelRayKeepsPriorText(t *testing.T) {
	h := newHarness(t)
	cam := h.addCamera()
	h.addFloor()
	h.addSlots()

	h.state.Pointer.MoveTo(400, 300)
	h.runner.Tick(frame)
	if got := h.slot(t, picking.SlotUnderMouse); got != "Floor" {
		t.Fatalf("under_mouse = %q, want Floor", got)
	}

	tf, _ := h.state.Transforms.Get(cam)
	tf.SetRotationEuler(1.5707963267948966, 0, 0)
	h.runner.Tick(frame)

	if h.state.Pick.Valid {
		t.Error("pick should be invalid for a parallel ray")
	}
	if got := h.slot(t, picking.SlotUnderMouse); got != "Floor" {
		t.Errorf("under_mouse = %q, want prior text kept", got)
	}
	if got := h.slot(t, picking.SlotMousePosition); got != "(0, 0)" {
		t.Errorf("mouse_position = %q, want prior text kept", got)
	}
}

func TestPickingPointerAbsent(t *testing.T) {
	h := newHarness(t)
	h.addCamera()
	h.addSlots()

	h.runner.Tick(frame)
	if h.state.Pick.Valid {
		t.Error("no pointer means no pick")
	}
	if got := h.slot(t, picking.SlotMousePosition); got != "-" {
		t.Errorf("mouse_position = %q", got)
	}
}

func TestPickingWithoutSlots(t *testing.T) {
	h := newHarness(t)
	h.addCamera()
	h.addFloor()
	h.state.Pointer.MoveTo(400, 300)

	h.runner.Tick(frame)
	if !h.state.Pick.Valid || h.state.Pick.Name != "Floor" {
		t.Errorf("pick = %+v", h.state.Pick)
	}

	// Slots that show up later start receiving text.
	h.addSlots()
	h.runner.Tick(frame)
	if got := h.slot(t, picking.SlotUnderMouse); got != "Floor" {
		t.Errorf("under_mouse = %q, want Floor", got)
	}
}

func TestPickingActiveCameraDestroyed(t *testing.T) {
	h := newHarness(t)
	first := h.addCamera()
	second := h.state.SpawnCamera(component.Standard2D(80, 60), component.NewTransform(100, 100, 10))
	h.addSlots()
	h.state.Active.Set(second)
	h.state.Pointer.MoveTo(400, 300)

	h.runner.Tick(frame)
	if got := h.slot(t, picking.SlotMousePosition); got != "(100, 100)" {
		t.Errorf("mouse_position = %q, want (100, 100)", got)
	}

	h.state.Destroy(second)
	h.runner.Tick(frame) // cleanup removes it at frame end
	h.runner.Tick(frame)
	if _, ok := h.state.ActiveCamera(); ok {
		t.Error("active reference should be cleared")
	}
	if got := h.slot(t, picking.SlotMousePosition); got != "(0, 0)" {
		t.Errorf("mouse_position = %q, want fallback to camera %v", got, first)
	}
}

type fakeAssets struct {
	sheets chan data.SheetLoaded
	slots  chan data.UISlotDef
}

func (f *fakeAssets) Sheets() <-chan data.SheetLoaded { return f.sheets }
func (f *fakeAssets) Slots() <-chan data.UISlotDef    { return f.slots }

func TestAssetSystemInstallsLateAssets(t *testing.T) {
	st := world.NewState()
	src := &fakeAssets{
		sheets: make(chan data.SheetLoaded, 2),
		slots:  make(chan data.UISlotDef, 2),
	}
	sys := NewAssetSystem(src, st, zap.NewNop())

	sys.Update(frame)
	if st.Sheets.Count() != 0 {
		t.Fatal("nothing should be installed yet")
	}

	src.sheets <- data.SheetLoaded{Handle: "tiles", Sprites: []world.Sprite{{Width: 1, Height: 1}}}
	src.sheets <- data.SheetLoaded{Handle: "broken", Err: errors.New("no such file")}
	src.slots <- data.UISlotDef{Key: picking.SlotUnderMouse, Text: "?"}
	src.slots <- data.UISlotDef{Key: picking.SlotUnderMouse, Text: "dup"}
	sys.Update(frame)

	if !st.Sheets.Loaded("tiles") || st.Sheets.Loaded("broken") {
		t.Error("only the good sheet should be loaded")
	}
	if text, ok := st.UI.Text(picking.SlotUnderMouse); !ok || text != "?" {
		t.Errorf("slot = %q %v, want first definition", text, ok)
	}
	if st.UITexts.Len() != 1 {
		t.Errorf("ui slots = %d, want 1", st.UITexts.Len())
	}
}

type fakeJournal struct {
	fail    bool
	batches [][]persist.JournalEntry
}

func (f *fakeJournal) WriteBatch(_ context.Context, entries []persist.JournalEntry) error {
	if f.fail {
		return errors.New("db down")
	}
	f.batches = append(f.batches, append([]persist.JournalEntry(nil), entries...))
	return nil
}

func TestJournalSystem(t *testing.T) {
	st := world.NewState()
	cam := st.SpawnCamera(component.Camera{Name: "main"}, component.NewTransform(0, 0, 10))
	st.Active.Set(cam)
	bus := event.NewBus()
	w := &fakeJournal{fail: true}
	sys := NewJournalSystem(w, st, bus, zap.NewNop(), 2, 3)

	emit := func(next string) {
		event.Emit(bus, event.HoverChanged{Next: next})
		bus.SwapBuffers()
		bus.DispatchAll()
	}

	emit("Floor")
	sys.Update(frame)
	sys.Update(frame)
	if sys.Pending() != 1 {
		t.Fatalf("pending = %d, want 1 after failed flush", sys.Pending())
	}

	for _, n := range []string{"", "Floor", ""} {
		emit(n)
	}
	if sys.Pending() != 3 {
		t.Errorf("pending = %d, want trimmed to 3", sys.Pending())
	}

	w.fail = false
	sys.Flush()
	if sys.Pending() != 0 || len(w.batches) != 1 {
		t.Fatalf("pending = %d, batches = %d", sys.Pending(), len(w.batches))
	}
	if got := w.batches[0][0]; got.Next != "" || got.Camera != "main" {
		t.Errorf("oldest kept entry = %+v", got)
	}
}

type fakeFeed struct {
	newCh chan *net.Session
}

func (f *fakeFeed) NewSessions() <-chan *net.Session { return f.newCh }

func TestInputAndBroadcast(t *testing.T) {
	st := world.NewState()
	st.SpawnUIText(picking.SlotUnderMouse, "", 0, 0)
	bus := event.NewBus()
	log := zap.NewNop()

	reg := packet.NewRegistry(log)
	handler.RegisterAll(reg, &handler.Deps{World: st, Bus: bus, Log: log})

	client, server := stdnet.Pipe()
	defer client.Close()
	sess := net.NewSession(server, 7, 8, 8, 0, log)
	sess.Start()

	feed := &fakeFeed{newCh: make(chan *net.Session, 1)}
	feed.newCh <- sess
	store := net.NewSessionStore()
	input := NewInputSystem(feed, reg, store, 16, log)
	broadcast := NewBroadcastSystem(st, store)

	hello := packet.NewWriterWithOpcode(packet.C_OPCODE_HELLO)
	hello.WriteS("")
	if err := net.WriteFrame(client, hello.Bytes()); err != nil {
		t.Fatal(err)
	}
	ptr := packet.NewWriterWithOpcode(packet.C_OPCODE_POINTER)
	ptr.WriteF(12)
	ptr.WriteF(34)
	if err := net.WriteFrame(client, ptr.Bytes()); err != nil {
		t.Fatal(err)
	}

	// Both frames are queued once the second write returns.
	deadline := time.Now().Add(2 * time.Second)
	for len(sess.InQueue) < 2 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	input.Update(frame)

	if store.Len() != 1 || sess.State() != packet.StateReady {
		t.Fatalf("store = %d, state = %v", store.Len(), sess.State())
	}
	if p := st.Pointer; !p.Present || p.X != 12 || p.Y != 34 {
		t.Errorf("pointer = %+v", p)
	}

	readOp := func() *packet.Reader {
		t.Helper()
		client.SetReadDeadline(time.Now().Add(2 * time.Second))
		payload, err := net.ReadFrame(client)
		if err != nil {
			t.Fatal(err)
		}
		return packet.NewReader(payload)
	}

	// WELCOME and the HELLO catch-up slot, then the first broadcast.
	broadcast.Update(frame)
	if r := readOp(); r.Opcode() != packet.S_OPCODE_WELCOME {
		t.Fatalf("opcode = %#x, want WELCOME", r.Opcode())
	}
	if r := readOp(); r.Opcode() != packet.S_OPCODE_UI_TEXT {
		t.Fatalf("opcode = %#x, want UI_TEXT", r.Opcode())
	}
	if r := readOp(); r.Opcode() != packet.S_OPCODE_UI_TEXT {
		t.Fatalf("opcode = %#x, want UI_TEXT", r.Opcode())
	}

	st.UI.SetText(picking.SlotUnderMouse, "Floor")
	broadcast.Update(frame)
	r := readOp()
	if key, text := r.ReadS(), r.ReadS(); key != picking.SlotUnderMouse || text != "Floor" {
		t.Errorf("broadcast = %q %q", key, text)
	}

	sess.Close()
	input.Update(frame)
	if store.Len() != 0 {
		t.Errorf("closed session not reaped: store=%d", store.Len())
	}
}

func TestInputReapsClosedSessionOnce(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	log := zap.New(core)

	client, server := stdnet.Pipe()
	defer client.Close()
	sess := net.NewSession(server, 3, 4, 4, 0, log)
	sess.Start()

	feed := &fakeFeed{newCh: make(chan *net.Session, 1)}
	feed.newCh <- sess
	store := net.NewSessionStore()
	input := NewInputSystem(feed, packet.NewRegistry(log), store, 16, log)

	input.Update(frame)
	if store.Len() != 1 {
		t.Fatalf("store = %d, want 1", store.Len())
	}
	sess.Close()
	for i := 0; i < 3; i++ {
		input.Update(frame)
	}
	if store.Len() != 0 {
		t.Errorf("store = %d after close", store.Len())
	}
	if n := logs.FilterMessage("feed client disconnected").Len(); n != 1 {
		t.Errorf("disconnect logged %d times, want 1", n)
	}
}
