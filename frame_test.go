package flashlight

import (
	"errors"
	"testing"

	"github.com/gogpu/gpucontext"
)

// fakeWindow is a Window that also warps and shapes the cursor.
type fakeWindow struct {
	w, h   int
	warps  [][2]float64
	shapes []gpucontext.CursorShape
}

func (f *fakeWindow) Size() (int, int) { return f.w, f.h }

func (f *fakeWindow) SetCursorPos(x, y float64) {
	f.warps = append(f.warps, [2]float64{x, y})
}

func (f *fakeWindow) SetCursor(shape gpucontext.CursorShape) {
	f.shapes = append(f.shapes, shape)
}

// fakeSurface hands out fakeTargets. acquireErrs are returned by
// successive Acquire calls before it starts succeeding.
type fakeSurface struct {
	configures  [][2]int
	configErr   error
	acquireErrs []error
	presentErr  error
	targets     []*fakeTarget
}

func (s *fakeSurface) Configure(w, h int) error {
	s.configures = append(s.configures, [2]int{w, h})
	return s.configErr
}

func (s *fakeSurface) Acquire() (Target, error) {
	if len(s.acquireErrs) > 0 {
		err := s.acquireErrs[0]
		s.acquireErrs = s.acquireErrs[1:]
		if err != nil {
			return nil, err
		}
	}
	t := &fakeTarget{presentErr: s.presentErr}
	s.targets = append(s.targets, t)
	return t, nil
}

type fakeTarget struct {
	params     []OverlayParams
	draws      int
	presented  bool
	discarded  bool
	presentErr error
	uploadErr  error
}

func (t *fakeTarget) Upload(p OverlayParams) error {
	t.params = append(t.params, p)
	return t.uploadErr
}

func (t *fakeTarget) DrawQuad() error {
	t.draws++
	return nil
}

func (t *fakeTarget) Present() error {
	t.presented = true
	return t.presentErr
}

func (t *fakeTarget) Discard() { t.discarded = true }

func newTestSync(surface *fakeSurface) (*Synchronizer, *State, *fakeWindow) {
	win := &fakeWindow{w: 800, h: 600}
	state := NewState()
	return NewSynchronizer(state, surface, win), state, win
}

func TestFramePresents(t *testing.T) {
	surface := &fakeSurface{}
	sync, state, _ := newTestSync(surface)
	state.Apply(PointerMove{X: 50, Y: 60})

	status, err := sync.Frame()
	if err != nil || status != FramePresented {
		t.Fatalf("Frame() = %v, %v, want Presented, nil", status, err)
	}
	if len(surface.targets) != 1 {
		t.Fatalf("acquired %d targets, want 1", len(surface.targets))
	}
	tgt := surface.targets[0]
	if len(tgt.params) != 1 || tgt.draws != 1 || !tgt.presented {
		t.Errorf("target = %+v, want one upload, one draw, presented", tgt)
	}
	if got := tgt.params[0].Cursor; got.X() != 50 || got.Y() != 60 {
		t.Errorf("uploaded cursor = %v, want (50, 60)", got)
	}
}

func TestFrameUpdateBeforeUpload(t *testing.T) {
	surface := &fakeSurface{}
	sync, state, _ := newTestSync(surface)
	state.Apply(Scroll{Delta: 1})

	if _, err := sync.Frame(); err != nil {
		t.Fatal(err)
	}

	// Zoom 1.0095 after one step: the uploaded projection must already
	// reflect it.
	want := state.Camera.Projection(800, 600)
	if got := surface.targets[0].params[0].Projection; got != want {
		t.Errorf("uploaded projection = %v, want %v", got, want)
	}
	if !approx(state.Camera.Zoom, 1.0095) {
		t.Errorf("Zoom = %v, want 1.0095", state.Camera.Zoom)
	}
}

func TestFrameOutdatedRecovers(t *testing.T) {
	surface := &fakeSurface{acquireErrs: []error{ErrSurfaceOutdated}}
	sync, _, win := newTestSync(surface)

	status, err := sync.Frame()
	if err != nil || status != FrameSkipped {
		t.Fatalf("first Frame() = %v, %v, want Skipped, nil", status, err)
	}
	if sync.SurfaceState() != SurfaceNeedsReconfigure {
		t.Errorf("SurfaceState() = %v, want NeedsReconfigure", sync.SurfaceState())
	}

	// The window changed size while the surface was outdated.
	win.w, win.h = 1024, 768

	status, err = sync.Frame()
	if err != nil || status != FramePresented {
		t.Fatalf("second Frame() = %v, %v, want Presented, nil", status, err)
	}
	if sync.SurfaceState() != SurfaceReady {
		t.Errorf("SurfaceState() = %v, want Ready", sync.SurfaceState())
	}
	if len(surface.configures) != 1 || surface.configures[0] != [2]int{1024, 768} {
		t.Errorf("configures = %v, want [[1024 768]]", surface.configures)
	}
}

func TestFrameLostOnPresentRecovers(t *testing.T) {
	surface := &fakeSurface{presentErr: ErrSurfaceLost}
	sync, _, _ := newTestSync(surface)

	status, err := sync.Frame()
	if err != nil || status != FrameSkipped {
		t.Fatalf("Frame() = %v, %v, want Skipped, nil", status, err)
	}
	if sync.SurfaceState() != SurfaceNeedsReconfigure {
		t.Errorf("SurfaceState() = %v, want NeedsReconfigure", sync.SurfaceState())
	}
}

func TestFrameTimeoutStaysReady(t *testing.T) {
	surface := &fakeSurface{acquireErrs: []error{ErrSurfaceTimeout}}
	sync, _, _ := newTestSync(surface)

	status, err := sync.Frame()
	if err != nil || status != FrameSkipped {
		t.Fatalf("Frame() = %v, %v, want Skipped, nil", status, err)
	}
	if sync.SurfaceState() != SurfaceReady {
		t.Errorf("SurfaceState() = %v, want Ready", sync.SurfaceState())
	}
	if len(surface.configures) != 0 {
		t.Errorf("timeout reconfigured the surface %d times", len(surface.configures))
	}

	if status, _ := sync.Frame(); status != FramePresented {
		t.Errorf("retry Frame() = %v, want Presented", status)
	}
}

func TestFrameFatal(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"out of memory", ErrOutOfMemory},
		{"unclassified", errors.New("validation failed")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			surface := &fakeSurface{acquireErrs: []error{tt.err}}
			sync, _, _ := newTestSync(surface)

			status, err := sync.Frame()
			if status != FrameFailed {
				t.Errorf("Frame() status = %v, want Failed", status)
			}
			if !errors.Is(err, ErrFatal) || !errors.Is(err, tt.err) {
				t.Errorf("Frame() err = %v, want wrapping ErrFatal and %v", err, tt.err)
			}
			if sync.SurfaceState() != SurfaceFatal {
				t.Errorf("SurfaceState() = %v, want Fatal", sync.SurfaceState())
			}

			// Fatal is terminal.
			if _, err := sync.Frame(); !errors.Is(err, ErrFatal) {
				t.Errorf("second Frame() err = %v, want ErrFatal", err)
			}
			if len(surface.targets) != 0 {
				t.Errorf("acquired %d targets after fatal, want 0", len(surface.targets))
			}
		})
	}
}

func TestFrameUploadErrorDiscards(t *testing.T) {
	surface := &fakeSurface{}
	sync, _, _ := newTestSync(surface)
	// First frame to get a target we can poison for the next one.
	if _, err := sync.Frame(); err != nil {
		t.Fatal(err)
	}

	poisoned := &fakeTarget{uploadErr: ErrSurfaceOutdated}
	sync.surface = &stubSurface{target: poisoned}

	status, err := sync.Frame()
	if err != nil || status != FrameSkipped {
		t.Fatalf("Frame() = %v, %v, want Skipped, nil", status, err)
	}
	if !poisoned.discarded {
		t.Error("target not discarded after failed upload")
	}
	if poisoned.presented {
		t.Error("target presented after failed upload")
	}
}

type stubSurface struct{ target *fakeTarget }

func (s *stubSurface) Configure(int, int) error { return nil }
func (s *stubSurface) Acquire() (Target, error) { return s.target, nil }

func TestResize(t *testing.T) {
	surface := &fakeSurface{}
	sync, _, _ := newTestSync(surface)

	tests := []struct {
		w, h      int
		configure bool
	}{
		{1280, 720, true},
		{0, 720, false},
		{1280, 0, false},
		{640, 480, true},
	}
	for _, tt := range tests {
		before := len(surface.configures)
		if err := sync.Resize(tt.w, tt.h); err != nil {
			t.Fatalf("Resize(%d, %d) = %v", tt.w, tt.h, err)
		}
		configured := len(surface.configures) > before
		if configured != tt.configure {
			t.Errorf("Resize(%d, %d) configured = %v, want %v", tt.w, tt.h, configured, tt.configure)
		}
	}
	if w, h := sync.Size(); w != 640 || h != 480 {
		t.Errorf("Size() = %d, %d, want 640, 480", w, h)
	}
}

func TestResizeConfigureFailureIsFatal(t *testing.T) {
	surface := &fakeSurface{configErr: ErrOutOfMemory}
	sync, _, _ := newTestSync(surface)

	err := sync.Resize(100, 100)
	if !errors.Is(err, ErrFatal) {
		t.Errorf("Resize() err = %v, want ErrFatal", err)
	}
	if sync.SurfaceState() != SurfaceFatal {
		t.Errorf("SurfaceState() = %v, want Fatal", sync.SurfaceState())
	}
}

func TestFrameWarpsCursorOnWrap(t *testing.T) {
	surface := &fakeSurface{}
	sync, state, win := newTestSync(surface)

	state.Apply(PointerMove{X: 10, Y: 300})
	state.Apply(ButtonPress{Button: gpucontext.MouseButtonLeft})
	state.Apply(PointerMove{X: 0, Y: 300})

	if _, err := sync.Frame(); err != nil {
		t.Fatal(err)
	}

	if len(win.warps) != 1 || win.warps[0] != [2]float64{800, 300} {
		t.Errorf("warps = %v, want [[800 300]]", win.warps)
	}
	if state.Camera.Target.X() != -10 {
		t.Errorf("Target.X = %v, want -10", state.Camera.Target.X())
	}
	if len(win.shapes) != 1 || win.shapes[0] != gpucontext.CursorMove {
		t.Errorf("shapes = %v, want [Move]", win.shapes)
	}

	state.Apply(ButtonRelease{Button: gpucontext.MouseButtonLeft})
	if _, err := sync.Frame(); err != nil {
		t.Fatal(err)
	}
	if len(win.shapes) != 2 || win.shapes[1] != gpucontext.CursorDefault {
		t.Errorf("shapes = %v, want [Move Default]", win.shapes)
	}
}

// plainWindow has no cursor capabilities.
type plainWindow struct{}

func (plainWindow) Size() (int, int) { return 320, 200 }

func TestFrameWithoutCursorCapabilities(t *testing.T) {
	state := NewState()
	sync := NewSynchronizer(state, &fakeSurface{}, plainWindow{})
	state.Apply(PointerMove{X: 0, Y: 10})
	state.Apply(ButtonPress{Button: gpucontext.MouseButtonLeft})

	if status, err := sync.Frame(); err != nil || status != FramePresented {
		t.Errorf("Frame() = %v, %v, want Presented, nil", status, err)
	}
}

func TestFrameZeroSizeWhileReconfiguring(t *testing.T) {
	surface := &fakeSurface{acquireErrs: []error{ErrSurfaceLost}}
	sync, _, win := newTestSync(surface)
	sync.Frame()

	win.w, win.h = 0, 0
	if status, err := sync.Frame(); err != nil || status != FrameSkipped {
		t.Errorf("Frame() = %v, %v, want Skipped, nil", status, err)
	}
	if sync.SurfaceState() != SurfaceNeedsReconfigure {
		t.Errorf("SurfaceState() = %v, want NeedsReconfigure", sync.SurfaceState())
	}
}
