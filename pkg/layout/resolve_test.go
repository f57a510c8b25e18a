package layout

import (
	"strings"
	"testing"

	"github.com/apcamargo/phylodraw/pkg/errors"
)

func TestResolveFrameHorizontal(t *testing.T) {
	st := plainStyle()
	mg := Margins{Tip: 20, Root: 10, YStart: 5}

	f, err := ResolveFrame(Abs(300), Abs(200), mg, 4, &st, Unbounded())
	if err != nil {
		t.Fatalf("ResolveFrame() error: %v", err)
	}

	if f.W != 300 || f.H != 200 {
		t.Errorf("frame = %vx%v, want 300x200", f.W, f.H)
	}
	if !almost(f.Depth, 270) {
		t.Errorf("Depth = %v, want 270", f.Depth)
	}
	if !almost(f.Spread, 195) {
		t.Errorf("Spread = %v, want 195", f.Spread)
	}
}

func TestResolveFrameVerticalSwapsAxes(t *testing.T) {
	st := plainStyle()
	st.Orientation = OrientationVertical
	mg := Margins{Tip: 20, Root: 10, YStart: 5}

	f, err := ResolveFrame(Abs(300), Abs(200), mg, 4, &st, Unbounded())
	if err != nil {
		t.Fatalf("ResolveFrame() error: %v", err)
	}

	// Pre-rotation width takes the resolved height and vice versa.
	if f.W != 200 || f.H != 300 {
		t.Errorf("frame = %vx%v, want 200x300", f.W, f.H)
	}
	if !almost(f.Depth, 170) {
		t.Errorf("Depth = %v, want 170", f.Depth)
	}
	if !almost(f.Spread, 295) {
		t.Errorf("Spread = %v, want 295", f.Spread)
	}
}

func TestResolveFrameProportionalWidth(t *testing.T) {
	st := plainStyle()
	mg := Margins{Tip: 5, Root: 5, YStart: 2}

	f, err := ResolveFrame(Frac(0.5), Abs(100), mg, 2, &st, Avail{W: 800, H: 600})
	if err != nil {
		t.Fatalf("ResolveFrame() error: %v", err)
	}
	if f.W != 400 {
		t.Errorf("W = %v, want 400", f.W)
	}
}

func TestResolveFrameUnboundedFallsBackToDefault(t *testing.T) {
	st := plainStyle()
	mg := Margins{Tip: 5, Root: 5, YStart: 2}

	f, err := ResolveFrame(Frac(0.5), Abs(100), mg, 2, &st, Unbounded())
	if err != nil {
		t.Fatalf("ResolveFrame() error: %v", err)
	}
	if f.W != DefaultWidth {
		t.Errorf("W = %v, want %v", f.W, DefaultWidth)
	}
}

func TestResolveFrameAutoHeight(t *testing.T) {
	st := plainStyle() // tip size 10
	mg := Margins{Tip: 5, Root: 5, YStart: 2}

	f, err := ResolveFrame(Abs(300), Auto(), mg, 8, &st, Unbounded())
	if err != nil {
		t.Fatalf("ResolveFrame() error: %v", err)
	}
	// 8 tips × 1.25 × tip size 10
	if !almost(f.H, 100) {
		t.Errorf("H = %v, want 100", f.H)
	}
}

func TestResolveFrameInfeasibleWidth(t *testing.T) {
	st := plainStyle()
	mg := Margins{Tip: 30, Root: 20, YStart: 5}

	_, err := ResolveFrame(Abs(40), Abs(200), mg, 4, &st, Unbounded())
	if err == nil {
		t.Fatal("ResolveFrame() succeeded, want error")
	}
	if !errors.Is(err, errors.ErrCodeLayoutInfeasible) {
		t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeLayoutInfeasible)
	}
	msg := err.Error()
	for _, want := range []string{"width", "50.0", "increase"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error %q does not mention %q", msg, want)
		}
	}
}

func TestResolveFrameInfeasibleHeight(t *testing.T) {
	st := plainStyle()
	mg := Margins{Tip: 10, Root: 10, YStart: 50}

	_, err := ResolveFrame(Abs(300), Abs(40), mg, 4, &st, Unbounded())
	if err == nil {
		t.Fatal("ResolveFrame() succeeded, want error")
	}
	if !errors.Is(err, errors.ErrCodeLayoutInfeasible) {
		t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeLayoutInfeasible)
	}
	if !strings.Contains(err.Error(), "height") {
		t.Errorf("error %q does not name the height dimension", err.Error())
	}
}

func TestResolveFrameVerticalInfeasibleNamesHeight(t *testing.T) {
	st := plainStyle()
	st.Orientation = OrientationVertical
	mg := Margins{Tip: 30, Root: 30, YStart: 5}

	// The depth axis of a vertical tree is the requested height.
	_, err := ResolveFrame(Abs(300), Abs(40), mg, 4, &st, Unbounded())
	if err == nil {
		t.Fatal("ResolveFrame() succeeded, want error")
	}
	if !strings.Contains(err.Error(), "height") {
		t.Errorf("error %q should blame the height", err.Error())
	}
}
