package viz

import (
	"strings"
	"testing"

	"github.com/san-kum/partsim/internal/forces"
	"github.com/san-kum/partsim/internal/particle"
	"github.com/san-kum/partsim/internal/vecmath"
	"github.com/san-kum/partsim/internal/world"
)

func TestModelViewRendersThemeAndParticles(t *testing.T) {
	w := world.New(4, 0)
	ball := particle.New("ball", vecmath.New(0, 5, 0), vecmath.Zero, 1)
	w.AddParticle(ball)
	w.Forces().Add(ball, &forces.Gravity{G: vecmath.New(0, -9.81, 0)})

	m := NewModel(w, []string{"ball"}, 0.01, "bouncing_ball", "ocean")
	if m.theme.Name != "ocean" {
		t.Errorf("expected ocean theme, got %q", m.theme.Name)
	}

	out := m.View()
	if !strings.Contains(out, "ball") {
		t.Errorf("expected particle name in view, got:\n%s", out)
	}
	if !strings.Contains(out, "status") {
		t.Errorf("expected status label in view, got:\n%s", out)
	}
}

func TestModelUnknownThemeFallsBackToDefault(t *testing.T) {
	w := world.New(1, 0)
	m := NewModel(w, nil, 0.01, "empty", "not-a-real-theme")
	if m.theme.Name != ThemeCyberpunk.Name {
		t.Errorf("expected fallback to cyberpunk, got %q", m.theme.Name)
	}
}
