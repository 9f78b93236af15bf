package script

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

const gridScript = `
def world(x, y):
    return (x / 4.0 - 100, y // 4)
`

func TestMapCallsWorld(t *testing.T) {
	m, err := Compile("grid.star", gridScript)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	c, err := m.Map(1819, 2428)
	if err != nil {
		t.Fatalf("Map failed: %v", err)
	}
	if c.X != 354.75 || c.Y != 607 {
		t.Errorf("Expected (354.75, 607), got (%v, %v)", c.X, c.Y)
	}
}

func TestMapCachesResults(t *testing.T) {
	m, err := Compile("grid.star", gridScript)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	first, _ := m.Map(1, 2)
	second, _ := m.Map(1, 2)
	if first != second {
		t.Errorf("Expected cached result %+v, got %+v", first, second)
	}
	if len(m.cache) != 1 {
		t.Errorf("Expected 1 cache entry, got %d", len(m.cache))
	}
	m.Map(2, 2)
	if len(m.cache) != 2 {
		t.Errorf("Expected 2 cache entries, got %d", len(m.cache))
	}
}

func TestCompileWithoutWorld(t *testing.T) {
	_, err := Compile("empty.star", "x = 1\n")
	if !errors.Is(err, ErrNoWorldFunc) {
		t.Errorf("Expected ErrNoWorldFunc, got %v", err)
	}
}

func TestCompileSyntaxError(t *testing.T) {
	if _, err := Compile("bad.star", "def world(:\n"); err == nil {
		t.Errorf("Expected compile error")
	}
}

func TestMapRejectsBadReturn(t *testing.T) {
	m, err := Compile("bad.star", "def world(x, y):\n    return 'nowhere'\n")
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if _, err := m.Map(0, 0); err == nil {
		t.Errorf("Expected error for non-pair return")
	}

	m, err = Compile("bad.star", "def world(x, y):\n    return ('a', 1)\n")
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if _, err := m.Map(0, 0); err == nil {
		t.Errorf("Expected error for non-numeric pair")
	}
}

func TestMapConvertsLargeInts(t *testing.T) {
	m, err := Compile("big.star", "def world(x, y):\n    return (x << 70, y)\n")
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	c, err := m.Map(1, 3)
	if err != nil {
		t.Fatalf("Map failed: %v", err)
	}
	if c.X != math.Ldexp(1, 70) || c.Y != 3 {
		t.Errorf("Expected (2^70, 3), got %+v", c)
	}
}

func TestMapRejectsOverflow(t *testing.T) {
	m, err := Compile("huge.star", "def world(x, y):\n    return (x * (1 << 511) * (1 << 511) * (1 << 10), y)\n")
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if c, err := m.Map(1, 0); err == nil {
		t.Errorf("Expected error for value beyond float64, got %+v", c)
	}

	m, err = Compile("inf.star", "def world(x, y):\n    return (float('inf'), y)\n")
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if c, err := m.Map(0, 0); err == nil {
		t.Errorf("Expected error for infinite value, got %+v", c)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "world.star")
	if err := os.WriteFile(path, []byte(gridScript), 0o644); err != nil {
		t.Fatalf("Failed to write script: %v", err)
	}
	m, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if c, _ := m.Map(400, 8); c.X != 0 || c.Y != 2 {
		t.Errorf("Expected (0, 2), got %+v", c)
	}
}
