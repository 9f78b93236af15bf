// Package script runs user Starlark code that turns image pixel coordinates
// into world coordinates for display.
package script

import (
	"errors"
	"fmt"
	"log"
	"math"
	"os"

	"go.starlark.net/starlark"
)

// FuncName is the function a world script must define.
const FuncName = "world"

const maxCacheEntries = 4096

var ErrNoWorldFunc = errors.New("script does not define a callable " + FuncName + "(x, y)")

// Coord is a world-space position.
type Coord struct {
	X, Y float64
}

// WorldMapper calls a compiled world(x, y) function, memoising results since
// the pointer tends to revisit the same pixels.
type WorldMapper struct {
	name   string
	thread *starlark.Thread
	fn     starlark.Callable
	cache  map[[2]int]Coord
}

// LoadFile compiles the script at path.
func LoadFile(path string) (*WorldMapper, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Compile(path, string(src))
}

// Compile executes src once and looks up its world function.
func Compile(name, src string) (*WorldMapper, error) {
	thread := &starlark.Thread{Name: name, Print: func(_ *starlark.Thread, msg string) { log.Println(name+":", msg) }}

	globals, err := starlark.ExecFile(thread, name, src, nil)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", name, err)
	}
	fn, ok := globals[FuncName].(starlark.Callable)
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrNoWorldFunc)
	}
	return &WorldMapper{
		name:   name,
		thread: thread,
		fn:     fn,
		cache:  make(map[[2]int]Coord),
	}, nil
}

// Map converts an image coordinate into world units.
func (m *WorldMapper) Map(x, y int) (Coord, error) {
	key := [2]int{x, y}
	if c, ok := m.cache[key]; ok {
		return c, nil
	}

	args := starlark.Tuple{starlark.MakeInt(x), starlark.MakeInt(y)}
	res, err := starlark.Call(m.thread, m.fn, args, nil)
	if err != nil {
		return Coord{}, fmt.Errorf("%s: %w", m.name, err)
	}
	c, err := toCoord(res)
	if err != nil {
		return Coord{}, fmt.Errorf("%s: %w", m.name, err)
	}

	if len(m.cache) >= maxCacheEntries {
		m.cache = make(map[[2]int]Coord)
	}
	m.cache[key] = c
	return c, nil
}

func toCoord(v starlark.Value) (Coord, error) {
	seq, ok := v.(starlark.Indexable)
	if !ok || seq.Len() != 2 {
		return Coord{}, fmt.Errorf("%s must return a pair, got %s", FuncName, v.Type())
	}
	var out [2]float64
	for i := 0; i < 2; i++ {
		f, ok := starlark.AsFloat(seq.Index(i))
		if !ok {
			return Coord{}, fmt.Errorf("%s returned non-numeric %s", FuncName, seq.Index(i).Type())
		}
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return Coord{}, fmt.Errorf("%s returned out-of-range value %s", FuncName, seq.Index(i))
		}
		out[i] = f
	}
	return Coord{X: out[0], Y: out[1]}, nil
}
