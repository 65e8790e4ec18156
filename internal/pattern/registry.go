package pattern

import (
	"errors"
	"fmt"

	"github.com/san-kum/patternlab/internal/surface"
)

// Default is the pattern selected at startup.
const Default = "orbit"

var (
	ErrDuplicatePattern  = errors.New("pattern: duplicate name")
	ErrInvalidDescriptor = errors.New("pattern: descriptor needs a name and a render func")
)

// Func renders one frame at time t onto s, which is width x height pixels.
type Func func(t float64, s surface.Surface, width, height float64)

type Descriptor struct {
	Name    string
	Summary string
	Render  Func
}

// Registry maps pattern names to descriptors and remembers registration
// order for menus and button rows.
type Registry struct {
	byName map[string]Descriptor
	order  []string
}

// NewRegistry returns a registry holding every built-in pattern.
func NewRegistry() *Registry {
	r := NewEmptyRegistry()
	for _, d := range builtins() {
		if err := r.Register(d); err != nil {
			panic(err)
		}
	}
	return r
}

func NewEmptyRegistry() *Registry {
	return &Registry{byName: make(map[string]Descriptor)}
}

func builtins() []Descriptor {
	return []Descriptor{
		{Name: "orbit", Summary: "single point on a circle", Render: Orbit},
		{Name: "lissajous", Summary: "3:2 lissajous trace", Render: Lissajous},
		{Name: "spiral", Summary: "outward spiral with trail", Render: Spiral},
		{Name: "wave", Summary: "two counter-moving sine waves", Render: Wave},
		{Name: "particles", Summary: "pulsing ring of coloured particles", Render: Particles},
		{Name: "breathing", Summary: "rotating breathing circle", Render: Breathing},
		{Name: "mandala", Summary: "five counter-rotating petal layers", Render: Mandala},
		{Name: "tunnel", Summary: "receding concentric rings", Render: Tunnel},
	}
}

func (r *Registry) Register(d Descriptor) error {
	if d.Name == "" || d.Render == nil {
		return ErrInvalidDescriptor
	}
	if _, ok := r.byName[d.Name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicatePattern, d.Name)
	}
	r.byName[d.Name] = d
	r.order = append(r.order, d.Name)
	return nil
}

func (r *Registry) Lookup(name string) (Descriptor, bool) {
	d, ok := r.byName[name]
	return d, ok
}

func (r *Registry) Has(name string) bool {
	_, ok := r.byName[name]
	return ok
}

// Names returns pattern names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

func (r *Registry) Descriptors() []Descriptor {
	out := make([]Descriptor, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.byName[name])
	}
	return out
}

func (r *Registry) Len() int { return len(r.order) }
