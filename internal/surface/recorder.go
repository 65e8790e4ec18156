package surface

import "image/color"

type OpKind int

const (
	OpFillRect OpKind = iota
	OpFillCircle
	OpStrokeCircle
	OpStrokePath
	OpPush
	OpPop
	OpTranslate
	OpRotate
)

func (k OpKind) String() string {
	switch k {
	case OpFillRect:
		return "fill_rect"
	case OpFillCircle:
		return "fill_circle"
	case OpStrokeCircle:
		return "stroke_circle"
	case OpStrokePath:
		return "stroke_path"
	case OpPush:
		return "push"
	case OpPop:
		return "pop"
	case OpTranslate:
		return "translate"
	case OpRotate:
		return "rotate"
	default:
		return "unknown"
	}
}

// Op is one recorded drawing call. Args holds the geometry in call order
// (x, y, w, h for rects; cx, cy, r[, lineWidth] for circles).
type Op struct {
	Kind   OpKind
	Args   []float64
	Points []Point
	Color  color.Color
	Depth  int
}

// Recorder logs drawing calls without rasterizing them.
type Recorder struct {
	w, h  float64
	ops   []Op
	depth int
}

func NewRecorder(w, h float64) *Recorder {
	return &Recorder{w: w, h: h}
}

func (r *Recorder) Size() (float64, float64) { return r.w, r.h }

func (r *Recorder) FillRect(x, y, w, h float64, c color.Color) {
	r.add(Op{Kind: OpFillRect, Args: []float64{x, y, w, h}, Color: c})
}

func (r *Recorder) FillCircle(cx, cy, rad float64, c color.Color) {
	r.add(Op{Kind: OpFillCircle, Args: []float64{cx, cy, rad}, Color: c})
}

func (r *Recorder) StrokeCircle(cx, cy, rad, lineWidth float64, c color.Color) {
	r.add(Op{Kind: OpStrokeCircle, Args: []float64{cx, cy, rad, lineWidth}, Color: c})
}

func (r *Recorder) StrokePath(pts []Point, lineWidth float64, c color.Color) {
	cp := make([]Point, len(pts))
	copy(cp, pts)
	r.add(Op{Kind: OpStrokePath, Args: []float64{lineWidth}, Points: cp, Color: c})
}

func (r *Recorder) Push() {
	r.add(Op{Kind: OpPush})
	r.depth++
}

func (r *Recorder) Pop() {
	if r.depth > 0 {
		r.depth--
	}
	r.add(Op{Kind: OpPop})
}

func (r *Recorder) Translate(x, y float64) {
	r.add(Op{Kind: OpTranslate, Args: []float64{x, y}})
}

func (r *Recorder) Rotate(rad float64) {
	r.add(Op{Kind: OpRotate, Args: []float64{rad}})
}

func (r *Recorder) add(op Op) {
	op.Depth = r.depth
	r.ops = append(r.ops, op)
}

// Ops returns the calls recorded since the last Reset.
func (r *Recorder) Ops() []Op { return r.ops }

// Count returns how many recorded calls have the given kind.
func (r *Recorder) Count(kind OpKind) int {
	n := 0
	for _, op := range r.ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Filter returns the recorded calls of the given kind.
func (r *Recorder) Filter(kind OpKind) []Op {
	var out []Op
	for _, op := range r.ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}

// Depth is the number of pushes not yet popped.
func (r *Recorder) Depth() int { return r.depth }

func (r *Recorder) Reset() {
	r.ops = r.ops[:0]
	r.depth = 0
}
