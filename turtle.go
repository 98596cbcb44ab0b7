package lsys

import "math"

// Leaf geometry for 'X': each of the two strokes reaches leafReach of the
// step length forward and leafSpread of that reach sideways.
const (
	leafReach  = 0.5
	leafSpread = 0.3
)

// TurtleParams are the drawing parameters for Interpret.
type TurtleParams struct {
	Angle       float64 // turn angle in degrees
	Length      float64 // step length
	Twist       float64 // random twist factor in [0, 1]
	BranchColor RGB
	LeafColor   RGB
}

// turtleState is the saved part of the turtle. It is stored by value so
// pushed states never alias the live one.
type turtleState struct {
	pos Vec3
	rot Quat
}

type turtle struct {
	turtleState
	stack    []turtleState
	overflow int // pushes ignored at max depth still awaiting their ']'

	params TurtleParams
	angle  float64 // radians
	opts   interpretOptions
	buf    *Buffer
}

// Interpret converts a symbol string into a segment buffer.
//
// births holds the birth generation of each symbol; a nil or short slice
// tags the missing symbols with 0. The scan is a single left-to-right pass
// from the origin with identity orientation:
//
//	F A B  draw one branch segment forward and move
//	X      draw two leaf segments, do not move
//	+ -    turn by -/+ angle about the local turn axis, then twist
//	^ &    pitch by +/- angle about the local lateral axis
//	\ /    roll by +/- angle about the local heading
//	[ ]    push / pop position and orientation
//
// Every other symbol is ignored, as is ']' on an empty stack.
func Interpret(symbols string, births []int, p TurtleParams, opts ...InterpretOption) *Buffer {
	t := &turtle{
		turtleState: turtleState{rot: IdentityQuat()},
		params:      p,
		angle:       p.Angle * math.Pi / 180,
		opts:        defaultInterpretOptions(),
	}
	for _, opt := range opts {
		opt(&t.opts)
	}

	n := drawCount(symbols)
	if t.opts.limit >= 0 {
		n = min(n, t.opts.limit)
	}
	t.buf = &Buffer{
		Positions: make([]float32, 0, n*segmentStride),
		Colors:    make([]float32, 0, n*segmentStride),
		Births:    make([]int, 0, n),
	}

	for i := 0; i < len(symbols); i++ {
		birth := 0
		if i < len(births) {
			birth = births[i]
		}
		if !t.exec(symbols[i], birth) {
			break
		}
	}
	return t.buf
}

// exec runs one command. It returns false once the segment limit is hit.
func (t *turtle) exec(sym byte, birth int) bool {
	switch sym {
	case 'F', 'A', 'B':
		next := t.pos.Add(t.heading().Mul(t.params.Length))
		if !t.emit(t.pos, next, t.params.BranchColor, birth) {
			return false
		}
		t.pos = next
	case 'X':
		reach := t.params.Length * leafReach
		tip := t.pos.Add(t.heading().Mul(reach))
		side := t.rot.Rotate(Lateral).Mul(reach * leafSpread)
		if !t.emit(t.pos, tip.Add(side), t.params.LeafColor, birth) {
			return false
		}
		if !t.emit(t.pos, tip.Sub(side), t.params.LeafColor, birth) {
			return false
		}
	case '+':
		t.turn(-t.angle)
	case '-':
		t.turn(t.angle)
	case '^':
		t.rotate(Lateral, t.angle)
	case '&':
		t.rotate(Lateral, -t.angle)
	case '\\':
		t.rotate(Up, t.angle)
	case '/':
		t.rotate(Up, -t.angle)
	case '[':
		t.push()
	case ']':
		t.pop()
	}
	return !t.full()
}

func (t *turtle) heading() Vec3 {
	return t.rot.Rotate(Up)
}

// rotate composes a local-frame rotation onto the orientation.
func (t *turtle) rotate(axis Vec3, angle float64) {
	t.rot = t.rot.Mul(AxisAngle(axis, angle)).Normalize()
}

func (t *turtle) turn(angle float64) {
	t.rotate(TurnAxis, angle)
	if t.params.Twist > 0 {
		t.rotate(Up, t.opts.random.Float64()*t.params.Twist*math.Pi)
	}
}

func (t *turtle) push() {
	if t.opts.maxDepth > 0 && len(t.stack) >= t.opts.maxDepth {
		t.overflow++
		return
	}
	t.stack = append(t.stack, t.turtleState)
}

func (t *turtle) pop() {
	if t.overflow > 0 {
		t.overflow--
		return
	}
	if len(t.stack) == 0 {
		return
	}
	t.turtleState = t.stack[len(t.stack)-1]
	t.stack = t.stack[:len(t.stack)-1]
}

// emit appends a segment unless the limit has been reached.
func (t *turtle) emit(from, to Vec3, c RGB, birth int) bool {
	if t.full() {
		return false
	}
	t.buf.appendSegment(from, to, c, birth)
	return true
}

func (t *turtle) full() bool {
	return t.opts.limit >= 0 && t.buf.Len() >= t.opts.limit
}

// drawCount returns the number of segments symbols will emit.
func drawCount(symbols string) int {
	n := 0
	for i := 0; i < len(symbols); i++ {
		switch symbols[i] {
		case 'F', 'A', 'B':
			n++
		case 'X':
			n += 2
		}
	}
	return n
}
