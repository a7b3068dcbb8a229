package ranges

import "golang.org/x/exp/slices"

// Odometer enumerates all coordinates of a mixed-radix counter, advancing
// axis 0 first and carrying into higher axes on overflow.
//
// An odometer may be given a stride per axis. It then keeps track of the
// linear offset of the current coordinates and reports the change of the
// offset for every step. With nil strides, the dense strides of the radix are
// used, i.e. the offset is the step count.
type Odometer struct {
	radix   []int
	strides []int
	coords  []int
	offset  int
	done    bool
}

// NewOdometer creates an odometer for a radix. An empty radix has exactly one
// position; a radix with a zero entry has none.
func NewOdometer(radix []int, st []int) *Odometer {
	if st == nil {
		st = strides(radix)
	}
	o := &Odometer{
		radix:   slices.Clone(radix),
		strides: slices.Clone(st),
		coords:  make([]int, len(radix)),
	}
	o.done = slices.Contains(o.radix, 0)
	return o
}

// Coords returns the current coordinates. The slice is owned by the odometer.
func (o *Odometer) Coords() []int {
	return o.coords
}

// Offset returns the linear offset of the current coordinates.
func (o *Odometer) Offset() int {
	return o.offset
}

// Done is true if the odometer has been advanced past its last position.
func (o *Odometer) Done() bool {
	return o.done
}

// Next advances the odometer by one step. It returns the change of the linear
// offset, and false if the odometer wrapped around and is done.
func (o *Odometer) Next() (advance int, ok bool) {
	if o.done {
		return 0, false
	}
	before := o.offset
	for a := range o.coords {
		if o.coords[a]+1 < o.radix[a] {
			o.coords[a]++
			o.offset += o.strides[a]
			return o.offset - before, true
		}
		o.offset -= o.coords[a] * o.strides[a]
		o.coords[a] = 0
	}
	o.done = true
	return o.offset - before, false
}

// Seek positions the odometer at step n, counted from the start.
func (o *Odometer) Seek(n int) {
	o.offset = 0
	o.done = slices.Contains(o.radix, 0)
	for a := range o.coords {
		if o.done {
			o.coords[a] = 0
			continue
		}
		o.coords[a] = n % o.radix[a]
		n /= o.radix[a]
		o.offset += o.coords[a] * o.strides[a]
	}
	if n > 0 {
		o.done = true
	}
}
