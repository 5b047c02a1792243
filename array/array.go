package array

import (
	"fmt"
	"math"
)

// Kind is the element family of an Array.
type Kind int

const (
	Float Kind = iota
	Int
	Bool
)

func (k Kind) String() string {
	switch k {
	case Float:
		return "float"
	case Int:
		return "int"
	case Bool:
		return "bool"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Array is a row-major n-dimensional array. Exactly one of Floats, Ints or
// Bools holds the data, selected by Kind.
type Array struct {
	Kind   Kind
	Shape  []int
	Floats []float64
	Ints   []int64
	Bools  []bool
}

// NewFloat wraps data with the given shape.
func NewFloat(data []float64, shape ...int) *Array {
	return &Array{Kind: Float, Shape: shapeOr(shape, len(data)), Floats: data}
}

// NewInt wraps data with the given shape.
func NewInt(data []int64, shape ...int) *Array {
	return &Array{Kind: Int, Shape: shapeOr(shape, len(data)), Ints: data}
}

// NewBool wraps data with the given shape.
func NewBool(data []bool, shape ...int) *Array {
	return &Array{Kind: Bool, Shape: shapeOr(shape, len(data)), Bools: data}
}

func shapeOr(shape []int, n int) []int {
	if len(shape) == 0 {
		return []int{n}
	}
	return append([]int(nil), shape...)
}

// Size returns the number of elements.
func (a *Array) Size() int {
	n := 1
	for _, d := range a.Shape {
		n *= d
	}
	return n
}

// Len returns the length of the first axis, or 0 for a scalar.
func (a *Array) Len() int {
	if len(a.Shape) == 0 {
		return 0
	}
	return a.Shape[0]
}

// Dims returns the number of axes.
func (a *Array) Dims() int { return len(a.Shape) }

// rowWidth is the number of elements per first-axis row.
func (a *Array) rowWidth() int {
	w := 1
	for _, d := range a.Shape[1:] {
		w *= d
	}
	return w
}

// Rows returns a new array made of the given first-axis rows, in order.
func (a *Array) Rows(idx []int) (*Array, error) {
	if a.Dims() == 0 {
		return nil, fmt.Errorf("array: cannot select rows of a scalar")
	}
	n, w := a.Len(), a.rowWidth()
	shape := append([]int{len(idx)}, a.Shape[1:]...)
	out := &Array{Kind: a.Kind, Shape: shape}
	switch a.Kind {
	case Float:
		out.Floats = make([]float64, 0, len(idx)*w)
	case Int:
		out.Ints = make([]int64, 0, len(idx)*w)
	case Bool:
		out.Bools = make([]bool, 0, len(idx)*w)
	}
	for _, i := range idx {
		if i < 0 || i >= n {
			return nil, fmt.Errorf("array: row %d out of range [0, %d)", i, n)
		}
		lo, hi := i*w, (i+1)*w
		switch a.Kind {
		case Float:
			out.Floats = append(out.Floats, a.Floats[lo:hi]...)
		case Int:
			out.Ints = append(out.Ints, a.Ints[lo:hi]...)
		case Bool:
			out.Bools = append(out.Bools, a.Bools[lo:hi]...)
		}
	}
	return out, nil
}

// Row returns row i with the first axis dropped.
func (a *Array) Row(i int) (*Array, error) {
	r, err := a.Rows([]int{i})
	if err != nil {
		return nil, err
	}
	r.Shape = r.Shape[1:]
	return r, nil
}

// Int64s returns the data as int64. Float data must hold whole numbers.
func (a *Array) Int64s() ([]int64, error) {
	switch a.Kind {
	case Int:
		return a.Ints, nil
	case Float:
		out := make([]int64, len(a.Floats))
		for i, v := range a.Floats {
			if v != math.Trunc(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("array: element %d (%v) is not an integer", i, v)
			}
			out[i] = int64(v)
		}
		return out, nil
	default:
		out := make([]int64, len(a.Bools))
		for i, v := range a.Bools {
			if v {
				out[i] = 1
			}
		}
		return out, nil
	}
}

// IntSlice returns the data as int.
func (a *Array) IntSlice() ([]int, error) {
	v, err := a.Int64s()
	if err != nil {
		return nil, err
	}
	out := make([]int, len(v))
	for i, x := range v {
		out[i] = int(x)
	}
	return out, nil
}

// Float64s returns the data as float64.
func (a *Array) Float64s() []float64 {
	switch a.Kind {
	case Float:
		return a.Floats
	case Int:
		out := make([]float64, len(a.Ints))
		for i, v := range a.Ints {
			out[i] = float64(v)
		}
		return out
	default:
		out := make([]float64, len(a.Bools))
		for i, v := range a.Bools {
			if v {
				out[i] = 1
			}
		}
		return out
	}
}

// BoolSlice returns the data as bool. Numeric data must be 0 or 1.
func (a *Array) BoolSlice() ([]bool, error) {
	if a.Kind == Bool {
		return a.Bools, nil
	}
	v := a.Float64s()
	out := make([]bool, len(v))
	for i, x := range v {
		switch x {
		case 0:
		case 1:
			out[i] = true
		default:
			return nil, fmt.Errorf("array: element %d (%v) is not a boolean", i, x)
		}
	}
	return out, nil
}

// IsMask reports whether the array can be read as a boolean mask.
func (a *Array) IsMask() bool {
	return a.Kind == Bool
}
