package array

import (
	"fmt"
	"io"
	"strings"

	"github.com/sbinet/npyio"
)

// decode reads one .npy stream, widening its elements into float64, int64
// or bool.
func decode(r io.Reader) (*Array, error) {
	nr, err := npyio.NewReader(r)
	if err != nil {
		return nil, err
	}
	shape := append([]int(nil), nr.Header.Descr.Shape...)
	n := 1
	for _, d := range shape {
		n *= d
	}

	arr := &Array{Shape: shape}
	switch dt := strings.TrimLeft(nr.Header.Descr.Type, "<>|="); dt {
	case "f8":
		arr.Kind = Float
		arr.Floats = make([]float64, n)
		err = nr.Read(&arr.Floats)
	case "f4":
		v := make([]float32, n)
		if err = nr.Read(&v); err == nil {
			arr.Kind, arr.Floats = Float, widen(v, func(x float32) float64 { return float64(x) })
		}
	case "i8":
		arr.Kind = Int
		arr.Ints = make([]int64, n)
		err = nr.Read(&arr.Ints)
	case "i4":
		v := make([]int32, n)
		if err = nr.Read(&v); err == nil {
			arr.Kind, arr.Ints = Int, widen(v, func(x int32) int64 { return int64(x) })
		}
	case "i2":
		v := make([]int16, n)
		if err = nr.Read(&v); err == nil {
			arr.Kind, arr.Ints = Int, widen(v, func(x int16) int64 { return int64(x) })
		}
	case "i1":
		v := make([]int8, n)
		if err = nr.Read(&v); err == nil {
			arr.Kind, arr.Ints = Int, widen(v, func(x int8) int64 { return int64(x) })
		}
	case "u8":
		v := make([]uint64, n)
		if err = nr.Read(&v); err == nil {
			arr.Kind, arr.Ints = Int, widen(v, func(x uint64) int64 { return int64(x) })
		}
	case "u4":
		v := make([]uint32, n)
		if err = nr.Read(&v); err == nil {
			arr.Kind, arr.Ints = Int, widen(v, func(x uint32) int64 { return int64(x) })
		}
	case "u2":
		v := make([]uint16, n)
		if err = nr.Read(&v); err == nil {
			arr.Kind, arr.Ints = Int, widen(v, func(x uint16) int64 { return int64(x) })
		}
	case "u1":
		v := make([]uint8, n)
		if err = nr.Read(&v); err == nil {
			arr.Kind, arr.Ints = Int, widen(v, func(x uint8) int64 { return int64(x) })
		}
	case "b1":
		arr.Kind = Bool
		arr.Bools = make([]bool, n)
		err = nr.Read(&arr.Bools)
	default:
		return nil, fmt.Errorf("unsupported dtype %q", nr.Header.Descr.Type)
	}
	if err != nil {
		return nil, err
	}

	if nr.Header.Descr.Fortran && len(shape) == 2 {
		arr.transpose()
	}
	return arr, nil
}

func widen[S, D any](src []S, f func(S) D) []D {
	out := make([]D, len(src))
	for i, v := range src {
		out[i] = f(v)
	}
	return out
}

// transpose reorders column-major data of a 2-D array into row order.
func (a *Array) transpose() {
	rows, cols := a.Shape[0], a.Shape[1]
	idx := func(i, j int) int { return j*rows + i }
	switch a.Kind {
	case Float:
		a.Floats = reorder(a.Floats, rows, cols, idx)
	case Int:
		a.Ints = reorder(a.Ints, rows, cols, idx)
	case Bool:
		a.Bools = reorder(a.Bools, rows, cols, idx)
	}
}

func reorder[T any](src []T, rows, cols int, idx func(i, j int) int) []T {
	out := make([]T, len(src))
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			out[i*cols+j] = src[idx(i, j)]
		}
	}
	return out
}
