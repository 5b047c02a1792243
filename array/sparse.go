package array

import (
	"fmt"

	"github.com/kbukum/gli/errors"
)

// Sparse storage formats written by scipy.sparse.save_npz.
const (
	FormatCSR = "csr"
	FormatCSC = "csc"
	FormatCOO = "coo"
)

// LoadSparse reads a scipy.sparse .npz file and returns it densified.
// The archive's format entry selects CSR, CSC or COO; archives without
// one are read as CSR.
func LoadSparse(p string) (*Array, error) {
	a, err := Open(p)
	if err != nil {
		return nil, err
	}
	defer a.Close()

	format := FormatCSR
	if a.Has("format") {
		if format, err = a.ReadString("format"); err != nil {
			return nil, err
		}
	}

	shapeArr, err := a.Read("shape")
	if err != nil {
		return nil, err
	}
	shape, err := shapeArr.IntSlice()
	if err != nil || len(shape) != 2 {
		return nil, errors.InvalidFormat(p, "2-D sparse shape")
	}
	data, err := a.Read("data")
	if err != nil {
		return nil, err
	}

	var dense *Array
	switch format {
	case FormatCSR, FormatCSC:
		indices, err := readInts(a, "indices")
		if err != nil {
			return nil, err
		}
		indptr, err := readInts(a, "indptr")
		if err != nil {
			return nil, err
		}
		dense, err = densifyCompressed(data, indices, indptr, shape[0], shape[1], format == FormatCSC)
		if err != nil {
			return nil, errors.InvalidFormat(p, format).WithCause(err)
		}
	case FormatCOO:
		rows, err := readInts(a, "row")
		if err != nil {
			return nil, err
		}
		cols, err := readInts(a, "col")
		if err != nil {
			return nil, err
		}
		dense, err = densifyCOO(data, rows, cols, shape[0], shape[1])
		if err != nil {
			return nil, errors.InvalidFormat(p, format).WithCause(err)
		}
	default:
		return nil, errors.InvalidFormat(p, "csr, csc or coo").WithDetail("format", format)
	}
	return dense, nil
}

func readInts(a *Archive, key string) ([]int, error) {
	arr, err := a.Read(key)
	if err != nil {
		return nil, err
	}
	v, err := arr.IntSlice()
	if err != nil {
		return nil, errors.InvalidFormat(a.path+":"+key, "integer array").WithCause(err)
	}
	return v, nil
}

// zeros allocates a dense rows x cols array of the same kind as data.
func zeros(kind Kind, rows, cols int) *Array {
	out := &Array{Kind: kind, Shape: []int{rows, cols}}
	switch kind {
	case Float:
		out.Floats = make([]float64, rows*cols)
	case Int:
		out.Ints = make([]int64, rows*cols)
	case Bool:
		out.Bools = make([]bool, rows*cols)
	}
	return out
}

// add accumulates entry k of src into cell flat. Duplicate coordinates in
// a sparse matrix sum, or OR for booleans.
func (a *Array) add(flat int, src *Array, k int) {
	switch a.Kind {
	case Float:
		a.Floats[flat] += src.Floats[k]
	case Int:
		a.Ints[flat] += src.Ints[k]
	case Bool:
		a.Bools[flat] = a.Bools[flat] || src.Bools[k]
	}
}

func densifyCompressed(data *Array, indices, indptr []int, rows, cols int, byColumn bool) (*Array, error) {
	major, minor := rows, cols
	if byColumn {
		major, minor = cols, rows
	}
	if len(indptr) != major+1 {
		return nil, fmt.Errorf("indptr has %d entries, want %d", len(indptr), major+1)
	}
	if len(indices) != data.Size() {
		return nil, fmt.Errorf("indices has %d entries, data has %d", len(indices), data.Size())
	}

	out := zeros(data.Kind, rows, cols)
	for m := 0; m < major; m++ {
		lo, hi := indptr[m], indptr[m+1]
		if lo < 0 || hi < lo || hi > len(indices) {
			return nil, fmt.Errorf("indptr[%d:%d] = [%d, %d] out of range", m, m+2, lo, hi)
		}
		for k := lo; k < hi; k++ {
			n := indices[k]
			if n < 0 || n >= minor {
				return nil, fmt.Errorf("index %d out of range [0, %d)", n, minor)
			}
			r, c := m, n
			if byColumn {
				r, c = n, m
			}
			out.add(r*cols+c, data, k)
		}
	}
	return out, nil
}

func densifyCOO(data *Array, rowIdx, colIdx []int, rows, cols int) (*Array, error) {
	if len(rowIdx) != data.Size() || len(colIdx) != data.Size() {
		return nil, fmt.Errorf("row/col/data lengths differ: %d/%d/%d", len(rowIdx), len(colIdx), data.Size())
	}
	out := zeros(data.Kind, rows, cols)
	for k := range rowIdx {
		r, c := rowIdx[k], colIdx[k]
		if r < 0 || r >= rows || c < 0 || c >= cols {
			return nil, fmt.Errorf("entry %d at (%d, %d) outside %dx%d", k, r, c, rows, cols)
		}
		out.add(r*cols+c, data, k)
	}
	return out, nil
}
