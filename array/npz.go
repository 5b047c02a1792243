package array

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"reflect"
	"strings"

	"github.com/sbinet/npyio"
	"github.com/sbinet/npyio/npz"
	"gonum.org/v1/gonum/mat"

	"github.com/kbukum/gli/errors"
	"github.com/kbukum/gli/util"
)

const npyExt = ".npy"

// Archive is an open .npz file.
type Archive struct {
	path string
	r    *npz.Reader
	// entries maps array names to their member names in the archive.
	entries map[string]string
}

// Open opens the .npz archive at p. A missing file yields an
// errors.FileNotFound.
func Open(p string) (*Archive, error) {
	r, err := npz.Open(p)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.FileNotFound(p)
		}
		return nil, errors.InvalidFormat(p, "npz").WithCause(err)
	}
	a := &Archive{path: p, r: r, entries: make(map[string]string, len(r.Keys()))}
	for _, name := range r.Keys() {
		a.entries[strings.TrimSuffix(path.Base(name), npyExt)] = name
	}
	return a, nil
}

// Close releases the archive.
func (a *Archive) Close() error { return a.r.Close() }

// Keys returns the array names in the archive, sorted.
func (a *Archive) Keys() []string {
	return util.SortedKeys(a.entries)
}

// Has reports whether the archive holds key.
func (a *Archive) Has(key string) bool {
	_, ok := a.entries[key]
	return ok
}

// Read decodes the array stored under key.
func (a *Archive) Read(key string) (*Array, error) {
	rc, err := a.open(key)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	arr, err := decode(rc)
	if err != nil {
		return nil, errors.InvalidFormat(a.path+":"+key, "npy").WithCause(err)
	}
	return arr, nil
}

// ReadString decodes a byte-string entry such as scipy's format marker.
func (a *Archive) ReadString(key string) (string, error) {
	rc, err := a.open(key)
	if err != nil {
		return "", err
	}
	defer rc.Close()

	r, err := npyio.NewReader(rc)
	if err != nil {
		return "", errors.InvalidFormat(a.path+":"+key, "npy").WithCause(err)
	}
	dt := r.Header.Descr.Type
	if !strings.HasPrefix(dt, "|S") && !strings.HasPrefix(dt, "S") {
		return "", errors.InvalidFormat(a.path+":"+key, "byte string")
	}
	raw, err := io.ReadAll(rc)
	if err != nil {
		return "", errors.InvalidFormat(a.path+":"+key, "npy").WithCause(err)
	}
	return string(bytes.TrimRight(raw, "\x00")), nil
}

func (a *Archive) open(key string) (io.ReadCloser, error) {
	name, ok := a.entries[key]
	if !ok {
		return nil, errors.InvalidInput("key", fmt.Sprintf("%s has no array %q", a.path, key)).
			WithDetail("path", a.path)
	}
	rc, err := a.r.Open(name)
	if err != nil {
		return nil, errors.InvalidFormat(a.path+":"+key, "npy").WithCause(err)
	}
	return rc, nil
}

// Load reads a single array from a dense .npz file.
func Load(p, key string) (*Array, error) {
	a, err := Open(p)
	if err != nil {
		return nil, err
	}
	defer a.Close()
	return a.Read(key)
}

// ReadAll reads every array of a .npz file.
func ReadAll(p string) (map[string]*Array, error) {
	a, err := Open(p)
	if err != nil {
		return nil, err
	}
	defer a.Close()

	out := make(map[string]*Array, len(a.entries))
	for _, k := range a.Keys() {
		arr, err := a.Read(k)
		if err != nil {
			return nil, err
		}
		out[k] = arr
	}
	return out, nil
}

// WriteNPZ writes arrays into a .npz archive on w in sorted key order.
// Every array keeps its kind and shape.
func WriteNPZ(w io.Writer, arrays map[string]*Array) error {
	zw := npz.NewWriter(w)
	if err := writeAll(zw, arrays); err != nil {
		_ = zw.Close()
		return err
	}
	return zw.Close()
}

// SaveNPZ writes arrays to the file at p.
func SaveNPZ(p string, arrays map[string]*Array) error {
	zw, err := npz.Create(p)
	if err != nil {
		return err
	}
	if err := writeAll(zw, arrays); err != nil {
		_ = zw.Close()
		return err
	}
	return zw.Close()
}

func writeAll(zw *npz.Writer, arrays map[string]*Array) error {
	for _, k := range util.SortedKeys(arrays) {
		v, err := encodable(arrays[k])
		if err != nil {
			return fmt.Errorf("array: write %s: %w", k, err)
		}
		if err := zw.Write(k+npyExt, v); err != nil {
			return fmt.Errorf("array: write %s: %w", k, err)
		}
	}
	return nil
}

// encodable returns a value npyio writes with a's dtype and shape. Float
// matrices go through mat.Dense; other multi-dimensional arrays are copied
// into nested fixed-size arrays, which npyio writes in C order.
func encodable(a *Array) (any, error) {
	var flat any
	switch a.Kind {
	case Int:
		flat = a.Ints
	case Bool:
		flat = a.Bools
	default:
		if a.Dims() == 2 && a.Shape[0] > 0 && a.Shape[1] > 0 {
			return mat.NewDense(a.Shape[0], a.Shape[1], append([]float64(nil), a.Floats...)), nil
		}
		flat = a.Floats
	}
	if a.Dims() <= 1 {
		return flat, nil
	}
	for _, d := range a.Shape {
		if d == 0 {
			return nil, fmt.Errorf("shape %v has an empty axis", a.Shape)
		}
	}
	return shaped(reflect.ValueOf(flat), a.Shape), nil
}

// shaped copies the flat slice src into a new value of type
// [s0][s1]...[sn]T and returns a pointer to it.
func shaped(src reflect.Value, shape []int) any {
	t := src.Type().Elem()
	for i := len(shape) - 1; i >= 0; i-- {
		t = reflect.ArrayOf(shape[i], t)
	}
	dst := reflect.New(t)
	off := 0
	fill(dst.Elem(), src, &off)
	return dst.Interface()
}

func fill(dst, src reflect.Value, off *int) {
	if dst.Type().Elem().Kind() == reflect.Array {
		for i := 0; i < dst.Len(); i++ {
			fill(dst.Index(i), src, off)
		}
		return
	}
	n := dst.Len()
	reflect.Copy(dst, src.Slice(*off, *off+n))
	*off += n
}
