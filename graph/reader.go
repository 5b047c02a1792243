package graph

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/kbukum/gli/array"
	"github.com/kbukum/gli/errors"
	"github.com/kbukum/gli/logger"
)

// Reader builds graphs from metadata files.
type Reader struct {
	log *logger.Logger
}

// NewReader creates a Reader. A nil log falls back to logger.Get("graph").
func NewReader(log *logger.Logger) *Reader {
	if log == nil {
		return &Reader{log: logger.Get("graph")}
	}
	return &Reader{log: log.WithComponent("graph")}
}

// ReadGraph parses the metadata at metadataPath and loads every attribute
// it references. The result holds one graph, or one per row of
// Graph/_NodeList when the dataset stores several.
func (r *Reader) ReadGraph(ctx context.Context, metadataPath, device string, verbose bool) (Graphs, error) {
	log := r.log.Verbose(verbose).WithContext(ctx)
	start := time.Now()

	md, err := ReadMetadata(metadataPath)
	if err != nil {
		return nil, err
	}
	dir := filepath.Dir(metadataPath)

	node, err := loadGroup(ctx, dir, md.Data.Node)
	if err != nil {
		return nil, err
	}
	edge, err := loadGroup(ctx, dir, md.Data.Edge)
	if err != nil {
		return nil, err
	}
	graphAttrs, err := loadGroup(ctx, dir, md.Data.Graph)
	if err != nil {
		return nil, err
	}

	edges := edge[AttrEdge]
	delete(edge, AttrEdge)
	src, dst, err := endpoints(edges)
	if err != nil {
		return nil, errors.InvalidInput("data.Edge._Edge", err.Error()).WithDetail("path", metadataPath)
	}

	nodeList := graphAttrs[AttrNodeList]
	edgeList := graphAttrs[AttrEdgeList]
	delete(graphAttrs, AttrNodeList)
	delete(graphAttrs, AttrEdgeList)

	numNodes := countNodes(md, node, nodeList, src, dst)
	if err := checkEndpoints(src, dst, numNodes); err != nil {
		return nil, errors.InvalidInput("data.Edge._Edge", err.Error()).WithDetail("path", metadataPath)
	}

	whole := &Graph{
		NumNodes:   numNodes,
		Src:        src,
		Dst:        dst,
		NodeAttrs:  node,
		EdgeAttrs:  edge,
		GraphAttrs: graphAttrs,
		Device:     device,
		Metadata:   md,
	}

	var gs Graphs
	if nodeList == nil || nodeList.Dims() < 2 || nodeList.Len() == 1 {
		gs = Graphs{whole}
	} else {
		gs, err = split(whole, nodeList, edgeList)
		if err != nil {
			return nil, errors.InvalidInput("data.Graph", err.Error()).WithDetail("path", metadataPath)
		}
	}

	log.Info("graph loaded", logger.Fields(
		logger.FieldPath, metadataPath,
		logger.FieldDevice, device,
		"graphs", len(gs),
		"nodes", whole.NumNodes,
		"edges", whole.NumEdges(),
		logger.FieldDuration, time.Since(start).Milliseconds(),
	))
	return gs, nil
}

func loadGroup(ctx context.Context, dir string, refs map[string]AttrRef) (map[string]*array.Array, error) {
	out := make(map[string]*array.Array, len(refs))
	for _, name := range names(refs) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		a, err := LoadAttr(dir, refs[name])
		if err != nil {
			return nil, err
		}
		out[name] = a
	}
	return out, nil
}

// LoadAttr reads one attribute payload relative to dir.
func LoadAttr(dir string, ref AttrRef) (*array.Array, error) {
	p := filepath.Join(dir, ref.File)
	if ref.Sparse() {
		return array.LoadSparse(p)
	}
	return array.Load(p, ref.Key)
}

// endpoints splits an (E, 2) edge array into source and destination ids.
func endpoints(edges *array.Array) (src, dst []int, err error) {
	if edges.Dims() != 2 || edges.Shape[1] != 2 {
		return nil, nil, fmt.Errorf("edge array has shape %v, want (E, 2)", edges.Shape)
	}
	flat, err := edges.IntSlice()
	if err != nil {
		return nil, nil, err
	}
	n := edges.Len()
	src, dst = make([]int, n), make([]int, n)
	for i := 0; i < n; i++ {
		src[i], dst[i] = flat[2*i], flat[2*i+1]
	}
	return src, dst, nil
}

// checkEndpoints rejects edges with an endpoint outside [0, n).
func checkEndpoints(src, dst []int, n int) error {
	for i := range src {
		if src[i] < 0 || src[i] >= n || dst[i] < 0 || dst[i] >= n {
			return fmt.Errorf("edge %d (%d, %d) is outside [0, %d)", i, src[i], dst[i], n)
		}
	}
	return nil
}

func countNodes(md *Metadata, node map[string]*array.Array, nodeList *array.Array, src, dst []int) int {
	if nodeList != nil {
		if nodeList.Dims() >= 2 {
			return nodeList.Shape[1]
		}
		return nodeList.Len()
	}
	if ns := names(md.Data.Node); len(ns) > 0 {
		return node[ns[0]].Len()
	}
	n := 0
	for i := range src {
		n = max(n, src[i]+1, dst[i]+1)
	}
	return n
}
