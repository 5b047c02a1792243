package graph

import (
	"encoding/json"
	"os"

	"github.com/kbukum/gli/errors"
	"github.com/kbukum/gli/util"
	"github.com/kbukum/gli/validation"
)

// Attribute storage formats.
const (
	FormatTensor       = "Tensor"
	FormatSparseTensor = "SparseTensor"
)

// Reserved attribute names.
const (
	AttrEdge     = "_Edge"
	AttrNodeList = "_NodeList"
	AttrEdgeList = "_EdgeList"
)

// Attribute groups.
const (
	GroupNode  = "Node"
	GroupEdge  = "Edge"
	GroupGraph = "Graph"
)

// AttrRef locates one attribute's payload.
type AttrRef struct {
	Description string `json:"description,omitempty"`
	Type        string `json:"type,omitempty"`
	Format      string `json:"format,omitempty" validate:"omitempty,oneof=Tensor SparseTensor"`
	File        string `json:"file" validate:"required"`
	Key         string `json:"key,omitempty" validate:"required_unless=Format SparseTensor"`
}

// Sparse reports whether the payload is a scipy sparse archive.
func (r AttrRef) Sparse() bool { return r.Format == FormatSparseTensor }

// Data groups the attribute references by level.
type Data struct {
	Node  map[string]AttrRef `json:"Node" validate:"dive"`
	Edge  map[string]AttrRef `json:"Edge" validate:"required,dive"`
	Graph map[string]AttrRef `json:"Graph" validate:"dive"`
}

// Metadata is the parsed content of metadata.json.
type Metadata struct {
	Description     string `json:"description"`
	Data            Data   `json:"data"`
	Citation        string `json:"citation,omitempty"`
	IsHeterogeneous bool   `json:"is_heterogeneous"`
}

// ReadMetadata parses and validates the metadata file at path.
func ReadMetadata(path string) (*Metadata, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.FileNotFound(path)
		}
		return nil, errors.Internal(err)
	}

	var md Metadata
	if err := json.Unmarshal(raw, &md); err != nil {
		return nil, errors.InvalidFormat(path, "json").WithCause(err)
	}
	if md.IsHeterogeneous {
		return nil, errors.InvalidInput("is_heterogeneous", "heterogeneous graphs are not supported").
			WithDetail("path", path)
	}
	if err := validation.Validate(&md); err != nil {
		return nil, err
	}
	if _, ok := md.Data.Edge[AttrEdge]; !ok {
		return nil, errors.MissingField("data.Edge." + AttrEdge).WithDetail("path", path)
	}
	return &md, nil
}

// names returns the keys of refs in sorted order.
func names(refs map[string]AttrRef) []string {
	return util.SortedKeys(refs)
}
