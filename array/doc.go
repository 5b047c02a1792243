// Package array reads the NumPy payloads GLI datasets ship with.
//
// Dense attributes live in .npz archives keyed by array name. Sparse
// attributes are scipy.sparse archives (data, indices, indptr, shape and an
// optional format entry) and are densified on load:
//
//	feat, err := array.Load("/data/cora/cora__graph__Node_NodeFeature.npz", "NodeFeature")
//	mask, err := array.LoadSparse("/data/cora/cora__graph__Node_Mask.sparse.npz")
//
// Every array is widened into one of three kinds: float64, int64 or bool.
package array
