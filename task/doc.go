// Package task reads GLI task definitions.
//
// A task file names the learning problem (its Type), the graph attributes
// used as features and target, and the split sets. Split sets reference
// arrays in .npz payloads beside the task file; they hold node, edge or
// graph ids, or boolean masks. Datasets with several folds either list
// one reference per fold or store a single array with a leading fold axis.
package task
