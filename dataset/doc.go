// Package dataset combines graphs with a task into training-ready datasets.
//
// There is one dataset kind per task family: NodeDataset for node-level
// tasks, GraphDataset for graph-level tasks and EdgeDataset for link and
// knowledge-graph tasks. Each kind has a Factory that checks the task
// against the graph and materializes per-fold splits.
package dataset
