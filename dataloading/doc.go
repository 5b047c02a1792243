// Package dataloading is the entry point for loading GLI datasets.
//
// A Loader resolves dataset paths under a configured root, checks that the
// dataset directory and the requested file exist, lets the downloader
// fetch missing payloads, and hands off to the graph and task readers.
// Combine pairs a graph with a task by dispatching on the task family:
//
//	cfg := config.Default()
//	shutdown, err := dataloading.Setup(ctx, cfg)
//	defer shutdown(ctx)
//	l, err := dataloading.New(cfg)
//	ds, err := l.Dataset(ctx, "cora", "task_node_classification_1",
//		dataloading.WithDevice("cuda:0"), dataloading.WithVerbose(false))
//
// The existence check runs before the download, so a dataset directory
// must already hold its metadata and task files; the downloader only
// fetches the payloads they reference.
package dataloading
