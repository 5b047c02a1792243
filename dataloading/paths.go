package dataloading

import (
	"os"
	"path/filepath"

	"github.com/kbukum/gli/errors"
)

// Well-known names under the root path.
const (
	DatasetsDirName  = "datasets"
	MetadataFileName = "metadata.json"
	taskExt          = ".json"
)

// Paths computes dataset locations under Root. It performs no I/O.
type Paths struct {
	Root string
}

// DatasetsDir returns Root/datasets.
func (p Paths) DatasetsDir() string {
	return filepath.Join(p.Root, DatasetsDirName)
}

// DataDir returns the directory of dataset.
func (p Paths) DataDir(dataset string) string {
	return filepath.Join(p.DatasetsDir(), dataset)
}

// MetadataPath returns the metadata file of dataset.
func (p Paths) MetadataPath(dataset string) string {
	return filepath.Join(p.DataDir(dataset), MetadataFileName)
}

// TaskPath returns the definition file of task in dataset.
func (p Paths) TaskPath(dataset, task string) string {
	return filepath.Join(p.DataDir(dataset), task+taskExt)
}

// checkExists fails with errors.DirectoryNotFound when dir is not a
// directory, then with errors.FileNotFound when file does not exist.
func checkExists(dir, file string) error {
	if fi, err := os.Stat(dir); err != nil || !fi.IsDir() {
		return errors.DirectoryNotFound(dir)
	}
	if _, err := os.Stat(file); err != nil {
		return errors.FileNotFound(file)
	}
	return nil
}
