package load

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const fileExt = ".csv"

var (
	ErrBadDataset     = errors.New("load: invalid dataset name")
	ErrUnknownDataset = errors.New("load: unknown dataset")
)

// Datasets returns the sorted names of the datasets in dir. A dataset named
// foo is stored in dir/foo.csv.
func Datasets(dir string) ([]string, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	names := []string{}
	for _, file := range files {
		if !file.IsDir() && strings.HasSuffix(file.Name(), fileExt) {
			names = append(names, strings.TrimSuffix(file.Name(), fileExt))
		}
	}
	sort.Strings(names)
	return names, nil
}

// DatasetPath returns the path of the named dataset in dir. The name may not
// contain path separators.
func DatasetPath(dir, name string) (string, error) {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrBadDataset, name)
	}

	path := filepath.Join(dir, name+fileExt)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("%w: %q", ErrUnknownDataset, name)
	} else if err != nil {
		return "", err
	}
	return path, nil
}
