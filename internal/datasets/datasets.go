// Package datasets manages the on-disk dataset directory: default paths,
// filesystem-safe names for derived team datasets, and listing what exists.
// All writes are confined to a single once-initialised root.
package datasets

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/mzakany23/ncsh-agent/internal/safety"
)

// DefaultDataFile is used when neither flag nor NCSH_DATA_FILE names the dataset.
const DefaultDataFile = "data/matches.parquet"

var (
	rootOnce    sync.Once
	absRoot     string
	initRootErr error
)

func initRoot() {
	absRoot, initRootErr = safety.InitDatasetRoot(os.Getenv("NCSH_DATASET_DIR"))
}

// Root returns the cached absolute dataset root, initialising it once on first use.
func Root() (string, error) {
	rootOnce.Do(initRoot)
	return absRoot, initRootErr
}

// DataFile resolves the dataset path from an explicit value, then the
// NCSH_DATA_FILE environment variable, then the default.
func DataFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if v := os.Getenv("NCSH_DATA_FILE"); v != "" {
		return v
	}
	return DefaultDataFile
}

// ResolveOutput validates a relative dataset filename against the root and
// returns the absolute output path.
func ResolveOutput(relPath string) (string, error) {
	root, err := Root()
	if err != nil {
		return "", err
	}
	return safety.ValidateParquetPath(root, relPath)
}

var slugUnsafe = regexp.MustCompile(`[^a-z0-9]+`)

// Slug converts a team name into a filesystem-safe fragment:
// "Key West FC (1)" -> "key_west_fc_1".
func Slug(team string) string {
	s := slugUnsafe.ReplaceAllString(strings.ToLower(strings.TrimSpace(team)), "_")
	return strings.Trim(s, "_")
}

// DefaultName is the conventional filename for a plain team dataset.
func DefaultName(team string) string {
	return Slug(team) + "_dataset.parquet"
}

// UniqueName appends a timestamp so repeat builds never collide, mirroring
// how ad-hoc datasets were named in the original registry.
func UniqueName(team string, now time.Time) string {
	return Slug(team) + "_" + now.Format("20060102_150405") + ".parquet"
}

// Info describes one dataset file in the registry.
type Info struct {
	Name    string    `json:"name"`
	Path    string    `json:"path"`
	Bytes   int64     `json:"bytes"`
	ModTime time.Time `json:"mod_time"`
}

// List returns the .parquet files in the dataset directory, newest first.
func List() ([]Info, error) {
	root, err := Root()
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}

	var infos []Info
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".parquet") {
			continue
		}
		fi, err := e.Info()
		if err != nil {
			continue
		}
		infos = append(infos, Info{
			Name:    e.Name(),
			Path:    filepath.Join(root, e.Name()),
			Bytes:   fi.Size(),
			ModTime: fi.ModTime(),
		})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].ModTime.After(infos[j].ModTime) })
	return infos, nil
}
