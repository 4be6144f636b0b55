package dashboard

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// File kinds reported by Scan.
const (
	KindMdout      = "mdout"
	KindMdinfo     = "mdinfo"
	KindTrajectory = "trajectory"
	KindRestart    = "restart"
	KindTopology   = "topology"
)

var kindByExt = map[string]string{
	".out":    KindMdout,
	".mdout":  KindMdout,
	".mdinfo": KindMdinfo,
	".nc":     KindTrajectory,
	".netcdf": KindTrajectory,
	".mdcrd":  KindTrajectory,
	".crd":    KindTrajectory,
	".x":      KindTrajectory,
	".rst":    KindRestart,
	".rst7":   KindRestart,
	".ncrst":  KindRestart,
	".restrt": KindRestart,
	".prmtop": KindTopology,
	".parm7":  KindTopology,
	".top":    KindTopology,
}

// File is one simulation output file found in the watched directory.
type File struct {
	Name     string    `json:"name"`
	Kind     string    `json:"kind"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
}

// Snapshot is the content of the watched directory at one point in time.
type Snapshot struct {
	Directory string    `json:"directory"`
	ScannedAt time.Time `json:"scanned_at"`
	Files     []File    `json:"files"`
}

// Classify returns the kind of a simulation file from its name, or "" when
// the file is not an Amber input or output.
func Classify(name string) string {
	lower := strings.ToLower(name)
	switch lower {
	case "mdout":
		return KindMdout
	case "mdinfo":
		return KindMdinfo
	case "mdcrd":
		return KindTrajectory
	case "restrt":
		return KindRestart
	case "prmtop":
		return KindTopology
	}
	return kindByExt[filepath.Ext(lower)]
}

// Scan lists the simulation files directly inside dir, sorted by name.
// Subdirectories and unrelated files are skipped.
func Scan(dir string) (Snapshot, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to resolve %s: %w", dir, err)
	}

	entries, err := os.ReadDir(abs)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to read directory %s: %w", abs, err)
	}

	snap := Snapshot{Directory: abs, ScannedAt: time.Now(), Files: []File{}}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		kind := Classify(e.Name())
		if kind == "" {
			continue
		}
		info, err := e.Info()
		if err != nil {
			// removed between ReadDir and Info
			continue
		}
		snap.Files = append(snap.Files, File{
			Name:     e.Name(),
			Kind:     kind,
			Size:     info.Size(),
			Modified: info.ModTime(),
		})
	}

	sort.Slice(snap.Files, func(i, j int) bool { return snap.Files[i].Name < snap.Files[j].Name })
	return snap, nil
}
