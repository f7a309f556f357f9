// Package permissions audits filesystem permissions on the profile store.
package permissions

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Severity classifies a finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Finding describes a single permission problem on the store path.
type Finding struct {
	Path       string   `json:"path"`
	Severity   Severity `json:"severity"`
	Message    string   `json:"message"`
	Suggestion string   `json:"suggestion,omitempty"`
}

// Expected modes for the store file and its parent directory. The store
// holds credentials, so anything readable by group or other is flagged.
const (
	fileMode fs.FileMode = 0600
	dirMode  fs.FileMode = 0700
)

// Check inspects the store file and its parent directory. A missing file
// yields no findings; the store simply has not been created yet.
func Check(path string) []Finding {
	var findings []Finding

	info, err := os.Stat(path)
	switch {
	case os.IsNotExist(err):
		return nil
	case err != nil:
		findings = append(findings, Finding{
			Path:     path,
			Severity: SeverityError,
			Message:  fmt.Sprintf("cannot stat store file: %v", err),
		})
		return findings
	case info.IsDir():
		findings = append(findings, Finding{
			Path:       path,
			Severity:   SeverityError,
			Message:    "store path is a directory, expected a file",
			Suggestion: "remove the directory or point --config at a file",
		})
		return findings
	}

	if mode := info.Mode().Perm(); mode&0077 != 0 {
		findings = append(findings, Finding{
			Path:       path,
			Severity:   SeverityError,
			Message:    fmt.Sprintf("store file mode is %04o, expected %04o", mode, fileMode),
			Suggestion: fmt.Sprintf("run: chmod %04o %s", fileMode, path),
		})
	}

	dir := filepath.Dir(path)
	dirInfo, err := os.Stat(dir)
	if err != nil {
		findings = append(findings, Finding{
			Path:     dir,
			Severity: SeverityError,
			Message:  fmt.Sprintf("cannot stat store directory: %v", err),
		})
		return findings
	}
	if mode := dirInfo.Mode().Perm(); mode&0077 != 0 {
		findings = append(findings, Finding{
			Path:       dir,
			Severity:   SeverityWarning,
			Message:    fmt.Sprintf("store directory mode is %04o, expected %04o", mode, dirMode),
			Suggestion: fmt.Sprintf("run: chmod %04o %s", dirMode, dir),
		})
	}

	return findings
}
