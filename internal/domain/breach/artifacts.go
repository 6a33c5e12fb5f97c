package breach

import (
	"path/filepath"
	"strings"
)

const (
	ChartSuffix  = "_breach_data.png"
	ReportSuffix = "_breach_report"
)

// ArtifactPath builds the deterministic artifact path for an account, so a
// re-run for the same account overwrites the previous file.
func ArtifactPath(dir, account, suffix string) string {
	return filepath.Join(dir, safeFileName(account)+suffix)
}

// ChartPath is {dir}/{account}_breach_data.png.
func ChartPath(dir, account string) string {
	return ArtifactPath(dir, account, ChartSuffix)
}

// ReportPath is {dir}/{account}_breach_report.{ext}.
func ReportPath(dir, account, ext string) string {
	return ArtifactPath(dir, account, ReportSuffix+"."+strings.TrimPrefix(ext, "."))
}

// safeFileName keeps the account readable but strips path separators.
func safeFileName(account string) string {
	r := strings.NewReplacer("/", "_", "\\", "_", "\x00", "")
	name := r.Replace(strings.TrimSpace(account))
	if name == "" || name == "." || name == ".." {
		return "_"
	}
	return name
}

// ObjectKey is the published name of a local artifact: {account}/{file name}.
func ObjectKey(account, localPath string) string {
	return safeFileName(account) + "/" + filepath.Base(localPath)
}
