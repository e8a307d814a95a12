package domain

import "path/filepath"

const (
	// StateDirName is the name of the internal state directory.
	StateDirName = ".costwise"

	// HistoryDirName is the name of the price history directory.
	HistoryDirName = "history"

	// CatalogFileName is the name of the catalog file.
	CatalogFileName = "costwise.yaml"

	// HistoryFileName is the name of the price history file.
	HistoryFileName = "price_changes.json"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultStatePath returns the default root directory for costwise state.
func DefaultStatePath() string {
	return StateDirName
}

// DefaultHistoryPath returns the default path for the price history store.
// It joins .costwise and history.
func DefaultHistoryPath() string {
	return filepath.Join(StateDirName, HistoryDirName)
}
