package domain

import "path/filepath"

// GlobalLogPath returns the path to the global log file.
func GlobalLogPath(logDir string) string {
	return filepath.Join(logDir, "daisen.log")
}

// ScopeLogPath returns the path to the log file of a view or component.
func ScopeLogPath(logDir, scope string) string {
	return filepath.Join(logDir, sanitizeScope(scope)+".log")
}

// sanitizeScope maps a scope name to a file-system safe name.
func sanitizeScope(scope string) string {
	b := []byte(scope)
	for i, c := range b {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_', c == '.':
		default:
			b[i] = '_'
		}
	}
	return string(b)
}
