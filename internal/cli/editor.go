package cli

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// getEditor returns the editor command line from EDITOR, then VISUAL,
// defaulting to vi.
func getEditor() []string {
	for _, env := range []string{"EDITOR", "VISUAL"} {
		if fields := strings.Fields(os.Getenv(env)); len(fields) > 0 {
			return fields
		}
	}
	return []string{"vi"}
}

// openEditor opens path in the user's editor and waits for it to exit.
// Editors given with flags ("code -w") are split on spaces.
func openEditor(path string, stdout, stderr io.Writer) error {
	editor := getEditor()
	args := append(editor[1:], path)

	cmd := exec.Command(editor[0], args...) //nolint:gosec // the editor is chosen by the user
	cmd.Stdin = os.Stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to run editor %s: %w", editor[0], err)
	}
	return nil
}
