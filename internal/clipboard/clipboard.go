// Package clipboard provides platform-specific clipboard operations.
package clipboard

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// Tool is a clipboard command reading its content from stdin.
type Tool []string

// Tools lists the clipboard commands tried on goos, in order of preference.
func Tools(goos string) []Tool {
	switch goos {
	case "linux":
		return []Tool{
			{"wl-copy"},                          // Wayland
			{"xclip", "-selection", "clipboard"}, // X11
			{"xsel", "--clipboard", "--input"},   // X11 alternative
		}
	case "darwin":
		return []Tool{{"pbcopy"}}
	case "windows":
		return []Tool{{"clip"}}
	default:
		return nil
	}
}

// CopyText copies plain text to the system clipboard.
func CopyText(text string) error {
	tools := Tools(runtime.GOOS)
	if len(tools) == 0 {
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	var tried []string
	for _, tool := range tools {
		tried = append(tried, tool[0])
		if !isCommandAvailable(tool[0]) {
			continue
		}
		cmd := exec.Command(tool[0], tool[1:]...)
		cmd.Stdin = strings.NewReader(text)
		if err := cmd.Run(); err == nil {
			return nil
		}
	}
	return fmt.Errorf("no suitable clipboard tool found (tried: %s)", strings.Join(tried, ", "))
}

func isCommandAvailable(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
