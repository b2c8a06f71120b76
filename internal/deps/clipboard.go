package deps

import (
	"runtime"
	"strings"
)

// ClipboardRequirements lists the helper programs the clipboard library can
// drive on the current platform. macOS and Windows need none.
func ClipboardRequirements(goos string) []Requirement {
	switch goos {
	case "darwin", "windows":
		return nil
	}
	return []Requirement{
		{Name: "wl-clipboard", Command: "wl-copy", Description: "Wayland clipboard", Optional: true},
		{Name: "xclip", Command: "xclip", Description: "X11 clipboard", Optional: true},
		{Name: "xsel", Command: "xsel", Description: "X11 clipboard", Optional: true},
		{Name: "termux-api", Command: "termux-clipboard-set", Description: "Termux clipboard", Optional: true},
	}
}

// CheckClipboard reports whether copying the run log to the clipboard can
// work. Any one available helper is enough.
func CheckClipboard() Status {
	return checkAnyOf("Clipboard", ClipboardRequirements(runtime.GOOS))
}

func checkAnyOf(name string, requirements []Requirement) Status {
	status := Status{Name: name, Optional: true}
	if len(requirements) == 0 {
		status.Available = true
		status.Detail = "native"
		return status
	}
	commands := make([]string, 0, len(requirements))
	for _, result := range CheckBinaries(requirements) {
		if result.Available {
			status.Available = true
			status.Command = result.Command
			status.Description = result.Description
			status.Detail = "using " + result.Command
			return status
		}
		commands = append(commands, result.Command)
	}
	status.Detail = "none of " + strings.Join(commands, ", ") + " found"
	return status
}
