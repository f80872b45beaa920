//go:build linux

package editor

import (
	"os/exec"
)

var defaultEditors = []string{
	"code",
	"code-insiders",
	"cursor",
	"codium",
	"subl",
	"zed",
}

func findPlatformEditor() string {
	for _, editor := range defaultEditors {
		if _, err := exec.LookPath(editor); err == nil {
			return editor
		}
	}
	return ""
}
