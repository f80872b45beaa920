//go:build windows

package editor

import (
	"os/exec"
)

var defaultEditors = []string{
	"code.cmd",
	"code-insiders.cmd",
	"cursor.cmd",
}

func findPlatformEditor() string {
	for _, editor := range defaultEditors {
		if _, err := exec.LookPath(editor); err == nil {
			return editor
		}
	}
	return ""
}
