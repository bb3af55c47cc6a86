package platform

import (
	"fmt"
	"os/exec"
	"strings"
)

func lookupPlayer() string {
	path, err := exec.LookPath("powershell.exe")
	if err != nil {
		return ""
	}
	return path
}

func playerArgs(path string) []string {
	quoted := strings.ReplaceAll(path, "'", "''")
	return []string{
		"-NoProfile",
		"-NonInteractive",
		"-Command",
		fmt.Sprintf("(New-Object Media.SoundPlayer '%s').PlaySync()", quoted),
	}
}
