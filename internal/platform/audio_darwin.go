package platform

import "os/exec"

func lookupPlayer() string {
	path, err := exec.LookPath("afplay")
	if err != nil {
		return ""
	}
	return path
}

func playerArgs(path string) []string {
	return []string{path}
}
