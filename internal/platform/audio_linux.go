package platform

import "os/exec"

var linuxPlayers = []string{"paplay", "pw-play", "aplay"}

func lookupPlayer() string {
	for _, name := range linuxPlayers {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}
	return ""
}

func playerArgs(path string) []string {
	return []string{path}
}
