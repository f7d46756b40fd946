package consts

import "strings"

var devmode string = "false"

func IsDevMode() bool {
	return strings.ToLower(devmode) == "true"
}

// SetDevMode overrides the value set at link time.
func SetDevMode(enabled bool) {
	if enabled {
		devmode = "true"
	} else {
		devmode = "false"
	}
}
