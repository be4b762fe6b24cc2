package tools

import (
	"fmt"
	"runtime"
)

func IsWindows() bool {
	return runtime.GOOS == "windows"
}

func CommandFile(command string) string {
	if IsWindows() {
		return fmt.Sprintf("%s.exe", command)
	}
	return command
}
