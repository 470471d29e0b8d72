//go:build !windows

package shellsetup

import (
	"fmt"
	"os"
	"strings"
)

// DetectParentShellName reads the parent process name from procfs. It returns
// an empty string where procfs is unavailable.
func DetectParentShellName() string {
	ppid := os.Getppid()
	if ppid <= 1 {
		return ""
	}
	data, err := os.ReadFile(fmt.Sprintf("/proc/%d/comm", ppid))
	if err != nil {
		return ""
	}
	name := strings.TrimSpace(string(data))
	return strings.TrimPrefix(name, "-")
}
