package detector

import (
	"fmt"
	"os/exec"
	"strings"
)

// WMCtrlLister lists window titles through wmctrl. It covers X11
// desktops; other platforms plug in their own WindowLister.
type WMCtrlLister struct{}

func (WMCtrlLister) Titles() ([]string, error) {
	output, err := exec.Command("wmctrl", "-l").Output()
	if err != nil {
		return nil, fmt.Errorf("wmctrl execution failed: %w", err)
	}

	var titles []string
	for _, line := range strings.Split(string(output), "\n") {
		// wmctrl -l lines: <window id> <desktop> <host> <title...>
		fields := strings.SplitN(strings.TrimSpace(line), " ", 4)
		if len(fields) < 4 {
			continue
		}
		if title := strings.TrimSpace(fields[3]); title != "" {
			titles = append(titles, title)
		}
	}

	return titles, nil
}
