package watcher

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// Notify delivers an alert to the desktop: osascript on macOS, notify-send
// on Linux with the alert level mapped to an urgency. Platforms without a
// notifier, and notifier failures, degrade to a line on stderr.
func Notify(alert Alert) error {
	var err error
	switch runtime.GOOS {
	case "darwin":
		err = notifyDarwin(alert)
	case "linux":
		err = notifyLinux(alert)
	default:
		return alertToStderr(alert)
	}
	if err != nil {
		return alertToStderr(alert)
	}
	return nil
}

func notifyDarwin(alert Alert) error {
	script := fmt.Sprintf(`display notification %q with title "projscout" subtitle %q`,
		alert.Message, alert.Title)
	return exec.Command("osascript", "-e", script).Run()
}

func notifyLinux(alert Alert) error {
	if _, err := exec.LookPath("notify-send"); err != nil {
		return err
	}
	return exec.Command("notify-send",
		"-a", "projscout",
		"-u", urgency(alert.Level),
		"projscout: "+alert.Title, alert.Message).Run()
}

// urgency maps an alert level onto notify-send's scale. Warnings are worth
// interrupting for; everything else is not.
func urgency(level string) string {
	if level == "warning" {
		return "critical"
	}
	return "normal"
}

// alertToStderr is the delivery of last resort.
func alertToStderr(alert Alert) error {
	_, err := fmt.Fprintf(os.Stderr, "[%s] %s: %s\n", alert.Level, alert.Title, alert.Message)
	return err
}
