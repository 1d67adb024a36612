// Package machineid derives a stable, best-effort identifier for the local
// machine. The identifier is used only as the fallback encryption password
// for the credential vault when no platform secret store is available; it is
// best-effort obfuscation, not a security boundary.
package machineid

import (
	"os"
	"os/exec"
	"os/user"
	"strings"
)

// Default machine-id file locations, tried in order.
var defaultIDPaths = []string{
	"/etc/machine-id",
	"/var/lib/dbus/machine-id",
}

// platformUUIDMarker identifies the hardware UUID line in ioreg output.
const platformUUIDMarker = "IOPlatformUUID"

// Resolver computes the machine identity. The zero value is not usable;
// construct one with New. Fields are exported so tests can substitute
// paths and the command runner.
type Resolver struct {
	// IDPaths are candidate machine-id files, tried in order.
	IDPaths []string

	// RunIOReg invokes the hardware registry query tool and returns its
	// output. All arguments are fixed; no user input is ever interpolated.
	RunIOReg func() ([]byte, error)

	// Hostname and Username feed the final fallback.
	Hostname func() (string, error)
	Username func() (string, error)
}

// New returns a Resolver wired to the real system.
func New() *Resolver {
	return &Resolver{
		IDPaths:  defaultIDPaths,
		RunIOReg: runIOReg,
		Hostname: os.Hostname,
		Username: currentUsername,
	}
}

// ID returns the machine identity. It never fails: each derivation step's
// failure is swallowed and the next step is tried, ending with a
// hostname-username fallback that always produces a non-empty string.
func (r *Resolver) ID() string {
	for _, path := range r.IDPaths {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if id := strings.TrimSpace(string(data)); id != "" {
			return id
		}
	}

	if id := r.hardwareUUID(); id != "" {
		return id
	}

	hostname, err := r.Hostname()
	if err != nil {
		hostname = "localhost"
	}
	username, err := r.Username()
	if err != nil {
		username = "user"
	}
	return hostname + "-" + username
}

// hardwareUUID extracts the platform UUID from the hardware registry tool's
// output, returning "" on any failure.
func (r *Resolver) hardwareUUID() string {
	if r.RunIOReg == nil {
		return ""
	}
	out, err := r.RunIOReg()
	if err != nil {
		return ""
	}
	for _, line := range strings.Split(string(out), "\n") {
		if !strings.Contains(line, platformUUIDMarker) {
			continue
		}
		// The UUID is the value between the final pair of quotes:
		//   "IOPlatformUUID" = "XXXXXXXX-..."
		parts := strings.Split(line, `"`)
		if len(parts) < 2 {
			return ""
		}
		return parts[len(parts)-2]
	}
	return ""
}

func runIOReg() ([]byte, error) {
	path, err := exec.LookPath("ioreg")
	if err != nil {
		return nil, err
	}
	return exec.Command(path, "-rd1", "-c", "IOPlatformExpertDevice").Output()
}

func currentUsername() (string, error) {
	u, err := user.Current()
	if err == nil && u.Username != "" {
		return u.Username, nil
	}
	if name := os.Getenv("USER"); name != "" {
		return name, nil
	}
	return "", err
}
