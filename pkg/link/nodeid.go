package link

import (
	"os"

	"github.com/denisbrodbeck/machineid"
	"github.com/golang/glog"
)

const nodeIDApp = "telemetry.go"

// NodeID retrieves an id identifying this machine for HELLO.
// The machine id is hashed with the application name so the raw id never
// leaves the board. The hostname is used if no machine id is available.
func NodeID() string {
	id, err := machineid.ProtectedID(nodeIDApp)
	if err == nil {
		return id
	}
	glog.Warningf("machine id unavailable: %v", err)
	if id, err = os.Hostname(); err == nil {
		return id
	}
	return "unknown"
}
