//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"fmt"
	"os"
	"os/user"
)

// Operator identifies who sent a remote command.
type Operator struct {
	// Hostname is the machine the command was sent from.
	Hostname string
	// Username is the system user that sent it.
	Username string
}

// String renders the operator as host/user.
func (o Operator) String() string {
	return o.Hostname + "/" + o.Username
}

// DetectOperator gathers host and user information for the audit trail.
func DetectOperator() (Operator, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return Operator{}, fmt.Errorf("hostname: %w", err)
	}

	currentUser, err := user.Current()
	if err != nil {
		return Operator{}, fmt.Errorf("current user: %w", err)
	}

	return Operator{
		Hostname: hostname,
		Username: currentUser.Username,
	}, nil
}
