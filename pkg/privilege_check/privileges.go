// pkg/privilege_check/privileges.go

// Package privilege_check inspects the effective privileges of the running
// process. Provisioning mutates the package database, systemd units and files
// under /etc, so every mutating command gates on RequireRoot before touching
// anything.
package privilege_check

import (
	"fmt"
	"os"
	"os/user"
	"strconv"
	"time"

	"github.com/CodeMonkeyCybersecurity/argus/pkg/argus_err"
	"github.com/CodeMonkeyCybersecurity/argus/pkg/argus_io"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// geteuid is swappable so tests can exercise both root and non-root paths.
var geteuid = os.Geteuid

// PrivilegeLevel classifies the invoking user.
type PrivilegeLevel string

const (
	PrivilegeLevelRoot    PrivilegeLevel = "root"
	PrivilegeLevelRegular PrivilegeLevel = "regular"
)

// PrivilegeCheck captures one privilege assessment.
type PrivilegeCheck struct {
	UserID    int
	GroupID   int
	Username  string
	Groupname string
	Level     PrivilegeLevel
	IsRoot    bool
	Timestamp time.Time
}

// CheckPrivileges checks the current user's privilege level following the
// Assess → Intervene → Evaluate pattern.
func CheckPrivileges(rc *argus_io.RuntimeContext) (*PrivilegeCheck, error) {
	logger := otelzap.Ctx(rc.Ctx)

	// ASSESS
	logger.Debug("Assessing privilege check request")

	check := &PrivilegeCheck{Timestamp: time.Now()}

	// INTERVENE
	check.UserID = geteuid()
	check.GroupID = os.Getegid()
	check.IsRoot = check.UserID == 0
	if check.IsRoot {
		check.Level = PrivilegeLevelRoot
	} else {
		check.Level = PrivilegeLevelRegular
	}

	currentUser, err := user.Current()
	if err != nil {
		logger.Error("Failed to get current user info", zap.Error(err))
		return check, err
	}
	check.Username = currentUser.Username

	group, err := user.LookupGroupId(strconv.Itoa(check.GroupID))
	if err != nil {
		logger.Warn("Failed to get group info", zap.Error(err))
		check.Groupname = fmt.Sprintf("gid-%d", check.GroupID)
	} else {
		check.Groupname = group.Name
	}

	// EVALUATE
	logger.Info("Privilege check completed",
		zap.String("username", check.Username),
		zap.Int("uid", check.UserID),
		zap.String("level", string(check.Level)),
		zap.Bool("is_root", check.IsRoot))

	return check, nil
}

// IsRoot reports whether the effective uid is root.
func IsRoot() bool {
	return geteuid() == 0
}

// RequireRoot returns an expected user error when the effective uid is not
// root. Callers run it before any mutating action, so a non-root invocation
// exits with status 1 having changed nothing on the host.
func RequireRoot(rc *argus_io.RuntimeContext) error {
	logger := otelzap.Ctx(rc.Ctx)

	if uid := geteuid(); uid != 0 {
		logger.Warn("Refusing to continue without root privileges", zap.Int("euid", uid))
		return argus_err.NewUserError("this command must be run as root (re-run under sudo)")
	}

	logger.Debug("Root privileges confirmed")
	return nil
}
