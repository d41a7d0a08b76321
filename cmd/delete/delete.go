// cmd/delete/delete.go

package delete

import (
	"github.com/spf13/cobra"
)

// DeleteCmd is the root command for delete operations.
var DeleteCmd = &cobra.Command{
	Use:     "delete",
	Short:   "Delete resources provisioned by argus",
	Long:    `The delete command removes resources argus provisioned, such as the Netdata monitoring agent.`,
	Aliases: []string{"remove", "rm", "uninstall"},
}
