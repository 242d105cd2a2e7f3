package toolbox

import (
	"fmt"

	"torii/internal/agent"
	"torii/internal/netdev"
	"torii/internal/tools"

	"github.com/spf13/cobra"
)

var Cmd = &cobra.Command{
	Use:   "tools",
	Short: "List the tools exposed to the agent",
	Run: func(cmd *cobra.Command, args []string) {
		// Listing never dials, so an empty profile is fine here.
		reg := BuildRegistry(netdev.NewSSHDialer(), netdev.DeviceProfile{}, nil)
		for _, t := range reg.All() {
			fmt.Printf("%-24s %s\n", t.Name(), t.Description())
		}
	},
}

// BuildRegistry wires the fixed tool set against one device profile.
func BuildRegistry(dialer netdev.Dialer, profile netdev.DeviceProfile, routeProtoCmds map[string]string) *agent.Registry {
	reg := agent.NewRegistry()
	reg.Register(tools.NewVersion(dialer, profile))
	reg.Register(tools.NewRouteTable(dialer, profile))
	reg.Register(tools.NewRouteProtoState(dialer, profile, routeProtoCmds))
	reg.Register(tools.NewPing(dialer, profile))
	reg.Register(tools.NewIfaceConfig(dialer, profile))
	reg.Register(tools.NewDate())
	return reg
}
