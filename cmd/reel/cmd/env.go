package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/openreelio/reel/cmd/reel/internal/settings"
)

func init() {
	rootCmd.AddCommand(envCmd)
	envCmd.Flags().BoolP("set-only", "s", false, "Display only environment variables that are currently defined")
	envCmd.Flags().BoolP("unset-only", "u", false, "Display only environment variables that are currently undefined")

	envCmd.MarkFlagsMutuallyExclusive("set-only", "unset-only")
}

var (
	envNameStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("135"))
	envValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	envUnsetStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	envDescStyle  = lipgloss.NewStyle().Faint(true)
)

// envCmd displays every supported environment variable and its current
// process value.
var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Display the supported environment variables",
	Long: `Display the supported environment variables, their descriptions, and
their current process values.`,
	Run: func(cmd *cobra.Command, args []string) {
		setOnly := lo.Must(cmd.Flags().GetBool("set-only"))
		unsetOnly := lo.Must(cmd.Flags().GetBool("unset-only"))

		for _, field := range settings.All() {
			env := field.Env()
			value, present := os.LookupEnv(env)

			if setOnly && !present {
				continue
			}
			if unsetOnly && present {
				continue
			}

			cmd.Print(envNameStyle.Render(env))
			cmd.Print("=")
			if present {
				cmd.Println(envValueStyle.Render(value))
			} else {
				cmd.Println(envUnsetStyle.Render(fmt.Sprintf("unset (default %v)", field.Value)))
			}
			cmd.Println(envDescStyle.Render("  " + field.Description))
		}
	},
}
