package cmd

import (
	"os"
	"runtime"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/openreelio/reel/cmd/reel/internal/build"
)

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.SetOut(os.Stdout)
	versionCmd.Flags().BoolP("short", "s", false, "Display only the version string without metadata")
}

// versionCmd displays application version and build metadata.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display version and build metadata",
	Long:  "Display the current application version, build revision, platform architecture, and related metadata.",
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("short")) {
			cmd.Println(build.Version)
			return
		}

		versionInfo := struct {
			App      string
			Version  string
			Revision string
			BuiltAt  string
			OS       string
			Arch     string
		}{
			App:      "reel",
			Version:  build.Version,
			Revision: build.Revision,
			BuiltAt:  strings.TrimSpace(build.BuiltAt),
			OS:       runtime.GOOS,
			Arch:     runtime.GOARCH,
		}

		faint := lipgloss.NewStyle().Faint(true).Render
		bold := lipgloss.NewStyle().Bold(true).Render
		magenta := lipgloss.NewStyle().Foreground(lipgloss.Color("135")).Render

		t, err := template.New("version").Funcs(map[string]any{
			"faint":   faint,
			"bold":    bold,
			"magenta": magenta,
		}).Parse(`{{ magenta "▇▇▇" }} {{ magenta .App }}

  {{ faint "Version" }}     {{ bold .Version }}
  {{ faint "Git Commit" }}  {{ bold .Revision }}
  {{ faint "Build Date" }}  {{ bold .BuiltAt }}
  {{ faint "Platform" }}    {{ bold .OS }}/{{ bold .Arch }}
`)
		handleErr(err)
		handleErr(t.Execute(cmd.OutOrStdout(), versionInfo))
	},
}
