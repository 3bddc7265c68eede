package commands

import (
	"fmt"
	"runtime"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/sfapi/internal/auth"
)

// VersionInfo describes the CLI build.
type VersionInfo struct {
	Version        string `json:"version"         yaml:"version"`
	Commit         string `json:"commit"          yaml:"commit"`
	Built          string `json:"built"           yaml:"built"`
	LibraryVersion string `json:"library_version" yaml:"library_version"`
	GoVersion      string `json:"go_version"      yaml:"go_version"`
}

// NewVersionCommand creates the version command.
func NewVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Display version information",
		Long:  "Display detailed version information about the sfapi CLI",
		RunE: func(cmd *cobra.Command, args []string) error {
			versionInfo := VersionInfo{
				Version:        version,
				Commit:         commit,
				Built:          date,
				LibraryVersion: auth.LibraryVersion(),
				GoVersion:      runtime.Version(),
			}

			return renderData(cmd.OutOrStdout(), versionInfo, func() error {
				table := tablewriter.NewWriter(cmd.OutOrStdout())
				table.Header("Property", "Value")
				_ = table.Append("Version", versionInfo.Version)
				_ = table.Append("Commit", versionInfo.Commit)
				_ = table.Append("Built", versionInfo.Built)
				_ = table.Append("Library", versionInfo.LibraryVersion)
				_ = table.Append("Go", versionInfo.GoVersion)

				err := table.Render()
				if err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}

				return nil
			})
		},
	}
}
