// Package cli implements the formgen-cli commands.
package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formbuilder/pkg/prompt"
)

// Version is set at build time.
var Version = "dev"

// Option configures the root command.
type Option func(*settings)

type settings struct {
	stdout io.Writer
	stderr io.Writer
	driver prompt.Driver
}

// WithOutput redirects command output.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(s *settings) {
		if stdout != nil {
			s.stdout = stdout
		}
		if stderr != nil {
			s.stderr = stderr
		}
	}
}

// WithPromptDriver replaces the terminal driver used by --interactive.
func WithPromptDriver(d prompt.Driver) Option {
	return func(s *settings) {
		if d != nil {
			s.driver = d
		}
	}
}

// NewRootCommand builds the formgen command tree.
func NewRootCommand(opts ...Option) *cobra.Command {
	s := &settings{stdout: os.Stdout, stderr: os.Stderr}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.driver == nil {
		s.driver = prompt.NewSurveyDriver()
	}

	var configPath string
	root := &cobra.Command{
		Use:           "formgen",
		Short:         "Render HTML forms from definition files and OpenAPI operations",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(s.stdout)
	root.SetErr(s.stderr)
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ./formgen.yaml)")

	root.AddCommand(newRenderCommand(s, &configPath))
	root.AddCommand(newInspectCommand(s))
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Println(Version)
		},
	})
	return root
}
