package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formbuilder/internal/bootstrap"
	"github.com/goliatone/go-formbuilder/internal/config"
	"github.com/goliatone/go-formbuilder/internal/logging"
	"github.com/goliatone/go-formbuilder/pkg/definition"
	"github.com/goliatone/go-formbuilder/pkg/form"
	"github.com/goliatone/go-formbuilder/pkg/prompt"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/session"
)

type renderFlags struct {
	operation   string
	output      string
	interactive bool
	errorsFile  string
	oldFile     string
	scripts     bool
	lang        string
	action      string
	theme       string
	variant     string
}

func newRenderCommand(s *settings, configPath *string) *cobra.Command {
	flags := &renderFlags{}
	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Render a form definition, or an OpenAPI operation with --operation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if flags.theme != "" {
				cfg.Theme.Manifest = flags.theme
				cfg.Theme.Variant = flags.variant
			}
			logger := logging.Must(cfg.Log.Level, true)
			defer func() { _ = logger.Sync() }()

			out, err := runRender(commandContext(cmd), s, cfg, logger, args[0], flags)
			if err != nil {
				return err
			}
			if flags.output == "" {
				_, err = fmt.Fprint(cmd.OutOrStdout(), out)
				return err
			}
			if err := os.WriteFile(flags.output, []byte(out), 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			cmd.PrintErrf("Form written to %s\n", flags.output)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&flags.operation, "operation", "", "OpenAPI operation id; treats <file> as an OpenAPI document")
	f.StringVarP(&flags.output, "output", "o", "", "output file (stdout if empty)")
	f.BoolVarP(&flags.interactive, "interactive", "i", false, "prompt for field values before rendering")
	f.StringVar(&flags.errorsFile, "errors", "", "JSON or YAML validation payload (field -> messages)")
	f.StringVar(&flags.oldFile, "old", "", "JSON or YAML old input (field -> value)")
	f.BoolVar(&flags.scripts, "scripts", false, "append the collected enhancement scripts")
	f.StringVar(&flags.lang, "lang", "", "form language")
	f.StringVar(&flags.action, "action", "", "override the form action")
	f.StringVar(&flags.theme, "theme", "", "go-theme manifest overriding the configured theme")
	f.StringVar(&flags.variant, "variant", "", "theme variant")
	return cmd
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func loadDefinition(ctx context.Context, path, operation string) (definition.Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return definition.Definition{}, fmt.Errorf("read %s: %w", path, err)
	}
	if operation != "" {
		return definition.FromOpenAPI(ctx, data, operation)
	}
	return definition.Parse(data, path)
}

func runRender(ctx context.Context, s *settings, cfg *config.Config, logger *zap.Logger, path string, flags *renderFlags) (string, error) {
	env, err := bootstrap.New(cfg, logger)
	if err != nil {
		return "", err
	}
	def, err := loadDefinition(ctx, path, flags.operation)
	if err != nil {
		return "", err
	}

	var extra []form.Option
	if flags.lang != "" {
		extra = append(extra, form.WithLang(flags.lang))
	}
	if flags.action != "" {
		extra = append(extra, form.WithAction(flags.action))
	}

	var old session.OldInput
	if flags.oldFile != "" {
		if err := decodeFile(flags.oldFile, &old); err != nil {
			return "", err
		}
	}
	if flags.interactive {
		draft, err := env.Build(def, append(extra, form.WithOldInput(old))...)
		if err != nil {
			return "", err
		}
		answers, err := prompt.Collect(ctx, draft, s.driver)
		if err != nil {
			return "", err
		}
		old = answers
		logger.Debug("collected answers", zap.Int("fields", len(answers)))
	}
	if old != nil {
		extra = append(extra, form.WithOldInput(old))
	}

	if flags.errorsFile != "" {
		var payload map[string][]string
		if err := decodeFile(flags.errorsFile, &payload); err != nil {
			return "", err
		}
		names := def.FieldNames()
		bag := session.BagFromMapping(render.MapErrorPayload(names, payload), names)
		extra = append(extra, form.WithErrors(bag))
	}

	f, err := env.Build(def, extra...)
	if err != nil {
		return "", err
	}
	html, err := f.Render()
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString(string(html))
	if flags.scripts {
		b.WriteString(string(f.Scripts()))
	}
	return b.String(), nil
}

func decodeFile(path string, target any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, target); err == nil {
		return nil
	}
	if err := yaml.Unmarshal(data, target); err != nil {
		return fmt.Errorf("parse %s: invalid JSON or YAML: %w", path, err)
	}
	return nil
}
