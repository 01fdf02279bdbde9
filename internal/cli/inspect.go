package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formbuilder/pkg/definition"
	"github.com/goliatone/go-formbuilder/pkg/form"
)

func newInspectCommand(s *settings) *cobra.Command {
	var (
		operation string
		openapi   bool
	)
	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "List the fields of a definition, or the operations of an OpenAPI document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if openapi && operation == "" {
				data, err := os.ReadFile(args[0])
				if err != nil {
					return fmt.Errorf("read %s: %w", args[0], err)
				}
				ids, err := definition.OpenAPIOperations(commandContext(cmd), data)
				if err != nil {
					return err
				}
				for _, id := range ids {
					cmd.Println(id)
				}
				return nil
			}

			def, err := loadDefinition(commandContext(cmd), args[0], operation)
			if err != nil {
				return err
			}
			f, err := def.Build()
			if err != nil {
				return err
			}
			return writeFieldTable(cmd, def, f)
		},
	}
	cmd.Flags().StringVar(&operation, "operation", "", "OpenAPI operation id")
	cmd.Flags().BoolVar(&openapi, "openapi", false, "list the operations of an OpenAPI document")
	return cmd
}

func writeFieldTable(cmd *cobra.Command, def definition.Definition, f *form.Form) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "form\t%s\t%s %s\n", def.Handle, strings.ToUpper(f.Method()), def.Action)
	fmt.Fprintln(w, "NAME\tTYPE\tREQUIRED\tLABEL")
	for _, field := range f.Fields() {
		required := "no"
		if f.IsRequired(field.Name) {
			required = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", field.Name, field.Type, required, f.LabelFor(field.Name))
	}
	return w.Flush()
}
