package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/idilsaglam/todo/internal/app"
	"github.com/idilsaglam/todo/internal/model"
	"github.com/idilsaglam/todo/internal/persist"
)

type exportDoc struct {
	Todos []*model.Item `json:"todos" yaml:"todos"`
}

func newExportCmd(rt *runtime) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print the stored list as JSON or YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format = strings.ToLower(format)
			if format != "json" && format != "yaml" {
				return usagef("export: unknown format %q (want json or yaml)", format)
			}
			return rt.withApp(cmd.Context(), func(a *app.App) error {
				out, err := encodeExport(a.Store().State(), format)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(out)
				return err
			})
		},
	}
	cmd.Flags().StringVar(&format, "format", "json", "output format: json or yaml")
	return cmd
}

func encodeExport(st *model.State, format string) ([]byte, error) {
	if format == "yaml" {
		doc := exportDoc{Todos: st.Todos}
		if doc.Todos == nil {
			doc.Todos = []*model.Item{}
		}
		b, err := yaml.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("yaml marshal: %w", err)
		}
		return b, nil
	}

	// same document that is persisted, indented for people
	raw, err := persist.Encode(st)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return nil, fmt.Errorf("json indent: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
