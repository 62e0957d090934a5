package commands

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	appdraft "github.com/bryanwahyu/contractlens/internal/application/drafting"
)

// template extract|placeholders|generate
func templateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Extract reusable templates from contracts and fill them",
	}
	cmd.AddCommand(templateExtractCmd(), templatePlaceholdersCmd(), templateGenerateCmd())
	return cmd
}

func templateExtractCmd() *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "extract <contract.pdf|contract.txt>",
		Short: "Turn a contract into a template with named placeholders",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			text, err := readContract(ctx, args[0])
			if err != nil {
				return err
			}
			if name == "" {
				name = appdraft.NameFromFile(args[0])
			}
			svc, err := draftingService(ctx, true)
			if err != nil {
				return err
			}
			tpl, err := svc.ExtractTemplate(ctx, name, text)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "template %q saved with %d placeholders\n", tpl.Name, len(tpl.Placeholders))
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "template name (default: file name)")
	return cmd
}

func templatePlaceholdersCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "placeholders <name>",
		Short: "List the placeholders of a stored template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := draftingService(cmd.Context(), false)
			if err != nil {
				return err
			}
			ph, err := svc.Placeholders(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(ph)
			}

			names := make([]string, 0, len(ph))
			for n := range ph {
				names = append(names, n)
			}
			sort.Strings(names)
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "PLACEHOLDER\tDESCRIPTION\tORIGINAL VALUE")
			for _, n := range names {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", n, ph[n].Description, ph[n].OriginalValue)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}

func templateGenerateCmd() *cobra.Command {
	var (
		sets   []string
		useLLM bool
		output string
	)
	cmd := &cobra.Command{
		Use:   "generate <name>",
		Short: "Generate a contract from a stored template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseSets(sets)
			if err != nil {
				return err
			}
			svc, err := draftingService(cmd.Context(), useLLM)
			if err != nil {
				return err
			}
			out, err := svc.Generate(cmd.Context(), args[0], values, useLLM)
			if err != nil {
				return err
			}
			return writeOutput(cmd, output, []byte(out))
		},
	}
	cmd.Flags().StringArrayVar(&sets, "set", nil, "placeholder value as Name=Value (repeatable)")
	cmd.Flags().BoolVar(&useLLM, "llm", false, "let the model substitute the values")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output path (default stdout)")
	return cmd
}

func parseSets(sets []string) (map[string]string, error) {
	values := make(map[string]string, len(sets))
	for _, s := range sets {
		k, v, ok := strings.Cut(s, "=")
		if !ok || strings.TrimSpace(k) == "" {
			return nil, fmt.Errorf("--set %q: expected Name=Value", s)
		}
		values[strings.TrimSpace(k)] = v
	}
	return values, nil
}
