package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// modify <contract>: apply one or more natural-language modifications in order.
func modifyCmd() *cobra.Command {
	var (
		requests []string
		output   string
	)
	cmd := &cobra.Command{
		Use:   "modify <contract.pdf|contract.txt>",
		Short: "Apply natural-language modifications to a contract",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(requests) == 0 {
				return fmt.Errorf("at least one --request is required")
			}
			ctx := cmd.Context()
			text, err := readContract(ctx, args[0])
			if err != nil {
				return err
			}
			svc, err := draftingService(ctx, true)
			if err != nil {
				return err
			}
			out, err := svc.BatchModify(ctx, text, requests)
			if err != nil {
				return err
			}
			return writeOutput(cmd, output, []byte(out))
		},
	}
	cmd.Flags().StringArrayVarP(&requests, "request", "r", nil, "modification request (repeatable, applied in order)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output path (default stdout)")
	return cmd
}

// sections <contract>: print a numbered outline of the contract.
func sectionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sections <contract.pdf|contract.txt>",
		Short: "Summarize the sections of a contract",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			text, err := readContract(ctx, args[0])
			if err != nil {
				return err
			}
			svc, err := draftingService(ctx, true)
			if err != nil {
				return err
			}
			summary, err := svc.Sections(ctx, text)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), summary)
			return nil
		},
	}
}

// style <contract>: render the contract text as a styled HTML document.
func styleCmd() *cobra.Command {
	var (
		instructions string
		output       string
	)
	cmd := &cobra.Command{
		Use:   "style <contract.pdf|contract.txt>",
		Short: "Render a contract as a styled HTML document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			text, err := readContract(ctx, args[0])
			if err != nil {
				return err
			}
			svc, err := draftingService(ctx, true)
			if err != nil {
				return err
			}
			html, err := svc.Style(ctx, text, instructions)
			if err != nil {
				return err
			}
			return writeOutput(cmd, output, []byte(html))
		},
	}
	cmd.Flags().StringVar(&instructions, "instructions", "", "styling instructions (default: generic professional styling)")
	cmd.Flags().StringVarP(&output, "output", "o", "styled_contract.html", "output path (- for stdout)")
	return cmd
}
