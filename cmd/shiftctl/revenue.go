package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mamadbah2/shiftreport/pkg/revenue"
)

func newRevenueCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "revenue",
		Short: "Revenue expression tools",
	}

	var strict bool
	eval := &cobra.Command{
		Use:   "eval <expression>",
		Short: "Evaluate a revenue expression the way submissions are evaluated",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			expr := strings.Join(args, " ")
			if strict {
				if _, err := revenue.Parse(revenue.Sanitize(expr)); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%.2f\n", revenue.Evaluate(expr))
			return nil
		},
	}
	eval.Flags().BoolVar(&strict, "strict", false, "fail on malformed expressions instead of printing 0.00")

	cmd.AddCommand(eval)
	return cmd
}
