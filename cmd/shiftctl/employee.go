package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/mamadbah2/shiftreport/internal/domain/models"
	"github.com/mamadbah2/shiftreport/internal/service/auth"
)

func newEmployeeCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "employee",
		Short: "Manage employee accounts",
	}
	cmd.AddCommand(newEmployeeAddCmd(opts), newEmployeeListCmd(opts))
	return cmd
}

func newEmployeeAddCmd(opts *rootOptions) *cobra.Command {
	var username, name, role, password string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create an employee, or replace the one with the same username",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			username = strings.TrimSpace(username)
			if username == "" || password == "" {
				return fmt.Errorf("--username and --password are required")
			}
			r := models.Role(strings.ToLower(role))
			if r != models.RoleEmployee && r != models.RoleManager {
				return fmt.Errorf("--role must be %q or %q", models.RoleEmployee, models.RoleManager)
			}
			if name == "" {
				name = username
			}

			hash, err := auth.HashPassword(password)
			if err != nil {
				return err
			}

			rt, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}
			defer rt.close(cmd.Context())

			employee := models.Employee{
				ID:           uuid.NewString(),
				Username:     username,
				Name:         name,
				Role:         r,
				PasswordHash: hash,
			}
			if err := rt.store.SaveEmployee(cmd.Context(), employee); err != nil {
				return fmt.Errorf("save employee: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "saved %s (%s)\n", username, r)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "login name")
	cmd.Flags().StringVar(&name, "name", "", "display name (defaults to the username)")
	cmd.Flags().StringVar(&role, "role", string(models.RoleEmployee), "employee or manager")
	cmd.Flags().StringVar(&password, "password", "", "initial password")
	return cmd
}

func newEmployeeListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List employee accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}
			defer rt.close(cmd.Context())

			employees, err := rt.store.ListEmployees(cmd.Context())
			if err != nil {
				return fmt.Errorf("list employees: %w", err)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tUSERNAME\tNAME\tROLE")
			for _, e := range employees {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.ID, e.Username, e.Name, e.Role)
			}
			return w.Flush()
		},
	}
}
