package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iota-uz/restaurant-admin/modules/restaurant/services"
	"github.com/iota-uz/restaurant-admin/pkg/report"
)

func newDepartmentsCmd(root *rootOptions, build factory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "departments",
		Short: "List and export departments",
	}

	var query string
	list := &cobra.Command{
		Use:   "list",
		Short: "Print the departments matching --query",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bo, err := build(root)
			if err != nil {
				return err
			}
			items, err := bo.departments.List(sessionContext(cmd.Context(), root), query)
			if err != nil {
				return serviceError(err)
			}
			return printTable(cmd.OutOrStdout(), services.DepartmentReport(items, services.DepartmentColumns, bo.dateLayout))
		},
	}
	list.Flags().StringVar(&query, "query", "", "Case-insensitive search over every field")

	var exportQuery, format, output string
	export := &cobra.Command{
		Use:   "export",
		Short: "Export the departments matching --query as pdf, xlsx or csv",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bo, err := build(root)
			if err != nil {
				return err
			}
			file, err := bo.departments.Export(sessionContext(cmd.Context(), root), exportQuery, format)
			if err != nil {
				return serviceError(err)
			}
			path, err := writeExport(cmd.OutOrStdout(), file, output)
			if err != nil {
				return err
			}
			if path != "" {
				fmt.Fprintln(cmd.ErrOrStderr(), path)
			}
			return nil
		},
	}
	export.Flags().StringVar(&exportQuery, "query", "", "Case-insensitive search over every field")
	export.Flags().StringVar(&format, "format", report.FormatXLSX, "pdf, xlsx or csv")
	export.Flags().StringVarP(&output, "output", "o", "", "Output file or directory, - for stdout")

	cmd.AddCommand(list, export)
	return cmd
}
