package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iota-uz/restaurant-admin/modules/restaurant/services"
	"github.com/iota-uz/restaurant-admin/pkg/report"
)

func newOrdersCmd(root *rootOptions, build factory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "List, export and act on orders",
	}
	cmd.AddCommand(
		newOrdersListCmd(root, build),
		newOrdersExportCmd(root, build),
		newOrderActionCmd(root, build, "confirm", "Confirm", func(s *services.OrderService) func(context.Context, string) error {
			return s.Confirm
		}),
		newOrderActionCmd(root, build, "cancel", "Cancel", func(s *services.OrderService) func(context.Context, string) error {
			return s.Cancel
		}),
		newOrderActionCmd(root, build, "delete", "Delete", func(s *services.OrderService) func(context.Context, string) error {
			return s.Delete
		}),
	)
	return cmd
}

func newOrdersListCmd(root *rootOptions, build factory) *cobra.Command {
	var query string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the orders matching --query",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bo, err := build(root)
			if err != nil {
				return err
			}
			list, err := bo.orders.List(sessionContext(cmd.Context(), root), query)
			if err != nil {
				return serviceError(err)
			}
			return printTable(cmd.OutOrStdout(), services.OrderReport(list, services.OrderColumns, bo.dateLayout))
		},
	}
	cmd.Flags().StringVar(&query, "query", "", "Case-insensitive search over every field")
	return cmd
}

func newOrdersExportCmd(root *rootOptions, build factory) *cobra.Command {
	var query, format, output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the orders matching --query as pdf, xlsx or csv",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bo, err := build(root)
			if err != nil {
				return err
			}
			file, err := bo.orders.Export(sessionContext(cmd.Context(), root), query, format)
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
	cmd.Flags().StringVar(&query, "query", "", "Case-insensitive search over every field")
	cmd.Flags().StringVar(&format, "format", report.FormatPDF, "pdf, xlsx or csv")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file or directory, - for stdout")
	return cmd
}

func newOrderActionCmd(
	root *rootOptions,
	build factory,
	name, verb string,
	pick func(*services.OrderService) func(context.Context, string) error,
) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   name + " <id>",
		Short: verb + " one order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if !yes {
				ok, err := confirm(cmd.InOrStdin(), cmd.OutOrStdout(), fmt.Sprintf("%s order %s?", verb, id))
				if err != nil {
					return withCode(exitUsage, err)
				}
				if !ok {
					return withCode(exitAborted, errAborted)
				}
			}
			bo, err := build(root)
			if err != nil {
				return err
			}
			if err := pick(bo.orders)(sessionContext(cmd.Context(), root), id); err != nil {
				return serviceError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "order %s: %s done\n", id, name)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
