package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/sfapi/internal/constants"
	"github.com/fivetwenty-io/sfapi/pkg/sfapi"
)

// NewExportsCommand creates the exports command group.
func NewExportsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "exports",
		Aliases: []string{"export"},
		Short:   "Bulk export invoices",
		Long: `Start a bulk export of invoices, poll its status and download the result.

Exports run asynchronously on the server: "exports create" returns an export ID,
"exports status" reports progress and "exports download" fetches the file.`,
	}

	cmd.AddCommand(newExportsCreateCommand())
	cmd.AddCommand(newExportsStatusCommand())
	cmd.AddCommand(newExportsDownloadCommand())

	return cmd
}

func newExportsCreateCommand() *cobra.Command {
	var (
		format   string
		language string
		merge    bool
	)

	cmd := &cobra.Command{
		Use:   "create INVOICE_ID [INVOICE_ID...]",
		Short: "Start an export",
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}

			if len(ids) == 0 {
				return constants.ErrNoInvoiceIDs
			}

			request := sfapi.ExportRequest{InvoiceIDs: ids, MergePDF: merge}

			request.Format, err = sfapi.ParseExportFormat(format)
			if err != nil {
				return err
			}

			if language != "" {
				request.Language, err = sfapi.ParseLanguage(language)
				if err != nil {
					return err
				}
			}

			client, cleanup, err := CreateClient(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			resp, err := client.Exports().Export(cmd.Context(), request)
			if err != nil {
				return fmt.Errorf("failed to start export: %w", err)
			}

			return renderKeyValues(cmd.OutOrStdout(), resp)
		},
	}

	cmd.Flags().StringVar(&format, "format", string(sfapi.ExportFormatPDF), "export format (pdf, xlsx)")
	cmd.Flags().StringVarP(&language, "language", "l", "", "document language")
	cmd.Flags().BoolVar(&merge, "merge", false, "merge all invoices into one PDF")

	return cmd
}

func newExportsStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status ID",
		Short: "Show the progress of an export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			client, cleanup, err := CreateClient(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			resp, err := client.Exports().GetStatus(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to get export status: %w", err)
			}

			return renderKeyValues(cmd.OutOrStdout(), resp)
		},
	}
}

func newExportsDownloadCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "download ID",
		Short: "Download a finished export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			client, cleanup, err := CreateClient(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			resp, err := client.Exports().Download(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to download export: %w", err)
			}

			written, err := writeBinary(cmd.OutOrStdout(), resp, file)
			if err != nil {
				return err
			}

			if file != "" {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Saved %d bytes to %s\n", written, file)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "write the export to this file")

	return cmd
}
