package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/sfapi/pkg/sfapi"
)

const invoiceEntity = "Invoice"

var invoiceColumns = []column{
	{header: "ID", field: "id"},
	{header: "Number", field: "invoice_no_formatted"},
	{header: "Client", field: "name"},
	{header: "Type", field: "type"},
	{header: "Total", field: "amount"},
	{header: "Currency", field: "invoice_currency"},
	{header: "Status", field: "status"},
	{header: "Created", field: "created"},
}

// NewInvoicesCommand creates the invoices command group.
func NewInvoicesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "invoices",
		Aliases: []string{"invoice", "inv"},
		Short:   "Manage invoices",
		Long:    "List, inspect, send and download invoices",
	}

	cmd.AddCommand(newInvoicesListCommand())
	cmd.AddCommand(newInvoicesGetCommand())
	cmd.AddCommand(newInvoicesPDFCommand())
	cmd.AddCommand(newInvoicesDeleteCommand())
	cmd.AddCommand(newInvoicesLanguageCommand())
	cmd.AddCommand(newInvoicesMarkSentCommand())
	cmd.AddCommand(newInvoicesSendCommand())
	cmd.AddCommand(newInvoicesPayCommand())

	return cmd
}

type invoiceListOptions struct {
	list       listFlags
	created    *periodFlags
	paid       *periodFlags
	search     string
	invoiceNo  string
	typ        string
	statuses   []int
	clientID   int
	tag        int
	amountFrom string
	amountTo   string
}

func newInvoicesListCommand() *cobra.Command {
	opts := &invoiceListOptions{
		created: newPeriodFlags("created"),
		paid:    newPeriodFlags("paid"),
	}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List invoices",
		Long:    "List invoices matching the given filters, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInvoicesListCommand(cmd, opts)
		},
	}

	opts.list.register(cmd)
	opts.created.register(cmd)
	opts.paid.register(cmd)
	cmd.Flags().StringVar(&opts.search, "search", "", "full text search")
	cmd.Flags().StringVar(&opts.invoiceNo, "number", "", "formatted invoice number")
	cmd.Flags().StringVar(&opts.typ, "type", "", "invoice type (regular, proforma, cancel, estimate, order, delivery)")
	cmd.Flags().IntSliceVar(&opts.statuses, "status", nil, "invoice status (1 new, 2 partially paid, 3 paid, 99 overdue)")
	cmd.Flags().IntVar(&opts.clientID, "client-id", 0, "only invoices of this client")
	cmd.Flags().IntVar(&opts.tag, "tag", 0, "only invoices with this tag")
	cmd.Flags().StringVar(&opts.amountFrom, "amount-from", "", "minimum total")
	cmd.Flags().StringVar(&opts.amountTo, "amount-to", "", "maximum total")

	return cmd
}

func runInvoicesListCommand(cmd *cobra.Command, opts *invoiceListOptions) error {
	query, err := opts.build(cmd)
	if err != nil {
		return err
	}

	client, cleanup, err := CreateClient(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	resp, err := client.Invoices().GetAll(cmd.Context(), query)
	if err != nil {
		return fmt.Errorf("failed to list invoices: %w", err)
	}

	return renderList(cmd.OutOrStdout(), resp, invoiceEntity, invoiceColumns)
}

func (o *invoiceListOptions) build(cmd *cobra.Command) (*sfapi.InvoiceQuery, error) {
	pagination, sort, err := o.list.build()
	if err != nil {
		return nil, err
	}

	query := &sfapi.InvoiceQuery{
		Pagination:         pagination,
		Sort:               sort,
		Search:             o.search,
		InvoiceNoFormatted: o.invoiceNo,
		ClientID:           optionalID(cmd, "client-id", o.clientID),
		Tag:                optionalID(cmd, "tag", o.tag),
	}

	if o.typ != "" {
		query.Type, err = sfapi.ParseInvoiceType(o.typ)
		if err != nil {
			return nil, err
		}
	}

	for _, status := range o.statuses {
		invoiceStatus := sfapi.InvoiceStatus(status)
		if !invoiceStatus.IsValid() {
			return nil, fmt.Errorf("%w: unknown invoice status %d", sfapi.ErrInvalidArgument, status)
		}

		query.Statuses = append(query.Statuses, invoiceStatus)
	}

	query.Created, err = o.created.build()
	if err != nil {
		return nil, err
	}

	query.PayDate, err = o.paid.build()
	if err != nil {
		return nil, err
	}

	query.AmountFrom, err = parseDecimal(o.amountFrom)
	if err != nil {
		return nil, fmt.Errorf("--amount-from: %w", err)
	}

	query.AmountTo, err = parseDecimal(o.amountTo)
	if err != nil {
		return nil, fmt.Errorf("--amount-to: %w", err)
	}

	return query, nil
}

func newInvoicesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get ID [ID...]",
		Short: "Get invoice details",
		Long:  "Display an invoice with its items and client, or several invoices at once",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}

			client, cleanup, err := CreateClient(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			if len(ids) > 1 {
				resp, err := client.Invoices().GetByIDs(cmd.Context(), ids)
				if err != nil {
					return fmt.Errorf("failed to get invoices: %w", err)
				}

				return renderKeyValues(cmd.OutOrStdout(), resp)
			}

			resp, err := client.Invoices().GetByID(cmd.Context(), ids[0])
			if err != nil {
				return fmt.Errorf("failed to get invoice: %w", err)
			}

			return renderEntity(cmd.OutOrStdout(), resp, invoiceEntity)
		},
	}
}

func newInvoicesPDFCommand() *cobra.Command {
	var (
		language string
		file     string
	)

	cmd := &cobra.Command{
		Use:   "pdf ID",
		Short: "Download an invoice PDF",
		Long:  "Download the PDF of an invoice to a file or to a redirected stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			lang, err := sfapi.ParseLanguage(language)
			if err != nil {
				return err
			}

			client, cleanup, err := CreateClient(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			resp, err := client.Invoices().DownloadPDF(cmd.Context(), id, lang)
			if err != nil {
				return fmt.Errorf("failed to download invoice: %w", err)
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

	cmd.Flags().StringVarP(&language, "language", "l", string(sfapi.LanguageSlovak), "document language")
	cmd.Flags().StringVarP(&file, "file", "f", "", "write the PDF to this file")

	return cmd
}

func newInvoicesDeleteCommand() *cobra.Command {
	var items []int

	cmd := &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm"},
		Short:   "Delete an invoice or some of its items",
		Args:    cobra.ExactArgs(1),
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

			if len(items) > 0 {
				resp, err := client.Invoices().DeleteItems(cmd.Context(), id, items)
				if err != nil {
					return fmt.Errorf("failed to delete invoice items: %w", err)
				}

				return renderMessage(cmd.OutOrStdout(), resp, fmt.Sprintf("Deleted %d item(s) of invoice %d", len(items), id))
			}

			resp, err := client.Invoices().Delete(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to delete invoice: %w", err)
			}

			return renderMessage(cmd.OutOrStdout(), resp, "Deleted invoice "+strconv.Itoa(id))
		},
	}

	cmd.Flags().IntSliceVar(&items, "items", nil, "delete only these invoice items")

	return cmd
}

func newInvoicesLanguageCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "language ID LANGUAGE",
		Short: "Change the language of an invoice",
		Args:  cobra.ExactArgs(2), //nolint:mnd // id and language
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			language, err := sfapi.ParseLanguage(args[1])
			if err != nil {
				return err
			}

			client, cleanup, err := CreateClient(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			resp, err := client.Invoices().ChangeLanguage(cmd.Context(), id, language)
			if err != nil {
				return fmt.Errorf("failed to change invoice language: %w", err)
			}

			return renderMessage(cmd.OutOrStdout(), resp, fmt.Sprintf("Invoice %d is now in %s", id, language))
		},
	}
}

func newInvoicesMarkSentCommand() *cobra.Command {
	var email invoiceEmailFlags

	cmd := &cobra.Command{
		Use:   "mark-sent ID",
		Short: "Mark an invoice as sent",
		Long:  "Mark an invoice as sent, optionally recording the e-mail it was sent with",
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

			var resp *sfapi.Response
			if email.to == "" {
				resp, err = client.Invoices().MarkAsSent(cmd.Context(), id)
			} else {
				resp, err = client.Invoices().MarkAsSentViaEmail(cmd.Context(), id, email.build())
			}

			if err != nil {
				return fmt.Errorf("failed to mark invoice as sent: %w", err)
			}

			return renderMessage(cmd.OutOrStdout(), resp, fmt.Sprintf("Invoice %d marked as sent", id))
		},
	}

	email.register(cmd)

	return cmd
}

func newInvoicesSendCommand() *cobra.Command {
	var (
		email    invoiceEmailFlags
		language string
	)

	cmd := &cobra.Command{
		Use:   "send ID",
		Short: "Send an invoice by e-mail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			message := email.build()
			if language != "" {
				message.PDFLanguage, err = sfapi.ParseLanguage(language)
				if err != nil {
					return err
				}
			}

			client, cleanup, err := CreateClient(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			resp, err := client.Invoices().SendViaEmail(cmd.Context(), id, message)
			if err != nil {
				return fmt.Errorf("failed to send invoice: %w", err)
			}

			return renderMessage(cmd.OutOrStdout(), resp, fmt.Sprintf("Invoice %d sent to %s", id, message.To))
		},
	}

	email.register(cmd)
	cmd.Flags().StringVarP(&language, "language", "l", "", "language of the attached PDF")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

type invoiceEmailFlags struct {
	to      string
	cc      []string
	bcc     []string
	subject string
	body    string
}

func (f *invoiceEmailFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.to, "to", "", "recipient e-mail address")
	cmd.Flags().StringSliceVar(&f.cc, "cc", nil, "carbon copy recipients")
	cmd.Flags().StringSliceVar(&f.bcc, "bcc", nil, "blind carbon copy recipients")
	cmd.Flags().StringVar(&f.subject, "subject", "", "e-mail subject")
	cmd.Flags().StringVar(&f.body, "body", "", "e-mail body")
}

func (f *invoiceEmailFlags) build() sfapi.InvoiceEmail {
	return sfapi.InvoiceEmail{
		To:      f.to,
		CC:      f.cc,
		BCC:     f.bcc,
		Subject: f.subject,
		Body:    f.body,
	}
}

func newInvoicesPayCommand() *cobra.Command {
	var (
		amount      string
		paymentType string
		currency    string
		date        string
		wontPay     bool
	)

	cmd := &cobra.Command{
		Use:   "pay ID",
		Short: "Record a payment of an invoice",
		Long:  "Record a payment of an invoice. Without --amount the full remaining amount is paid.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			var payment sfapi.InvoicePayment

			payment.Amount, err = parseDecimal(amount)
			if err != nil {
				return fmt.Errorf("--amount: %w", err)
			}

			payment.PaidOn, err = parseDate(date)
			if err != nil {
				return fmt.Errorf("--date: %w", err)
			}

			if paymentType != "" {
				payment.PaymentType, err = sfapi.ParsePaymentType(paymentType)
				if err != nil {
					return err
				}
			}

			if currency != "" {
				payment.Currency, err = sfapi.ParseCurrency(currency)
				if err != nil {
					return err
				}
			}

			client, cleanup, err := CreateClient(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			if wontPay {
				resp, err := client.InvoicePayments().MarkAsWillNotBePaid(cmd.Context(), id)
				if err != nil {
					return fmt.Errorf("failed to mark invoice as unpaid: %w", err)
				}

				return renderMessage(cmd.OutOrStdout(), resp, fmt.Sprintf("Invoice %d will not be paid", id))
			}

			resp, err := client.InvoicePayments().Pay(cmd.Context(), id, payment)
			if err != nil {
				return fmt.Errorf("failed to pay invoice: %w", err)
			}

			return renderMessage(cmd.OutOrStdout(), resp, fmt.Sprintf("Payment recorded for invoice %d", id))
		},
	}

	cmd.Flags().StringVar(&amount, "amount", "", "paid amount")
	cmd.Flags().StringVar(&paymentType, "type", "", "payment type (transfer, cash, card, ...)")
	cmd.Flags().StringVar(&currency, "currency", "", "payment currency")
	cmd.Flags().StringVar(&date, "date", "", "payment date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&wontPay, "will-not-be-paid", false, "mark the invoice as never to be paid")

	return cmd
}
