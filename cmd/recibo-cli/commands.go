package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/smallbiznis/recibo/internal/config"
	"github.com/smallbiznis/recibo/internal/document"
	"github.com/smallbiznis/recibo/internal/money"
	"github.com/smallbiznis/recibo/internal/providers/pdf"
	"github.com/smallbiznis/recibo/internal/receipt/domain"
	"github.com/smallbiznis/recibo/internal/receipt/totals"
	"github.com/smallbiznis/recibo/internal/render"
	settingsdomain "github.com/smallbiznis/recibo/internal/settings/domain"
	"github.com/smallbiznis/recibo/internal/words"
)

const (
	formatHTML  = "html"
	formatPrint = "print"
	formatPDF   = "pdf"
)

var errUsage = errors.New("invalid usage")

func wordsCommand() *cli.Command {
	return &cli.Command{
		Name:      "words",
		Usage:     "spell an amount in Spanish quetzales",
		ArgsUsage: "<amount>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("%w: words takes exactly one amount", errUsage)
			}
			text, err := amountInWords(c.Args().First())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(c.App.Writer, text)
			return err
		},
	}
}

func totalsCommand() *cli.Command {
	return &cli.Command{
		Name:      "totals",
		Usage:     "compute line totals, subtotal and total",
		ArgsUsage: "<qty>x<price>...",
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("%w: totals needs at least one <qty>x<price>", errUsage)
			}
			items, err := parseItems(c.Args().Slice())
			if err != nil {
				return err
			}
			return writeTotals(c.App.Writer, items)
		},
	}
}

func renderCommand() *cli.Command {
	return &cli.Command{
		Name:  "render",
		Usage: "render a receipt file as screen HTML, print HTML or PDF",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "in", Usage: "receipt JSON file", Required: true},
			&cli.StringFlag{Name: "format", Value: formatPrint, Usage: "html, print or pdf"},
			&cli.StringFlag{Name: "out", Usage: "output file, stdout when empty"},
			&cli.StringFlag{Name: "settings", Usage: "settings JSON file"},
		},
		Action: func(c *cli.Context) error {
			in, err := readReceiptFile(c.String("in"))
			if err != nil {
				return err
			}
			view := settingsdomain.DefaultView()
			if path := c.String("settings"); path != "" {
				if view, err = readSettingsFile(path); err != nil {
					return err
				}
			}
			out, err := renderReceipt(c.Context, in, view, c.String("format"))
			if err != nil {
				return err
			}
			if path := c.String("out"); path != "" {
				return os.WriteFile(path, out, 0o644)
			}
			_, err = c.App.Writer.Write(out)
			return err
		},
	}
}

func amountInWords(raw string) (string, error) {
	amount, err := money.Parse(raw)
	if err != nil {
		return "", err
	}
	cents, err := money.RoundToCents(amount)
	if err != nil {
		return "", err
	}
	return words.Convert(cents)
}

// parseItems reads arguments such as "3x100.00" or "1.5x20".
func parseItems(args []string) ([]domain.ItemInput, error) {
	items := make([]domain.ItemInput, 0, len(args))
	for i, arg := range args {
		qtyRaw, priceRaw, ok := strings.Cut(strings.ToLower(arg), "x")
		if !ok {
			return nil, fmt.Errorf("%w: %q is not <qty>x<price>", errUsage, arg)
		}
		qty, err := money.Parse(qtyRaw)
		if err != nil {
			return nil, fmt.Errorf("item %d quantity: %w", i+1, err)
		}
		price, err := money.Parse(priceRaw)
		if err != nil {
			return nil, fmt.Errorf("item %d unit price: %w", i+1, err)
		}
		items = append(items, domain.ItemInput{
			Description: fmt.Sprintf("Línea %d", i+1),
			Quantity:    qty,
			UnitPrice:   price,
		})
	}
	return items, nil
}

func writeTotals(w io.Writer, items []domain.ItemInput) error {
	sums, err := totals.Compute(items)
	if err != nil {
		return err
	}
	for i, item := range items {
		if _, err := fmt.Fprintf(w, "%s x %s = %s\n",
			document.FormatQuantity(item.Quantity), item.UnitPrice.StringFixed(2), sums.Lines[i].Format()); err != nil {
			return err
		}
	}
	text, _ := words.Render(sums.Total)
	_, err = fmt.Fprintf(w, "Subtotal: %s\nTOTAL: %s\n%s\n", sums.Subtotal.Format(), sums.Total.Format(), text)
	return err
}

// receiptFile is a receipt body as saved from the editor, plus the identity
// fields a stored receipt would carry.
type receiptFile struct {
	domain.Content
	ReceiptNumber string        `json:"receipt_number"`
	Status        domain.Status `json:"status"`
	Title         string        `json:"title"`
}

func readReceiptFile(path string) (receiptFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return receiptFile{}, err
	}
	var in receiptFile
	if err := json.Unmarshal(raw, &in); err != nil {
		return receiptFile{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return in, nil
}

func readSettingsFile(path string) (settingsdomain.View, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return settingsdomain.View{}, err
	}
	if err := settingsdomain.ValidateUpdatePayload(raw); err != nil {
		return settingsdomain.View{}, fmt.Errorf("%s: %w", path, err)
	}
	stored := settingsdomain.Settings{
		CompanyName: settingsdomain.DefaultCompanyName,
		CompanyInfo: settingsdomain.DefaultCompanyInfo,
	}
	if err := json.Unmarshal(raw, &stored); err != nil {
		return settingsdomain.View{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return stored.ToView(), nil
}

func renderReceipt(ctx context.Context, in receiptFile, view settingsdomain.View, format string) ([]byte, error) {
	content := in.Content.Normalize()
	if err := content.Validate(); err != nil {
		return nil, err
	}
	status := in.Status
	if status == "" {
		status = domain.StatusCompleted
	}
	if !status.Valid() {
		return nil, domain.ErrInvalidStatus
	}
	date := time.Now().UTC()
	if content.Date != nil && !content.Date.IsZero() {
		date = *content.Date
	}
	y, m, d := date.Date()

	layout := config.DefaultLayout()
	doc, err := document.Assemble(document.Input{
		Receipt:       content.Draft(in.ReceiptNumber, time.Date(y, m, d, 0, 0, 0, 0, time.UTC), status),
		Visibility:    view.FieldVisibility,
		Profile:       view.Profile,
		TitleOverride: in.Title,
		FooterText:    layout.Footer.Text,
	})
	if err != nil {
		return nil, err
	}

	html := render.NewHTMLRenderer()
	switch format {
	case formatHTML:
		out, err := html.RenderScreen(doc)
		return []byte(out), err
	case formatPrint:
		out, err := html.RenderPrint(doc, render.PageFromLayout(layout.Page))
		return []byte(out), err
	case formatPDF:
		return pdf.New().RenderReceipt(ctx, doc, layout)
	default:
		return nil, fmt.Errorf("%w: unknown format %q", errUsage, format)
	}
}
