package csvimport

import (
	"io"
	"time"

	"github.com/shopspring/decimal"
)

// Column names of the invoice import file. One CSV row is one invoice
// line; rows sharing company NPWP and invoice date are grouped into a
// single invoice in file order.
const (
	ColCompanyNPWP    = "company_npwp"
	ColInvoiceDate    = "invoice_date"
	ColWorkerPassport = "worker_passport"
	ColJobName        = "job_name"
	ColQuantity       = "quantity"
	ColCustomPrice    = "custom_price"
	ColBaris          = "baris"
	ColNotes          = "notes"
)

// RequiredColumns are the columns an invoice import file must carry
var RequiredColumns = []string{
	ColCompanyNPWP,
	ColInvoiceDate,
	ColWorkerPassport,
	ColJobName,
	ColQuantity,
}

const invoiceDateLayout = "2006-01-02"

// InvoiceRow is one parsed data row of an invoice import file
type InvoiceRow struct {
	Row            int
	CompanyNPWP    string
	InvoiceDate    time.Time
	WorkerPassport string
	JobName        string
	Quantity       int
	CustomPrice    *decimal.Decimal
	Baris          int
	Notes          string
}

// ParseInvoiceRows reads the whole file and returns the rows that parsed
// cleanly together with the errors of those that did not. A non-nil
// error is returned only for file-level failures (empty file, missing
// columns, bad encoding).
func ParseInvoiceRows(r io.Reader, maxErrors int) ([]InvoiceRow, *ErrorCollection, error) {
	parser, err := NewParser(r)
	if err != nil {
		return nil, nil, err
	}
	if err := parser.RequireColumns(RequiredColumns...); err != nil {
		return nil, nil, err
	}

	errs := NewErrorCollection(maxErrors)
	var rows []InvoiceRow
	for {
		rec, err := parser.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			if rowErr, ok := err.(RowError); ok {
				errs.Add(rowErr)
				continue
			}
			return nil, nil, err
		}

		row, ok := parseInvoiceRow(rec, errs)
		if ok {
			rows = append(rows, row)
		}
	}

	if len(rows) == 0 && !errs.HasErrors() {
		return nil, nil, ErrNoDataRows
	}
	return rows, errs, nil
}

// parseInvoiceRow validates one record, recording field errors. It
// returns ok=false when any field failed.
func parseInvoiceRow(rec Record, errs *ErrorCollection) (InvoiceRow, bool) {
	row := InvoiceRow{Row: rec.Row, Notes: rec.Get(ColNotes)}
	ok := true

	row.CompanyNPWP = rec.Get(ColCompanyNPWP)
	if row.CompanyNPWP == "" {
		errs.AddRequired(rec.Row, ColCompanyNPWP)
		ok = false
	}

	row.WorkerPassport = rec.Get(ColWorkerPassport)
	if row.WorkerPassport == "" {
		errs.AddRequired(rec.Row, ColWorkerPassport)
		ok = false
	}

	row.JobName = rec.Get(ColJobName)
	if row.JobName == "" {
		errs.AddRequired(rec.Row, ColJobName)
		ok = false
	}

	if raw := rec.Get(ColInvoiceDate); raw == "" {
		errs.AddRequired(rec.Row, ColInvoiceDate)
		ok = false
	} else if t, err := time.Parse(invoiceDateLayout, raw); err != nil {
		errs.AddInvalid(rec.Row, ColInvoiceDate, raw, "date in YYYY-MM-DD format")
		ok = false
	} else {
		row.InvoiceDate = t
	}

	if raw := rec.Get(ColQuantity); raw == "" {
		errs.AddRequired(rec.Row, ColQuantity)
		ok = false
	} else if qty, err := decimal.NewFromString(raw); err != nil || !qty.IsInteger() || qty.IsNegative() || qty.IsZero() {
		errs.AddInvalid(rec.Row, ColQuantity, raw, "positive whole number")
		ok = false
	} else {
		row.Quantity = int(qty.IntPart())
	}

	if raw := rec.Get(ColCustomPrice); raw != "" {
		price, err := decimal.NewFromString(raw)
		if err != nil || price.IsNegative() {
			errs.AddInvalid(rec.Row, ColCustomPrice, raw, "non-negative amount")
			ok = false
		} else {
			row.CustomPrice = &price
		}
	}

	row.Baris = 1
	if raw := rec.Get(ColBaris); raw != "" {
		baris, err := decimal.NewFromString(raw)
		if err != nil || !baris.IsInteger() || baris.IsNegative() || baris.IsZero() {
			errs.AddInvalid(rec.Row, ColBaris, raw, "positive whole number")
			ok = false
		} else {
			row.Baris = int(baris.IntPart())
		}
	}

	return row, ok
}
