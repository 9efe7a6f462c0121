// Package export flattens selected submissions into a downloadable
// spreadsheet, one row per bank account.
package export

import (
	"errors"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"fbar-server/models"
)

// ErrNothingSelected is returned when export is requested with no
// submissions; the caller shows it as a warning instead of producing an
// empty file.
var ErrNothingSelected = errors.New("export: no submissions selected")

// SheetName is the single worksheet holding the flattened rows.
const SheetName = "FBAR Submissions"

// Filename is the suggested download name.
const Filename = "fbar_submissions.xlsx"

var headers = []string{
	"Company Name",
	"Submission Date",
	"Status",
	"Account Type",
	"Institution Name",
	"Institution Address",
	"Account Number",
	"Currency",
	"Maximum Value",
	"USD Value",
	"Total Accounts",
}

// Workbook builds the spreadsheet for the given submissions. A submission
// with N accounts yields N rows, each repeating the submission-level fields
// and carrying a Total Accounts column. Columns are sized to their longest
// value or header.
func Workbook(subs []models.Submission) (*excelize.File, error) {
	if len(subs) == 0 {
		return nil, ErrNothingSelected
	}

	rows := [][]string{headers}
	for _, s := range subs {
		for _, a := range s.Accounts {
			rows = append(rows, []string{
				s.CompanyName,
				s.SubmittedAt.Format("2006-01-02 15:04:05"),
				s.Status,
				a.Type,
				a.InstitutionName,
				a.MailingAddress,
				a.AccountNumber,
				a.Currency,
				groupDigits(a.MaxValue),
				"$" + groupDigits(a.USDValue),
				strconv.Itoa(len(s.Accounts)),
			})
		}
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, err
	}
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(SheetName, cell, &rows[i]); err != nil {
			return nil, err
		}
	}

	for col := range headers {
		width := 0
		for _, row := range rows {
			if l := len(row[col]); l > width {
				width = l
			}
		}
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(SheetName, name, name, float64(width)); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// groupDigits renders n with comma thousands separators, keeping whatever
// fractional digits the value carries.
func groupDigits(n float64) string {
	s := strconv.FormatFloat(n, 'f', -1, 64)
	intPart, frac, hasFrac := strings.Cut(s, ".")

	var b strings.Builder
	for i, d := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	if hasFrac {
		return b.String() + "." + frac
	}
	return b.String()
}
