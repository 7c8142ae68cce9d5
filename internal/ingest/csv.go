// Package ingest decodes the retail transaction CSV dataset. It is shared
// by the snapshot loader and the database seed tool.
package ingest

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"salesdash/internal/domain"
	"salesdash/pkg/errors"

	"github.com/shopspring/decimal"
)

// AgeUnknown marks a record whose age column could not be parsed. It fails
// any bounded age filter.
const AgeUnknown = -1

const dateLayout = "2006-01-02"

// ReadFile decodes the dataset at path.
func ReadFile(path string) ([]domain.Transaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open dataset")
	}
	defer f.Close()
	return Read(f)
}

// Read decodes transactions from CSV data. The first row must be the
// header; unknown columns are ignored so the dataset can grow without
// breaking ingestion. Numeric columns degrade to zero values rather than
// failing the whole load, matching how the records are later queried.
func Read(r io.Reader) ([]domain.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.ErrInvalidDataset
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to read dataset header")
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}

	var out []domain.Transaction
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to read dataset row")
		}

		field := func(name string) string {
			i, ok := col[name]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		out = append(out, domain.Transaction{
			TransactionID:   field("Transaction ID"),
			Date:            parseDate(field("Date")),
			CustomerID:      field("Customer ID"),
			CustomerName:    field("Customer Name"),
			Phone:           field("Phone Number"),
			Gender:          domain.Gender(field("Gender")),
			Age:             parseAge(field("Age")),
			Region:          field("Customer Region"),
			CustomerType:    field("Customer Type"),
			ProductID:       field("Product ID"),
			ProductName:     field("Product Name"),
			Brand:           field("Brand"),
			Category:        field("Product Category"),
			Tags:            field("Tags"),
			Quantity:        parseInt(field("Quantity")),
			UnitPrice:       parseDecimal(field("Price per Unit")),
			DiscountPercent: parseDecimal(field("Discount Percentage")),
			TotalAmount:     parseDecimal(field("Total Amount")),
			FinalAmount:     parseDecimal(field("Final Amount")),
			PaymentMethod:   field("Payment Method"),
			Status:          domain.TransactionStatus(field("Order Status")),
			DeliveryType:    field("Delivery Type"),
			StoreID:         field("Store ID"),
			StoreLocation:   field("Store Location"),
			SalespersonID:   field("Salesperson ID"),
			EmployeeName:    field("Employee Name"),
		})
	}

	return out, nil
}

func parseDate(v string) time.Time {
	t, err := time.ParseInLocation(dateLayout, v, time.UTC)
	if err != nil {
		return time.Time{}
	}
	return t
}

func parseAge(v string) int {
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return AgeUnknown
	}
	return n
}

func parseInt(v string) int {
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}

func parseDecimal(v string) decimal.Decimal {
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero
	}
	return d
}
