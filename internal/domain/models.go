// Package domain defines the retail transaction record and the query types
// the engine operates on.
package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Gender of the purchasing customer.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// TransactionStatus is the order status of a transaction. The set is open:
// records may carry values outside the tracked constants, they are simply
// not broken out in the per-status stats.
type TransactionStatus string

const (
	StatusCompleted TransactionStatus = "Completed"
	StatusPending   TransactionStatus = "Pending"
	StatusCancelled TransactionStatus = "Cancelled"
	StatusReturned  TransactionStatus = "Returned"
)

// TrackedStatuses are the statuses broken out in the per-status stats, in
// the order they are reported.
var TrackedStatuses = []TransactionStatus{
	StatusCompleted,
	StatusPending,
	StatusCancelled,
	StatusReturned,
}

// Tracked reports whether s is one of the tracked statuses.
func (s TransactionStatus) Tracked() bool {
	for _, t := range TrackedStatuses {
		if s == t {
			return true
		}
	}
	return false
}

// Transaction is one retail sale record. Records are ingested once and
// never mutated by the query engine.
type Transaction struct {
	TransactionID   string            `db:"transaction_id" json:"transactionId"`
	Date            time.Time         `db:"date" json:"date"`
	CustomerID      string            `db:"customer_id" json:"customerId"`
	CustomerName    string            `db:"customer_name" json:"customerName"`
	Phone           string            `db:"phone" json:"phone"`
	Gender          Gender            `db:"gender" json:"gender"`
	Age             int               `db:"age" json:"age"`
	Region          string            `db:"region" json:"region"`
	CustomerType    string            `db:"customer_type" json:"customerType"`
	ProductID       string            `db:"product_id" json:"productId"`
	ProductName     string            `db:"product_name" json:"productName"`
	Brand           string            `db:"brand" json:"brand"`
	Category        string            `db:"category" json:"category"`
	Tags            string            `db:"tags" json:"tags"`
	Quantity        int               `db:"quantity" json:"quantity"`
	UnitPrice       decimal.Decimal   `db:"unit_price" json:"unitPrice"`
	DiscountPercent decimal.Decimal   `db:"discount_percent" json:"discountPercent"`
	TotalAmount     decimal.Decimal   `db:"total_amount" json:"totalAmount"`
	FinalAmount     decimal.Decimal   `db:"final_amount" json:"finalAmount"`
	PaymentMethod   string            `db:"payment_method" json:"paymentMethod"`
	Status          TransactionStatus `db:"status" json:"status"`
	DeliveryType    string            `db:"delivery_type" json:"deliveryType"`
	StoreID         string            `db:"store_id" json:"storeId"`
	StoreLocation   string            `db:"store_location" json:"storeLocation"`
	SalespersonID   string            `db:"salesperson_id" json:"salespersonId"`
	EmployeeName    string            `db:"employee_name" json:"employeeName"`
}

// TagList splits the comma-joined Tags field into trimmed entries,
// dropping empties.
func (t *Transaction) TagList() []string {
	if t.Tags == "" {
		return nil
	}
	parts := strings.Split(t.Tags, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}
