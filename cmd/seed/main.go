// Seeds the Postgres transactions table from the CSV dataset.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/schollz/progressbar/v3"

	"salesdash/internal/domain"
	"salesdash/internal/ingest"
)

const insertQuery = `
	INSERT INTO transactions (
		transaction_id, date, customer_id, customer_name, phone, gender, age,
		region, customer_type, product_id, product_name, brand, category, tags,
		quantity, unit_price, discount_percent, total_amount, final_amount,
		payment_method, status, delivery_type, store_id, store_location,
		salesperson_id, employee_name
	) VALUES (
		:transaction_id, :date, :customer_id, :customer_name, :phone, :gender, :age,
		:region, :customer_type, :product_id, :product_name, :brand, :category, :tags,
		:quantity, :unit_price, :discount_percent, :total_amount, :final_amount,
		:payment_method, :status, :delivery_type, :store_id, :store_location,
		:salesperson_id, :employee_name
	)`

func main() {
	_ = godotenv.Load()

	file := flag.String("file", "data/transactions.csv", "path to the CSV dataset")
	dsn := flag.String("dsn", os.Getenv("DATABASE_URL"), "Postgres connection string")
	truncate := flag.Bool("truncate", true, "clear the table before seeding")
	batchSize := flag.Int("batch", 500, "rows per insert batch")
	flag.Parse()

	if *dsn == "" {
		log.Fatal("DATABASE_URL or -dsn is required")
	}

	records, err := ingest.ReadFile(*file)
	if err != nil {
		log.Fatalf("read dataset: %v", err)
	}
	log.Printf("Loaded %d records from %s", len(records), *file)

	// Rows without a transaction id get a generated one so the dataset
	// stays addressable.
	for i := range records {
		if records[i].TransactionID == "" {
			records[i].TransactionID = uuid.NewString()
		}
	}

	db, err := sqlx.Connect("postgres", *dsn)
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	if *truncate {
		if _, err := db.ExecContext(ctx, "TRUNCATE TABLE transactions"); err != nil {
			log.Fatalf("truncate: %v", err)
		}
	}

	bar := progressbar.Default(int64(len(records)), "seeding")
	for start := 0; start < len(records); start += *batchSize {
		end := start + *batchSize
		if end > len(records) {
			end = len(records)
		}
		if err := insertBatch(ctx, db, records[start:end]); err != nil {
			log.Fatalf("insert batch at %d: %v", start, err)
		}
		bar.Add(end - start)
	}

	log.Printf("Seeded %d transactions", len(records))
}

func insertBatch(ctx context.Context, db *sqlx.DB, batch []domain.Transaction) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for i := range batch {
		if _, err := tx.NamedExecContext(ctx, insertQuery, &batch[i]); err != nil {
			return err
		}
	}
	return tx.Commit()
}
