package datastore

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/trueshade/api/models"
)

// insertBatchSize is the number of products written per INSERT statement
const insertBatchSize = 100

type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByBrand(brand string) ([]models.Product, error)
	GetByID(productID string) (models.Product, error)
	Count() (int, error)
	BulkInsert(products []models.Product) (int, error)
	DeleteAll() (int64, error)
}

type ProductDatabase struct {
	database *sql.DB
}

func NewProductDatabase(db *sql.DB) (ProductDatabase, error) {
	var productDB ProductDatabase
	productDB.database = db
	return productDB, nil
}

const productColumns = `product_id, brand, product_line, shade_name, hex_color, lab_l, lab_a, lab_b, undertone, created_at`

// GetAll returns every product, grouped by brand in insertion order
func (pdb ProductDatabase) GetAll() ([]models.Product, error) {
	sqlStatement := `
		SELECT ` + productColumns + `
		FROM makeup_products
		ORDER BY seq`

	rows, err := pdb.database.Query(sqlStatement)
	if err != nil {
		return []models.Product{}, err
	}
	defer rows.Close()

	return scanProducts(rows)
}

// GetByBrand returns a brand's products in insertion order. The brand match
// ignores case.
func (pdb ProductDatabase) GetByBrand(brand string) ([]models.Product, error) {
	sqlStatement := `
		SELECT ` + productColumns + `
		FROM makeup_products
		WHERE LOWER(REPLACE(brand, ' ', '')) = LOWER(REPLACE($1, ' ', ''))
		ORDER BY seq`

	rows, err := pdb.database.Query(sqlStatement, brand)
	if err != nil {
		return []models.Product{}, err
	}
	defer rows.Close()

	return scanProducts(rows)
}

func (pdb ProductDatabase) GetByID(productID string) (models.Product, error) {
	sqlStatement := `
		SELECT ` + productColumns + `
		FROM makeup_products
		WHERE product_id = $1`

	var p models.Product
	err := pdb.database.QueryRow(sqlStatement, productID).Scan(
		&p.ProductID,
		&p.Brand,
		&p.ProductLine,
		&p.ShadeName,
		&p.HexColor,
		&p.LabL,
		&p.LabA,
		&p.LabB,
		&p.Undertone,
		&p.CreatedAt,
	)

	switch err {
	case sql.ErrNoRows:
		return models.Product{}, NoRowsError{true, err}
	case nil:
		return p, nil
	default:
		return models.Product{}, err
	}
}

func (pdb ProductDatabase) Count() (int, error) {
	var count int
	err := pdb.database.QueryRow(`SELECT COUNT(*) FROM makeup_products`).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// BulkInsert writes products in batches inside one transaction and returns
// the number inserted. Products without an ID get a new UUID.
func (pdb ProductDatabase) BulkInsert(products []models.Product) (int, error) {
	tx, err := pdb.database.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	inserted := 0
	for start := 0; start < len(products); start += insertBatchSize {
		end := start + insertBatchSize
		if end > len(products) {
			end = len(products)
		}

		statement, args := productInsert(products[start:end])
		if _, err := tx.Exec(statement, args...); err != nil {
			return 0, fmt.Errorf("failed to insert products %d-%d: %v", start, end-1, err)
		}
		inserted += end - start
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit products: %v", err)
	}
	return inserted, nil
}

// productInsert builds a multi-row INSERT for one batch
func productInsert(batch []models.Product) (string, []interface{}) {
	const perRow = 9

	var sb strings.Builder
	sb.WriteString(`INSERT INTO makeup_products (product_id, brand, product_line, shade_name, hex_color, lab_l, lab_a, lab_b, undertone) VALUES `)

	args := make([]interface{}, 0, len(batch)*perRow)
	for i, p := range batch {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("(")
		for j := 1; j <= perRow; j++ {
			if j > 1 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "$%d", i*perRow+j)
		}
		sb.WriteString(")")

		id := p.ProductID
		if id == "" {
			id = uuid.New().String()
		}
		args = append(args, id, p.Brand, p.ProductLine, p.ShadeName, p.HexColor, p.LabL, p.LabA, p.LabB, p.Undertone)
	}

	return sb.String(), args
}

// DeleteAll removes every product and returns how many were deleted
func (pdb ProductDatabase) DeleteAll() (int64, error) {
	result, err := pdb.database.Exec(`DELETE FROM makeup_products`)
	if err != nil {
		return 0, fmt.Errorf("delete failed: %v", err)
	}
	return result.RowsAffected()
}

func scanProducts(rows *sql.Rows) ([]models.Product, error) {
	var products []models.Product
	for rows.Next() {
		var p models.Product
		err := rows.Scan(
			&p.ProductID,
			&p.Brand,
			&p.ProductLine,
			&p.ShadeName,
			&p.HexColor,
			&p.LabL,
			&p.LabA,
			&p.LabB,
			&p.Undertone,
			&p.CreatedAt,
		)
		if err != nil {
			return []models.Product{}, err
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return []models.Product{}, err
	}

	return products, nil
}
