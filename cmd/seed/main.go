// Command seed copies the builtin shade table into the makeup_products table.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/trueshade/api/catalog"
	"github.com/trueshade/api/colorscience"
	"github.com/trueshade/api/datastore"
	"github.com/trueshade/api/migrations"
	"github.com/trueshade/api/models"
)

func main() {
	clearFirst := flag.Bool("clear", false, "delete existing products before seeding")
	clearOnly := flag.Bool("clear-only", false, "delete existing products and exit")
	verify := flag.Bool("verify", false, "print per-brand product counts and exit")
	flag.Parse()

	_ = godotenv.Load()

	connStr := datastore.BuildDBConnStr(
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PASSWORD", ""),
		getEnv("DB_USER", "postgres"),
		getEnv("DB_NAME", "trueshade"),
		getEnv("SSL_MODE", "disable"),
	)

	dbConn, err := datastore.NewDB(getEnv("DB_TYPE", "postgres"), connStr)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbConn.Close()

	if err := migrations.RunMigrations(dbConn); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	repo, err := datastore.NewProductDatabase(dbConn)
	if err != nil {
		log.Fatalf("Failed to create product repository: %v", err)
	}

	switch {
	case *verify:
		err = verifySeed(os.Stdout, catalog.StoreSource{Products: repo})
	case *clearOnly:
		var deleted int64
		deleted, err = repo.DeleteAll()
		if err == nil {
			fmt.Printf("Deleted %d products\n", deleted)
		}
	default:
		err = seed(os.Stdout, repo, *clearFirst)
		if err == nil {
			err = verifySeed(os.Stdout, catalog.StoreSource{Products: repo})
		}
	}
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}

// seedProducts converts the builtin table into rows with precomputed LAB
func seedProducts() ([]models.Product, error) {
	products := catalog.BuiltinProducts()
	for i := range products {
		lab, err := colorscience.HexToLab(products[i].HexColor)
		if err != nil {
			return nil, fmt.Errorf("shade %s/%s: %w", products[i].Brand, products[i].ShadeName, err)
		}
		products[i].LabL, products[i].LabA, products[i].LabB = lab.L, lab.A, lab.B
	}
	return products, nil
}

// seed inserts the builtin shades. An already seeded table is left alone
// unless clearFirst is set.
func seed(out io.Writer, repo datastore.ProductRepository, clearFirst bool) error {
	existing, err := repo.Count()
	if err != nil {
		return err
	}

	if existing > 0 && !clearFirst {
		fmt.Fprintf(out, "Database already seeded with %d products, use -clear to re-seed\n", existing)
		return nil
	}

	if clearFirst {
		deleted, err := repo.DeleteAll()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Deleted %d existing products\n", deleted)
	}

	products, err := seedProducts()
	if err != nil {
		return err
	}

	inserted, err := repo.BulkInsert(products)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Seeded %d makeup products\n", inserted)
	return nil
}

// verifySeed prints how many shades each builtin brand has in the store
func verifySeed(out io.Writer, source catalog.Source) error {
	all, err := source.ListShades()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Found %d products in database\n", len(all))

	for _, brand := range []string{"Fenty", "Nars", "Too Faced"} {
		products, err := source.ListShadesByBrand(brand)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "  %s: %d shades\n", brand, len(products))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
