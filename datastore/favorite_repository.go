package datastore

import (
	"database/sql"

	"github.com/trueshade/api/models"
)

type FavoriteRepository interface {
	Add(userID, productID string) (models.Favorite, error)
	Remove(userID, productID string) (bool, error)
	ListByUser(userID string) ([]models.FavoriteProduct, error)
}

type FavoriteDatabase struct {
	database *sql.DB
}

func NewFavoriteDatabase(db *sql.DB) (FavoriteDatabase, error) {
	return FavoriteDatabase{database: db}, nil
}

// Add saves a product to the user's favorites. Adding the same product twice
// returns the existing record.
func (fd FavoriteDatabase) Add(userID, productID string) (models.Favorite, error) {
	sqlStatement := `
		INSERT INTO user_favorites (user_id, product_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, product_id)
		DO UPDATE SET created_at = user_favorites.created_at
		RETURNING favorite_id, user_id, product_id, created_at`

	var favorite models.Favorite
	err := fd.database.QueryRow(sqlStatement, userID, productID).Scan(
		&favorite.FavoriteID,
		&favorite.UserID,
		&favorite.ProductID,
		&favorite.CreatedAt,
	)
	if err != nil {
		return models.Favorite{}, err
	}
	return favorite, nil
}

// Remove deletes a favorite and reports whether one existed
func (fd FavoriteDatabase) Remove(userID, productID string) (bool, error) {
	result, err := fd.database.Exec(`DELETE FROM user_favorites WHERE user_id = $1 AND product_id = $2`, userID, productID)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// ListByUser returns the user's favorites joined with their products, newest first
func (fd FavoriteDatabase) ListByUser(userID string) ([]models.FavoriteProduct, error) {
	sqlStatement := `
		SELECT f.favorite_id, f.created_at,
			p.product_id, p.brand, p.product_line, p.shade_name, p.hex_color,
			p.lab_l, p.lab_a, p.lab_b, p.undertone, p.created_at
		FROM user_favorites f
		JOIN makeup_products p ON p.product_id = f.product_id
		WHERE f.user_id = $1
		ORDER BY f.created_at DESC`

	rows, err := fd.database.Query(sqlStatement, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	favorites := []models.FavoriteProduct{}
	for rows.Next() {
		var favorite models.FavoriteProduct
		p := &favorite.Product
		err := rows.Scan(
			&favorite.FavoriteID,
			&favorite.CreatedAt,
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
			return nil, err
		}
		favorites = append(favorites, favorite)
	}

	return favorites, rows.Err()
}
