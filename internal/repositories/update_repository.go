package repositories

import (
	"database/sql"

	"monametro/internal/domain/models"
)

type UpdateRepository struct {
	DB *sql.DB
}

func (r UpdateRepository) Create(u models.BusUpdate) (int64, error) {
	res, err := r.DB.Exec(`
		INSERT INTO bus_updates (bus_id, driver_id, message, created_at)
		VALUES (?, ?, ?, NOW())
	`, u.BusID, u.DriverID, u.Message)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListRecent is the public communication feed, newest first, joined with
// the posting driver's name.
func (r UpdateRepository) ListRecent(limit int) ([]models.BusUpdate, error) {
	rows, err := r.DB.Query(`
		SELECT bu.update_id, bu.bus_id, bu.driver_id, CONCAT(u.firstname, ' ', u.lastname), bu.message, bu.created_at
		FROM bus_updates bu
		JOIN users u ON u.id = bu.driver_id
		ORDER BY bu.created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.BusUpdate{}
	for rows.Next() {
		var bu models.BusUpdate
		if err := rows.Scan(&bu.UpdateID, &bu.BusID, &bu.DriverID, &bu.DriverName, &bu.Message, &bu.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, bu)
	}
	return out, rows.Err()
}
