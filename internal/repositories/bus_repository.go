package repositories

import (
	"database/sql"

	"monametro/internal/domain"
	"monametro/internal/domain/models"
)

type BusRepository struct {
	DB *sql.DB
}

// ListActive returns every route currently marked active, in timetable order.
func (r BusRepository) ListActive() ([]models.Bus, error) {
	rows, err := r.DB.Query(`
		SELECT bus_id, origin, destination, via, departure_time, arrival_time, cost, status
		FROM buses
		WHERE status = 'active'
		ORDER BY departure_time ASC, bus_id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	buses := []models.Bus{}
	for rows.Next() {
		var b models.Bus
		if err := rows.Scan(&b.BusID, &b.Origin, &b.Destination, &b.Via, &b.DepartureTime, &b.ArrivalTime, &b.Cost, &b.Status); err != nil {
			return nil, err
		}
		buses = append(buses, b)
	}
	return buses, rows.Err()
}

func (r BusRepository) GetByID(id int64) (models.Bus, error) {
	var b models.Bus
	err := r.DB.QueryRow(`
		SELECT bus_id, origin, destination, via, departure_time, arrival_time, cost, status
		FROM buses WHERE bus_id = ? LIMIT 1
	`, id).Scan(&b.BusID, &b.Origin, &b.Destination, &b.Via, &b.DepartureTime, &b.ArrivalTime, &b.Cost, &b.Status)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Bus{}, domain.NotFoundError{Resource: "bus"}
		}
		return models.Bus{}, err
	}
	return b, nil
}

// SetStatus toggles a route between active and inactive.
func (r BusRepository) SetStatus(id int64, status string) error {
	res, err := r.DB.Exec(`UPDATE buses SET status = ? WHERE bus_id = ?`, status, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		// Already in the requested state still counts; only a missing row is an error.
		var exists int
		if err := r.DB.QueryRow(`SELECT COUNT(*) FROM buses WHERE bus_id = ?`, id).Scan(&exists); err != nil {
			return err
		}
		if exists == 0 {
			return domain.NotFoundError{Resource: "bus"}
		}
	}
	return nil
}
