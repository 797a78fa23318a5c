package db

import (
	"database/sql"
	"fmt"
	"log"
)

// EnsureSchema creates the portal tables when absent. Startup must abort
// if this fails; the server never serves requests without a schema.
func EnsureSchema(conn *sql.DB) error {
	schemas := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			firstname VARCHAR(100) NOT NULL,
			lastname VARCHAR(100) NOT NULL,
			username VARCHAR(100) NOT NULL UNIQUE,
			email VARCHAR(255) NOT NULL UNIQUE,
			password_hash VARCHAR(255) NOT NULL,
			role VARCHAR(20) NOT NULL DEFAULT 'user',
			wallet_balance DECIMAL(10,2) NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS buses (
			bus_id BIGINT AUTO_INCREMENT PRIMARY KEY,
			origin VARCHAR(100) NOT NULL,
			destination VARCHAR(100) NOT NULL,
			via VARCHAR(100) NOT NULL DEFAULT '',
			departure_time VARCHAR(10) NOT NULL,
			arrival_time VARCHAR(10) NOT NULL,
			cost DECIMAL(10,2) NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'active'
		)`,
		`CREATE TABLE IF NOT EXISTS payments (
			payment_id BIGINT AUTO_INCREMENT PRIMARY KEY,
			user_id BIGINT NOT NULL,
			amount DECIMAL(10,2) NOT NULL,
			method VARCHAR(20) NOT NULL,
			reference CHAR(36) NOT NULL,
			idempotency_key VARCHAR(64) NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE KEY uq_payments_idempotency (user_id, idempotency_key),
			CONSTRAINT fk_payments_user FOREIGN KEY (user_id) REFERENCES users(id)
		)`,
		`CREATE TABLE IF NOT EXISTS bookings (
			booking_id BIGINT AUTO_INCREMENT PRIMARY KEY,
			user_id BIGINT NOT NULL,
			bus_id BIGINT NOT NULL,
			payment_id BIGINT NOT NULL,
			seats INT NOT NULL DEFAULT 1,
			status VARCHAR(20) NOT NULL DEFAULT 'confirmed',
			booking_date DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			departure_time DATETIME NOT NULL,
			start_location VARCHAR(100) NOT NULL,
			end_location VARCHAR(100) NOT NULL,
			CONSTRAINT fk_bookings_user FOREIGN KEY (user_id) REFERENCES users(id),
			CONSTRAINT fk_bookings_bus FOREIGN KEY (bus_id) REFERENCES buses(bus_id),
			CONSTRAINT fk_bookings_payment FOREIGN KEY (payment_id) REFERENCES payments(payment_id)
		)`,
		`CREATE TABLE IF NOT EXISTS feedback (
			feedback_id BIGINT AUTO_INCREMENT PRIMARY KEY,
			user_id BIGINT NOT NULL,
			message TEXT NOT NULL,
			rating INT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			CONSTRAINT fk_feedback_user FOREIGN KEY (user_id) REFERENCES users(id)
		)`,
		`CREATE TABLE IF NOT EXISTS bus_updates (
			update_id BIGINT AUTO_INCREMENT PRIMARY KEY,
			bus_id BIGINT NOT NULL,
			driver_id BIGINT NOT NULL,
			message TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			CONSTRAINT fk_updates_driver FOREIGN KEY (driver_id) REFERENCES users(id)
		)`,
	}

	for _, s := range schemas {
		if _, err := conn.Exec(s); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}

	indexes := []string{
		`CREATE INDEX idx_bookings_user_departure ON bookings(user_id, departure_time)`,
		`CREATE INDEX idx_bookings_booking_date ON bookings(booking_date)`,
		`CREATE INDEX idx_payments_user_created ON payments(user_id, created_at)`,
		`CREATE INDEX idx_updates_created ON bus_updates(created_at)`,
		`CREATE INDEX idx_buses_status ON buses(status)`,
	}

	// MySQL has no CREATE INDEX IF NOT EXISTS; duplicate-name errors on
	// re-run are expected and ignored.
	for _, idx := range indexes {
		if _, err := conn.Exec(idx); err != nil {
			continue
		}
	}

	log.Println("[DB] schema ensured")
	return nil
}

// seedRoute mirrors the fixed campus shuttle timetable the portal ships with.
type seedRoute struct {
	origin, destination, via string
	departure, arrival       string
	cost                     float64
}

var defaultRoutes = []seedRoute{
	{"Mona Campus", "Half Way Tree", "Hope Road", "07:00", "07:45", 300},
	{"Mona Campus", "Downtown Kingston", "Cross Roads", "07:30", "08:20", 300},
	{"Mona Campus", "Papine", "UWI Ring Road", "08:00", "08:15", 300},
	{"Half Way Tree", "Mona Campus", "Hope Road", "08:30", "09:15", 300},
	{"Mona Campus", "Portmore", "Marcus Garvey Drive", "16:30", "17:40", 300},
	{"Mona Campus", "Spanish Town", "Mandela Highway", "17:00", "18:10", 300},
	{"Papine", "Mona Campus", "UWI Ring Road", "17:30", "17:45", 300},
	{"Downtown Kingston", "Mona Campus", "Cross Roads", "18:00", "18:50", 300},
}

// SeedBuses inserts the reference route list once, when the table is empty.
func SeedBuses(conn *sql.DB) error {
	var count int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM buses`).Scan(&count); err != nil {
		return fmt.Errorf("count buses: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, r := range defaultRoutes {
		_, err := conn.Exec(`
			INSERT INTO buses (origin, destination, via, departure_time, arrival_time, cost, status)
			VALUES (?, ?, ?, ?, ?, ?, 'active')
		`, r.origin, r.destination, r.via, r.departure, r.arrival, r.cost)
		if err != nil {
			return fmt.Errorf("seed bus route %s-%s: %w", r.origin, r.destination, err)
		}
	}

	log.Printf("[DB] seeded %d bus routes", len(defaultRoutes))
	return nil
}
