package repositories

import (
	"database/sql"

	"monametro/internal/domain/models"
)

type FeedbackRepository struct {
	DB *sql.DB
}

func (r FeedbackRepository) Create(f models.Feedback) (int64, error) {
	res, err := r.DB.Exec(`
		INSERT INTO feedback (user_id, message, rating, created_at)
		VALUES (?, ?, ?, NOW())
	`, f.UserID, f.Message, f.Rating)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListWithUsers is the admin review queue, newest first.
func (r FeedbackRepository) ListWithUsers() ([]models.FeedbackWithUser, error) {
	rows, err := r.DB.Query(`
		SELECT f.feedback_id, f.user_id, f.message, f.rating, f.created_at, u.firstname, u.lastname
		FROM feedback f
		JOIN users u ON u.id = f.user_id
		ORDER BY f.created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.FeedbackWithUser{}
	for rows.Next() {
		var fw models.FeedbackWithUser
		if err := rows.Scan(&fw.FeedbackID, &fw.UserID, &fw.Message, &fw.Rating, &fw.CreatedAt, &fw.FirstName, &fw.LastName); err != nil {
			return nil, err
		}
		out = append(out, fw)
	}
	return out, rows.Err()
}
