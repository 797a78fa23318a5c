package handlers

import (
	"database/sql"
	"net/http"

	intdb "monametro/internal/db"

	"github.com/gin-gonic/gin"
)

type SystemHandler struct {
	DB *sql.DB
}

func (h SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "mona-metro"})
}

// GET /api/db-check reports store reachability and schema presence.
func (h SystemHandler) DBCheck(c *gin.Context) {
	if err := h.DB.Ping(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database unreachable"})
		return
	}

	tables := []string{"users", "buses", "bookings", "payments", "feedback", "bus_updates"}
	missing := []string{}
	for _, t := range tables {
		if !intdb.HasTable(h.DB, t) {
			missing = append(missing, t)
		}
	}
	if len(missing) > 0 {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "schema incomplete", "missing": missing})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "database OK"})
}
