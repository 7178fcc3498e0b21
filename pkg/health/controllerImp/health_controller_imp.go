package controllerImp

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const pingTimeout = 800 * time.Millisecond

type HealthCtrl struct {
	db      *gorm.DB
	started time.Time
	log     *zap.Logger
}

func NewHealthCtrl(db *gorm.DB, started time.Time, log *zap.Logger) *HealthCtrl {
	if log == nil {
		log = zap.NewNop()
	}
	return &HealthCtrl{db: db, started: started, log: log}
}

type check struct {
	OK  bool   `json:"ok"`
	Err string `json:"err,omitempty"`
}

func (h *HealthCtrl) pingDB(ctx context.Context) check {
	if h.db == nil {
		return check{Err: "database not configured"}
	}
	sqlDB, err := h.db.DB()
	if err != nil {
		return check{Err: "db handle: " + err.Error()}
	}
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return check{Err: "ping: " + err.Error()}
	}
	return check{OK: true}
}

// Health reports 503 when the database does not answer within pingTimeout.
func (h *HealthCtrl) Health(c echo.Context) error {
	database := h.pingDB(c.Request().Context())
	status := http.StatusOK
	if !database.OK {
		status = http.StatusServiceUnavailable
		h.log.Warn("health check failed", zap.String("database", database.Err))
	}
	return c.JSON(status, echo.Map{
		"status":     echo.Map{"ok": database.OK},
		"uptime_sec": int(time.Since(h.started).Seconds()),
		"checks":     echo.Map{"database": database},
		"time":       time.Now().UTC().Format(time.RFC3339),
	})
}
