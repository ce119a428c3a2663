// Package verify checks that every collection exists in the store.
package verify

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/domain"
)

const (
	okMessage      = "All tables exist and are accessible"
	missingMessage = "Tables not found. Please run the SQL schema in the database dashboard."
)

// Result is the JSON body of the verification route.
type Result struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Error   string            `json:"error,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// Run checks each collection once and reports every failure.
func Run(ctx context.Context, st domain.Store) Result {
	details := make(map[string]string)
	for _, c := range domain.Collections {
		if err := st.Check(ctx, c); err != nil {
			details[string(c)] = err.Error()
		}
	}

	if len(details) > 0 {
		return Result{Success: false, Error: missingMessage, Details: details}
	}
	return Result{Success: true, Message: okMessage}
}

// Handler answers 200 when all collections are reachable, 500 otherwise.
func Handler(stores func() (domain.Store, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		st, err := stores()
		if err != nil {
			c.JSON(http.StatusInternalServerError, Result{Success: false, Error: err.Error()})
			return
		}

		res := Run(c.Request.Context(), st)
		if !res.Success {
			c.JSON(http.StatusInternalServerError, res)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}
