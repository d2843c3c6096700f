// Package analytics serves the dashboard summary counters.
package analytics

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/alumni-portal/backend/internal/apperr"
)

type Counter interface {
	Count(ctx context.Context) (int64, error)
}

type DonationTotaler interface {
	TotalAmount(ctx context.Context) (decimal.Decimal, error)
}

type Summary struct {
	AlumniCount int64           `json:"alumni_count"`
	EventCount  int64           `json:"event_count"`
	Donations   decimal.Decimal `json:"donations"`
}

type Service struct {
	Alumni    Counter
	Events    Counter
	Donations DonationTotaler
}

func NewService(alumni, events Counter, donations DonationTotaler) *Service {
	return &Service{Alumni: alumni, Events: events, Donations: donations}
}

// Summary gathers the three counters concurrently.
func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	var out Summary
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.AlumniCount, err = s.Alumni.Count(ctx)
		if err != nil {
			return fmt.Errorf("count alumni: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		out.EventCount, err = s.Events.Count(ctx)
		if err != nil {
			return fmt.Errorf("count events: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		out.Donations, err = s.Donations.TotalAmount(ctx)
		if err != nil {
			return fmt.Errorf("sum donations: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}

type Handler struct {
	Service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{Service: s}
}

// GET /analytics
func (h *Handler) Get(c *gin.Context) {
	sum, err := h.Service.Summary(c.Request.Context())
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, sum)
}
