package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"marketagents/internal/classifier"
	"marketagents/internal/domain"
	"marketagents/internal/notifier"
	"marketagents/internal/pricing"
	"marketagents/internal/storage"
)

const (
	alertTimeout       = 10 * time.Second
	defaultRecentLimit = 20
	maxRecentLimit     = 200
)

func (s *Server) index(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ok",
		"project": "marketplace-agents",
	})
}

func (s *Server) negotiate(c echo.Context) error {
	var p domain.Product
	if err := bindValid(c, &p); err != nil {
		return err
	}

	ctx := c.Request().Context()
	sug := s.pricer.Suggest(ctx, p)
	if err := sug.Validate(); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Price agent returned invalid result").SetInternal(err)
	}

	if s.repo != nil {
		if err := s.repo.Save(ctx, storage.NewRecord(p, sug, time.Now())); err != nil {
			suggestionLogErrors.Inc()
			s.logger.Warn("failed to log suggestion", "title", p.Title, "err", err)
		}
	}

	return c.JSON(http.StatusOK, sug)
}

func (s *Server) moderate(c echo.Context) error {
	var msg domain.Message
	if err := bindValid(c, &msg); err != nil {
		return err
	}
	if !msg.Text.Set {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "message is required")
	}

	res := classifier.Moderate(msg.Text.Value)
	if err := res.Validate(); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Moderation agent returned invalid result").SetInternal(err)
	}
	moderationCount.WithLabelValues(string(res.Status)).Inc()

	return c.JSON(http.StatusOK, res)
}

func (s *Server) fraudCheck(c echo.Context) error {
	var p domain.Product
	if err := bindValid(c, &p); err != nil {
		return err
	}

	v := pricing.DetectFraud(p)
	if err := v.Validate(); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Fraud agent returned invalid result").SetInternal(err)
	}
	fraudCheckCount.WithLabelValues(string(v.Status)).Inc()

	if v.Status == pricing.FraudSuspicious {
		s.alert(notifier.Alert{Product: p, Verdict: v})
	}

	return c.JSON(http.StatusOK, v)
}

func (s *Server) negotiateDeal(c echo.Context) error {
	var p domain.Product
	if err := bindValid(c, &p); err != nil {
		return err
	}

	d := pricing.Negotiate(p)
	if err := d.Validate(); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Negotiation agent returned invalid result").SetInternal(err)
	}
	return c.JSON(http.StatusOK, d)
}

func (s *Server) suggestions(c echo.Context) error {
	if s.repo == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Suggestion log is disabled")
	}

	limit := defaultRecentLimit
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, "limit must be a positive integer")
		}
		limit = min(n, maxRecentLimit)
	}

	records, err := s.repo.FindRecent(c.Request().Context(), limit)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, records)
}

// alert notifies in the background so a slow chat API never delays the
// response.
func (s *Server) alert(a notifier.Alert) {
	if s.notifier == nil {
		return
	}

	s.alerts.Add(1)
	go func() {
		defer s.alerts.Done()

		ctx, cancel := context.WithTimeout(context.Background(), alertTimeout)
		defer cancel()

		if err := s.notifier.Notify(ctx, a); err != nil {
			s.logger.Warn("failed to send fraud alert", "title", a.Product.Title, "err", err)
		}
	}()
}
