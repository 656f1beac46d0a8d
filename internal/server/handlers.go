package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"courseapi/internal/catalog"
	"courseapi/internal/entity"
	"courseapi/internal/httpx"
	"courseapi/internal/metrics"

	"go.uber.org/zap"
)

// Course and rating paths split into "", kind, subject, number.
const keyedPathSegments = 4

func keyFromSegments(segments []string) (entity.Key, bool) {
	if len(segments) != keyedPathSegments {
		return entity.Key{}, false
	}
	return entity.Key{Subject: segments[2], Number: segments[3]}, true
}

func (d *Dispatcher) liveness(req request) (httpx.Response, error) {
	return httpx.Text(http.StatusOK, Sentinel), nil
}

func (d *Dispatcher) reset(req request) (httpx.Response, error) {
	d.store.Reset()
	d.logger.Info("ratings reset")
	return httpx.OK(), nil
}

func (d *Dispatcher) summary(req request) (httpx.Response, error) {
	return httpx.JSON(d.store.SummaryJSON()), nil
}

// GET /course/{subject}/{number}/
func (d *Dispatcher) course(req request) (httpx.Response, error) {
	key, ok := keyFromSegments(req.segments)
	if !ok {
		return httpx.BadRequest(), nil
	}
	body, ok := d.store.CourseJSON(key)
	if !ok {
		return httpx.NotFound(), nil
	}
	return httpx.JSON(body), nil
}

// GET /rating/{subject}/{number}
func (d *Dispatcher) getRating(req request) (httpx.Response, error) {
	key, ok := keyFromSegments(req.segments)
	if !ok {
		return httpx.BadRequest(), nil
	}
	rating, ok := d.store.Rating(key)
	if !ok {
		return httpx.NotFound(), nil
	}
	body, err := entity.MarshalIndent(rating)
	if err != nil {
		return httpx.Response{}, fmt.Errorf("encode rating %s %s: %w", key.Subject, key.Number, err)
	}
	return httpx.JSON(body), nil
}

// POST /rating/
func (d *Dispatcher) postRating(req request) (httpx.Response, error) {
	var rating entity.Rating
	if err := json.Unmarshal(req.body, &rating); err != nil {
		d.logger.Debug("undecodable rating", zap.Error(err))
		return httpx.BadRequest(), nil
	}
	if errs := entity.ValidateStruct(rating); len(errs) > 0 {
		d.logger.Debug("invalid rating", zap.Any("errors", errs))
		return httpx.BadRequest(), nil
	}

	err := d.store.SetRating(rating)
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		// The key set is fixed; the client is still redirected and will see 404.
		d.logger.Info("rating for unknown course ignored",
			zap.String("subject", rating.Summary.Subject),
			zap.String("number", rating.Summary.Number),
		)
	case err != nil:
		return httpx.Response{}, fmt.Errorf("store rating: %w", err)
	default:
		metrics.RecordRatingUpdate()
	}

	return httpx.Redirect(rating.Summary.RatingPath()), nil
}
