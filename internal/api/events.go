package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"

	"tikeria/internal/models"
)

// ListEvents fetches all published event summaries
func (c *Client) ListEvents(ctx context.Context) ([]models.Event, error) {
	var events []models.Event
	if err := c.do(ctx, http.MethodGet, "/api/events", "", nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// PopularEvents fetches event summaries ranked by tickets sold
func (c *Client) PopularEvents(ctx context.Context) ([]models.Event, error) {
	var events []models.Event
	if err := c.do(ctx, http.MethodGet, "/api/events/popular", "", nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// GetEvent fetches one event with its ticket categories and owner
func (c *Client) GetEvent(ctx context.Context, id int) (*models.Event, error) {
	var event models.Event
	if err := c.do(ctx, http.MethodGet, "/api/event/"+strconv.Itoa(id), "", nil, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// CreateEvent registers a new event for verification. The API takes
// multipart form data: scalar fields, the poster and flyer uploads, and the
// ticket categories JSON-encoded into a single field.
func (c *Client) CreateEvent(ctx context.Context, token string, req models.EventCreateRequest) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	fields := map[string]string{
		"name":        req.Name,
		"description": req.Description,
		"location":    req.Location,
		"city":        req.City,
		"date_start":  req.DateStart,
		"date_end":    req.DateEnd,
	}
	for key, value := range fields {
		if value == "" {
			continue
		}
		if err := writer.WriteField(key, value); err != nil {
			return fmt.Errorf("writing event field %s: %w", key, err)
		}
	}

	categories, err := json.Marshal(req.TicketCategories)
	if err != nil {
		return fmt.Errorf("encoding ticket categories: %w", err)
	}
	if err := writer.WriteField("ticket_categories", string(categories)); err != nil {
		return fmt.Errorf("writing ticket categories: %w", err)
	}

	if len(req.Image) > 0 {
		part, err := writer.CreateFormFile("image", req.ImageFilename)
		if err != nil {
			return fmt.Errorf("attaching event image: %w", err)
		}
		if _, err := part.Write(req.Image); err != nil {
			return fmt.Errorf("attaching event image: %w", err)
		}
	}

	if len(req.Flyer) > 0 {
		part, err := writer.CreateFormFile("flyer", req.FlyerFilename)
		if err != nil {
			return fmt.Errorf("attaching event flyer: %w", err)
		}
		if _, err := part.Write(req.Flyer); err != nil {
			return fmt.Errorf("attaching event flyer: %w", err)
		}
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("finalizing event form: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/events", &buf)
	if err != nil {
		return fmt.Errorf("building event registration request: %w", err)
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())

	return c.send(httpReq, token, nil)
}

// VerifyEvent records the admin's approve/reject decision for an event
func (c *Client) VerifyEvent(ctx context.Context, token string, eventID int, req models.VerifyEventRequest) error {
	path := "/api/events/" + strconv.Itoa(eventID) + "/verify"
	return c.do(ctx, http.MethodPatch, path, token, req, nil)
}
