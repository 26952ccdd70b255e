package api

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"

	"tikeria/internal/models"
)

// Login exchanges credentials for a bearer token
func (c *Client) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	var resp models.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", "", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register forwards a registration as multipart form data. Organizer
// sign-ups attach an identity document; buyer sign-ups send fields only.
// The field set is passed through as-is so this service does not have to
// track the API's registration contract.
func (c *Client) Register(ctx context.Context, fields map[string]string, files map[string][]byte) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return fmt.Errorf("writing registration field %s: %w", key, err)
		}
	}

	for name, content := range files {
		part, err := writer.CreateFormFile(name, name)
		if err != nil {
			return fmt.Errorf("attaching registration file %s: %w", name, err)
		}
		if _, err := part.Write(content); err != nil {
			return fmt.Errorf("attaching registration file %s: %w", name, err)
		}
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("finalizing registration form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/auth/register", &buf)
	if err != nil {
		return fmt.Errorf("building registration request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return c.send(req, "", nil)
}
