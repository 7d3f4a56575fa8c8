package api

import (
	"context"
	"net/http"
	"net/url"
)

// Dictionaries lists all word lists with their learning counters.
func (c *Client) Dictionaries(ctx context.Context) ([]Dictionary, error) {
	var out struct {
		Items []Dictionary `json:"items"`
	}
	if err := c.gw.Do(ctx, http.MethodGet, "/dictionaries", nil, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

type uploadRequest struct {
	FileContent string `json:"fileContent"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// UploadDictionary submits base64-encoded word list content and returns the
// identifier of the server-side import task.
func (c *Client) UploadDictionary(ctx context.Context, name, description, fileContent string) (string, error) {
	var out struct {
		TaskID string `json:"taskId"`
	}
	req := uploadRequest{FileContent: fileContent, Name: name, Description: description}
	if err := c.gw.Do(ctx, http.MethodPost, "/dictionaries/upload", req, &out); err != nil {
		return "", err
	}
	return out.TaskID, nil
}

// UploadStatus fetches the current snapshot of an import task.
func (c *Client) UploadStatus(ctx context.Context, taskID string) (*ImportStatus, error) {
	var out ImportStatus
	path := "/dictionaries/upload/status/" + url.PathEscape(taskID)
	if err := c.gw.Do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
