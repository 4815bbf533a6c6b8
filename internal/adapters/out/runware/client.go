// Package runware implements the outbound image-generation gateway over the
// Runware HTTP API. The service only proxies: prompts go in, hosted image
// URLs come out, and moderation of the results happens elsewhere.
package runware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"flowershop/internal/core/ports"

	"github.com/google/uuid"
)

const defaultModel = "runware:100@1"

// Client talks to the Runware image API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates an image gateway client for the given API endpoint.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// The API accepts an array of task objects and returns an array of results.
type taskRequest struct {
	TaskType       string  `json:"taskType"`
	TaskUUID       string  `json:"taskUUID"`
	PositivePrompt string  `json:"positivePrompt,omitempty"`
	Model          string  `json:"model,omitempty"`
	Width          int     `json:"width,omitempty"`
	Height         int     `json:"height,omitempty"`
	SeedImage      string  `json:"seedImage,omitempty"`
	Strength       float64 `json:"strength,omitempty"`
	Image          string  `json:"image,omitempty"`
}

type taskResult struct {
	TaskType  string `json:"taskType"`
	TaskUUID  string `json:"taskUUID"`
	ImageURL  string `json:"imageURL"`
	ImageUUID string `json:"imageUUID"`
	Seed      int64  `json:"seed"`
}

type apiResponse struct {
	Data   []taskResult `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// Generate forwards a generation request and returns the produced asset.
func (c *Client) Generate(ctx context.Context, req ports.ImageGenerationRequest) (ports.GeneratedAsset, error) {
	task := taskRequest{
		TaskType:       "imageInference",
		TaskUUID:       uuid.NewString(),
		PositivePrompt: req.Prompt,
		Model:          defaultModel,
		Width:          1024,
		Height:         1024,
	}
	if req.UseImageToImage {
		task.SeedImage = req.BaseImageUUID
		task.Strength = 0.8
	}

	results, err := c.submit(ctx, task)
	if err != nil {
		return ports.GeneratedAsset{}, fmt.Errorf("generate image: %w", err)
	}

	result := results[0]
	return ports.GeneratedAsset{
		ImageURL: result.ImageURL,
		TaskUUID: result.TaskUUID,
		Seed:     result.Seed,
	}, nil
}

// UploadAsset uploads a base64-encoded image to the provider's asset store
// and returns the provider's image identifier.
func (c *Client) UploadAsset(ctx context.Context, imageBase64, taskUUID string) (string, error) {
	task := taskRequest{
		TaskType: "imageUpload",
		TaskUUID: taskUUID,
		Image:    imageBase64,
	}

	results, err := c.submit(ctx, task)
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}

	return results[0].ImageUUID, nil
}

func (c *Client) submit(ctx context.Context, tasks ...taskRequest) ([]taskResult, error) {
	body, err := json.Marshal(tasks)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("image provider returned %s", resp.Status)
	}

	var decoded apiResponse
	if err = json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, err
	}

	if len(decoded.Errors) > 0 {
		return nil, errors.New(decoded.Errors[0].Message)
	}
	if len(decoded.Data) == 0 {
		return nil, errors.New("image provider returned no results")
	}

	return decoded.Data, nil
}
