package documents

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/amcdesk/amcdesk-backend/pkg/config"
	pkgerrors "github.com/amcdesk/amcdesk-backend/pkg/errors"
)

// Renderer turns a proposal snapshot into a stored document and returns the
// link clients use to fetch it.
type Renderer interface {
	Render(ctx context.Context, snapshot Snapshot) (string, error)
}

// NewRenderer picks the remote renderer when an endpoint is configured and
// falls back to local PDF generation otherwise.
func NewRenderer(cfg config.DocgenConfig) Renderer {
	if cfg.Endpoint != "" {
		return &remoteRenderer{
			cfg:    cfg,
			client: &http.Client{Timeout: cfg.Timeout},
		}
	}
	return &localRenderer{outputDir: cfg.OutputDir}
}

type remoteRenderer struct {
	cfg    config.DocgenConfig
	client *http.Client
}

type remoteRequest struct {
	TemplateID string   `json:"template_id,omitempty"`
	FolderID   string   `json:"folder_id,omitempty"`
	Proposal   Snapshot `json:"proposal"`
}

type remoteResponse struct {
	PDFURL string `json:"pdf_url"`
}

func (r *remoteRenderer) Render(ctx context.Context, snapshot Snapshot) (string, error) {
	payload, err := json.Marshal(remoteRequest{
		TemplateID: r.cfg.TemplateID,
		FolderID:   r.cfg.FolderID,
		Proposal:   snapshot,
	})
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode document request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.cfg.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build document request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDocumentGeneration, err, "call document renderer")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", pkgerrors.New(pkgerrors.CodeDocumentGeneration,
			fmt.Sprintf("document renderer returned %d: %s", resp.StatusCode, string(body)))
	}

	var decoded remoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDocumentGeneration, err, "decode document renderer response")
	}
	if decoded.PDFURL == "" {
		return "", pkgerrors.New(pkgerrors.CodeDocumentGeneration, "document renderer returned no pdf url")
	}
	return decoded.PDFURL, nil
}
