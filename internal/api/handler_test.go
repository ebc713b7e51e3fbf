package api

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/insightdelivered/statement-analyzer/internal/layout"
)

func setupTestApp() *fiber.App {
	app := fiber.New()
	NewHandler(zerolog.Nop(), layout.HDFCTemplate()).Register(app)
	return app
}

func TestHealthEndpoint(t *testing.T) {
	app := setupTestApp()

	req := httptest.NewRequest("GET", "/api/health", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	var result map[string]string
	if err := json.Unmarshal(body, &result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if result["status"] != "ok" {
		t.Errorf("expected status=ok, got %q", result["status"])
	}
}

func TestAnalyzeRequiresFile(t *testing.T) {
	app := setupTestApp()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.Close()

	req := httptest.NewRequest("POST", "/api/analyze", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("expected 400 for missing file, got %d", resp.StatusCode)
	}
}

func TestAnalyzeRejectsNonPDF(t *testing.T) {
	app := setupTestApp()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "statement.txt")
	if err != nil {
		t.Fatalf("creating form file: %v", err)
	}
	fw.Write([]byte("not a pdf"))
	mw.Close()

	req := httptest.NewRequest("POST", "/api/analyze", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("expected 400 for non-PDF upload, got %d", resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	var result ErrorResponse
	if err := json.Unmarshal(body, &result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if result.Error == "" {
		t.Error("expected an error message in the response body")
	}
}

func TestAnalyzeRejectsUnreadablePDF(t *testing.T) {
	app := setupTestApp()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "statement.pdf")
	if err != nil {
		t.Fatalf("creating form file: %v", err)
	}
	fw.Write([]byte("%PDF-1.4 truncated garbage"))
	mw.Close()

	req := httptest.NewRequest("POST", "/api/analyze", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	// A structurally broken PDF must fail cleanly, never crash the server.
	if resp.StatusCode == fiber.StatusOK {
		t.Errorf("expected failure status for broken PDF, got %d", resp.StatusCode)
	}
}
