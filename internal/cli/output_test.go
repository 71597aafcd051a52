package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/thenoetrevino/tablero/internal/models"
	"github.com/thenoetrevino/tablero/internal/ordering"
	columnservice "github.com/thenoetrevino/tablero/internal/services/column"
	taskservice "github.com/thenoetrevino/tablero/internal/services/task"
)

// ============================================================================
// Mock Types for Testing
// ============================================================================

type mockResult struct {
	ids  []int
	name string
}

func (m mockResult) Payload() any { return map[string]any{"name": m.name, "ids": m.ids} }
func (m mockResult) IDs() []int { return m.ids }
func (m mockResult) Render() string { return "rendered " + m.name }

func newTestFormatter(jsonOutput, quiet bool) (*OutputFormatter, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return &OutputFormatter{JSON: jsonOutput, Quiet: quiet, Out: &out, Err: &errOut}, &out, &errOut
}

func decode(t *testing.T, s string) map[string]any {
	t.Helper()
	var result map[string]any
	if err := json.Unmarshal([]byte(s), &result); err != nil {
		t.Fatalf("Failed to parse JSON: %v\nOutput: %s", err, s)
	}
	return result
}

// ============================================================================
// Success
// ============================================================================

func TestOutputFormatter_Success_JSON(t *testing.T) {
	f, out, _ := newTestFormatter(true, false)
	if err := f.Success(mockResult{ids: []int{4, 2}, name: "Todo"}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	result := decode(t, out.String())
	if result["success"] != true {
		t.Error("Expected success to be true")
	}
	data := result["data"].(map[string]any)
	if data["name"] != "Todo" {
		t.Errorf("Expected data.name to be 'Todo', got %v", data["name"])
	}
}

func TestOutputFormatter_Success_Quiet(t *testing.T) {
	tests := []struct {
		name       string
		ids        []int
		wantOutput string
	}{
		{name: "single id", ids: []int{42}, wantOutput: "42\n"},
		{name: "ordered ids", ids: []int{3, 1, 2}, wantOutput: "3\n1\n2\n"},
		{name: "no ids", ids: nil, wantOutput: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, out, _ := newTestFormatter(false, true)
			if err := f.Success(mockResult{ids: tt.ids}); err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if out.String() != tt.wantOutput {
				t.Errorf("Expected %q, got %q", tt.wantOutput, out.String())
			}
		})
	}
}

func TestOutputFormatter_Success_QuietWinsOverJSON(t *testing.T) {
	f, out, _ := newTestFormatter(true, true)
	if err := f.Success(mockResult{ids: []int{7}}); err != nil {
		t.Fatal(err)
	}
	if out.String() != "7\n" {
		t.Errorf("Expected quiet output, got %q", out.String())
	}
}

func TestOutputFormatter_Success_Human(t *testing.T) {
	f, out, _ := newTestFormatter(false, false)
	if err := f.Success(mockResult{name: "Todo"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "rendered Todo") {
		t.Errorf("Expected rendered output, got %q", out.String())
	}
}

// ============================================================================
// Errors
// ============================================================================

func TestOutputFormatter_ErrorWithSuggestion_JSON(t *testing.T) {
	f, out, errOut := newTestFormatter(true, false)
	if err := f.ErrorWithSuggestion("VERSION_CONFLICT", "stale", "retry"); err != nil {
		t.Fatal(err)
	}
	if errOut.Len() != 0 {
		t.Errorf("Expected nothing on stderr in JSON mode, got %q", errOut.String())
	}

	result := decode(t, out.String())
	if result["success"] != false {
		t.Error("Expected success to be false")
	}
	errData := result["error"].(map[string]any)
	if errData["code"] != "VERSION_CONFLICT" || errData["suggestion"] != "retry" {
		t.Errorf("Unexpected error payload: %v", errData)
	}
}

func TestOutputFormatter_Error_Human(t *testing.T) {
	f, out, errOut := newTestFormatter(false, false)
	if err := f.Error("NOT_FOUND", "board 3 not found"); err != nil {
		t.Fatal(err)
	}
	if out.Len() != 0 {
		t.Errorf("Expected nothing on stdout, got %q", out.String())
	}
	if !strings.Contains(errOut.String(), "board 3 not found") {
		t.Errorf("Expected message on stderr, got %q", errOut.String())
	}
	if strings.Contains(errOut.String(), "Suggestion") {
		t.Error("Expected no suggestion line")
	}
}

func TestOutputFormatter_Fail(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
		wantExit int
	}{
		{"not found", fmt.Errorf("wrap: %w", models.NewNotFoundError(models.KindColumn, 9)), "COLUMN_NOT_FOUND", ExitNotFound},
		{"conflict", models.NewConflictError(models.KindBoard, 1, 2, 3), "VERSION_CONFLICT", ExitConflict},
		{"unauthenticated", models.ErrUnauthenticated, "UNAUTHENTICATED", ExitUnauthenticated},
		{"incomplete reorder", &ordering.IncompleteError[int]{Missing: []int{4}}, "INCOMPLETE_REORDER", ExitValidation},
		{"invalid references", &ordering.ReferenceError[int]{Unknown: []int{99}}, "INVALID_REORDER", ExitValidation},
		{"cross board", &models.CrossBoardMoveError{TaskID: 1, SourceBoardID: 1, TargetBoardID: 2}, "CROSS_BOARD_MOVE", ExitValidation},
		{"validation", columnservice.ErrEmptyName, "VALIDATION_ERROR", ExitValidation},
		{"archived", taskservice.ErrTaskArchived, "VALIDATION_ERROR", ExitValidation},
		{"internal", errors.New("disk on fire"), "INTERNAL_ERROR", ExitError},
		{"usage", UsageError("--id must be greater than 0"), "USAGE_ERROR", ExitUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, out, _ := newTestFormatter(true, false)
			err := f.Fail(tt.err)

			if code := ExitCode(err); code != tt.wantExit {
				t.Errorf("Expected exit %d, got %d", tt.wantExit, code)
			}
			if !errors.Is(err, tt.err) {
				t.Errorf("Expected returned error to wrap %v", tt.err)
			}

			errData := decode(t, out.String())["error"].(map[string]any)
			if errData["code"] != tt.wantCode {
				t.Errorf("Expected code %s, got %v", tt.wantCode, errData["code"])
			}
		})
	}
}

func TestExitCode(t *testing.T) {
	if ExitCode(nil) != ExitSuccess {
		t.Error("nil error should exit 0")
	}
	wrapped := fmt.Errorf("outer: %w", &CommandError{Code: ExitDataErr, Err: errors.New("bad")})
	if ExitCode(wrapped) != ExitDataErr {
		t.Error("wrapped command error should keep its code")
	}
	if ExitCode(models.ErrNotFound) != ExitNotFound {
		t.Error("bare not found should map to ExitNotFound")
	}
}
