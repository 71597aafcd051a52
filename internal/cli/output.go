package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// Result is what a command hands to the formatter on success
type Result interface {
	// Payload is encoded under "data" in JSON mode
	Payload() any
	// IDs are printed one per line in quiet mode
	IDs() []int
	// Render returns the human-readable form
	Render() string
}

// OutputFormatter handles three output modes: JSON, quiet, and human-readable
type OutputFormatter struct {
	JSON  bool
	Quiet bool

	Out io.Writer
	Err io.Writer
}

// NewFormatter reads --json and --quiet from cmd and writes to the command's streams
func NewFormatter(cmd *cobra.Command) *OutputFormatter {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")
	return &OutputFormatter{
		JSON:  jsonOutput,
		Quiet: quietMode,
		Out:   cmd.OutOrStdout(),
		Err:   cmd.ErrOrStderr(),
	}
}

// AddOutputFlags registers the agent-friendly output flags on cmd
func AddOutputFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (IDs only)")
}

func (f *OutputFormatter) out() io.Writer {
	if f.Out == nil {
		return os.Stdout
	}
	return f.Out
}

func (f *OutputFormatter) errOut() io.Writer {
	if f.Err == nil {
		return os.Stderr
	}
	return f.Err
}

// Success outputs successful operation result
func (f *OutputFormatter) Success(r Result) error {
	if f.Quiet {
		for _, id := range r.IDs() {
			if _, err := fmt.Fprintf(f.out(), "%d\n", id); err != nil {
				return err
			}
		}
		return nil
	}

	if f.JSON {
		return json.NewEncoder(f.out()).Encode(map[string]any{
			"success": true,
			"data":    r.Payload(),
		})
	}

	_, err := fmt.Fprintln(f.out(), r.Render())
	return err
}

// Error outputs error information
func (f *OutputFormatter) Error(code string, message string) error {
	return f.ErrorWithSuggestion(code, message, "")
}

// ErrorWithSuggestion outputs error information with an optional suggestion
func (f *OutputFormatter) ErrorWithSuggestion(code string, message string, suggestion string) error {
	if f.JSON {
		errData := map[string]any{
			"code":    code,
			"message": message,
		}
		if suggestion != "" {
			errData["suggestion"] = suggestion
		}
		return json.NewEncoder(f.out()).Encode(map[string]any{
			"success": false,
			"error":   errData,
		})
	}

	// Human-readable error
	if _, err := fmt.Fprintf(f.errOut(), "%s %s\n", ErrorStyle.Render("Error:"), message); err != nil {
		return err
	}
	if suggestion != "" {
		if _, err := fmt.Fprintf(f.errOut(), "%s %s\n", SubtitleStyle.Render("Suggestion:"), suggestion); err != nil {
			return err
		}
	}
	return nil
}

// Fail reports err in the current output mode and returns it wrapped with
// the exit code matching its kind.
func (f *OutputFormatter) Fail(err error) error {
	if cmdErr, ok := err.(*CommandError); ok {
		code := "USAGE_ERROR"
		if cmdErr.Code == ExitDataErr {
			code = "DATA_ERROR"
		}
		_ = f.Error(code, cmdErr.Error())
		return cmdErr
	}
	code, exit := Classify(err)
	_ = f.ErrorWithSuggestion(code, err.Error(), suggestionFor(err))
	return &CommandError{Code: exit, Err: err}
}
