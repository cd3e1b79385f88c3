package mcpserver

import (
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

type errKind int

const (
	errValidation errKind = iota
	errProvider
	errUnknownTool
)

// opError is the error type tool handlers return. Every failure surfaces to
// the caller as a tool result with isError set, never as a protocol error,
// so clients always receive a readable message.
type opError struct {
	kind    errKind
	message string
	detail  string
}

func (e *opError) Error() string {
	if e.detail == "" {
		return e.message
	}
	return e.message + ": " + e.detail
}

func validationError(detail string) *opError {
	return &opError{kind: errValidation, message: "Invalid arguments", detail: detail}
}

func providerError(message string, err error) *opError {
	detail := ""
	if err != nil {
		detail = err.Error()
	}
	return &opError{kind: errProvider, message: message, detail: detail}
}

func unknownToolError(name string) *opError {
	return &opError{kind: errUnknownTool, message: "Unknown tool: " + name}
}

// failureResult renders any handler error in the fixed two-part format the
// tools use for failures.
func failureResult(err error) *mcp.CallToolResult {
	message := "Unexpected error"
	detail := ""
	if oe, ok := err.(*opError); ok {
		message = oe.message
		detail = oe.detail
	} else if err != nil {
		detail = err.Error()
	}
	if detail == "" {
		detail = "No additional details"
	}
	return mcp.NewToolResultError(fmt.Sprintf("Error: %s - %s", message, detail))
}
