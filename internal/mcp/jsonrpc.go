package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/blackwell-systems/projscout/internal/locator"
)

// protocolVersion is the MCP revision this server speaks.
const protocolVersion = "2024-11-05"

// JSON-RPC 2.0 error codes used by the server.
const (
	codeParseError     = -32700
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
)

// Server speaks MCP over line-delimited JSON-RPC 2.0: requests in from r,
// responses out to w. Every tool operates on the locators the server was
// built with.
type Server struct {
	tools  []toolDef
	byName map[string]int // tool name to index into tools

	locators map[string]*locator.Locator
	order    []string // kinds in registration order
}

// toolDef describes a registered MCP tool.
type toolDef struct {
	Name        string
	Description string
	InputSchema json.RawMessage
	Handler     toolHandler
}

// toolHandler executes one tool call.
type toolHandler func(args json.RawMessage) (any, error)

// request is an incoming JSON-RPC 2.0 message. A nil ID marks a notification.
type request struct {
	JSONRPC string           `json:"jsonrpc"`
	ID      *json.RawMessage `json:"id,omitempty"`
	Method  string           `json:"method"`
	Params  json.RawMessage  `json:"params,omitempty"`
}

// response is an outgoing JSON-RPC 2.0 message.
type response struct {
	JSONRPC string           `json:"jsonrpc"`
	ID      *json.RawMessage `json:"id,omitempty"`
	Result  any              `json:"result,omitempty"`
	Error   *rpcError        `json:"error,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// callParams is the params shape of tools/call.
type callParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
}

// callResult wraps tool output as MCP content.
type callResult struct {
	Content []contentItem `json:"content"`
	IsError bool          `json:"isError"`
}

type contentItem struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// toolInfo is one entry of a tools/list response.
type toolInfo struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"inputSchema"`
}

// NewServer constructs a Server over the given locators, one per kind.
func NewServer(locs []*locator.Locator) *Server {
	s := &Server{
		byName:   make(map[string]int),
		locators: make(map[string]*locator.Locator, len(locs)),
	}
	for _, l := range locs {
		s.locators[l.Kind()] = l
		s.order = append(s.order, l.Kind())
	}
	addTools(s)
	return s
}

func (s *Server) registerTool(def toolDef) {
	s.byName[def.Name] = len(s.tools)
	s.tools = append(s.tools, def)
}

// Run serves until r reaches EOF or ctx is cancelled, whichever comes
// first. Both are clean shutdowns returning nil; only unexpected read
// failures surface as errors. A pump goroutine feeds lines through a
// channel so cancellation takes effect even while a read blocks.
func (s *Server) Run(ctx context.Context, r io.Reader, w io.Writer) error {
	out := bufio.NewWriter(w)

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			readErr <- err
		}
		close(lines)
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-readErr:
			return err
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if err := s.serveLine(line, out); err != nil {
				return err
			}
		}
	}
}

// serveLine decodes one request line and writes its response, if any.
func (s *Server) serveLine(line string, out *bufio.Writer) error {
	var req request
	if err := json.Unmarshal([]byte(line), &req); err != nil {
		// No id is recoverable from a line that does not parse.
		return s.write(out, response{
			JSONRPC: "2.0",
			Error:   &rpcError{Code: codeParseError, Message: "Parse error"},
		})
	}
	if req.ID == nil {
		// Notification.
		return nil
	}

	resp := response{JSONRPC: "2.0", ID: req.ID}
	switch req.Method {
	case "initialize":
		resp.Result = s.initializeResult()
	case "tools/list":
		resp.Result = s.listToolsResult()
	case "tools/call":
		s.callTool(req.Params, &resp)
	default:
		resp.Error = &rpcError{Code: codeMethodNotFound, Message: "Method not found"}
	}
	return s.write(out, resp)
}

func (s *Server) initializeResult() map[string]any {
	return map[string]any{
		"protocolVersion": protocolVersion,
		"capabilities": map[string]any{
			"tools": map[string]any{},
		},
		"serverInfo": map[string]any{
			"name":    "projscout",
			"version": "0.1.0",
		},
	}
}

func (s *Server) listToolsResult() map[string]any {
	infos := make([]toolInfo, 0, len(s.tools))
	for _, t := range s.tools {
		infos = append(infos, toolInfo{Name: t.Name, Description: t.Description, InputSchema: t.InputSchema})
	}
	return map[string]any{"tools": infos}
}

// callTool resolves and runs a tools/call request. Tool-level failures are
// reported inside the result with isError set rather than as JSON-RPC
// errors, so clients surface them to the model instead of dropping the
// call.
func (s *Server) callTool(params json.RawMessage, resp *response) {
	var call callParams
	if err := json.Unmarshal(params, &call); err != nil {
		resp.Error = &rpcError{Code: codeInvalidParams, Message: "Invalid params"}
		return
	}

	idx, ok := s.byName[call.Name]
	if !ok {
		resp.Result = errorResult(fmt.Sprintf("unknown tool: %s", call.Name))
		return
	}

	args := call.Arguments
	if args == nil {
		args = json.RawMessage(`{}`)
	}
	out, err := s.tools[idx].Handler(args)
	if err != nil {
		resp.Result = errorResult(err.Error())
		return
	}
	text, err := json.Marshal(out)
	if err != nil {
		resp.Result = errorResult(err.Error())
		return
	}
	resp.Result = textResult(string(text))
}

func textResult(text string) callResult {
	return callResult{Content: []contentItem{{Type: "text", Text: text}}}
}

func errorResult(text string) callResult {
	return callResult{Content: []contentItem{{Type: "text", Text: text}}, IsError: true}
}

// write emits resp as one JSON line and flushes.
func (s *Server) write(out *bufio.Writer, resp response) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	if _, err := out.Write(data); err != nil {
		return err
	}
	if err := out.WriteByte('\n'); err != nil {
		return err
	}
	return out.Flush()
}
