package lsp

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"

	lsp "github.com/sourcegraph/go-lsp"
	"github.com/sourcegraph/jsonrpc2"
	"src.litecode.dev/pkg/diag"
	"src.litecode.dev/pkg/eval"
	"src.litecode.dev/pkg/eval/vals"
	"src.litecode.dev/pkg/expr"
	"src.litecode.dev/pkg/parse"
)

var (
	errMethodNotFound = &jsonrpc2.Error{
		Code: jsonrpc2.CodeMethodNotFound, Message: "method not found"}
	errInvalidParams = &jsonrpc2.Error{
		Code: jsonrpc2.CodeInvalidParams, Message: "invalid params"}
)

type server struct {
	subst eval.Substitution

	mu      sync.Mutex
	content map[lsp.DocumentURI]string
}

func newServer(s eval.Substitution) *server {
	return &server{subst: s, content: make(map[lsp.DocumentURI]string)}
}

func handler(s *server) jsonrpc2.Handler {
	return routingHandler(map[string]method{
		"initialize":              s.initialize,
		"textDocument/didOpen":    s.didOpen,
		"textDocument/didChange":  s.didChange,
		"textDocument/hover":      s.hover,
		"textDocument/completion": s.completion,

		"textDocument/didClose": s.didClose,
		// Required by spec.
		"initialized": noop,
		// Called by clients even when server doesn't advertise support:
		// https://microsoft.github.io/language-server-protocol/specification#workspace_didChangeWatchedFiles
		"workspace/didChangeWatchedFiles": noop,
	})
}

type method func(context.Context, jsonrpc2.JSONRPC2, json.RawMessage) (any, error)

func noop(_ context.Context, _ jsonrpc2.JSONRPC2, _ json.RawMessage) (any, error) {
	return nil, nil
}

func routingHandler(methods map[string]method) jsonrpc2.Handler {
	return jsonrpc2.HandlerWithError(func(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (any, error) {
		logger.Println("request", req.Method)
		fn, ok := methods[req.Method]
		if !ok {
			return nil, errMethodNotFound
		}
		var params json.RawMessage
		if req.Params != nil {
			params = *req.Params
		}
		return fn(ctx, conn, params)
	})
}

func (s *server) getContent(uri lsp.DocumentURI) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.content[uri]
}

func (s *server) setContent(uri lsp.DocumentURI, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.content[uri] = content
}

// Handler implementations. These are all called synchronously.

func (s *server) initialize(_ context.Context, _ jsonrpc2.JSONRPC2, _ json.RawMessage) (any, error) {
	return &lsp.InitializeResult{
		Capabilities: lsp.ServerCapabilities{
			TextDocumentSync: &lsp.TextDocumentSyncOptionsOrKind{
				Options: &lsp.TextDocumentSyncOptions{
					OpenClose: true,
					Change:    lsp.TDSKFull,
				},
			},
			CompletionProvider: &lsp.CompletionOptions{},
			HoverProvider:      true,
		},
	}, nil
}

func (s *server) didOpen(ctx context.Context, conn jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.DidOpenTextDocumentParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}

	uri, content := params.TextDocument.URI, params.TextDocument.Text
	s.setContent(uri, content)
	go s.publishDiagnostics(ctx, conn, uri, content)
	return nil, nil
}

func (s *server) didChange(ctx context.Context, conn jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.DidChangeTextDocumentParams
	if json.Unmarshal(rawParams, &params) != nil || len(params.ContentChanges) == 0 {
		return nil, errInvalidParams
	}

	// ContentChanges includes full text since the server is only advertised to
	// support that; see the initialize method.
	uri, content := params.TextDocument.URI, params.ContentChanges[0].Text
	s.setContent(uri, content)
	go s.publishDiagnostics(ctx, conn, uri, content)
	return nil, nil
}

func (s *server) didClose(_ context.Context, _ jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.DidCloseTextDocumentParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.content, params.TextDocument.URI)
	return nil, nil
}

func (s *server) hover(_ context.Context, _ jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.TextDocumentPositionParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}

	src := parse.Source{Name: string(params.TextDocument.URI), Code: s.getContent(params.TextDocument.URI)}
	lines := src.Lines()
	if params.Position.Line < 0 || params.Position.Line >= len(lines) {
		return nil, nil
	}
	line := lines[params.Position.Line]
	from, to := wordAt(line, byteIndex(line, params.Position.Character))
	if from == to {
		return nil, nil
	}
	name := line[from:to]
	r := lspRange(line, params.Position.Line, diag.Ranging{From: from, To: to})

	env, _, _ := eval.CheckUpto(src, params.Position.Line, s.subst)
	if v, ok := env.Get(name); ok {
		return &lsp.Hover{
			Contents: []lsp.MarkedString{lsp.RawMarkedString(
				fmt.Sprintf("%s: %s = %s", name, vals.Kind(v), vals.Repr(v)))},
			Range: &r,
		}, nil
	}
	if isBuiltin(name) {
		return &lsp.Hover{
			Contents: []lsp.MarkedString{lsp.RawMarkedString(name + ": builtin function")},
			Range:    &r,
		}, nil
	}
	return nil, nil
}

var (
	keywords  = []string{"let", "be", "a", "an", "display", "and", "or", "not", "True", "False"}
	typeNames = []string{vals.String, vals.Integer, vals.Float}
)

func (s *server) completion(_ context.Context, _ jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.CompletionParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}

	src := parse.Source{Name: string(params.TextDocument.URI), Code: s.getContent(params.TextDocument.URI)}
	lines := src.Lines()
	lineNo := params.Position.Line
	items := []lsp.CompletionItem{}
	if lineNo < 0 || lineNo > len(lines) {
		return items, nil
	}
	line := ""
	if lineNo < len(lines) {
		line = lines[lineNo]
	}
	dot := byteIndex(line, params.Position.Character)
	from, _ := wordAt(line, dot)
	seed := line[from:dot]
	replace := lspRange(line, lineNo, diag.Ranging{From: from, To: dot})

	add := func(kind lsp.CompletionItemKind, detail string, names ...string) {
		for _, name := range names {
			if strings.HasPrefix(name, seed) {
				items = append(items, lsp.CompletionItem{
					Label: name, Kind: kind, Detail: detail,
					TextEdit: &lsp.TextEdit{Range: replace, NewText: name},
				})
			}
		}
	}
	add(lsp.CIKKeyword, "keyword", keywords...)
	add(lsp.CIKClass, "type", typeNames...)
	add(lsp.CIKFunction, "builtin function", expr.Builtins()...)
	env, _, _ := eval.CheckUpto(src, lineNo, s.subst)
	names := env.Names()
	sort.Strings(names)
	add(lsp.CIKVariable, "variable", names...)
	return items, nil
}

func (s *server) publishDiagnostics(ctx context.Context, conn jsonrpc2.JSONRPC2, uri lsp.DocumentURI, content string) {
	conn.Notify(ctx, "textDocument/publishDiagnostics",
		lsp.PublishDiagnosticsParams{URI: uri, Diagnostics: diagnostics(uri, content, s.subst)})
}

func diagnostics(uri lsp.DocumentURI, content string, s eval.Substitution) []lsp.Diagnostic {
	src := parse.Source{Name: string(uri), Code: content}
	_, parseErr, runErr := eval.Check(src, s)

	diags := []lsp.Diagnostic{}
	for _, err := range diag.UnpackErrors[parse.ErrorTag](parseErr) {
		diags = append(diags, lsp.Diagnostic{
			Range:    lspRange(err.Context.Source, err.Context.Line-1, err.Range()),
			Severity: lsp.Error,
			Source:   "parse",
			Message:  err.Message,
		})
	}
	if err, ok := runErr.(*eval.Error); ok {
		diags = append(diags, lsp.Diagnostic{
			Range:    lspRange(err.Context.Source, err.Line-1, err.Range()),
			Severity: lsp.Error,
			Source:   "eval",
			Message:  err.Reason(),
		})
	}
	return diags
}

func isBuiltin(name string) bool {
	for _, b := range expr.Builtins() {
		if b == name {
			return true
		}
	}
	return false
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// Returns the byte range of the word containing or ending at idx.
func wordAt(line string, idx int) (from, to int) {
	from, to = idx, idx
	for from > 0 {
		r, size := utf8.DecodeLastRuneInString(line[:from])
		if !isWordRune(r) {
			break
		}
		from -= size
	}
	for to < len(line) {
		r, size := utf8.DecodeRuneInString(line[to:])
		if !isWordRune(r) {
			break
		}
		to += size
	}
	return from, to
}

// Converts a byte range within line number lineNo (0-based) to an LSP range.
func lspRange(line string, lineNo int, r diag.Ranging) lsp.Range {
	return lsp.Range{
		Start: lsp.Position{Line: lineNo, Character: utf16Len(line[:r.From])},
		End:   lsp.Position{Line: lineNo, Character: utf16Len(line[:r.To])},
	}
}

func utf16Len(s string) int {
	return len(utf16.Encode([]rune(s)))
}

// Converts a character offset in UTF-16 units to a byte index in line,
// clamped to the length of line.
func byteIndex(line string, character int) int {
	n := 0
	for i, r := range line {
		if n >= character {
			return i
		}
		n += len(utf16.Encode([]rune{r}))
	}
	return len(line)
}
