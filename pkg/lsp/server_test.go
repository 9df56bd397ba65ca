package lsp

import (
	"context"
	"encoding/json"
	"net"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	lsp "github.com/sourcegraph/go-lsp"
	"github.com/sourcegraph/jsonrpc2"
	"src.litecode.dev/pkg/eval"
	. "src.litecode.dev/pkg/tt"
)

const testURI = lsp.DocumentURI("file:///a.lc")

type testClient struct {
	conn        *jsonrpc2.Conn
	diagnostics chan lsp.PublishDiagnosticsParams
}

func setup(t *testing.T) *testClient {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	serverSide, clientSide := net.Pipe()

	serverConn := jsonrpc2.NewConn(ctx,
		jsonrpc2.NewBufferedStream(serverSide, jsonrpc2.VSCodeObjectCodec{}),
		handler(newServer(eval.ExactSubstitution)))
	t.Cleanup(func() { serverConn.Close() })

	c := &testClient{diagnostics: make(chan lsp.PublishDiagnosticsParams, 10)}
	c.conn = jsonrpc2.NewConn(ctx,
		jsonrpc2.NewBufferedStream(clientSide, jsonrpc2.VSCodeObjectCodec{}),
		jsonrpc2.HandlerWithError(func(_ context.Context, _ *jsonrpc2.Conn, req *jsonrpc2.Request) (any, error) {
			if req.Method == "textDocument/publishDiagnostics" {
				var params lsp.PublishDiagnosticsParams
				json.Unmarshal(*req.Params, &params)
				c.diagnostics <- params
			}
			return nil, nil
		}))
	t.Cleanup(func() { c.conn.Close() })
	return c
}

func (c *testClient) call(t *testing.T, method string, params, result any) {
	t.Helper()
	if err := c.conn.Call(context.Background(), method, params, result); err != nil {
		t.Fatalf("call %s: %v", method, err)
	}
}

func (c *testClient) open(t *testing.T, text string) {
	t.Helper()
	c.call(t, "textDocument/didOpen", lsp.DidOpenTextDocumentParams{
		TextDocument: lsp.TextDocumentItem{URI: testURI, Text: text}}, nil)
}

func (c *testClient) nextDiagnostics(t *testing.T) []lsp.Diagnostic {
	t.Helper()
	select {
	case params := <-c.diagnostics:
		if params.URI != testURI {
			t.Errorf("diagnostics for %v, want %v", params.URI, testURI)
		}
		return params.Diagnostics
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for diagnostics")
		return nil
	}
}

func rng(line, from, to int) lsp.Range {
	return lsp.Range{
		Start: lsp.Position{Line: line, Character: from},
		End:   lsp.Position{Line: line, Character: to}}
}

func TestInitialize(t *testing.T) {
	c := setup(t)
	var result lsp.InitializeResult
	c.call(t, "initialize", lsp.InitializeParams{}, &result)
	if !result.Capabilities.HoverProvider || result.Capabilities.CompletionProvider == nil {
		t.Errorf("capabilities %+v missing hover or completion", result.Capabilities)
	}
}

func TestUnknownMethod(t *testing.T) {
	c := setup(t)
	err := c.conn.Call(context.Background(), "nonsense", nil, nil)
	if rpcErr, ok := err.(*jsonrpc2.Error); !ok || rpcErr.Code != jsonrpc2.CodeMethodNotFound {
		t.Errorf("got error %v, want method not found", err)
	}
}

func TestDiagnostics(t *testing.T) {
	c := setup(t)

	c.open(t, "let a be 1\n  huh\nb = 2\n")
	want := []lsp.Diagnostic{
		{Range: rng(1, 2, 5), Severity: lsp.Error, Source: "parse", Message: "unrecognized statement"},
		{Range: rng(2, 0, 1), Severity: lsp.Error, Source: "eval",
			Message: "variable 'b' not declared before assignment"},
	}
	if got := c.nextDiagnostics(t); !cmp.Equal(got, want) {
		t.Errorf("diagnostics (-want +got):\n%s", cmp.Diff(want, got))
	}

	c.call(t, "textDocument/didChange", lsp.DidChangeTextDocumentParams{
		TextDocument:   lsp.VersionedTextDocumentIdentifier{TextDocumentIdentifier: lsp.TextDocumentIdentifier{URI: testURI}},
		ContentChanges: []lsp.TextDocumentContentChangeEvent{{Text: "let a be 1\na = a +\n"}},
	}, nil)
	want = []lsp.Diagnostic{
		{Range: rng(1, 7, 7), Severity: lsp.Error, Source: "eval",
			Message: "invalid expression: a + (unexpected end of expression)"},
	}
	if got := c.nextDiagnostics(t); !cmp.Equal(got, want) {
		t.Errorf("diagnostics (-want +got):\n%s", cmp.Diff(want, got))
	}

	c.call(t, "textDocument/didChange", lsp.DidChangeTextDocumentParams{
		TextDocument:   lsp.VersionedTextDocumentIdentifier{TextDocumentIdentifier: lsp.TextDocumentIdentifier{URI: testURI}},
		ContentChanges: []lsp.TextDocumentContentChangeEvent{{Text: "let a be 1\n"}},
	}, nil)
	if got := c.nextDiagnostics(t); len(got) != 0 {
		t.Errorf("got diagnostics %v, want none", got)
	}
}

func TestHover(t *testing.T) {
	c := setup(t)
	c.open(t, "let a be 1\na = a + 1\ndisplay(\"(%var1)\", a)\nb = abs(a)\n")
	c.nextDiagnostics(t)

	hover := func(line, char int) *lsp.Hover {
		var h *lsp.Hover
		c.call(t, "textDocument/hover", lsp.TextDocumentPositionParams{
			TextDocument: lsp.TextDocumentIdentifier{URI: testURI},
			Position:     lsp.Position{Line: line, Character: char}}, &h)
		return h
	}

	// Values are those from the lines above.
	if h := hover(1, 0); h == nil || h.Contents[0].Value != "a: Integer = 1" || *h.Range != rng(1, 0, 1) {
		t.Errorf("hover on line 2 -> %+v", h)
	}
	if h := hover(2, 19); h == nil || h.Contents[0].Value != "a: Integer = 2" {
		t.Errorf("hover on line 3 -> %+v", h)
	}
	if h := hover(3, 5); h == nil || h.Contents[0].Value != "abs: builtin function" {
		t.Errorf("hover on builtin -> %+v", h)
	}
	if h := hover(3, 0); h != nil {
		t.Errorf("hover on undeclared variable -> %+v, want nil", h)
	}
	if h := hover(10, 0); h != nil {
		t.Errorf("hover beyond the end -> %+v, want nil", h)
	}
	if h := hover(-1, 0); h != nil {
		t.Errorf("hover on a negative line -> %+v, want nil", h)
	}
}

func TestCompletion(t *testing.T) {
	c := setup(t)
	c.open(t, "let apple be 1\nlet banana be 2\nx = a\n")
	c.nextDiagnostics(t)

	var items []lsp.CompletionItem
	c.call(t, "textDocument/completion", lsp.CompletionParams{
		TextDocumentPositionParams: lsp.TextDocumentPositionParams{
			TextDocument: lsp.TextDocumentIdentifier{URI: testURI},
			Position:     lsp.Position{Line: 2, Character: 5}}}, &items)

	var labels []string
	for _, item := range items {
		labels = append(labels, item.Label)
		if item.TextEdit == nil || item.TextEdit.Range != rng(2, 4, 5) {
			t.Errorf("item %s has text edit %+v", item.Label, item.TextEdit)
		}
	}
	want := []string{"a", "an", "and", "abs", "apple"}
	if !cmp.Equal(labels, want) {
		t.Errorf("labels (-want +got):\n%s", cmp.Diff(want, labels))
	}

	items = nil
	c.call(t, "textDocument/completion", lsp.CompletionParams{
		TextDocumentPositionParams: lsp.TextDocumentPositionParams{
			TextDocument: lsp.TextDocumentIdentifier{URI: testURI},
			Position:     lsp.Position{Line: -1, Character: 0}}}, &items)
	if len(items) != 0 {
		t.Errorf("completion on a negative line -> %d items, want none", len(items))
	}
}

func TestPositionConversion(t *testing.T) {
	Test(t, Fn("byteIndex", byteIndex), Table{
		Args("abc", 0).Rets(0),
		Args("abc", 2).Rets(2),
		Args("abc", 10).Rets(3),
		Args("é=1", 1).Rets(2),
		Args("😀x", 2).Rets(4),
	})
	Test(t, Fn("utf16Len", utf16Len), Table{
		Args("").Rets(0),
		Args("é").Rets(1),
		Args("😀").Rets(2),
	})
	Test(t, Fn("wordAt", wordAt), Table{
		Args("x = abc + 1", 5).Rets(4, 7),
		Args("x = abc + 1", 7).Rets(4, 7),
		Args("x = abc + 1", 8).Rets(8, 8),
		Args("", 0).Rets(0, 0),
		Args("café = 1", 2).Rets(0, 5),
		Args("x = café", 9).Rets(4, 9),
	})
}
