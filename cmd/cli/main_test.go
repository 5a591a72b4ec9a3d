package main

import (
	"bytes"
	"io"
	"os"
	"testing"
)

func captureOutput(t *testing.T, fn func()) string {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = origStdout

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		t.Fatalf("failed to read stdout: %v", err)
	}
	return buf.String()
}

func TestPrintJSON_Indents(t *testing.T) {
	out := captureOutput(t, func() {
		printJSON([]byte(`{"a":1}`), 200)
	})

	expected := "{\n  \"a\": 1\n}\n"
	if out != expected {
		t.Fatalf("unexpected json output:\n%s", out)
	}
}

func TestPrintJSON_NonJSONPassthrough(t *testing.T) {
	out := captureOutput(t, func() {
		printJSON([]byte("plain body"), 204)
	})

	if out != "plain body\n" {
		t.Fatalf("unexpected output: %q", out)
	}
}
