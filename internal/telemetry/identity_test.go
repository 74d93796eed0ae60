package telemetry

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeKeyMap(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	authDir := filepath.Join(dir, "auth")
	if err := os.MkdirAll(authDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(authDir, "userKeyMap.json"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestFileIdentityResolvesFirstEntry(t *testing.T) {
	// Entries visit in sorted key order, so "alpha" wins over "beta".
	dir := writeKeyMap(t, `{
		"beta":  {"user": {"accountAddress": "0xbeef"}},
		"alpha": {"user": {"accountAddress": "0xabc"}}
	}`)

	id := &FileIdentity{DataDir: dir}
	if got := id.UserID(context.Background()); got != "0xabc" {
		t.Errorf("want 0xabc, got %s", got)
	}
}

func TestFileIdentitySkipsEmptyAddresses(t *testing.T) {
	dir := writeKeyMap(t, `{
		"alpha": {"user": {"accountAddress": ""}},
		"beta":  {"user": {"accountAddress": "0xbeef"}}
	}`)

	id := &FileIdentity{DataDir: dir}
	if got := id.UserID(context.Background()); got != "0xbeef" {
		t.Errorf("want 0xbeef, got %s", got)
	}
}

func TestFileIdentityUnknownCases(t *testing.T) {
	cases := []struct {
		name string
		dir  func(t *testing.T) string
	}{
		{"missing file", func(t *testing.T) string { return t.TempDir() }},
		{"malformed json", func(t *testing.T) string { return writeKeyMap(t, `{"alpha": [`) }},
		{"empty map", func(t *testing.T) string { return writeKeyMap(t, `{}`) }},
		{"all addresses empty", func(t *testing.T) string {
			return writeKeyMap(t, `{"k": {"user": {"accountAddress": ""}}}`)
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			id := &FileIdentity{DataDir: tc.dir(t)}
			if got := id.UserID(context.Background()); got != UnknownUser {
				t.Errorf("want %q, got %q", UnknownUser, got)
			}
		})
	}
}
