package sqlite

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestJSONL_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.jsonl")

	records := []json.RawMessage{
		json.RawMessage(`{"name":"rice","quantity":3}`),
		json.RawMessage(`{"name":"soap","quantity":1}`),
	}
	if err := writeJSONL(path, records); err != nil {
		t.Fatalf("writeJSONL failed: %v", err)
	}

	got, err := readJSONL(path)
	if err != nil {
		t.Fatalf("readJSONL failed: %v", err)
	}
	if len(got) != len(records) {
		t.Fatalf("expected %d records, got %d", len(records), len(got))
	}
	for i := range records {
		if string(got[i]) != string(records[i]) {
			t.Errorf("record %d: expected %s, got %s", i, records[i], got[i])
		}
	}
}

func TestJSONL_WriteEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.jsonl")

	if err := writeJSONL(path, nil); err != nil {
		t.Fatalf("writeJSONL failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading file: %v", err)
	}
	if len(data) != 0 {
		t.Errorf("expected empty file, got %d bytes", len(data))
	}
}

func TestJSONL_WriteReplacesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.jsonl")
	if err := os.WriteFile(path, []byte("old contents\n"), 0o644); err != nil {
		t.Fatalf("seeding file: %v", err)
	}

	if err := writeJSONL(path, []json.RawMessage{json.RawMessage(`{"v":1}`)}); err != nil {
		t.Fatalf("writeJSONL failed: %v", err)
	}

	got, err := readJSONL(path)
	if err != nil {
		t.Fatalf("readJSONL failed: %v", err)
	}
	if len(got) != 1 || string(got[0]) != `{"v":1}` {
		t.Errorf("expected replaced contents, got %v", got)
	}

	// No temp files left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("reading dir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only the target file in dir, found %d entries", len(entries))
	}
}

func TestJSONL_ReadSkipsMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.jsonl")
	content := "{\"ok\":1}\n\nnot json at all\n{\"ok\":2}\n{\"truncated\": \n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("seeding file: %v", err)
	}

	got, err := readJSONL(path)
	if err != nil {
		t.Fatalf("readJSONL failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 valid records, got %d", len(got))
	}
	if string(got[0]) != `{"ok":1}` || string(got[1]) != `{"ok":2}` {
		t.Errorf("unexpected records: %s, %s", got[0], got[1])
	}
}

func TestJSONL_ReadMissingFile(t *testing.T) {
	if _, err := readJSONL(filepath.Join(t.TempDir(), "absent.jsonl")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestInitJSONLFiles(t *testing.T) {
	dir := t.TempDir()

	// Pre-existing contents must survive.
	existing := filepath.Join(dir, itemsFile)
	if err := os.WriteFile(existing, []byte(`{"name":"rice"}`+"\n"), 0o644); err != nil {
		t.Fatalf("seeding %s: %v", itemsFile, err)
	}

	if err := initJSONLFiles(dir); err != nil {
		t.Fatalf("initJSONLFiles failed: %v", err)
	}

	for _, name := range jsonlFiles {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("%s not present: %v", name, err)
		}
	}
	data, err := os.ReadFile(existing)
	if err != nil {
		t.Fatalf("reading %s: %v", itemsFile, err)
	}
	if string(data) != `{"name":"rice"}`+"\n" {
		t.Errorf("existing file overwritten: %q", data)
	}
}
