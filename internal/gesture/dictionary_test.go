package gesture_test

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/dettmer/glidetype/internal/dictgen"
	. "github.com/dettmer/glidetype/internal/gesture"
)

func encodeTestDict(t *testing.T) []byte {
	t.Helper()
	entries := []dictgen.Entry{
		{Word: "the", Frequency: 1_000_000},
		{Word: "and", Frequency: 800_000},
		{Word: "hello", Frequency: 50_000},
		{Word: "world", Frequency: 40_000},
		{Word: "Alice", Frequency: 10_000},
	}
	data, err := dictgen.Encode(entries, dictgen.Options{LanguageTag: "en-US", MarkProperNouns: true})
	if err != nil {
		t.Fatalf("failed to encode test dictionary: %v", err)
	}
	return data
}

func TestLoadFromMemoryParsesEntriesAndHeader(t *testing.T) {
	d := NewDictionaryStore()
	if !d.LoadFromMemory(encodeTestDict(t)) {
		t.Fatalf("expected load to succeed, got error: %+v", d.LastError())
	}
	if !d.IsLoaded() {
		t.Fatalf("expected store to report loaded")
	}
	if d.EntryCount() != 5 {
		t.Fatalf("expected 5 entries, got %d", d.EntryCount())
	}
	if d.Header().LanguageTag != "en-US" {
		t.Fatalf("expected language tag en-US, got %q", d.Header().LanguageTag)
	}
	if d.MaxFrequency() != 1_000_000 {
		t.Fatalf("expected max frequency 1000000, got %d", d.MaxFrequency())
	}
}

func TestLoadReadsFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.glide")
	if err := os.WriteFile(path, encodeTestDict(t), 0o644); err != nil {
		t.Fatalf("failed to write test dictionary: %v", err)
	}
	d := NewDictionaryStore()
	if !d.Load(path) {
		t.Fatalf("expected load to succeed, got error: %+v", d.LastError())
	}
	if d.EntryCount() != 5 {
		t.Fatalf("expected 5 entries, got %d", d.EntryCount())
	}
}

func TestLoadMissingFileSetsNotFoundError(t *testing.T) {
	d := NewDictionaryStore()
	if d.Load(filepath.Join(t.TempDir(), "missing.glide")) {
		t.Fatalf("expected load of a missing file to fail")
	}
	if d.LastError().Code != ErrDictNotFound {
		t.Fatalf("expected ErrDictNotFound, got %v", d.LastError().Code)
	}
	if d.IsLoaded() {
		t.Fatalf("expected store to remain unloaded")
	}
}

func TestLoadFromMemoryRejectsTooSmallData(t *testing.T) {
	d := NewDictionaryStore()
	if d.LoadFromMemory([]byte{1, 2, 3}) {
		t.Fatalf("expected load to fail for undersized data")
	}
	if d.LastError().Code != ErrDictCorrupt {
		t.Fatalf("expected ErrDictCorrupt, got %v", d.LastError().Code)
	}
}

func TestLoadFromMemoryRejectsBadMagic(t *testing.T) {
	data := encodeTestDict(t)
	corrupted := append([]byte(nil), data...)
	binary.LittleEndian.PutUint32(corrupted[0:4], 0xDEADBEEF)

	d := NewDictionaryStore()
	if d.LoadFromMemory(corrupted) {
		t.Fatalf("expected load to fail for bad magic")
	}
	if d.LastError().Code != ErrDictCorrupt {
		t.Fatalf("expected ErrDictCorrupt, got %v", d.LastError().Code)
	}
}

func TestLoadFromMemoryRejectsVersionMismatch(t *testing.T) {
	data := encodeTestDict(t)
	corrupted := append([]byte(nil), data...)
	binary.LittleEndian.PutUint16(corrupted[4:6], DictVersion+1)

	d := NewDictionaryStore()
	if d.LoadFromMemory(corrupted) {
		t.Fatalf("expected load to fail for version mismatch")
	}
	if d.LastError().Code != ErrDictVersionMismatch {
		t.Fatalf("expected ErrDictVersionMismatch, got %v", d.LastError().Code)
	}
}

func TestLoadFromMemoryRejectsTruncatedEntry(t *testing.T) {
	data := encodeTestDict(t)
	truncated := data[:len(data)-2]

	d := NewDictionaryStore()
	if d.LoadFromMemory(truncated) {
		t.Fatalf("expected load to fail for truncated entry data")
	}
	if d.LastError().Code != ErrDictCorrupt {
		t.Fatalf("expected ErrDictCorrupt, got %v", d.LastError().Code)
	}
}

func TestUnloadClearsState(t *testing.T) {
	d := NewDictionaryStore()
	d.LoadFromMemory(encodeTestDict(t))
	d.Unload()
	if d.IsLoaded() {
		t.Fatalf("expected store to be unloaded")
	}
	if d.EntryCount() != 0 {
		t.Fatalf("expected 0 entries after unload, got %d", d.EntryCount())
	}
	if len(d.AllEntries()) != 0 {
		t.Fatalf("expected no entries returned after unload")
	}
}

func TestLookupIsCaseInsensitive(t *testing.T) {
	d := NewDictionaryStore()
	d.LoadFromMemory(encodeTestDict(t))

	entry, ok := d.Lookup("HELLO")
	if !ok {
		t.Fatalf("expected lookup of 'HELLO' to succeed")
	}
	if entry.Word != "hello" || entry.Frequency != 50_000 {
		t.Fatalf("unexpected entry: %+v", entry)
	}

	if _, ok := d.Lookup("nonexistent"); ok {
		t.Fatalf("expected lookup of an absent word to fail")
	}
}

func TestEntriesStartingWithFiltersCaseInsensitively(t *testing.T) {
	d := NewDictionaryStore()
	d.LoadFromMemory(encodeTestDict(t))

	entries := d.EntriesStartingWith('A')
	if len(entries) != 2 || entries[0].Word != "and" || entries[1].Word != "alice" {
		t.Fatalf("expected 'and' and 'alice' to match prefix 'A', got %+v", entries)
	}
}

func TestEntriesWithStartEndMatchesBothEnds(t *testing.T) {
	d := NewDictionaryStore()
	d.LoadFromMemory(encodeTestDict(t))

	entries := d.EntriesWithStartEnd('t', 'e')
	if len(entries) != 1 || entries[0].Word != "the" {
		t.Fatalf("expected only 'the' to match start 't' end 'e', got %+v", entries)
	}

	if entries := d.EntriesWithStartEnd('z', 'z'); len(entries) != 0 {
		t.Fatalf("expected no matches for start/end 'z', got %+v", entries)
	}
}

func TestProperNounFlagIsSetForCapitalizedWords(t *testing.T) {
	d := NewDictionaryStore()
	d.LoadFromMemory(encodeTestDict(t))

	entry, ok := d.Lookup("alice")
	if !ok {
		t.Fatalf("expected lookup of 'alice' to succeed")
	}
	if entry.Flags&FlagProperNoun == 0 {
		t.Fatalf("expected proper noun flag to be set for 'Alice', got flags=%d", entry.Flags)
	}
}

func TestQueriesOnUnloadedStoreReturnEmpty(t *testing.T) {
	d := NewDictionaryStore()
	if _, ok := d.Lookup("the"); ok {
		t.Fatalf("expected lookup on unloaded store to fail")
	}
	if entries := d.EntriesStartingWith('t'); entries != nil {
		t.Fatalf("expected nil entries from unloaded store, got %+v", entries)
	}
	if entries := d.AllEntries(); entries != nil {
		t.Fatalf("expected nil entries from unloaded store, got %+v", entries)
	}
}
