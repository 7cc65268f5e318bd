// Package dictgen builds .glide binary dictionaries from TSV word lists,
// the same format gesture.DictionaryStore consumes.
package dictgen

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/dettmer/glidetype/internal/gesture"
)

// Entry is one parsed TSV row awaiting encoding.
type Entry struct {
	Word      string
	Frequency uint32
	Flags     uint8
}

// ReadTSV parses word<TAB>frequency[<TAB>flags] lines from r. Blank lines
// and lines starting with '#' are skipped. The optional third column is a
// comma- or space-separated set of flag names ("proper", "profanity").
// Malformed lines are skipped, not fatal, matching gen_dict.py's behavior.
func ReadTSV(r io.Reader) ([]Entry, []string) {
	var entries []Entry
	var warnings []string

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Split(line, "\t")
		if len(parts) < 2 {
			warnings = append(warnings, fmt.Sprintf("line %d: expected 'word\\tfrequency', got %q", lineNum, line))
			continue
		}

		word := strings.TrimSpace(parts[0])
		if word == "" {
			warnings = append(warnings, fmt.Sprintf("line %d: empty word, skipping", lineNum))
			continue
		}
		if len(word) > gesture.MaxWordLength {
			warnings = append(warnings, fmt.Sprintf("line %d: word %q exceeds %d bytes, skipping", lineNum, word, gesture.MaxWordLength))
			continue
		}

		freqStr := strings.TrimSpace(parts[1])
		freq64, err := strconv.ParseInt(freqStr, 10, 64)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("line %d: invalid frequency %q", lineNum, freqStr))
			continue
		}
		if freq64 < 0 {
			warnings = append(warnings, fmt.Sprintf("line %d: negative frequency for %q, using 0", lineNum, word))
			freq64 = 0
		}
		if freq64 > int64(^uint32(0)) {
			warnings = append(warnings, fmt.Sprintf("line %d: frequency too large for %q, clamping", lineNum, word))
			freq64 = int64(^uint32(0))
		}

		var flags uint8
		if len(parts) >= 3 {
			flagStr := strings.ToLower(strings.TrimSpace(parts[2]))
			if strings.Contains(flagStr, "proper") {
				flags |= gesture.FlagProperNoun
			}
			if strings.Contains(flagStr, "profanity") {
				flags |= gesture.FlagProfanity
			}
		}

		entries = append(entries, Entry{Word: word, Frequency: uint32(freq64), Flags: flags})
	}

	return entries, warnings
}

// Options controls Encode's word normalization and ordering.
type Options struct {
	LanguageTag string
	Sort        bool
	// MarkProperNouns, when true, sets FlagProperNoun on words whose first
	// byte is an uppercase ASCII letter, then lowercases every word.
	// Otherwise every word is simply lowercased.
	MarkProperNouns bool
}

// Encode normalizes entries per opts, deduplicates by word (keeping the
// highest frequency), optionally sorts, and returns the binary .glide bytes.
func Encode(entries []Entry, opts Options) ([]byte, error) {
	if len(opts.LanguageTag) > gesture.DictHeaderSize-14 {
		return nil, fmt.Errorf("language tag %q exceeds %d bytes", opts.LanguageTag, gesture.DictHeaderSize-14)
	}

	normalized := make([]Entry, len(entries))
	for i, e := range entries {
		flags := e.Flags
		word := e.Word
		if opts.MarkProperNouns {
			if len(word) > 0 && word[0] >= 'A' && word[0] <= 'Z' {
				flags |= gesture.FlagProperNoun
			}
		}
		normalized[i] = Entry{Word: strings.ToLower(word), Frequency: e.Frequency, Flags: flags}
	}

	seen := make(map[string]Entry, len(normalized))
	order := make([]string, 0, len(normalized))
	for _, e := range normalized {
		existing, ok := seen[e.Word]
		if !ok {
			seen[e.Word] = e
			order = append(order, e.Word)
			continue
		}
		if e.Frequency > existing.Frequency {
			seen[e.Word] = e
		}
	}

	deduped := make([]Entry, 0, len(order))
	for _, w := range order {
		deduped = append(deduped, seen[w])
	}

	if opts.Sort {
		sort.Slice(deduped, func(i, j int) bool { return deduped[i].Word < deduped[j].Word })
	}

	return encodeGlide(deduped, opts)
}

func encodeGlide(entries []Entry, opts Options) ([]byte, error) {
	langBytes := []byte(opts.LanguageTag)

	var hdrFlags uint16
	if opts.Sort {
		hdrFlags |= 0x01
	}

	header := make([]byte, gesture.DictHeaderSize)
	binary.LittleEndian.PutUint32(header[0:4], gesture.DictMagic)
	binary.LittleEndian.PutUint16(header[4:6], gesture.DictVersion)
	binary.LittleEndian.PutUint16(header[6:8], hdrFlags)
	binary.LittleEndian.PutUint32(header[8:12], uint32(len(entries)))
	binary.LittleEndian.PutUint16(header[12:14], uint16(len(langBytes)))
	copy(header[14:14+len(langBytes)], langBytes)

	buf := make([]byte, 0, len(header)+len(entries)*8)
	buf = append(buf, header...)

	for _, e := range entries {
		wordBytes := []byte(e.Word)
		if len(wordBytes) > gesture.MaxWordLength {
			return nil, fmt.Errorf("word %q exceeds %d bytes", e.Word, gesture.MaxWordLength)
		}
		buf = append(buf, byte(len(wordBytes)))
		buf = append(buf, wordBytes...)
		var freqBuf [4]byte
		binary.LittleEndian.PutUint32(freqBuf[:], e.Frequency)
		buf = append(buf, freqBuf[:]...)
		buf = append(buf, e.Flags)
	}

	return buf, nil
}
