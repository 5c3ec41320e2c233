package pbx

import (
	"fmt"
	"strings"
)

// listIndent is the indentation of entries inside a list-valued property.
const listIndent = "\n\t\t\t\t"

// FindBlocks returns the positions of every block in the section whose text
// contains the marker substring. Objects are addressed by stable marker
// text, never by parsed fields.
func (s *Store) FindBlocks(section Section, marker string) []int {
	var positions []int
	for i, block := range s.blocks[section] {
		if strings.Contains(block, marker) {
			positions = append(positions, i)
		}
	}
	return positions
}

// AppendBlock adds a new object block at the end of the section.
func (s *Store) AppendBlock(section Section, text string) {
	s.blocks[section] = append(s.blocks[section], text)
}

// RemoveBlocks deletes the blocks at the given positions. Positions outside
// the section are ignored; the relative order of the survivors is kept.
func (s *Store) RemoveBlocks(section Section, positions []int) {
	if len(positions) == 0 {
		return
	}
	drop := make(map[int]struct{}, len(positions))
	for _, p := range positions {
		drop[p] = struct{}{}
	}
	kept := s.blocks[section][:0]
	for i, block := range s.blocks[section] {
		if _, gone := drop[i]; !gone {
			kept = append(kept, block)
		}
	}
	s.blocks[section] = kept
}

// SpliceListEntries inserts newline-indented entries into the list-valued
// property opened by `anchor + " = ("` in the block at position i,
// immediately after the anchor line and before any existing list content.
// This is the one generalized primitive for "append N items to a list
// property"; asset, source, and group membership lists all go through it.
// Entries must not be pre-indented.
func (s *Store) SpliceListEntries(section Section, i int, anchor string, entries []string) error {
	if len(entries) == 0 {
		return nil
	}
	block := s.blocks[section][i]

	open := strings.Index(block, anchor+" = (")
	if open < 0 {
		return fmt.Errorf("%w: %q in %s block %d", ErrAnchorNotFound, anchor, section, i)
	}
	eol := strings.IndexByte(block[open:], '\n')
	if eol < 0 {
		return fmt.Errorf("%w: %q in %s block %d", ErrAnchorNotFound, anchor, section, i)
	}
	eol += open

	children := listIndent + strings.Join(entries, listIndent)
	s.blocks[section][i] = block[:eol] + children + block[eol:]
	return nil
}

// ReplaceInSection performs a literal substring replacement across every
// block of the section and returns the number of blocks touched.
func (s *Store) ReplaceInSection(section Section, old, new string) int {
	touched := 0
	for i, block := range s.blocks[section] {
		if strings.Contains(block, old) {
			s.blocks[section][i] = strings.ReplaceAll(block, old, new)
			touched++
		}
	}
	return touched
}

// ReplaceEverywhere performs a literal substring replacement across all
// sections, header and footer included.
func (s *Store) ReplaceEverywhere(old, new string) {
	for _, section := range sequence {
		s.ReplaceInSection(section, old, new)
	}
}

// RewriteLines replaces every line containing marker, in every block of the
// section, with the replacement line (which must carry its own
// indentation). Returns the number of lines rewritten. Used for single-line
// "KEY = value;" build settings such as orientation flags.
func (s *Store) RewriteLines(section Section, marker, replacement string) int {
	rewritten := 0
	for i, block := range s.blocks[section] {
		lines := strings.Split(block, "\n")
		changed := false
		for j, line := range lines {
			if strings.Contains(line, marker) {
				lines[j] = replacement
				changed = true
				rewritten++
			}
		}
		if changed {
			s.blocks[section][i] = strings.Join(lines, "\n")
		}
	}
	return rewritten
}

// RewriteField rewrites `field = <anything>;` to `field = value;` inside
// every block of the section containing blockMarker. The terminating
// semicolon is preserved.
func (s *Store) RewriteField(section Section, blockMarker, field, value string) {
	for _, i := range s.FindBlocks(section, blockMarker) {
		block := s.blocks[section][i]
		start := strings.Index(block, field)
		if start < 0 {
			continue
		}
		end := strings.IndexByte(block[start:], ';')
		if end < 0 {
			continue
		}
		end += start
		s.blocks[section][i] = block[:start] + field + " = " + value + block[end:]
	}
}

// RefPreceding returns the trimmed token occupying the line up to marker in
// the first block of the section containing blockMarker. Build phases are
// referenced as `<identifier> /* Sources */` inside native target blocks;
// this recovers the identifier for a given phase comment.
func (s *Store) RefPreceding(section Section, blockMarker, marker string) (string, bool) {
	for _, i := range s.FindBlocks(section, blockMarker) {
		block := s.blocks[section][i]
		pos := strings.Index(block, marker)
		if pos < 0 {
			continue
		}
		start := strings.LastIndexByte(block[:pos], '\n')
		return strings.TrimSpace(block[start+1 : pos]), true
	}
	return "", false
}
