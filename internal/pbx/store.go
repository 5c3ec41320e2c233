// Package pbx reads, patches, and rewrites Xcode project description files
// (the pbxproj text format). The format is brace-delimited and segmented
// into sections by banner comments; the section schema is fixed and closed.
//
// There is deliberately no grammar here beyond brace counting: objects are
// kept as opaque text blocks and addressed by stable marker substrings. A
// full pbxproj grammar is undocumented and fragile, so every marker search
// and splice a caller needs is a method on Store; no caller performs raw
// text search independently.
package pbx

import (
	"bufio"
	"io"
	"strings"
)

// Section names a segment of the pbxproj schema.
type Section string

// The fixed section sequence of a pbxproj file. Content sections are
// delimited by "/* Begin <Name> section */" banners; the header and footer
// are the unbannered preamble and postamble.
const (
	SectionHeader               Section = "PBXHeader"
	SectionBuildFile            Section = "PBXBuildFile"
	SectionContainerItemProxy   Section = "PBXContainerItemProxy"
	SectionFileReference        Section = "PBXFileReference"
	SectionFrameworksBuildPhase Section = "PBXFrameworksBuildPhase"
	SectionGroup                Section = "PBXGroup"
	SectionNativeTarget         Section = "PBXNativeTarget"
	SectionProject              Section = "PBXProject"
	SectionReferenceProxy       Section = "PBXReferenceProxy"
	SectionResourcesBuildPhase  Section = "PBXResourcesBuildPhase"
	SectionSourcesBuildPhase    Section = "PBXSourcesBuildPhase"
	SectionBuildConfiguration   Section = "XCBuildConfiguration"
	SectionConfigurationList    Section = "XCConfigurationList"
	SectionFooter               Section = "PBXFooter"
)

// sequence is the closed schema order. Serialization never reorders it.
var sequence = []Section{
	SectionHeader,
	SectionBuildFile,
	SectionContainerItemProxy,
	SectionFileReference,
	SectionFrameworksBuildPhase,
	SectionGroup,
	SectionNativeTarget,
	SectionProject,
	SectionReferenceProxy,
	SectionResourcesBuildPhase,
	SectionSourcesBuildPhase,
	SectionBuildConfiguration,
	SectionConfigurationList,
	SectionFooter,
}

// Store holds a parsed pbxproj as an ordered list of opaque text blocks per
// section. Created fresh per generation run; not safe for concurrent use.
type Store struct {
	blocks map[Section][]string
}

// Sections returns the fixed schema order.
func Sections() []Section {
	out := make([]Section, len(sequence))
	copy(out, sequence)
	return out
}

func beginBanner(s Section) string {
	return "/* Begin " + string(s) + " section */"
}

func endBanner(s Section) string {
	return "/* End " + string(s) + " section */"
}

// braceParity returns the number of opening minus closing braces on the
// line. Braces are the sole nesting signal; braces inside quoted values are
// assumed not to occur in this format.
func braceParity(line string) int {
	return strings.Count(line, "{") - strings.Count(line, "}")
}

// Parse reads pbxproj text into a Store with a single left-to-right line
// scan. It fails with ErrMalformedSource (wrapped in a ParseError carrying
// the line number) if the brace depth ever goes negative; in that case no
// model is produced.
func Parse(r io.Reader) (*Store, error) {
	store := &Store{blocks: make(map[Section][]string, len(sequence))}

	index := 0
	var accum strings.Builder
	hasAccum := false
	depth := 0
	between := false
	lineNo := 0

	flush := func() {
		if hasAccum {
			store.blocks[sequence[index]] = append(store.blocks[sequence[index]], accum.String())
		}
		accum.Reset()
		hasAccum = false
	}

	reader := bufio.NewReader(r)
	for {
		line, readErr := reader.ReadString('\n')
		if line != "" {
			lineNo++
			section := sequence[index]

			advance := false
			if section != SectionFooter {
				advance = strings.Contains(line, beginBanner(sequence[index+1]))
			}
			complete := strings.Contains(line, endBanner(section))

			switch {
			case advance || (complete && index == len(sequence)-2):
				flush()
				index++
				depth = 0
				between = false
			case section == SectionHeader || section == SectionFooter:
				accum.WriteString(line)
				hasAccum = true
			case complete:
				if hasAccum && accum.String() != "\n" {
					flush()
					between = true
				}
			case !between:
				depth += braceParity(line)
				if depth < 0 {
					return nil, &ParseError{Line: lineNo, Section: section, Wrapped: ErrMalformedSource}
				}
				accum.WriteString(line)
				hasAccum = true
				if depth == 0 {
					if accum.String() == "\n" {
						accum.Reset()
						hasAccum = false
					} else {
						flush()
					}
				}
			}
		}

		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return nil, readErr
		}
	}

	// The footer has no closing banner; whatever accumulated belongs to it.
	flush()

	return store, nil
}

// WriteTo serializes the store back to pbxproj text: sections in fixed
// schema order, banner comments around every content section, blocks
// verbatim in stored order. Re-serializing an unmodified store reproduces
// byte-equivalent text for well-formed input.
func (s *Store) WriteTo(w io.Writer) (int64, error) {
	var total int64
	emit := func(text string) error {
		n, err := io.WriteString(w, text)
		total += int64(n)
		return err
	}

	for idx, section := range sequence {
		banner := section != SectionHeader && section != SectionFooter
		if banner {
			if err := emit(beginBanner(section) + "\n"); err != nil {
				return total, err
			}
		}
		for _, block := range s.blocks[section] {
			if err := emit(block); err != nil {
				return total, err
			}
		}
		if banner {
			// The blank line separating content sections is dropped by the
			// parser and re-synthesized here. After the last content section
			// the parser keeps all trailing whitespace inside the footer, so
			// no separator is added there.
			sep := "\n"
			if idx == len(sequence)-2 {
				sep = ""
			}
			if err := emit(endBanner(section) + "\n" + sep); err != nil {
				return total, err
			}
		}
	}
	return total, nil
}

// String serializes the store to a string.
func (s *Store) String() string {
	var b strings.Builder
	_, _ = s.WriteTo(&b)
	return b.String()
}

// Len returns the number of blocks in a section.
func (s *Store) Len(section Section) int {
	return len(s.blocks[section])
}

// Block returns the block text at position i of a section.
func (s *Store) Block(section Section, i int) string {
	return s.blocks[section][i]
}
