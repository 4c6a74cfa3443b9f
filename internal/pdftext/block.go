package pdftext

import (
	"strings"
	"time"

	"kopilka/bank-import/internal/dateutils"
)

// Block is a contiguous run of extracted text lines believed to describe one
// operation. A block opens on a line matching the leading date pattern and
// accumulates subsequent lines until the next date line or the lookahead cap.
type Block struct {
	DateRaw string
	Date    time.Time
	Lines   []string
}

// Config controls segmentation for one bank variant.
type Config struct {
	// Lookahead caps how many lines one block may accumulate.
	Lookahead int

	// SkipMarkers lists boilerplate substrings (balance and total footers,
	// page headers). Matching lines are dropped before accumulation so they
	// feed neither the description nor the amount search.
	SkipMarkers []string

	// DateLayouts is the ordered layout list for the block anchor date.
	DateLayouts []string
}

// DefaultLookahead bounds a block when the variant sets none.
const DefaultLookahead = 12

// Segment reassembles flat PDF text lines into transaction blocks.
func Segment(lines []string, cfg Config) []Block {
	lookahead := cfg.Lookahead
	if lookahead <= 0 {
		lookahead = DefaultLookahead
	}
	layouts := cfg.DateLayouts
	if len(layouts) == 0 {
		layouts = []string{
			dateutils.LayoutRuTime,
			dateutils.LayoutRuShortTime,
			dateutils.LayoutRu,
		}
	}

	var blocks []Block
	var current *Block

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if isBoilerplate(line, cfg.SkipMarkers) {
			continue
		}

		if dateRaw := dateutils.ExtractLeadingDate(line); dateRaw != "" {
			if current != nil {
				blocks = append(blocks, *current)
			}
			date, _ := dateutils.Parse(dateRaw, layouts)
			current = &Block{
				DateRaw: dateRaw,
				Date:    date,
				Lines:   []string{line},
			}
			continue
		}

		if current == nil {
			continue // preamble before the first transaction
		}
		if len(current.Lines) >= lookahead {
			continue // block exhausted its lookahead window
		}
		current.Lines = append(current.Lines, line)
	}

	if current != nil {
		blocks = append(blocks, *current)
	}
	return blocks
}

// Joined returns the block's lines as one space-separated string.
func (b Block) Joined() string {
	return strings.Join(b.Lines, " ")
}

// Description returns the block text with the leading date stripped from the
// first line, for use as the record note.
func (b Block) Description() string {
	if len(b.Lines) == 0 {
		return ""
	}
	first := strings.TrimSpace(strings.TrimPrefix(b.Lines[0], b.DateRaw))
	parts := make([]string, 0, len(b.Lines))
	if first != "" {
		parts = append(parts, first)
	}
	parts = append(parts, b.Lines[1:]...)
	return strings.Join(parts, " ")
}

func isBoilerplate(line string, markers []string) bool {
	lower := strings.ToLower(line)
	for _, marker := range markers {
		if strings.Contains(lower, strings.ToLower(marker)) {
			return true
		}
	}
	return false
}
