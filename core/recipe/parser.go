package recipe

import (
	"errors"
	"fmt"
	"iter"
	"log/slog"

	"github.com/kaptinlin/jsonrepair"
)

// BlockError records a JSON-LD block (or part of one) that was skipped.
// Index is the zero-based position of the block in document order.
type BlockError struct {
	Index int
	Err   error
}

func (e BlockError) Error() string {
	return fmt.Sprintf("block %d: %v", e.Index, e.Err)
}

func (e BlockError) Unwrap() error {
	return e.Err
}

// Extraction is the outcome of scanning a page's JSON-LD blocks.
type Extraction struct {
	// Recipe is the first valid recipe, nil when the page has none.
	Recipe *Recipe
	// Block is the index of the block Recipe came from, -1 when none.
	Block int
	// Blocks counts the blocks that were read.
	Blocks int
	// Warnings lists the blocks skipped because they failed to decode.
	Warnings []BlockError
}

// Found reports whether a recipe was extracted.
func (e Extraction) Found() bool {
	return e.Recipe != nil
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger sets the logger skipped blocks are reported to.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithRepair enables a second decode attempt, after jsonrepair, for blocks
// that are not syntactically valid JSON.
func WithRepair(enabled bool) Option {
	return func(p *Parser) {
		p.repair = enabled
	}
}

// Parser scans JSON-LD blocks for the first valid Recipe.
type Parser struct {
	logger *slog.Logger
	repair bool
}

// NewParser creates a Parser. Without options it logs to slog.Default and
// does not repair malformed blocks.
func NewParser(opts ...Option) *Parser {
	p := &Parser{logger: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Extract walks blocks in order and returns the first candidate that
// passes Valid. Within a block, array elements (then @graph members) are
// tried in order before moving on. A block that fails to decode is logged,
// added to Warnings and skipped. Finding nothing is not an error.
//
// Because @graph members are candidates of their own block, a Recipe
// nested in an earlier block's @graph wins over a top-level Recipe in a
// later block. A scanner that ignores @graph would return the later one.
func (p *Parser) Extract(blocks iter.Seq[string]) Extraction {
	result := Extraction{Block: -1}
	index := 0
	for text := range blocks {
		i := index
		index++
		result.Blocks = index

		script, err := p.decode(text)
		if err != nil {
			p.skip(&result, i, err)
			continue
		}

		checked := 0
		for candidate := range p.candidates(script, func(err error) { p.skip(&result, i, err) }) {
			checked++
			if candidate.Valid() {
				result.Recipe = &candidate
				result.Block = i
				p.logger.Debug("recipe found", "block", i, "candidate", checked-1)
				return result
			}
		}
		p.logger.Debug("no recipe in block", "block", i, "candidates", checked)
	}
	return result
}

func (p *Parser) decode(text string) (Script, error) {
	script, err := DecodeScript(text)
	if err == nil || !p.repair || !errors.Is(err, ErrSyntax) {
		return script, err
	}
	repaired, repairErr := jsonrepair.JSONRepair(text)
	if repairErr != nil {
		return Script{}, fmt.Errorf("%w (repair failed: %v)", err, repairErr)
	}
	script, err = DecodeScript(repaired)
	if err != nil {
		return Script{}, fmt.Errorf("repaired block: %w", err)
	}
	p.logger.Debug("decoded repaired JSON-LD block")
	return script, nil
}

// candidates yields the records of a script in scan order: the record or
// array elements first, then @graph members. Graph members missing
// @context inherit the container's. A graph member that fails to decode is
// reported through skip and does not stop the rest.
func (p *Parser) candidates(script Script, skip func(error)) iter.Seq[Recipe] {
	return func(yield func(Recipe) bool) {
		for _, r := range script.Records {
			if !yield(r) {
				return
			}
		}
		if script.GraphErr != nil {
			skip(script.GraphErr)
			return
		}
		if len(script.Graph) == 0 || len(script.Records) == 0 {
			return
		}
		inherited := script.Records[0].Context
		for j, raw := range script.Graph {
			member, err := DecodeRecipe(raw)
			if err != nil {
				skip(fmt.Errorf("@graph[%d]: %w", j, err))
				continue
			}
			if member.Context == nil {
				member.Context = inherited
			}
			if !yield(member) {
				return
			}
		}
	}
}

func (p *Parser) skip(result *Extraction, index int, err error) {
	p.logger.Warn("skipping JSON-LD block", "block", index, "error", err)
	result.Warnings = append(result.Warnings, BlockError{Index: index, Err: err})
}
