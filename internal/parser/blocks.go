package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cheerioskun/regexblocks/internal/models"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// ErrUnknownBlock is returned for block tokens that name no known kind
var ErrUnknownBlock = errors.New("unknown block")

// BlockSpec is one entry of a YAML block file
type BlockSpec struct {
	Kind  string  `yaml:"kind"`            // "category:subtype" or a bare subtype
	Value *string `yaml:"value,omitempty"` // Value for literal/repeat blocks
}

// BlockFile is the YAML document accepted by LoadBlockFile
//
//	blocks:
//	  - kind: anchor:str-start
//	  - kind: literal
//	    value: ab
//	  - kind: str-end
type BlockFile struct {
	Blocks []BlockSpec `yaml:"blocks"`
}

// BlockParser turns textual block descriptions into blocks
type BlockParser struct {
	fs           afero.Fs
	defaultValue string
}

// NewBlockParser creates a parser that reads files from fs. Editable blocks
// given without a value get defaultValue.
func NewBlockParser(fs afero.Fs, defaultValue string) *BlockParser {
	return &BlockParser{
		fs:           fs,
		defaultValue: defaultValue,
	}
}

// ParseTokens parses tokens of the form "kind" or "kind=value", where kind
// is "category:subtype" or a bare subtype. "literal" alone is accepted for
// the literal string kind.
func (p *BlockParser) ParseTokens(tokens []string) ([]models.Block, error) {
	blocks := make([]models.Block, 0, len(tokens))
	for i, token := range tokens {
		name, value, hasValue := strings.Cut(token, "=")
		var v *string
		if hasValue {
			v = &value
		}
		b, err := p.newBlock(name, v)
		if err != nil {
			return nil, fmt.Errorf("token %d (%q): %w", i+1, token, err)
		}
		blocks = append(blocks, b)
	}
	return blocks, nil
}

// ParseYAML parses a YAML block document
func (p *BlockParser) ParseYAML(data []byte) ([]models.Block, error) {
	var doc BlockFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse block file: %w", err)
	}

	blocks := make([]models.Block, 0, len(doc.Blocks))
	for i, spec := range doc.Blocks {
		b, err := p.newBlock(spec.Kind, spec.Value)
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", i+1, err)
		}
		blocks = append(blocks, b)
	}
	return blocks, nil
}

// LoadBlockFile reads and parses a YAML block file
func (p *BlockParser) LoadBlockFile(path string) ([]models.Block, error) {
	data, err := afero.ReadFile(p.fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read block file: %w", err)
	}
	return p.ParseYAML(data)
}

func (p *BlockParser) newBlock(name string, value *string) (models.Block, error) {
	name = strings.TrimSpace(name)
	if name == "literal" {
		name = models.KindLiteral.String()
	}

	kind, ok := models.ParseKind(name)
	if !ok {
		return models.Block{}, fmt.Errorf("%w: %q", ErrUnknownBlock, name)
	}

	if !kind.Editable() {
		if value != nil && *value != "" {
			return models.Block{}, fmt.Errorf("%s takes no value", kind)
		}
		return models.NewBlock(kind, ""), nil
	}

	v := p.defaultValue
	if value != nil {
		v = *value
	}
	return models.NewBlock(kind, v), nil
}
