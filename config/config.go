package config

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/jvitoroc/numgame/eval"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownBuiltin = errors.New("unknown builtin operator")
	ErrNoOperators    = errors.New("no operators configured")
)

// OperatorEntry configures one operator. Precedence and Associative fall
// back to the builtin's defaults when absent.
type OperatorEntry struct {
	Symbol      string `yaml:"symbol"`
	Builtin     string `yaml:"builtin"`
	Precedence  *int   `yaml:"precedence,omitempty"`
	Associative *bool  `yaml:"associative,omitempty"`
}

type File struct {
	Operators []OperatorEntry `yaml:"operators"`
}

// Load reads an operator table from path on fs.
func Load(fs billy.Filesystem, path string) (*eval.Table, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Decode(f)
}

func Decode(r io.Reader) (*eval.Table, error) {
	file := &File{}

	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	if err := decoder.Decode(file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoOperators
		}
		return nil, fmt.Errorf("decoding operator table: %w", err)
	}

	return file.Table()
}

func (f *File) Table() (*eval.Table, error) {
	if len(f.Operators) == 0 {
		return nil, ErrNoOperators
	}

	ops := make([]eval.Operator, 0, len(f.Operators))
	for i, e := range f.Operators {
		op, ok := eval.Builtin(eval.BuiltinName(e.Builtin))
		if !ok {
			return nil, fmt.Errorf("%w: '%s' (entry %d)", ErrUnknownBuiltin, e.Builtin, i)
		}

		if e.Symbol != "" {
			op.Symbol = e.Symbol
		}

		if e.Precedence != nil {
			op.Precedence = *e.Precedence
		}

		if e.Associative != nil {
			op.Associative = *e.Associative
		}

		ops = append(ops, op)
	}

	return eval.NewTable(ops...)
}

// FromSymbols builds a table from a comma separated list of builtin
// symbols such as "+,-,*,/".
func FromSymbols(list string) (*eval.Table, error) {
	ops := make([]eval.Operator, 0)

	for _, s := range strings.Split(list, ",") {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}

		op, ok := eval.BuiltinBySymbol(s)
		if !ok {
			return nil, fmt.Errorf("%w: '%s'", ErrUnknownBuiltin, s)
		}

		ops = append(ops, op)
	}

	if len(ops) == 0 {
		return nil, ErrNoOperators
	}

	return eval.NewTable(ops...)
}
