// Package program decodes and encodes the top-level JSON document — the
// parser/serializer concern spec.md names as explicitly out of scope for the
// core pipeline, kept here as the ambient I/O layer around it — and drives
// the pipeline across every function in a document.
package program

import (
	"io"

	gojson "github.com/goccy/go-json"
	"github.com/pkg/errors"

	"github.com/briolir/briolir/internal/ir"
)

// rawFunction mirrors one function record in the document, decoded as loose
// maps so internal/ir's ParseInstruction can do the real field validation.
type rawFunction struct {
	Name  string           `json:"name"`
	Args  []rawArg         `json:"args,omitempty"`
	Type  *string          `json:"type,omitempty"`
	Instrs []map[string]any `json:"instrs"`
}

type rawArg struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type rawProgram struct {
	Functions []rawFunction `json:"functions"`
}

// Decode parses a JSON document from r into a Program. Decode errors from
// goccy/go-json are wrapped with pkg/errors ("decode program: ...");
// per-instruction structural errors come back as *ir.Error.
func Decode(r io.Reader) (*ir.Program, error) {
	var raw rawProgram
	dec := gojson.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		return nil, errors.Wrap(err, "decode program")
	}

	prog := &ir.Program{Functions: make([]*ir.Function, 0, len(raw.Functions))}
	for _, rf := range raw.Functions {
		fn, err := decodeFunction(rf)
		if err != nil {
			return nil, err
		}
		prog.Functions = append(prog.Functions, fn)
	}
	return prog, nil
}

func decodeFunction(rf rawFunction) (*ir.Function, error) {
	if rf.Name == "" {
		return nil, errors.New("function missing name")
	}

	fn := &ir.Function{Name: rf.Name}

	for _, a := range rf.Args {
		tp, ok := ir.LookupValueType(a.Type)
		if !ok {
			return nil, ir.NewError(ir.UnknownType, rf.Name, "argument "+a.Name+" has unknown type "+a.Type)
		}
		fn.Args = append(fn.Args, ir.Arg{Name: a.Name, Type: tp})
	}

	if rf.Type != nil {
		tp, ok := ir.LookupValueType(*rf.Type)
		if !ok {
			return nil, ir.NewError(ir.UnknownType, rf.Name, "return type "+*rf.Type+" is unknown")
		}
		fn.ReturnType = tp
		fn.HasReturn = true
	}

	for _, raw := range rf.Instrs {
		instr, err := ir.ParseInstruction(rf.Name, raw)
		if err != nil {
			return nil, err
		}
		fn.Instrs = append(fn.Instrs, instr)
	}

	return fn, nil
}
