package program

import (
	"bytes"
	"io"

	gojson "github.com/goccy/go-json"

	"github.com/briolir/briolir/internal/ir"
)

// Encode writes prog back out as JSON in the same field order Decode reads,
// using ir.FieldOrder/ir.ToRawInstr since a plain map has no iteration order
// of its own.
func Encode(w io.Writer, prog *ir.Program) error {
	enc := gojson.NewEncoder(w)
	doc := orderedProgram{Functions: make([]orderedFunction, 0, len(prog.Functions))}
	for _, fn := range prog.Functions {
		doc.Functions = append(doc.Functions, encodeFunction(fn))
	}
	return enc.Encode(doc)
}

// orderedFunction/orderedProgram mirror rawFunction/rawProgram but are only
// ever written, never read, so their field order is simply their Go
// declaration order — goccy/go-json (like encoding/json) marshals struct
// fields in declaration order, which is what keeps output diffable against
// hand-written fixtures.
type orderedFunction struct {
	Name   string           `json:"name"`
	Args   []rawArg         `json:"args,omitempty"`
	Type   *string          `json:"type,omitempty"`
	Instrs []orderedInstr   `json:"instrs"`
}

type orderedInstr struct {
	raw map[string]any
}

func (o orderedInstr) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	for _, key := range ir.FieldOrder() {
		v, ok := o.raw[key]
		if !ok {
			continue
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		keyBytes, err := gojson.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(keyBytes)
		buf.WriteByte(':')
		valBytes, err := gojson.Marshal(v)
		if err != nil {
			return nil, err
		}
		buf.Write(valBytes)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

type orderedProgram struct {
	Functions []orderedFunction `json:"functions"`
}

func encodeFunction(fn *ir.Function) orderedFunction {
	of := orderedFunction{Name: fn.Name}
	for _, a := range fn.Args {
		of.Args = append(of.Args, rawArg{Name: a.Name, Type: string(a.Type)})
	}
	if fn.HasReturn {
		s := string(fn.ReturnType)
		of.Type = &s
	}
	of.Instrs = make([]orderedInstr, 0, len(fn.Instrs))
	for _, instr := range fn.Instrs {
		of.Instrs = append(of.Instrs, orderedInstr{raw: ir.ToRawInstr(instr)})
	}
	return of
}
