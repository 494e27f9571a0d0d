package ir

import (
	"github.com/pkg/errors"
)

// rawInstr is the JSON shape of one instruction record, as described in
// spec.md §6. All fields are optional except the ones each case requires;
// which fields are present is what drives the dispatch in ParseInstruction.
type rawInstr struct {
	Label  *string  `json:"label,omitempty"`
	Op     *string  `json:"op,omitempty"`
	Dest   *string  `json:"dest,omitempty"`
	Type   *string  `json:"type,omitempty"`
	Value  any      `json:"value,omitempty"`
	Args   []string `json:"args,omitempty"`
	Funcs  []string `json:"funcs,omitempty"`
	Labels []string `json:"labels,omitempty"`
}

// ParseInstruction dispatches a raw IR record to its Instruction case per
// spec.md §4.1: `label` present → Label; `op == const` → Const; `dest`
// present → ValueOp; otherwise → EffectOp. fn names the owning function, for
// error attribution only.
func ParseInstruction(fn string, raw map[string]any) (Instruction, error) {
	r, err := decodeRawInstr(raw)
	if err != nil {
		return nil, NewError(MalformedInstruction, fn, err.Error())
	}

	switch {
	case r.Label != nil:
		return parseLabel(fn, r)
	case r.Op != nil && *r.Op == string(OpConst):
		return parseConst(fn, r)
	case r.Dest != nil:
		return parseValueOp(fn, r)
	default:
		return parseEffectOp(fn, r)
	}
}

func decodeRawInstr(raw map[string]any) (*rawInstr, error) {
	r := &rawInstr{}
	if v, ok := raw["label"]; ok {
		s, ok := v.(string)
		if !ok {
			return nil, errors.New("label: not a string")
		}
		r.Label = &s
	}
	if v, ok := raw["op"]; ok {
		s, ok := v.(string)
		if !ok {
			return nil, errors.New("op: not a string")
		}
		r.Op = &s
	}
	if v, ok := raw["dest"]; ok {
		s, ok := v.(string)
		if !ok {
			return nil, errors.New("dest: not a string")
		}
		r.Dest = &s
	}
	if v, ok := raw["type"]; ok {
		s, ok := v.(string)
		if !ok {
			return nil, errors.New("type: not a string")
		}
		r.Type = &s
	}
	if v, ok := raw["value"]; ok {
		r.Value = v
	}
	var err error
	if r.Args, err = stringList(raw, "args"); err != nil {
		return nil, err
	}
	if r.Funcs, err = stringList(raw, "funcs"); err != nil {
		return nil, err
	}
	if r.Labels, err = stringList(raw, "labels"); err != nil {
		return nil, err
	}
	return r, nil
}

func stringList(raw map[string]any, key string) ([]string, error) {
	v, ok := raw[key]
	if !ok {
		return nil, nil
	}
	list, ok := v.([]any)
	if !ok {
		return nil, errors.Errorf("%s: not a list", key)
	}
	out := make([]string, 0, len(list))
	for _, e := range list {
		s, ok := e.(string)
		if !ok {
			return nil, errors.Errorf("%s: element %v is not a string", key, e)
		}
		out = append(out, s)
	}
	return out, nil
}

func parseLabel(fn string, r *rawInstr) (Instruction, error) {
	return &Label{Name: *r.Label}, nil
}

func parseConst(fn string, r *rawInstr) (Instruction, error) {
	if r.Dest == nil {
		return nil, NewError(MalformedInstruction, fn, "const instruction missing dest")
	}
	if r.Type == nil {
		return nil, NewError(MalformedInstruction, fn, "const instruction missing type")
	}
	tp, ok := LookupValueType(*r.Type)
	if !ok {
		return nil, NewError(UnknownType, fn, "unknown type "+*r.Type)
	}
	value := normalizeLiteral(r.Value)
	if !tp.LiteralMatches(value) {
		return nil, NewError(MalformedInstruction, fn, "const value does not match declared type "+string(tp))
	}
	if tp == TypeInt {
		value = asInt64(value)
	}
	return &Const{Dest: *r.Dest, Type: tp, Value: value}, nil
}

func parseValueOp(fn string, r *rawInstr) (Instruction, error) {
	if r.Op == nil {
		return nil, NewError(MalformedInstruction, fn, "value instruction missing op")
	}
	op, ok := LookupOperator(*r.Op)
	if !ok {
		return nil, NewError(UnknownOperator, fn, "unknown operator "+*r.Op)
	}
	if r.Type == nil {
		return nil, NewError(MalformedInstruction, fn, "value instruction missing type")
	}
	tp, ok := LookupValueType(*r.Type)
	if !ok {
		return nil, NewError(UnknownType, fn, "unknown type "+*r.Type)
	}
	return &ValueOp{Op: op, Dest: *r.Dest, Type: tp, Args: r.Args, Funcs: r.Funcs, Labels: r.Labels}, nil
}

func parseEffectOp(fn string, r *rawInstr) (Instruction, error) {
	if r.Op == nil {
		return nil, NewError(MalformedInstruction, fn, "effect instruction missing op")
	}
	op, ok := LookupOperator(*r.Op)
	if !ok {
		return nil, NewError(UnknownOperator, fn, "unknown operator "+*r.Op)
	}
	if !op.HasSideEffect() {
		return nil, NewError(MalformedInstruction, fn, "operator "+string(op)+" has no side effect and no dest")
	}
	return &EffectOp{Op: op, Args: r.Args, Funcs: r.Funcs, Labels: r.Labels}, nil
}

// normalizeLiteral passes a JSON-decoded value through unchanged: numbers
// arrive as float64 (what encoding/json and goccy/go-json produce for
// untyped numbers), which ValueType.LiteralMatches already accepts for int;
// the conversion to int64 happens afterwards in asInt64.
func normalizeLiteral(v any) any {
	if f, ok := v.(float64); ok {
		return f
	}
	return v
}

func asInt64(v any) any {
	switch n := v.(type) {
	case float64:
		return int64(n)
	case int:
		return int64(n)
	case int64:
		return n
	default:
		return v
	}
}
