package ir

// Operator identifies an instruction's opcode. The set is closed: the
// properties below are looked up from a fixed table rather than discovered
// through an extensible registry, since this IR never gains new operators at
// runtime.
type Operator string

const (
	OpConst Operator = "const"

	OpJmp Operator = "jmp"
	OpBr  Operator = "br"
	OpRet Operator = "ret"
	OpCall Operator = "call"

	OpAdd Operator = "add"
	OpSub Operator = "sub"
	OpMul Operator = "mul"
	OpDiv Operator = "div"

	OpEq Operator = "eq"
	OpLt Operator = "lt"
	OpGt Operator = "gt"
	OpLe Operator = "le"
	OpGe Operator = "ge"

	OpNot Operator = "not"
	OpAnd Operator = "and"
	OpOr  Operator = "or"

	OpID    Operator = "id"
	OpPrint Operator = "print"
	OpNop   Operator = "nop"

	// OpPhi is synthesized by the phi-inserter (§4.5); it also parses from
	// input, so already-SSA output can be decoded again.
	OpPhi Operator = "phi"
)

// opProps describes the compile-time-known properties of an operator,
// mirroring the "has-attribute" checks of the original op-type registry.
type opProps struct {
	isBlockTerminator bool
	hasSideEffect     bool
	nargs             int // -1 means variable arity
}

var operatorTable = map[Operator]opProps{
	OpConst: {nargs: 0},

	OpJmp:  {isBlockTerminator: true, hasSideEffect: true, nargs: -1},
	OpBr:   {isBlockTerminator: true, hasSideEffect: true, nargs: -1},
	OpRet:  {isBlockTerminator: true, hasSideEffect: true, nargs: -1},
	OpCall: {hasSideEffect: true, nargs: -1},

	OpAdd: {nargs: 2},
	OpSub: {nargs: 2},
	OpMul: {nargs: 2},
	OpDiv: {nargs: 2},

	OpEq: {nargs: 2},
	OpLt: {nargs: 2},
	OpGt: {nargs: 2},
	OpLe: {nargs: 2},
	OpGe: {nargs: 2},

	OpNot: {nargs: 1},
	OpAnd: {nargs: 2},
	OpOr:  {nargs: 2},

	OpID:    {nargs: 1},
	OpPrint: {hasSideEffect: true, nargs: -1},
	OpNop:   {nargs: 0},

	OpPhi: {nargs: -1},
}

// LookupOperator reports whether op is a known operator and returns it as an
// Operator, whose methods report its properties.
func LookupOperator(op string) (Operator, bool) {
	o := Operator(op)
	_, ok := operatorTable[o]
	return o, ok
}

// IsBlockTerminator reports whether op ends a basic block (jmp/br/ret).
func (op Operator) IsBlockTerminator() bool {
	return operatorTable[op].isBlockTerminator
}

// HasSideEffect reports whether op is side-effecting (all control operators
// plus print and call).
func (op Operator) HasSideEffect() bool {
	return operatorTable[op].hasSideEffect
}

// NArgs returns the fixed argument count for op, or -1 if op has variable
// arity (including operators this IR never fixes an arity for).
func (op Operator) NArgs() int {
	return operatorTable[op].nargs
}
