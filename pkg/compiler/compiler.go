// Package compiler implements funk's single-pass, recursive-descent
// front end: a Compile call turns a source buffer directly into bytecode
// on a freshly allocated top-level BasicFunction, with no intermediate
// AST (spec.md §4.4). Nested function declarations and lambdas
// temporarily retarget emission at a new BasicFunction, then restore the
// enclosing one.
package compiler

import (
	"fmt"

	"github.com/funk-lang/funk/pkg/bytecode"
	"github.com/funk-lang/funk/pkg/lexer"
	"github.com/funk-lang/funk/pkg/object"
)

// compiler holds one compilation's parser state: the token stream, the
// stack of in-progress function targets (innermost last), and the error
// flag the spec calls hadError.
type compiler struct {
	lex *lexer.Lexer

	previous lexer.Token
	current  lexer.Token

	arena    *object.Arena
	interner *object.Interner
	vm       object.VM

	targets  []*object.BasicFunction
	hadError bool
}

// Compile translates source into a top-level BasicFunction named name.
// On any syntax error it reports every mismatch it finds through vm's
// error callback and returns (nil, false) once parsing completes —
// spec.md §4.4's "continue compiling, then return no function".
func Compile(vm object.VM, arena *object.Arena, interner *object.Interner, name, source string) (*object.BasicFunction, bool) {
	top := arena.NewBasicFunction(interner.Intern(name))

	c := &compiler{
		lex:      lexer.New(source),
		arena:    arena,
		interner: interner,
		vm:       vm,
		targets:  []*object.BasicFunction{top},
	}

	c.advance()
	for !c.check(lexer.TokenEOF) {
		c.declaration()
	}
	c.emitByte(bytecode.OpPushNull)
	c.emitByte(bytecode.OpReturn)

	if c.hadError {
		return nil, false
	}
	return top, true
}

func (c *compiler) target() *object.BasicFunction {
	return c.targets[len(c.targets)-1]
}

func (c *compiler) pushTarget(fn *object.BasicFunction) {
	c.targets = append(c.targets, fn)
}

func (c *compiler) popTarget() {
	c.targets = c.targets[:len(c.targets)-1]
}

// -- token plumbing --------------------------------------------------

func (c *compiler) advance() {
	c.previous = c.current
	c.current = c.lex.Next()
}

func (c *compiler) check(t lexer.TokenType) bool {
	return c.current.Type == t
}

func (c *compiler) match(t lexer.TokenType) bool {
	if !c.check(t) {
		return false
	}
	c.advance()
	return true
}

func (c *compiler) consume(t lexer.TokenType, message string) {
	if c.check(t) {
		c.advance()
		return
	}
	c.errorAtCurrent(message)
}

func (c *compiler) errorAtCurrent(message string) {
	c.hadError = true
	if c.vm != nil {
		c.vm.Error(fmt.Sprintf("[line %d] Error: %s", c.current.Line, message))
	}
}

// -- emission ----------------------------------------------------------

func (c *compiler) emitByte(op bytecode.Op) {
	c.target().WriteByte(byte(op))
}

func (c *compiler) emitUint16(idx uint16) {
	c.target().WriteUint16(idx)
}

func (c *compiler) emitConstantRef(value object.Value) uint16 {
	return c.target().AddConstant(value)
}

// -- grammar -------------------------------------------------------------

// declaration := 'function' NAME function-body | expression (followed by POP)
func (c *compiler) declaration() {
	if c.match(lexer.TokenFunction) {
		c.functionDeclaration()
		return
	}
	c.expression()
	c.emitByte(bytecode.OpPop)
}

// functionDeclaration parses NAME function-body and emits DEFINE <idx>
// against the enclosing target, binding the compiled function by name.
func (c *compiler) functionDeclaration() {
	c.consume(lexer.TokenName, "expect function name")
	name := c.interner.Intern(c.previous.Lexeme)

	fn := c.arena.NewBasicFunction(name)
	c.pushTarget(fn)
	c.consume(lexer.TokenLeftParen, "expect '(' after function name")
	c.params(fn)
	c.consume(lexer.TokenRightParen, "expect ')' after parameters")
	c.blockBody()
	c.popTarget()

	idx := c.emitConstantRef(fn)
	c.emitByte(bytecode.OpDefine)
	c.emitUint16(idx)
}

// params parses NAME (',' NAME)* into fn's argument-name list.
func (c *compiler) params(fn *object.BasicFunction) {
	if c.check(lexer.TokenRightParen) {
		return
	}
	for {
		c.consume(lexer.TokenName, "expect parameter name")
		fn.ArgumentNames = append(fn.ArgumentNames, c.interner.Intern(c.previous.Lexeme))
		if !c.match(lexer.TokenComma) {
			break
		}
	}
}

// blockBody consumes '{' declaration* '}' into the current target,
// closing with the implicit PUSH_NULL; RETURN every block body gets.
func (c *compiler) blockBody() {
	c.consume(lexer.TokenLeftBrace, "expect '{'")
	for !c.check(lexer.TokenRightBrace) && !c.check(lexer.TokenEOF) {
		c.declaration()
	}
	c.consume(lexer.TokenRightBrace, "expect '}'")
	c.emitByte(bytecode.OpPushNull)
	c.emitByte(bytecode.OpReturn)
}

// expression := 'return' expression | lambda | call
func (c *compiler) expression() {
	switch {
	case c.match(lexer.TokenReturn):
		c.expression()
		c.emitByte(bytecode.OpReturn)
	case c.check(lexer.TokenLeftBrace):
		c.zeroArgLambda()
	case c.check(lexer.TokenLeftParen):
		c.paramLambda()
	default:
		c.call()
	}
}

// lambdaName synthesizes "lambda <enclosing-name> <line>" using the
// target active just before the lambda's own target is pushed.
func (c *compiler) lambdaName(line int) *object.String {
	enclosing := object.ToString(c.target())
	return c.interner.Intern(fmt.Sprintf("lambda %s %d", enclosing, line))
}

// zeroArgLambda handles the `{ declaration* }` shorthand for a no-argument
// lambda appearing in expression position.
func (c *compiler) zeroArgLambda() {
	fn := c.arena.NewBasicFunction(c.lambdaName(c.current.Line))
	c.pushTarget(fn)
	c.blockBody()
	c.popTarget()

	idx := c.emitConstantRef(fn)
	c.emitByte(bytecode.OpPushConstant)
	c.emitUint16(idx)
}

// paramLambda handles `(params) => expr` and `(params) => { block }`.
func (c *compiler) paramLambda() {
	line := c.current.Line
	fn := c.arena.NewBasicFunction(c.lambdaName(line))
	c.pushTarget(fn)

	c.consume(lexer.TokenLeftParen, "expect '(' to start lambda parameters")
	c.params(fn)
	c.consume(lexer.TokenRightParen, "expect ')' after lambda parameters")
	c.consume(lexer.TokenArrow, "expect '=>' after lambda parameters")

	if c.check(lexer.TokenLeftBrace) {
		c.blockBody()
	} else {
		c.expression()
		c.emitByte(bytecode.OpReturn)
	}

	c.popTarget()

	idx := c.emitConstantRef(fn)
	c.emitByte(bytecode.OpPushConstant)
	c.emitUint16(idx)
}

// call := NAME ( '(' args? ')' )*
//
// The GET/GET_STRING choice is made once, based on whether NAME is
// immediately followed by '(': that's the only point that decides
// whether the identifier denotes a call target or plain string data.
// Every subsequent '(' in a chained call f(...)(...) reuses the value
// GET already pushed.
func (c *compiler) call() {
	if !c.check(lexer.TokenName) {
		// Skip the offending token so the declaration loops keep moving.
		c.errorAtCurrent("expect expression")
		c.advance()
		return
	}
	c.advance()
	name := c.interner.Intern(c.previous.Lexeme)
	idx := c.emitConstantRef(name)

	if !c.check(lexer.TokenLeftParen) {
		c.emitByte(bytecode.OpGetString)
		c.emitUint16(idx)
		return
	}

	c.emitByte(bytecode.OpGet)
	c.emitUint16(idx)

	for c.match(lexer.TokenLeftParen) {
		argc := c.args()
		c.consume(lexer.TokenRightParen, "expect ')' after arguments")
		c.emitByte(bytecode.OpCall)
		c.target().WriteByte(argc)
	}
}

// args := expression (',' expression)*
func (c *compiler) args() byte {
	if c.check(lexer.TokenRightParen) {
		return 0
	}
	var argc byte
	for {
		c.expression()
		argc++
		if !c.match(lexer.TokenComma) {
			break
		}
	}
	return argc
}
