// Package parser is the single-pass front end: it resolves scopes, checks
// static types and emits instructions while reading the token stream.
// There is no separate tree-to-bytecode pass; the returned Expr values only
// describe what was already emitted.
package parser

import (
	"context"
	"fmt"
	"slices"

	"c0c/internal/bytecode"
	"c0c/internal/diag"
	"c0c/internal/program"
	"c0c/internal/source"
	"c0c/internal/symbols"
	"c0c/internal/token"
	"c0c/internal/trace"
)

// notInLoop is the loop-head value outside any while.
const notInLoop = -1

type Options struct {
	// Trace enables per-function trace spans.
	Trace bool
}

// Parser - состояние парсера на одну компиляцию
type Parser struct {
	ctx  context.Context
	toks []token.Token
	pos  int
	opts Options

	prog   *program.Program
	scope  *symbols.Scope
	fn     *program.Function // функция, в которую идёт эмиссия; _start на верхнем уровне
	inUser bool              // внутри пользовательской функции
	loop   int               // индекс nop-головы текущего while или notInLoop

	lastSpan source.Span
	fault    error // первая внутренняя ошибка потока инструкций
}

// Parse consumes toks (which must end with EOF) and fills prog.
// The first error aborts the whole compilation; prog must then be discarded.
func Parse(ctx context.Context, toks []token.Token, prog *program.Program, opts Options) error {
	if len(toks) == 0 || toks[len(toks)-1].Kind != token.EOF {
		return diag.Internalf("token stream does not end with EOF")
	}
	p := &Parser{
		ctx:   ctx,
		toks:  toks,
		opts:  opts,
		prog:  prog,
		scope: prog.Root,
		fn:    prog.Start,
		loop:  notInLoop,
	}
	return p.parseProgram()
}

// parseProgram - основной цикл верхнего уровня, затем вызов main из _start.
func (p *Parser) parseProgram() error {
	for !p.at(token.EOF) {
		if err := p.ctx.Err(); err != nil {
			return err
		}
		if err := p.parseDecl(); err != nil {
			return err
		}
		if p.fault != nil {
			return p.fault
		}
	}
	return p.finishStart()
}

func (p *Parser) finishStart() error {
	eof := p.peek()
	main, ok := p.prog.Funcs.ByName(program.EntryName)
	if !ok {
		return p.errorf(diag.SemaNoEntryPoint, eof.Span, "no '%s' function declared", program.EntryName)
	}
	if len(main.Params) != 0 {
		return diag.Errorf(diag.SemaNoEntryPoint, main.Span, "'%s' must not take parameters", program.EntryName)
	}
	if !main.IsVoid() {
		p.emit(bytecode.OpInt(bytecode.OpStackAlloc, 1))
	}
	p.emit(bytecode.OpInt(bytecode.OpCall, int64(main.ID)))
	p.prog.Start.Finish(nil)
	return p.fault
}

// ===== Работа с потоком токенов =====

func (p *Parser) peek() token.Token {
	return p.toks[p.pos]
}

func (p *Parser) peekNext() token.Token {
	if p.pos+1 < len(p.toks) {
		return p.toks[p.pos+1]
	}
	return p.toks[len(p.toks)-1]
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.peek().Kind)
}

// advance - съедает следующий токен и обновляет lastSpan. EOF не съедается.
func (p *Parser) advance() token.Token {
	tok := p.toks[p.pos]
	if tok.Kind != token.EOF {
		p.pos++
		p.lastSpan = tok.Span
	}
	return tok
}

// expect - ожидаем конкретный токен, иначе синтаксическая ошибка.
func (p *Parser) expect(k token.Kind, code diag.Code, what string) (token.Token, error) {
	if p.at(k) {
		return p.advance(), nil
	}
	return token.Token{}, p.unexpected(code, what)
}

func (p *Parser) expectSemicolon(after string) error {
	_, err := p.expect(token.Semicolon, diag.SynExpectSemicolon, "';' after "+after)
	return err
}

// unexpected reports that what was expected at the current token.
func (p *Parser) unexpected(code diag.Code, what string) error {
	tok := p.peek()
	return p.errorf(code, p.diagSpan(), "expected %s, found %s", what, tok.Kind.Spelling())
}

// diagSpan - для EOF указываем на позицию сразу после последнего токена.
func (p *Parser) diagSpan() source.Span {
	tok := p.peek()
	if tok.Kind == token.EOF && p.lastSpan.End > 0 {
		return source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
	}
	return tok.Span
}

func (p *Parser) errorf(code diag.Code, sp source.Span, format string, args ...any) error {
	return diag.Errorf(code, sp, format, args...)
}

// ===== Эмиссия =====

// emit appends to the current function and returns the instruction index.
func (p *Parser) emit(in bytecode.Instruction) int {
	idx, err := p.fn.Code.Emit(in)
	if err != nil && p.fault == nil {
		p.fault = err
	}
	return idx
}

// here is the index the next instruction will get.
func (p *Parser) here() int {
	return p.fn.Code.Len()
}

func (p *Parser) patch(at, target int) {
	if err := p.fn.Code.PatchTarget(at, target); err != nil && p.fault == nil {
		p.fault = err
	}
}

// emitAddr pushes the address of sym.
func (p *Parser) emitAddr(sym *symbols.Symbol) {
	var op bytecode.Opcode
	switch sym.Kind {
	case symbols.Global:
		op = bytecode.OpGlobA
	case symbols.Param:
		op = bytecode.OpArgA
	case symbols.Local:
		op = bytecode.OpLocA
	default:
		if p.fault == nil {
			p.fault = diag.Internalf("symbol %q has storage %s", sym.Name, sym.Kind)
		}
		return
	}
	p.emit(bytecode.OpInt(op, int64(sym.Addr)))
}

func (p *Parser) traceSpan(name string) *trace.Span {
	if !p.opts.Trace {
		return nil
	}
	_, sp := trace.Start(p.ctx, trace.ScopeFunction, name)
	return sp
}

func quoted(s string) string {
	return fmt.Sprintf("'%s'", s)
}
