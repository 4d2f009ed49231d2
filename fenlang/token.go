package fenlang

import "github.com/fenlang/fen/fenvm"

type Token struct {
	Kind  TokenKind
	Text  string
	Value any
	Pos   fenvm.Pos
}

type TokenKind uint8

const (
	TokenInvalid TokenKind = iota
	TokenIdentifier
	TokenString
	TokenNumber
	TokenSymbol
	TokenEOF
)

func (k TokenKind) String() string {
	switch k {
	case TokenIdentifier:
		return "identifier"
	case TokenString:
		return "string"
	case TokenNumber:
		return "number"
	case TokenSymbol:
		return "symbol"
	case TokenEOF:
		return "end of input"
	}
	return "invalid token"
}
