package fenlang

import "github.com/fenlang/fen/fenvm"

// Compile parses source text into a runnable program.
func Compile(name string, content string) (*fenvm.Program, error) {
	return Parse(NewSource(name, content))
}
