package cmds

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
)

func (p *Executor) PrintUsage() {
	p.WriteUsage(os.Stdout)
}

func (p *Executor) WriteUsage(w io.Writer) {
	writeCommands(w, p.commands, 0)
}

func writeCommands(w io.Writer, commands map[string]*Command, depth int) {
	aliased := make(map[string]bool)
	for _, command := range commands {
		if command == nil {
			continue
		}
		for _, name := range command.Aliases {
			aliased[name] = true
		}
	}

	names := make([]string, 0, len(commands))
	for name := range commands {
		if aliased[name] {
			continue
		}
		names = append(names, name)
	}
	slices.Sort(names)

	indent := strings.Repeat("    ", depth)
	for _, name := range names {
		command := commands[name]
		if command == nil {
			fmt.Fprintf(w, "%s%s\n", indent, name)
			continue
		}
		line := indent + name
		for _, alias := range command.Aliases {
			line += " | " + alias
		}
		if command.Description != "" {
			line += "\n" + indent + "    " + command.Description
		}
		fmt.Fprintln(w, line)
		if len(command.Subs) > 0 {
			writeCommands(w, command.Subs, depth+1)
		}
	}
}
