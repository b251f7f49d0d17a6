package main

import (
	"strings"

	"github.com/chzyer/readline"
	mdvue "github.com/nomorechokedboy/markdown-vue"
	"github.com/pterm/pterm"
)

// repl renders Markdown lines entered interactively. A line ending in a
// backslash is continued on the next line.
func repl(opts *mdvue.Options) error {
	rl, err := readline.New("md > ")
	if err != nil {
		return err
	}
	defer rl.Close()
	pterm.Info.Println("Welcome to mdvue")
	pterm.Info.Println("Quit with <ctrl>D")
	var buf []string
	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF
			break
		}
		if strings.HasSuffix(line, "\\") {
			buf = append(buf, strings.TrimSuffix(line, "\\"))
			rl.SetPrompt("  > ")
			continue
		}
		buf = append(buf, line)
		source := strings.Join(buf, "\n")
		buf = buf[:0]
		rl.SetPrompt("md > ")
		if strings.TrimSpace(source) == "" {
			continue
		}
		out, err := mdvue.RenderHTML(source, opts)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		pterm.Println(out)
	}
	pterm.Info.Println("Good bye!")
	return nil
}
