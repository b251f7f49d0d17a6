/*
Command mdvue renders Markdown to HTML.

	mdvue [-config opts.yaml] [-trace level] [-class name] [file.md]
	mdvue -repl [-config opts.yaml]

Without a file argument, Markdown is read from stdin. With -repl, mdvue
starts an interactive session rendering each line entered.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	mdvue "github.com/nomorechokedboy/markdown-vue"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
)

// tracer traces with key 'mdvue.cli'
func tracer() tracing.Trace {
	return tracing.Select("mdvue.cli")
}

func main() {
	initDisplay()

	// command line flags
	tlevel := flag.String("trace", "Error", "Trace level [Debug|Info|Error]")
	confname := flag.String("config", "", "YAML file with render options")
	class := flag.String("class", "", "Class of the wrapping div")
	interactive := flag.Bool("repl", false, "Start an interactive session")
	flag.Parse()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter": "go",
		"trace.mdvue":     *tlevel,
		"trace.mdvue.cli": *tlevel,
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())
	tracer().Infof("Trace level is %s", *tlevel)

	cfg := &config{}
	if *confname != "" {
		var err error
		if cfg, err = loadConfig(*confname); err != nil {
			pterm.Error.Println(err.Error())
			os.Exit(2)
		}
	}
	if *class != "" {
		cfg.Class = *class
	}
	opts, err := cfg.options()
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(2)
	}
	if *interactive {
		if err := repl(opts); err != nil {
			pterm.Error.Println(err.Error())
			os.Exit(3)
		}
		return
	}
	if err := renderFile(flag.Arg(0), opts, os.Stdout); err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(4)
	}
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// renderFile renders a Markdown file, or stdin for an empty name, to w.
func renderFile(name string, opts *mdvue.Options, w io.Writer) error {
	var source []byte
	var err error
	if name == "" {
		source, err = io.ReadAll(os.Stdin)
	} else {
		source, err = os.ReadFile(name)
	}
	if err != nil {
		return err
	}
	tracer().Debugf("read %d bytes of markdown", len(source))
	out, err := mdvue.RenderHTML(string(source), opts)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, out)
	return err
}
