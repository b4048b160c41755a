package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: p2p2p <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  export     Export PlantUML diagrams to PDF")
	fmt.Fprintln(w, "  check      Tell whether a file can be exported")
	fmt.Fprintln(w, "  doctor     Check that java, PlantUML, Graphviz and pdflatex are usable")
	fmt.Fprintln(w, "  config     Print the effective settings as YAML")
	fmt.Fprintln(w, "  completion Generate shell completion script")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'p2p2p help <command>' for details on a specific command.")
}

// printExportUsage prints usage for the export command.
func printExportUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: p2p2p export <file.puml|dir>... [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render each diagram to PNG with PlantUML, typeset it with pdflatex,")
	fmt.Fprintln(w, "and write <name>.pdf next to the source file.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  file.puml|dir    Diagram files, or directories searched for *.puml")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Document:")
	fmt.Fprintln(w, "      --logo <path>         Image placed above the diagram")
	fmt.Fprintln(w, "      --language-id <id>    Declared language (plantuml accepts any extension)")
	fmt.Fprintln(w, "      --stdin               Save content read from stdin to the file first")
	fmt.Fprintln(w, "      --open                Open exported PDFs in the default viewer")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Tools:")
	fmt.Fprintln(w, "      --java <path>         Java executable")
	fmt.Fprintln(w, "      --plantuml <path>     plantuml.jar or plantuml executable")
	fmt.Fprintln(w, "      --dot <path>          Graphviz dot executable")
	fmt.Fprintln(w, "      --pdflatex <path>     pdflatex executable")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Settings:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel exports (0 = auto)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug log and timing")
	fmt.Fprintln(w, "      --log-format <s>      Log format: text, json")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  P2P2P_CONFIG, P2P2P_JAVA, P2P2P_PLANTUML, P2P2P_DOT, P2P2P_PDFLATEX,")
	fmt.Fprintln(w, "  P2P2P_LOGO, P2P2P_LOG_LEVEL, P2P2P_LOG_FORMAT, P2P2P_WORKERS")
	fmt.Fprintln(w, "  Variables are also read from ./.env")
}

// printCheckUsage prints usage for the check command.
func printCheckUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: p2p2p check [file] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit 0 and print \"visible\" when the file can be exported,")
	fmt.Fprintln(w, "exit 1 and print \"hidden\" otherwise. No file means no open document.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "      --language-id <id>    Declared language of the document")
	fmt.Fprintln(w, "      --untitled            Document was never saved")
	fmt.Fprintln(w, "  -q, --quiet               Print nothing")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: p2p2p doctor [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check the external tools and temp directory an export needs.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --json                Output as JSON")
	fmt.Fprintln(w, "      --java, --plantuml, --dot, --pdflatex <path>")
	fmt.Fprintln(w, "                            Check these tool locations instead")
}

// printConfigUsage prints usage for the config command.
func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: p2p2p config [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the settings an export would use, as YAML.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --logo <path>         Image placed above the diagram")
	fmt.Fprintln(w, "      --java, --plantuml, --dot, --pdflatex <path>")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "export":
		printExportUsage(env.Stdout)
	case "check":
		printCheckUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "config":
		printConfigUsage(env.Stdout)
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: p2p2p version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: p2p2p help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
