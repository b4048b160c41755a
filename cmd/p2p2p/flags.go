package main

import (
	"os"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config    string
	quiet     bool
	verbose   bool
	logFormat string
}

// toolFlags overrides external tool locations.
type toolFlags struct {
	java     string
	plantuml string
	dot      string
	pdflatex string
}

// exportFlags holds all flags for the export command.
type exportFlags struct {
	common     commonFlags
	tools      toolFlags
	logo       string
	languageID string
	stdin      bool
	open       bool
	workers    int
}

// checkFlags holds flags for the check command.
type checkFlags struct {
	languageID string
	untitled   bool
	quiet      bool
}

// doctorFlags holds flags for the doctor command.
type doctorFlags struct {
	config string
	json   bool
	tools  toolFlags
}

// configFlags holds flags for the config command.
type configFlags struct {
	config string
	tools  toolFlags
	logo   string
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug log and timing")
	fs.StringVar(&f.logFormat, "log-format", "", "log format: text, json")
}

// addToolFlags adds tool location flags to a FlagSet.
func addToolFlags(fs *flag.FlagSet, f *toolFlags) {
	fs.StringVar(&f.java, "java", "", "java executable")
	fs.StringVar(&f.plantuml, "plantuml", "", "plantuml.jar or plantuml executable")
	fs.StringVar(&f.dot, "dot", "", "Graphviz dot executable")
	fs.StringVar(&f.pdflatex, "pdflatex", "", "pdflatex executable")
}

// newExportFlagSet registers the export command flags into f.
// Shell completion reads the same FlagSet.
func newExportFlagSet(f *exportFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)

	fs.StringVar(&f.logo, "logo", "", "image placed above the diagram")
	fs.StringVar(&f.languageID, "language-id", "", "declared language of the input (e.g. plantuml)")
	fs.BoolVar(&f.stdin, "stdin", false, "read unsaved content from stdin and save it before export")
	fs.BoolVar(&f.open, "open", false, "open exported PDFs in the default viewer")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel exports (0 = auto)")

	addCommonFlags(fs, &f.common)
	addToolFlags(fs, &f.tools)

	fs.Usage = func() { printExportUsage(os.Stderr) }
	return fs
}

// parseExportFlags parses export command flags and returns positional args.
func parseExportFlags(args []string) (*exportFlags, []string, error) {
	f := &exportFlags{}
	fs := newExportFlagSet(f)
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

func newCheckFlagSet(f *checkFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)

	fs.StringVar(&f.languageID, "language-id", "", "declared language of the document")
	fs.BoolVar(&f.untitled, "untitled", false, "document was never saved")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "print nothing, only set the exit code")

	fs.Usage = func() { printCheckUsage(os.Stderr) }
	return fs
}

// parseCheckFlags parses check command flags and returns positional args.
func parseCheckFlags(args []string) (*checkFlags, []string, error) {
	f := &checkFlags{}
	fs := newCheckFlagSet(f)
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

func newDoctorFlagSet(f *doctorFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)

	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVar(&f.json, "json", false, "output as JSON")
	addToolFlags(fs, &f.tools)

	fs.Usage = func() { printDoctorUsage(os.Stderr) }
	return fs
}

// parseDoctorFlags parses doctor command flags.
func parseDoctorFlags(args []string) (*doctorFlags, error) {
	f := &doctorFlags{}
	if err := newDoctorFlagSet(f).Parse(args); err != nil {
		return nil, err
	}
	return f, nil
}

func newConfigFlagSet(f *configFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)

	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVar(&f.logo, "logo", "", "image placed above the diagram")
	addToolFlags(fs, &f.tools)

	fs.Usage = func() { printConfigUsage(os.Stderr) }
	return fs
}

// parseConfigFlags parses config command flags.
func parseConfigFlags(args []string) (*configFlags, error) {
	f := &configFlags{}
	if err := newConfigFlagSet(f).Parse(args); err != nil {
		return nil, err
	}
	return f, nil
}
