package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	easy "github.com/t-tomalak/logrus-easy-formatter"

	"github.com/spf13/cobra"

	"github.com/minilang/minilangc/internal/ast"
	"github.com/minilang/minilangc/internal/backend"
	"github.com/minilang/minilangc/internal/config"
	"github.com/minilang/minilangc/internal/diag"
	"github.com/minilang/minilangc/internal/lexer"
	"github.com/minilang/minilangc/internal/parser"
	"github.com/minilang/minilangc/internal/sema"
)

var (
	errColor = color.New(color.FgRed, color.Bold)
	dimColor = color.New(color.FgWhite, color.Faint)
	tokColor = color.New(color.FgRed, color.Bold, color.Underline)
	okColor  = color.New(color.FgGreen)
)

var (
	flagVerbose   bool
	flagTACStdout bool
	flagOut       string
	flagConfig    string
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "minilangc [files...]",
		Short: "Compile MiniLang source files to three-address code",
		RunE:  runCompile,
	}
	cmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "log token stream, AST and scope tables")
	cmd.Flags().BoolVar(&flagTACStdout, "tac-stdout", false, "print TAC to stdout instead of writing .tac files")
	cmd.Flags().StringVar(&flagOut, "out", "", "directory to write .tac files to (default: alongside each source file)")
	cmd.Flags().StringVar(&flagConfig, "config", ".minilangrc.toml", "path to an optional config file")
	cmd.AddCommand(newReplCmd())
	return cmd
}

func newLogger(verbose bool) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&easy.Formatter{
		TimestampFormat: "15:04:05",
		LogFormat:       "[%lvl%] %time% %msg%\n",
	})
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.InfoLevel)
	}
	return log
}

func runCompile(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	verbose := flagVerbose || cfg.Verbose
	tacStdout := flagTACStdout || cfg.TACStdout
	outDir := flagOut
	if outDir == "" {
		outDir = cfg.OutDir
	}
	files := args
	if len(files) == 0 {
		files = cfg.Files
	}
	if len(files) == 0 {
		return fmt.Errorf("no source files given on the command line or in %s", flagConfig)
	}

	log := newLogger(verbose)
	runID := uuid.NewString()
	entry := log.WithField("run_id", runID)

	var batchErr *multierror.Error
	for _, file := range files {
		if err := compileOne(entry, file, tacStdout, outDir); err != nil {
			batchErr = multierror.Append(batchErr, fmt.Errorf("%s: %w", file, err))
		}
	}
	if batchErr.ErrorOrNil() != nil {
		return batchErr.ErrorOrNil()
	}
	return nil
}

// compileOne runs one file through the full lex/parse/check/generate
// pipeline, independent of every other file in the batch: a compilation
// failure in one file never prevents the others from running, and each
// gets its own fresh Generator so temp/label counters restart per spec.
func compileOne(log *logrus.Entry, path string, tacStdout bool, outDir string) error {
	flog := log.WithField("file", path)
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	flog.Debug("lexing")
	toks, err := lexer.New(string(src)).Lex()
	if err != nil {
		return reportStage(flog, path, string(src), err)
	}
	flog.WithField("tokens", len(toks)).Debug("lexed")
	if flog.Logger.IsLevelEnabled(logrus.DebugLevel) {
		for _, t := range toks {
			flog.Debugf("token %s", t.String())
		}
	}

	flog.Debug("parsing")
	prog, err := parser.NewParser(toks).ParseFile()
	if err != nil {
		return reportStage(flog, path, string(src), err)
	}
	flog.Debug("parsed")
	flog.Debugf("ast:\n%s", ast.PrettyPrint(prog))
	dumpScope(flog, prog.Root.Scope, 0)

	flog.Debug("checking")
	if err := sema.NewChecker().Check(prog); err != nil {
		return reportStage(flog, path, string(src), err)
	}
	flog.Debug("checked")

	flog.Debug("generating TAC")
	lines := backend.NewGenerator().Generate(prog).Lines()

	out := strings.Join(lines, "\n") + "\n"
	if tacStdout {
		fmt.Print(out)
		return nil
	}
	target := tacPath(path, outDir)
	if err := os.WriteFile(target, []byte(out), 0644); err != nil {
		return err
	}
	okColor.Fprintf(os.Stderr, "%s -> %s\n", path, target)
	return nil
}

func tacPath(src, outDir string) string {
	base := filepath.Base(src)
	ext := filepath.Ext(base)
	name := base[:len(base)-len(ext)] + ".tac"
	if outDir == "" {
		return filepath.Join(filepath.Dir(src), name)
	}
	return filepath.Join(outDir, name)
}

func dumpScope(log *logrus.Entry, s *ast.Scope, depth int) {
	if s == nil || !log.Logger.IsLevelEnabled(logrus.DebugLevel) {
		return
	}
	indent := strings.Repeat("  ", depth)
	for name, sym := range s.Table {
		log.Debugf("%sscope: %s : %s", indent, name, sym.Type)
	}
	for _, c := range s.Children {
		dumpScope(log, c, depth+1)
	}
}

// reportStage renders a diag.Error with a highlighted source line and
// returns it so the caller can fold it into the batch's multierror.
func reportStage(log *logrus.Entry, file, src string, err error) error {
	d := diag.FromStageError(err, src)
	d = d.WithFile(file)
	printDiag(d)
	log.WithError(d).Error("compilation failed")
	return d
}

func printDiag(d *diag.Error) {
	errColor.Fprintf(os.Stderr, "%s: %s error: %s\n", d.File, d.Kind, d.Msg)
	if d.Source == "" {
		return
	}
	dimColor.Fprintf(os.Stderr, "  %s\n", d.Source)
	if d.Col > 0 && d.Col <= len(d.Source)+1 {
		caret := strings.Repeat(" ", d.Col-1) + "^"
		tokColor.Fprintf(os.Stderr, "  %s\n", caret)
	}
}
