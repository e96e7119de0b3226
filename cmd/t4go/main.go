package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/gubarz/t4go/internal/config"
	"github.com/gubarz/t4go/internal/emit"
	"github.com/gubarz/t4go/internal/executor"
	"github.com/gubarz/t4go/internal/log"
	"github.com/gubarz/t4go/internal/render"
	"github.com/gubarz/t4go/internal/source"
	"github.com/gubarz/t4go/internal/template"
	"github.com/gubarz/t4go/internal/ui"
)

var version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "t4go",
	Short: "T4-style text template compiler",
	Long: `Compiles T4-style text templates into source code.

Templates mix literal text with <# code #>, <#= expression #> and
<#@ directive #> blocks. Each template becomes a WriteTemplate method
on a type (Go) or a Display implementation (Rust).`,
	SilenceUsage: true,
}

var compileCmd = &cobra.Command{
	Use:   "compile [patterns...]",
	Short: "Compile templates into source files",
	Long: `Compiles every template matching the given patterns (default **/*.tt).
Directories match every template below them.`,
	RunE: runCompile,
}

var segmentsCmd = &cobra.Command{
	Use:   "segments [file]",
	Short: "Print the segments of a compiled template",
	Args:  cobra.ExactArgs(1),
	RunE:  runSegments,
}

var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Render a template against a YAML data file",
	Long: `Interprets a template without compiling the generated code.
Expressions are looked up as dotted paths in the data file;
code blocks are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

var previewCmd = &cobra.Command{
	Use:   "preview [file]",
	Short: "Browse a template's source, segments, code and output",
	Args:  cobra.ExactArgs(1),
	RunE:  runPreview,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.AddCommand(compileCmd, segmentsCmd, renderCmd, previewCmd)

	rootCmd.PersistentFlags().StringP("backend", "B", "", "Code generation backend: go, rust")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Trace parsing and write .tt.out segment dumps")
	rootCmd.PersistentFlags().Bool("clean-whitespace", false, "Start templates with whitespace cleaning on")
	rootCmd.PersistentFlags().String("escape", "", "Initial escape function for expressions")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose logging")

	compileCmd.Flags().StringP("package", "p", "", "Go package name (default: template directory name)")
	compileCmd.Flags().StringP("type", "t", "", "Type name (default: derived from the file name)")
	compileCmd.Flags().String("suffix", "", "Generated file suffix (default: _tt.go or .rs)")
	compileCmd.Flags().StringSlice("import", nil, "Extra Go imports for code blocks")
	compileCmd.Flags().Bool("stdout", false, "Print generated code instead of writing files")
	compileCmd.Flags().Bool("no-format", false, "Skip gofmt and the default formatter on generated code")
	compileCmd.Flags().String("post-process", "", "Shell command generated code is piped through")

	segmentsCmd.Flags().StringP("format", "f", "text", "Output format: text, yaml")
	segmentsCmd.Flags().Bool("raw", false, "Show segments before whitespace cleaning and merging")

	renderCmd.Flags().StringP("data", "D", "", "YAML data file")
	previewCmd.Flags().StringP("data", "D", "", "YAML data file")
	previewCmd.Flags().StringP("type", "t", "", "Type name (default: derived from the file name)")

	viper.BindPFlag("backend", rootCmd.PersistentFlags().Lookup("backend"))
	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("clean_whitespace", rootCmd.PersistentFlags().Lookup("clean-whitespace"))
	viper.BindPFlag("escape", rootCmd.PersistentFlags().Lookup("escape"))
	viper.BindPFlag("package", compileCmd.Flags().Lookup("package"))
	viper.BindPFlag("suffix", compileCmd.Flags().Lookup("suffix"))
	viper.BindPFlag("imports", compileCmd.Flags().Lookup("import"))
	viper.BindPFlag("post_process", compileCmd.Flags().Lookup("post-process"))
}

func initConfig() {
	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
	}
	log.SetColors(config.GetColorTrace(), config.GetColorWarn(), config.GetColorError())
	if verbose, _ := rootCmd.PersistentFlags().GetBool("verbose"); verbose {
		log.SetLevel(log.LevelDebug)
	}
}

// compileOptions builds the initial template state from config
func compileOptions() template.Options {
	return template.Options{
		Debug:           config.GetDebug(),
		CleanWhitespace: config.GetCleanWhitespace(),
		Escape:          config.GetEscape(),
		Sink:            log.Sink(),
	}
}

// compileFile loads and compiles one template, writing the debug dump when
// debug is on.
func compileFile(path string) (*source.Template, *template.Program, error) {
	tmpl, err := source.Load(path)
	if err != nil {
		return nil, nil, err
	}
	log.Debug("compiling %s", tmpl.Path)

	opts := compileOptions()
	prog, err := template.Compile(tmpl.Text, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}

	if opts.Debug {
		if err := source.WriteDump(tmpl.Path, prog.Raw); err != nil {
			log.Warn("could not write segment dump: %v", err)
		}
	}
	return tmpl, prog, nil
}

func backend(cmd *cobra.Command) (emit.Backend, error) {
	b, err := emit.Lookup(config.GetBackend())
	if err != nil {
		return nil, err
	}
	if g, ok := b.(emit.Go); ok {
		noFormat, _ := cmd.Flags().GetBool("no-format")
		g.Raw = noFormat || !config.GetFormat()
		return g, nil
	}
	return b, nil
}

func frameFor(cmd *cobra.Command, path string) emit.Frame {
	typeName, _ := cmd.Flags().GetString("type")
	if typeName == "" {
		typeName = source.TypeName(path)
	}
	pkg := config.GetPackage()
	if pkg == "" {
		pkg = source.PackageName(path)
	}
	return emit.Frame{
		Package: pkg,
		Type:    typeName,
		Source:  filepath.Base(path),
		Imports: config.GetImports(),
	}
}

// postProcessCommand returns the command run over generated code. Without
// one configured, the backend's formatter is used when it is installed.
func postProcessCommand(cmd *cobra.Command, b emit.Backend) string {
	if c := config.GetPostProcess(); c != "" {
		return c
	}
	if noFormat, _ := cmd.Flags().GetBool("no-format"); noFormat || !config.GetFormat() {
		return ""
	}
	c := executor.DefaultCommand(b.Name())
	if c != "" && !executor.CommandExists(c) {
		log.Debug("%s not found, leaving %s output unformatted", c, b.Name())
		return ""
	}
	return c
}

func runCompile(cmd *cobra.Command, args []string) error {
	b, err := backend(cmd)
	if err != nil {
		return err
	}
	runner := executor.NewExecutor(config.GetShell())
	post := postProcessCommand(cmd, b)

	files, err := source.Find(".", args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no templates found")
	}

	toStdout, _ := cmd.Flags().GetBool("stdout")
	for _, file := range files {
		tmpl, prog, err := compileFile(file)
		if err != nil {
			return err
		}

		code, err := emit.Generate(prog, b, frameFor(cmd, tmpl.Path))
		if err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
		if code, err = executor.PostProcess(runner, post, code); err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}

		if toStdout {
			fmt.Print(code)
			continue
		}
		out := source.OutputPath(tmpl.Path, config.GetSuffix(b.Name()))
		if err := os.WriteFile(out, []byte(code), 0o644); err != nil {
			return fmt.Errorf("error writing output: %w", err)
		}
		log.Info("%s -> %s", file, out)
	}
	return nil
}

func runSegments(cmd *cobra.Command, args []string) error {
	_, prog, err := compileFile(args[0])
	if err != nil {
		return err
	}

	segs := prog.Segments
	if raw, _ := cmd.Flags().GetBool("raw"); raw {
		segs = prog.Raw
	}

	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "text":
		return template.Dump(os.Stdout, segs)
	case "yaml":
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(segmentDocs(segs))
	default:
		return fmt.Errorf("unsupported format: %s (supported: text, yaml)", format)
	}
}

// segmentDoc is the YAML form of a segment
type segmentDoc struct {
	Kind      string              `yaml:"kind"`
	Content   string              `yaml:"content,omitempty"`
	Directive *template.Directive `yaml:"directive,omitempty"`
}

func segmentDocs(segs []template.Segment) []segmentDoc {
	docs := make([]segmentDoc, 0, len(segs))
	for _, s := range segs {
		doc := segmentDoc{Kind: s.Kind.String(), Content: s.Content}
		if s.Kind == template.KindDirective {
			d := s.Directive
			doc.Directive = &d
		}
		docs = append(docs, doc)
	}
	return docs
}

func loadEvaluator(cmd *cobra.Command) (render.Evaluator, error) {
	dataPath, _ := cmd.Flags().GetString("data")
	if dataPath == "" {
		return nil, nil
	}
	data, err := render.LoadData(dataPath)
	if err != nil {
		return nil, fmt.Errorf("data error: %w", err)
	}
	return data, nil
}

func runRender(cmd *cobra.Command, args []string) error {
	_, prog, err := compileFile(args[0])
	if err != nil {
		return err
	}

	eval, err := loadEvaluator(cmd)
	if err != nil {
		return err
	}
	if eval == nil {
		eval = &render.DataEvaluator{Data: map[string]any{}}
	}
	return render.NewRenderer(eval).Render(os.Stdout, prog)
}

func runPreview(cmd *cobra.Command, args []string) error {
	b, err := backend(cmd)
	if err != nil {
		return err
	}
	eval, err := loadEvaluator(cmd)
	if err != nil {
		return err
	}

	path, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("error resolving path: %w", err)
	}
	opts := compileOptions()
	// Trace output would draw over the TUI
	opts.Sink = nil

	return ui.RunPreview(ui.Preview{
		Path:    path,
		Options: opts,
		Backend: b,
		Frame:   frameFor(cmd, path),
		Eval:    eval,
	})
}

func main() {
	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
