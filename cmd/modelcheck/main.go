package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/reoring/modelcheck"
	"github.com/reoring/modelcheck/i18n"
	_ "github.com/reoring/modelcheck/source"
	drvgjson "github.com/reoring/modelcheck/source/gjson"
	drvgojson "github.com/reoring/modelcheck/source/gojson"
	"github.com/reoring/modelcheck/yamlmodel"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	sub := os.Args[1]
	switch sub {
	case "validate":
		validateCmd(os.Args[2:], modelcheck.Forward)
	case "reverse":
		validateCmd(os.Args[2:], modelcheck.Reverse)
	case "convert":
		convertCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "modelcheck CLI\n\nUsage:\n  modelcheck validate -model model.yaml [-data data.json] [-driver gojson|json|gjson] [-dup ignore|warn|error] [-max-depth N] [-json-number] [-lang en|ja] [-v]\n  modelcheck reverse  -model model.yaml [-data data.json] [...same flags]\n  modelcheck convert  -model model.yaml -to snake|camel [-o out.yaml]\n\nNotes:\n  - data is read from stdin when -data is empty or \"-\".\n  - the result object is written to stdout as JSON.")
}

func validateCmd(args []string, dir modelcheck.Direction) {
	fs := flag.NewFlagSet(dir.String(), flag.ExitOnError)
	var modelPath, dataPath, driver, dup, lang string
	var maxDepth int
	var jsonNumber, verbose bool
	fs.StringVar(&modelPath, "model", "", "YAML model file")
	fs.StringVar(&dataPath, "data", "", "JSON data file (stdin when empty or -)")
	fs.StringVar(&driver, "driver", "gojson", "JSON driver: gojson, json or gjson")
	fs.StringVar(&dup, "dup", "ignore", "duplicate key policy: ignore, warn or error")
	fs.IntVar(&maxDepth, "max-depth", 0, "maximum nesting depth of the data (0 = unlimited)")
	fs.BoolVar(&jsonNumber, "json-number", false, "keep numbers as json.Number while decoding")
	fs.StringVar(&lang, "lang", "en", "message language: en or ja")
	fs.BoolVar(&verbose, "v", false, "enable debug logs")
	_ = fs.Parse(args)
	if modelPath == "" {
		fs.Usage()
		os.Exit(2)
	}

	i18n.SetLanguage(lang)
	if err := selectDriver(driver); err != nil {
		fatalf("%v", err)
	}
	sev, err := parseSeverity(dup)
	if err != nil {
		fatalf("%v", err)
	}

	m := loadModel(modelPath)
	data, err := readInput(dataPath)
	if err != nil {
		fatalf("reading data: %v", err)
	}

	opts := []modelcheck.Option{
		modelcheck.WithDirection(dir),
		modelcheck.WithStrictness(modelcheck.Strictness{OnDuplicateKey: sev, MaxDataDepth: maxDepth}),
		modelcheck.WithLogger(newLogger(verbose)),
	}
	if jsonNumber {
		opts = append(opts, modelcheck.WithNumberMode(modelcheck.NumberJSONNumber))
	}

	c, err := modelcheck.Compile(m, opts...)
	if err != nil {
		fatalf("%v", err)
	}
	ctx := context.Background()
	var out map[string]any
	if dir == modelcheck.Reverse {
		// reverse input is an internal object; decode it first
		var v any
		v, err = modelcheck.DecodeText(data, opts...)
		if err == nil {
			out, err = c.Reverse(ctx, v)
		}
	} else {
		out, err = c.ValidateText(ctx, data)
	}
	if err != nil {
		if iss, ok := modelcheck.AsIssue(err); ok && iss.Path != "" {
			fatalf("%s (%s)", iss.Message, iss.Code)
		}
		fatalf("%v", err)
	}
	writeJSON(out)
}

func convertCmd(args []string) {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	var modelPath, to, outPath string
	fs.StringVar(&modelPath, "model", "", "YAML model file")
	fs.StringVar(&to, "to", "", "key style of the input data: snake or camel")
	fs.StringVar(&outPath, "o", "", "output filename (stdout when empty)")
	_ = fs.Parse(args)
	if modelPath == "" || to == "" {
		fs.Usage()
		os.Exit(2)
	}

	m, err := rewriteModel(loadModel(modelPath), to)
	if err != nil {
		fatalf("%v", err)
	}
	b, err := yamlmodel.Marshal(m)
	if err != nil {
		fatalf("encoding model: %v", err)
	}
	if outPath == "" {
		_, _ = os.Stdout.Write(b)
		return
	}
	if err := os.WriteFile(outPath, b, 0o644); err != nil {
		fatalf("writing output: %v", err)
	}
}

func loadModel(path string) modelcheck.Model {
	b, err := os.ReadFile(path)
	if err != nil {
		fatalf("reading model: %v", err)
	}
	m, err := yamlmodel.Load(b)
	if err != nil {
		fatalf("loading model %s: %v", path, err)
	}
	return m
}

// rewriteModel sets From on every field so the model reads data keyed in the
// given style.
func rewriteModel(m modelcheck.Model, to string) (modelcheck.Model, error) {
	switch strings.ToLower(to) {
	case "snake":
		return modelcheck.ToSnakeCaseModel(m), nil
	case "camel":
		return modelcheck.ToCamelCaseModel(m), nil
	}
	return nil, fmt.Errorf("unknown -to %q (want snake or camel)", to)
}

func selectDriver(name string) error {
	switch name {
	case "gojson", "go-json":
		modelcheck.SetJSONDriver(drvgojson.Driver())
	case "json", "encoding/json":
		modelcheck.UseDefaultJSONDriver()
	case "gjson":
		modelcheck.SetJSONDriver(drvgjson.Driver())
	default:
		return fmt.Errorf("unknown driver %q", name)
	}
	return nil
}

func parseSeverity(s string) (modelcheck.Severity, error) {
	switch s {
	case "ignore":
		return modelcheck.Ignore, nil
	case "warn":
		return modelcheck.Warn, nil
	case "error":
		return modelcheck.Error, nil
	}
	return 0, fmt.Errorf("unknown duplicate key policy %q", s)
}

func newLogger(verbose bool) modelcheck.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return modelcheck.NewSlogAdapter(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func writeJSON(v any) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fatalf("encoding result: %v", err)
	}
	_, _ = os.Stdout.Write(append(b, '\n'))
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
