// Package driver orchestrates whole translation runs: decode the ESTree
// JSON, generate raw Ruby, run the correction pipeline, write output.
// It also owns the disk cache and the parallel directory walker.
package driver

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"jsrb/internal/ast"
	"jsrb/internal/correct"
	"jsrb/internal/gen"
	"jsrb/internal/observ"
	"jsrb/internal/pipeline"
	"jsrb/internal/project"
)

// Translator holds everything reusable across files of one run: the
// generator options and the compiled correction pipeline. Construction
// fails on a malformed correction table, so translation itself never
// meets an invalid pattern.
type Translator struct {
	genOpts         gen.Options
	pipe            *correct.Pipeline
	fingerprintSeed []byte
}

// Result describes one translated file.
type Result struct {
	Path    string // input path
	OutPath string // written output path, "" when not written
	Output  string // corrected target text
	Cached  bool   // served from the disk cache
	Timer   *observ.Timer
	Err     error // per-file failure during a directory run
}

// New builds a Translator from a resolved manifest.
func New(m *project.Manifest) (*Translator, error) {
	if m == nil {
		m = project.Default()
	}
	pipe, err := correct.New(m.Rules(), m.CorrectOptions())
	if err != nil {
		return nil, err
	}
	return &Translator{
		genOpts:         gen.Options{IndentWidth: m.Translate.IndentWidth},
		pipe:            pipe,
		fingerprintSeed: fingerprintSeed(m),
	}, nil
}

// TranslateSource runs the full decode -> generate -> correct sequence
// over one ESTree JSON document. All-or-nothing: any failure discards
// the run's partial output.
func (t *Translator) TranslateSource(src []byte) (string, error) {
	out, _, err := t.translateTimed(src, nil, nil)
	return out, err
}

// stageFunc observes the translation entering a stage. Directory runs use
// it to feed progress events; nil disables reporting.
type stageFunc func(pipeline.Stage)

func (t *Translator) translateTimed(src []byte, tm *observ.Timer, onStage stageFunc) (string, *ast.Node, error) {
	begin := func(name string) int {
		if tm == nil {
			return -1
		}
		return tm.Begin(name)
	}
	end := func(idx int, note string) {
		if tm != nil {
			tm.End(idx, note)
		}
	}
	enter := func(s pipeline.Stage) {
		if onStage != nil {
			onStage(s)
		}
	}

	enter(pipeline.StageDecode)
	ph := begin("decode")
	root, err := ast.DecodeBytes(src)
	end(ph, "")
	if err != nil {
		return "", nil, err
	}

	enter(pipeline.StageGenerate)
	ph = begin("generate")
	raw, err := gen.Translate(root, t.genOpts)
	end(ph, fmt.Sprintf("%d bytes raw", len(raw)))
	if err != nil {
		return "", nil, err
	}

	enter(pipeline.StageCorrect)
	ph = begin("correct")
	out := t.pipe.Apply(raw)
	end(ph, fmt.Sprintf("%d bytes final", len(out)))
	return out, root, nil
}

// TranslateFile translates one input file and, when outPath is not "-",
// writes the result next to the requested location. An empty outPath
// derives the output name from the input (".json" becomes ".rb").
func (t *Translator) TranslateFile(path, outPath string, cache *DiskCache, timings bool) (Result, error) {
	return t.translateFile(path, outPath, cache, timings, nil)
}

func (t *Translator) translateFile(path, outPath string, cache *DiskCache, timings bool, onStage stageFunc) (Result, error) {
	res := Result{Path: path}
	if timings {
		res.Timer = observ.NewTimer()
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return res, fmt.Errorf("driver: read %s: %w", path, err)
	}

	key := t.Fingerprint(src)
	if cache != nil {
		var payload DiskPayload
		hit, err := cache.Get(key, &payload)
		if err == nil && hit && payload.Schema == diskCacheSchemaVersion {
			res.Output = payload.Output
			res.Cached = true
		}
	}

	if !res.Cached {
		out, _, err := t.translateTimed(src, res.Timer, onStage)
		if err != nil {
			return res, fmt.Errorf("driver: translate %s: %w", path, err)
		}
		res.Output = out
		if cache != nil {
			// Cache errors are not fatal; the translation stands.
			_ = cache.Put(key, &DiskPayload{
				Schema: diskCacheSchemaVersion,
				Output: out,
			})
		}
	}

	if outPath == "-" {
		return res, nil
	}
	if outPath == "" {
		outPath = OutputName(path)
	}
	if onStage != nil {
		onStage(pipeline.StageWrite)
	}
	ph := -1
	if res.Timer != nil {
		ph = res.Timer.Begin("write")
	}
	err = writeFileAtomic(outPath, []byte(res.Output))
	if res.Timer != nil {
		res.Timer.End(ph, outPath)
	}
	if err != nil {
		return res, fmt.Errorf("driver: write %s: %w", outPath, err)
	}
	res.OutPath = outPath
	return res, nil
}

// OutputName derives the target filename for an input AST file.
func OutputName(path string) string {
	ext := filepath.Ext(path)
	if strings.EqualFold(ext, ".json") {
		return strings.TrimSuffix(path, ext) + ".rb"
	}
	return path + ".rb"
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, "tmp-*")
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return err
	}
	return os.Rename(f.Name(), path)
}
