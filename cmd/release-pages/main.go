package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"

	releasepages "github.com/barqly/release-pages"
	"github.com/barqly/release-pages/pkg/generator"
	"github.com/barqly/release-pages/pkg/page"
	"github.com/barqly/release-pages/pkg/release"
)

func main() {
	dataPath := flag.String("data", "data/downloads.json", "release data document (JSON or YAML)")
	htmlTemplate := flag.String("html-template", "", "HTML page template (embedded default if empty)")
	mdTemplate := flag.String("md-template", "", "Markdown page template (embedded default if empty)")
	outHTML := flag.String("out-html", "public-docs/downloads/index.html", "HTML output path")
	outMD := flag.String("out-md", "public-docs/downloads.md", "Markdown output path")
	repo := flag.String("repo", page.DefaultRepository, "GitHub org/repo slug for download URLs")
	flag.Parse()

	ctx := context.Background()

	loader := releasepages.NewLoader()
	doc, err := loader.Load(ctx, release.SourceFromFile(*dataPath))
	if err != nil {
		log.Fatalf("Failed to load release data: %v", err)
	}
	data, err := release.DecodeDocument(doc)
	if err != nil {
		log.Fatalf("Failed to decode release data: %v", err)
	}

	fmt.Printf("Generating download pages for version %s\n", data.Latest.Version)

	gen := generator.New(generator.WithRepository(*repo))

	targets := []struct {
		label        string
		templatePath string
		renderer     string
		out          string
	}{
		{label: "HTML", templatePath: *htmlTemplate, renderer: "html", out: *outHTML},
		{label: "Markdown", templatePath: *mdTemplate, renderer: "markdown", out: *outMD},
	}

	for _, target := range targets {
		output, err := gen.Generate(ctx, generator.Request{
			Data:         &data,
			TemplatePath: target.templatePath,
			Renderer:     target.renderer,
		})
		if err != nil {
			log.Fatalf("Failed to generate %s page: %v", target.label, err)
		}
		if err := writeOutput(target.out, output); err != nil {
			log.Fatalf("Failed to write %s: %v", target.out, err)
		}
		fmt.Printf("%s page written to %s\n", target.label, target.out)
	}
}

func writeOutput(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return atomic.WriteFile(path, bytes.NewReader(data))
}
