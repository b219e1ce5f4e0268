// Package yaml_adapter loads YAML configuration files into the unified
// configuration model.
//
// A document is a mapping. The reserved "properties" key holds a mapping of
// substitution properties; every other key is a component, or a sequence of
// components sharing that element name:
//
//	properties:
//	  host: example.org
//	console:
//	  name: app
//	  layout:
//	    pattern: "%d %m"
//	http_client:
//	  - timeout: 5s
//	  - timeout: 30s
//
// Inside a component, scalars are attributes, mappings are child elements,
// sequences of mappings are repeated child elements and sequences of scalars
// are child elements carrying only a value.
package yaml_adapter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/specialistvlad/plugbuild/internal/config"
	"github.com/specialistvlad/plugbuild/internal/ctxlog"
	"github.com/specialistvlad/plugbuild/internal/fsutil"
	"gopkg.in/yaml.v3"
)

// Extensions are the file extensions the loader picks up.
var Extensions = []string{".yaml", ".yml"}

// Loader is the YAML-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new YAML configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every YAML file found under paths, including every document of
// multi-document files, and merges them into one model.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("YAML loader started.", "path_count", len(paths))

	files, err := fsutil.FindFiles(paths, Extensions...)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered YAML files.", "count", len(files))

	model := config.NewModel()
	for _, file := range files {
		fileModel, err := loadFile(file)
		if err != nil {
			return nil, err
		}
		model.Merge(fileModel)
		logger.Debug("Loaded YAML file.", "file", file, "components", len(fileModel.Components))
	}

	logger.Debug("YAML loading complete.", "components", len(model.Components), "properties", len(model.Properties))
	return model, nil
}

func loadFile(path string) (*config.Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open YAML file %s: %w", path, err)
	}
	defer f.Close()

	model := config.NewModel()
	dec := yaml.NewDecoder(f)
	for {
		var doc yaml.Node
		if err := dec.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to parse YAML file %s: %w", path, err)
		}
		docModel, diags := translateDocument(path, &doc)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to translate YAML file %s: %w", path, diags)
		}
		model.Merge(docModel)
	}
	return model, nil
}
