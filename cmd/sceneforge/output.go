package main

import (
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"sceneforge/internal/config"
	"sceneforge/internal/scene"
)

// emit prints a command result. With --json the value is marshaled as
// indented JSON; otherwise human lets the command render something terse.
// A nil human falls back to JSON so every command has machine output.
func emit(v interface{}, human func()) error {
	if !jsonOutput && human != nil {
		human()
		return nil
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

// failf writes a failed command's error. JSON mode keeps the envelope
// parseable for tooling that drives the CLI.
func failf(err error) {
	if jsonOutput {
		data, _ := json.Marshal(map[string]string{"error": err.Error()})
		fmt.Println(string(data))
		return
	}
	fmt.Fprintln(os.Stderr, "Error:", err.Error())
}

// openDocument loads a scene file and applies the configured class table.
func openDocument(path string) (*scene.Document, error) {
	doc, err := scene.Load(path)
	if err != nil {
		return nil, err
	}
	doc.SetClassConfig(activeConfig().Scene.ClassConfig())
	return doc, nil
}

// activeConfig guards against commands that run before PersistentPreRunE
// in tests.
func activeConfig() *config.Config {
	if cfg == nil {
		cfg = config.Default()
	}
	return cfg
}

// saveDocument persists edits and reports the write.
func saveDocument(doc *scene.Document) error {
	n, err := doc.Save()
	if err != nil {
		return err
	}
	if logger != nil {
		logger.Debug("document saved",
			zap.String("path", doc.Path()), zap.Int("bytes", n))
	}
	return nil
}
