package scene

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"sceneforge/internal/logging"
)

// signaturePrefix is the fixed header every recognized document starts with.
const signaturePrefix = "%YAML"

// Document is the in-memory representation of one scene, prefab, or asset
// file. It owns its block sequence exclusively: the design has no
// cross-process coordination, and concurrent invocations against the same
// file follow last-writer-wins.
type Document struct {
	path   string
	header []string
	blocks []*Block

	byID    map[int64]*Block
	byClass map[int][]*Block

	classCfg *ClassConfig

	crlf            bool
	trailingNewline bool
	dirty           bool
}

// Load reads and tokenizes a document. A missing file reports ErrNotFound;
// a file without the %YAML signature or without any block anchor reports
// ErrNotRecognized rather than attempting a best-effort parse.
func Load(path string) (*Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	doc, err := Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	doc.path = path
	logging.Scan("loaded %s: %d blocks", path, len(doc.blocks))
	return doc, nil
}

// Parse builds a Document from raw text without touching the filesystem.
func Parse(content string) (*Document, error) {
	if !strings.HasPrefix(content, signaturePrefix) {
		return nil, ErrNotRecognized
	}
	res := split(content)
	if len(res.blocks) == 0 {
		return nil, ErrNotRecognized
	}

	doc := &Document{
		header:          res.header,
		blocks:          res.blocks,
		crlf:            res.crlf,
		trailingNewline: res.trailingNewline,
	}
	doc.reindex()
	return doc, nil
}

// reindex rebuilds the ID and class lookups from the live block sequence.
// Structural mutations call this after changing the sequence.
func (d *Document) reindex() {
	d.byID = make(map[int64]*Block, len(d.blocks))
	d.byClass = make(map[int][]*Block)
	for _, b := range d.blocks {
		d.byID[b.FileID] = b
		d.byClass[b.ClassID] = append(d.byClass[b.ClassID], b)
	}
}

// Path returns the source file path, empty for parsed-only documents.
func (d *Document) Path() string { return d.path }

// Blocks returns the live block sequence in document order.
func (d *Document) Blocks() []*Block { return d.blocks }

// Dirty reports whether the document has unsaved mutations.
func (d *Document) Dirty() bool { return d.dirty }

// markDirty flags the document for the next save.
func (d *Document) markDirty() { d.dirty = true }

// FindByID returns the block with the given file ID, or nil.
func (d *Document) FindByID(id int64) *Block {
	return d.byID[id]
}

// FindByClass returns all blocks of a class in document order.
func (d *Document) FindByClass(classID int) []*Block {
	return d.byClass[classID]
}

// Render serializes the document to text in current sequence order,
// restoring the original line-ending convention.
func (d *Document) Render() string {
	return render(d.header, d.blocks, d.crlf, d.trailingNewline)
}

// Save atomically rewrites the source file: the content is written to a
// temporary file in the same directory and renamed over the original, so a
// crash mid-write never corrupts the file and success leaves no stray temp
// file behind. Returns the number of bytes written.
func (d *Document) Save() (int, error) {
	if d.path == "" {
		return 0, fmt.Errorf("document has no source path")
	}

	content := []byte(d.Render())

	dir := filepath.Dir(d.path)
	tmp, err := os.CreateTemp(dir, ".sceneforge-*.tmp")
	if err != nil {
		return 0, fmt.Errorf("create temp file in %s: %w", dir, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return 0, fmt.Errorf("write %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return 0, fmt.Errorf("close %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, d.path); err != nil {
		os.Remove(tmpPath)
		return 0, fmt.Errorf("rename over %s: %w", d.path, err)
	}

	d.dirty = false
	logging.Scan("saved %s: %d bytes", d.path, len(content))
	return len(content), nil
}

// insertBlock appends a block to the sequence and updates the indexes.
func (d *Document) insertBlock(b *Block) {
	d.blocks = append(d.blocks, b)
	d.byID[b.FileID] = b
	d.byClass[b.ClassID] = append(d.byClass[b.ClassID], b)
	d.markDirty()
}

// removeBlock deletes a block from the sequence by file ID. Reports whether
// a block was removed.
func (d *Document) removeBlock(id int64) bool {
	for i, b := range d.blocks {
		if b.FileID == id {
			d.blocks = append(d.blocks[:i], d.blocks[i+1:]...)
			d.reindex()
			d.markDirty()
			return true
		}
	}
	return false
}
