// Package loader reads benchmark graphs and ground-truth labelings from
// disk. Edge lists hold one edge per line as two node identifiers; label
// files hold one community per line as whitespace-separated identifiers.
// Lines starting with '#' are comments. Files may be stored plain, gzip
// compressed (.gz) or snappy compressed (.sz).
package loader

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/golang/snappy"

	"github.com/dd0wney/communitybench/pkg/graph"
)

// Compression selects how input files are decoded
type Compression string

const (
	// CompressionAuto picks a codec from the file extension
	CompressionAuto Compression = "auto"
	// CompressionNone reads the file as-is
	CompressionNone Compression = "none"
	// CompressionGzip decodes gzip streams
	CompressionGzip Compression = "gzip"
	// CompressionSnappy decodes framed snappy streams
	CompressionSnappy Compression = "snappy"
)

// maxLineSize bounds a single input line; ground-truth communities can list
// hundreds of thousands of members on one line.
const maxLineSize = 64 * 1024 * 1024

// ParseCompression converts a string to a Compression mode.
func ParseCompression(s string) (Compression, error) {
	switch Compression(s) {
	case "", CompressionAuto:
		return CompressionAuto, nil
	case CompressionNone, CompressionGzip, CompressionSnappy:
		return Compression(s), nil
	default:
		return "", fmt.Errorf("unknown compression %q", s)
	}
}

// openReader opens path and wraps it with the requested decompressor.
func openReader(path string, compression Compression) (io.ReadCloser, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	if compression == CompressionAuto {
		switch filepath.Ext(path) {
		case ".gz":
			compression = CompressionGzip
		case ".sz":
			compression = CompressionSnappy
		default:
			compression = CompressionNone
		}
	}

	switch compression {
	case CompressionGzip:
		gz, err := gzip.NewReader(file)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("open gzip %s: %w", path, err)
		}
		return &wrappedReadCloser{Reader: gz, closers: []io.Closer{gz, file}}, nil
	case CompressionSnappy:
		return &wrappedReadCloser{Reader: snappy.NewReader(file), closers: []io.Closer{file}}, nil
	default:
		return file, nil
	}
}

// wrappedReadCloser closes both a decoder and its underlying file.
type wrappedReadCloser struct {
	io.Reader
	closers []io.Closer
}

func (w *wrappedReadCloser) Close() error {
	var first error
	for _, c := range w.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// LoadEdgeList reads an undirected edge list into a MemoryGraph.
// Self-loops are dropped; duplicate edges collapse.
func LoadEdgeList(path string, compression Compression) (*graph.MemoryGraph, error) {
	reader, err := openReader(path, compression)
	if err != nil {
		return nil, fmt.Errorf("load edge list: %w", err)
	}
	defer reader.Close()

	g := graph.NewMemoryGraph()
	scanner := newLineScanner(reader)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, fmt.Errorf("load edge list %s line %d: expected two node ids, got %q", path, lineNo, line)
		}

		u, err := parseNodeID(fields[0])
		if err != nil {
			return nil, fmt.Errorf("load edge list %s line %d: %w", path, lineNo, err)
		}
		v, err := parseNodeID(fields[1])
		if err != nil {
			return nil, fmt.Errorf("load edge list %s line %d: %w", path, lineNo, err)
		}

		g.AddEdge(u, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("load edge list %s: %w", path, err)
	}

	return g, nil
}

// LoadLabels reads a ground-truth labeling: one community per line.
// Blank lines and comments are skipped; empty communities never appear.
func LoadLabels(path string, compression Compression) ([]graph.NodeSet, error) {
	reader, err := openReader(path, compression)
	if err != nil {
		return nil, fmt.Errorf("load labels: %w", err)
	}
	defer reader.Close()

	var communities []graph.NodeSet
	scanner := newLineScanner(reader)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		community := make(graph.NodeSet)
		for _, field := range strings.Fields(line) {
			id, err := parseNodeID(field)
			if err != nil {
				return nil, fmt.Errorf("load labels %s line %d: %w", path, lineNo, err)
			}
			community[id] = struct{}{}
		}
		communities = append(communities, community)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("load labels %s: %w", path, err)
	}

	return communities, nil
}

// newLineScanner builds a scanner able to handle very long lines.
func newLineScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)
	return scanner
}

// parseNodeID parses one node identifier token.
func parseNodeID(token string) (graph.NodeID, error) {
	id, err := strconv.ParseInt(token, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid node id %q", token)
	}
	return graph.NodeID(id), nil
}
