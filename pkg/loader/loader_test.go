package loader

import (
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/golang/snappy"

	"github.com/dd0wney/communitybench/pkg/graph"
)

const edgeListFixture = `# two triangles
1 2
1 3
2 3
4 5
4 6
5 6
7 7
`

const labelsFixture = `# ground truth
1 2 3
4 5 6
`

// writeFixture writes content to a temp file and returns its path
func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}
	return path
}

// writeGzipFixture writes gzip-compressed content to a temp file
func writeGzipFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create fixture: %v", err)
	}
	gz := gzip.NewWriter(file)
	if _, err := gz.Write([]byte(content)); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("Failed to close gzip writer: %v", err)
	}
	if err := file.Close(); err != nil {
		t.Fatalf("Failed to close fixture: %v", err)
	}
	return path
}

// writeSnappyFixture writes snappy-framed content to a temp file
func writeSnappyFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create fixture: %v", err)
	}
	sz := snappy.NewBufferedWriter(file)
	if _, err := sz.Write([]byte(content)); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}
	if err := sz.Close(); err != nil {
		t.Fatalf("Failed to close snappy writer: %v", err)
	}
	if err := file.Close(); err != nil {
		t.Fatalf("Failed to close fixture: %v", err)
	}
	return path
}

// assertTwoTriangles checks the canonical fixture graph
func assertTwoTriangles(t *testing.T, g *graph.MemoryGraph) {
	t.Helper()
	if g.NodeCount() != 6 {
		t.Errorf("Expected 6 nodes (self-loop 7 dropped), got %d", g.NodeCount())
	}
	if g.EdgeCount() != 6 {
		t.Errorf("Expected 6 edges, got %d", g.EdgeCount())
	}
	if g.Degree(1) != 2 {
		t.Errorf("Expected degree 2 for node 1, got %d", g.Degree(1))
	}
	if g.HasNode(7) {
		t.Error("Expected self-loop-only node 7 to be absent")
	}
}

// TestLoadEdgeList_Plain tests plain-text edge lists
func TestLoadEdgeList_Plain(t *testing.T) {
	path := writeFixture(t, "graph.edges", edgeListFixture)

	g, err := LoadEdgeList(path, CompressionAuto)
	if err != nil {
		t.Fatalf("LoadEdgeList failed: %v", err)
	}
	assertTwoTriangles(t, g)
}

// TestLoadEdgeList_Gzip tests gzip edge lists via extension detection
func TestLoadEdgeList_Gzip(t *testing.T) {
	path := writeGzipFixture(t, "graph.edges.gz", edgeListFixture)

	g, err := LoadEdgeList(path, CompressionAuto)
	if err != nil {
		t.Fatalf("LoadEdgeList failed: %v", err)
	}
	assertTwoTriangles(t, g)
}

// TestLoadEdgeList_Snappy tests snappy edge lists with explicit compression
func TestLoadEdgeList_Snappy(t *testing.T) {
	path := writeSnappyFixture(t, "graph.edges.sz", edgeListFixture)

	g, err := LoadEdgeList(path, CompressionSnappy)
	if err != nil {
		t.Fatalf("LoadEdgeList failed: %v", err)
	}
	assertTwoTriangles(t, g)
}

// TestLoadEdgeList_Malformed tests parse errors with line context
func TestLoadEdgeList_Malformed(t *testing.T) {
	path := writeFixture(t, "bad.edges", "1 2\nnot-a-node 3\n")

	_, err := LoadEdgeList(path, CompressionAuto)
	if err == nil {
		t.Fatal("Expected parse error")
	}
}

// TestLoadEdgeList_TruncatedLine tests rejection of one-field lines
func TestLoadEdgeList_TruncatedLine(t *testing.T) {
	path := writeFixture(t, "short.edges", "1\n")

	_, err := LoadEdgeList(path, CompressionAuto)
	if err == nil {
		t.Fatal("Expected error for single-field line")
	}
}

// TestLoadEdgeList_Missing tests the missing-file error
func TestLoadEdgeList_Missing(t *testing.T) {
	_, err := LoadEdgeList(filepath.Join(t.TempDir(), "nope.edges"), CompressionAuto)
	if err == nil {
		t.Fatal("Expected error for missing file")
	}
}

// TestLoadLabels_Plain tests label parsing
func TestLoadLabels_Plain(t *testing.T) {
	path := writeFixture(t, "graph.communities", labelsFixture)

	truth, err := LoadLabels(path, CompressionAuto)
	if err != nil {
		t.Fatalf("LoadLabels failed: %v", err)
	}

	if len(truth) != 2 {
		t.Fatalf("Expected 2 communities, got %d", len(truth))
	}
	if len(truth[0]) != 3 || !truth[0].Contains(1) {
		t.Errorf("Unexpected first community: %v", truth[0].Sorted())
	}
	if len(truth[1]) != 3 || !truth[1].Contains(6) {
		t.Errorf("Unexpected second community: %v", truth[1].Sorted())
	}
}

// TestLoadLabels_Gzip tests gzip label files
func TestLoadLabels_Gzip(t *testing.T) {
	path := writeGzipFixture(t, "graph.communities.gz", labelsFixture)

	truth, err := LoadLabels(path, CompressionGzip)
	if err != nil {
		t.Fatalf("LoadLabels failed: %v", err)
	}
	if len(truth) != 2 {
		t.Errorf("Expected 2 communities, got %d", len(truth))
	}
}

// TestParseCompression tests compression mode parsing
func TestParseCompression(t *testing.T) {
	for _, valid := range []string{"", "auto", "none", "gzip", "snappy"} {
		if _, err := ParseCompression(valid); err != nil {
			t.Errorf("ParseCompression(%q) failed: %v", valid, err)
		}
	}
	if _, err := ParseCompression("zstd"); err == nil {
		t.Error("Expected error for unsupported compression")
	}
}
