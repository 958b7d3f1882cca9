package main

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildBinary builds the lineage binary into dir and returns its path.
func buildBinary(t *testing.T, dir string) string {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping binary build in short mode")
	}
	bin := filepath.Join(dir, "lineage.exe")
	buildCmd := exec.Command("go", "build", "-o", bin, ".")
	if out, err := buildCmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build lineage: %v\n%s", err, string(out))
	}
	return bin
}

func run(t *testing.T, bin, wd string, args ...string) string {
	t.Helper()
	cmd := exec.Command(bin, args...)
	cmd.Dir = wd
	out, err := cmd.Output()
	if err != nil {
		var stderr string
		if ee, ok := err.(*exec.ExitError); ok {
			stderr = string(ee.Stderr)
		}
		t.Fatalf("lineage %v failed: %v\n%s", args, err, stderr)
	}
	return string(out)
}

func TestCLI(t *testing.T) {
	tmp := t.TempDir()
	bin := buildBinary(t, tmp)

	t.Run("Version", func(t *testing.T) {
		out := run(t, bin, tmp, "version")
		assert.True(t, strings.HasPrefix(out, "lineage version "))
	})

	t.Run("Indexes Sample", func(t *testing.T) {
		out := run(t, bin, tmp, "indexes")
		assert.Contains(t, out, "INDEX")
		assert.Contains(t, out, "+Inf")
		assert.NotContains(t, out, "NaN")
	})

	t.Run("Indexes Args", func(t *testing.T) {
		out := run(t, bin, tmp, "indexes", "--gt", "1", "--", "-3", "2", "0.5", "7")
		assert.Regexp(t, `\|\s*1\s*\|\s*2\s*\|`, out)
		assert.Regexp(t, `\|\s*3\s*\|\s*7\s*\|`, out)
		assert.NotContains(t, out, "-3")
		assert.NotContains(t, out, "0.5")
	})

	t.Run("Render Embedded", func(t *testing.T) {
		out := run(t, bin, tmp, "render")
		assert.True(t, strings.HasPrefix(out,
			`<ul style="list-style: disc; padding-left: 0rem"><li>Krzysztof Nowak | Lipowa 12, 00-950 Warszawa, Poland</li>`))
	})

	t.Run("Render Directory With Settings", func(t *testing.T) {
		project := t.TempDir()
		data := filepath.Join(project, "data")
		require.NoError(t, os.MkdirAll(data, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(project, "lineage.yaml"),
			[]byte("fixtures: data\npalette: [square]\n"), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(data, "people.yaml"), []byte(`people:
  - name: Anna
    surname: Lis
    birthday: 1990-01-01
    street: Polna
    houseNumber: "1"
    apartmentNumber: "4"
    zipCode: 00-001
    city: Warszawa
    countryId: 9
`), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(data, "countries.yaml"), []byte(`countries:
  - id: 1
    name: Poland
`), 0644))

		out := run(t, bin, project, "render")
		assert.Equal(t,
			`<ul style="list-style: square; padding-left: 0rem"><li>Anna Lis | Polna 1 apart. 4, 00-001 Warszawa, Poland</li></ul>`+"\n",
			out)
	})

	t.Run("Demo Writes Page", func(t *testing.T) {
		out := filepath.Join(tmp, "page.html")
		run(t, bin, tmp, "demo", "--out", out, "--interval", "1ms", "--count", "3")

		html, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Contains(t, string(html), "Subscriber 2")
		assert.Equal(t, 6, strings.Count(string(html), "Event type: debug"))
	})

	t.Run("Events", func(t *testing.T) {
		out := run(t, bin, tmp, "events", "--interval", "1ms", "--count", "2", "--subscribers", "3")
		assert.Contains(t, out, "1. Event type: debug, payload: Random data: ")
		assert.Contains(t, out, "2. Event type: debug")
		assert.NotContains(t, out, "3. Event type")
		assert.Contains(t, out, "SUBSCRIBER")
	})

	t.Run("Inspect", func(t *testing.T) {
		out := run(t, bin, tmp, "inspect")
		var states map[string]map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &states))
		assert.Contains(t, states, "service")
		assert.Contains(t, states, "bus")
		assert.EqualValues(t, 5, states["demo"]["fired"])
	})
}
