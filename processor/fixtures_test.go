package processor

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// weatherCSV renders rows of readings starting 2023-01-01 00:00:00, one per step.
func weatherCSV(rows int, step time.Duration, separator string) string {
	cities := []string{"Ufa", "Kazan", "Perm"}
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	var b strings.Builder
	b.WriteString(strings.Join([]string{"datetime", "city", "temperature", "humidity"}, separator) + "\n")
	for i := 0; i < rows; i++ {
		ts := start.Add(time.Duration(i) * step)
		fmt.Fprintf(&b, "%s%s%s%s%.1f%s%d\n",
			ts.Format("2006-01-02 15:04:05"), separator,
			cities[i%len(cities)], separator,
			float64((i*7)%13)-3.5, separator,
			40+(i*11)%50,
		)
	}
	return b.String()
}
