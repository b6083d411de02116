// apps/go-server/assets/embed.go
//
// Files compiled into the binary:
//   - words.txt: fallback dictionary used when DICTIONARY_FILE is unset.
//   - sql/*.sql: history database migrations, applied in lexical order.

package assets

import (
	"bufio"
	"embed"
	"strings"
)

//go:embed words.txt
var FS embed.FS

//go:embed sql/*.sql
var Migrations embed.FS

func readLines(name string) ([]string, error) {
	f, err := FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, s)
	}
	return out, sc.Err()
}

// WordList returns the embedded fallback dictionary, one entry per line.
func WordList() ([]string, error) {
	return readLines("words.txt")
}
