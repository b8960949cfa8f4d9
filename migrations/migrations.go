// Package migrations embeds the SQL schema of the tables docflow reads.
// In production these tables belong to the document host; the schema here
// mirrors the columns docflow touches so integration tests can run against it.
package migrations

import (
	"embed"
	"io/fs"
	"sort"
)

//go:embed *.sql
var files embed.FS

// FS exposes the embedded migration files.
func FS() fs.FS {
	return files
}

// Ordered returns migration file names in apply order.
func Ordered() ([]string, error) {
	names, err := fs.Glob(files, "*.sql")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}
