package schema

import "path/filepath"

// Source identifies where a catalog document originated so loaders can
// operate on files or fs.FS entries without leaking implementation details.
type Source interface {
	Kind() SourceKind
	Location() string
}

// SourceKind enumerates the loader modalities.
type SourceKind string

const (
	SourceKindFile  SourceKind = "file"
	SourceKindFS    SourceKind = "fs"
	SourceKindBytes SourceKind = "bytes"
)

// fileSource identifies on-disk catalog documents.
type fileSource struct {
	path string
}

func (s fileSource) Location() string {
	return s.path
}

func (s fileSource) Kind() SourceKind {
	return SourceKindFile
}

// SourceFromFile returns a Source pointing to a file path.
func SourceFromFile(path string) Source {
	return fileSource{path: filepath.Clean(path)}
}

// fsSource references a path within an fs.FS.
type fsSource struct {
	name string
}

func (s fsSource) Location() string {
	return s.name
}

func (s fsSource) Kind() SourceKind {
	return SourceKindFS
}

// SourceFromFS returns a Source identifying a resource inside an fs.FS.
func SourceFromFS(name string) Source {
	return fsSource{name: name}
}

type bytesSource struct {
	name string
}

func (s bytesSource) Location() string {
	return s.name
}

func (s bytesSource) Kind() SourceKind {
	return SourceKindBytes
}

// SourceFromBytes labels an in-memory payload, typically an embedded catalog.
func SourceFromBytes(name string) Source {
	if name == "" {
		name = "inline"
	}
	return bytesSource{name: name}
}
