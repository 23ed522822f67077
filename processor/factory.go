package processor

import (
	"path/filepath"
	"sort"
	"strings"
)

// Constructor builds an unloaded processor for source.
type Constructor func(source string, opts Options) Processor

// Factory maps source file extensions to processor constructors. A new
// source format needs one Processor implementation and one Register call.
type Factory struct {
	opts         Options
	constructors map[string]Constructor
}

// NewFactory returns a factory with every built-in variant registered.
func NewFactory(opts Options) *Factory {
	f := &Factory{opts: opts, constructors: make(map[string]Constructor)}

	f.Register(".csv", func(source string, opts Options) Processor {
		return NewCSVProcessor(source, opts)
	})
	f.Register(".txt", func(source string, opts Options) Processor {
		return NewTableProcessor(source, opts)
	})
	excel := func(source string, opts Options) Processor {
		return NewExcelProcessor(source, opts)
	}
	f.Register(".xlsx", excel)
	f.Register(".xlsm", excel)
	f.Register(".parquet", func(source string, opts Options) Processor {
		return NewParquetProcessor(source, opts)
	})
	sqlite := func(source string, opts Options) Processor {
		return NewSQLiteProcessor(source, opts)
	}
	f.Register(".sqlite", sqlite)
	f.Register(".db", sqlite)

	return f
}

// Register adds or replaces the constructor for an extension such as ".csv".
func (f *Factory) Register(extension string, constructor Constructor) {
	f.constructors[normalizeExtension(extension)] = constructor
}

// ProcessorFor returns a new processor for source, or false when no variant
// handles its extension.
func (f *Factory) ProcessorFor(source string) (Processor, bool) {
	constructor, ok := f.constructors[normalizeExtension(filepath.Ext(source))]
	if !ok || constructor == nil {
		return nil, false
	}
	return constructor(source, f.opts), true
}

func (f *Factory) Extensions() []string {
	extensions := make([]string, 0, len(f.constructors))
	for extension := range f.constructors {
		extensions = append(extensions, extension)
	}
	sort.Strings(extensions)
	return extensions
}

func normalizeExtension(extension string) string {
	extension = strings.ToLower(strings.TrimSpace(extension))
	if extension == "" {
		return ""
	}
	if !strings.HasPrefix(extension, ".") {
		extension = "." + extension
	}
	return extension
}
