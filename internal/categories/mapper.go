package categories

import (
	"sort"
	"strings"
)

var defaultExtensions = map[Category][]string{
	Images: {
		"jpg", "jpeg", "png", "gif", "bmp", "svg", "webp", "ico",
		"tiff", "tif", "raw", "heic", "heif", "psd", "ai", "eps",
	},
	Documents: {
		"pdf", "doc", "docx", "txt", "rtf", "odt", "xls", "xlsx", "ods", "ppt",
		"pptx", "odp", "md", "tex", "pages", "numbers", "keynote", "epub", "mobi",
	},
	Videos: {
		"mp4", "avi", "mkv", "mov", "wmv", "flv", "webm", "m4v", "mpeg", "mpg", "3gp", "ogv",
	},
	Audio: {
		"mp3", "wav", "flac", "aac", "ogg", "wma", "m4a", "aiff", "alac", "opus", "mid", "midi",
	},
	Archives: {
		"zip", "rar", "7z", "tar", "gz", "bz2", "xz", "tgz", "tbz2", "cab", "iso", "dmg",
	},
	Code: {
		"rs", "py", "js", "ts", "jsx", "tsx", "java", "c", "cpp", "h", "hpp",
		"cs", "go", "rb", "php", "swift", "kt", "scala", "r", "pl", "sh", "bash",
		"zsh", "fish", "ps1", "bat", "cmd", "html", "htm", "css", "scss", "sass",
		"less", "vue", "svelte", "sql", "graphql", "yaml", "yml", "toml", "ini",
		"cfg", "conf",
	},
	Data: {
		"json", "xml", "csv", "tsv", "parquet", "avro", "db", "sqlite", "sqlite3",
		"mdb", "accdb", "ndjson", "jsonl",
	},
	Executables: {
		"exe", "msi", "app", "deb", "rpm", "apk", "jar", "dll", "so", "dylib", "bin", "run",
	},
	Fonts: {
		"ttf", "otf", "woff", "woff2", "eot", "fon", "fnt",
	},
}

// Mapper maps file extensions to categories. A Mapper is never modified after
// construction, so it can be shared between goroutines.
type Mapper struct {
	extensions map[string]Category
}

// NewMapper creates a Mapper with the built-in extension table
func NewMapper() *Mapper {
	extensions := make(map[string]Category)
	for category, exts := range defaultExtensions {
		for _, ext := range exts {
			extensions[ext] = category
		}
	}
	return &Mapper{extensions: extensions}
}

// WithOverrides returns a copy of the mapper where the given extensions map to
// the given categories. The receiver is left untouched.
func (m *Mapper) WithOverrides(overrides map[string]Category) *Mapper {
	extensions := make(map[string]Category, len(m.extensions)+len(overrides))
	for ext, category := range m.extensions {
		extensions[ext] = category
	}
	for ext, category := range overrides {
		if ext = normalize(ext); ext != "" {
			extensions[ext] = category
		}
	}
	return &Mapper{extensions: extensions}
}

// Categorize returns the category for an extension as the scanner extracts
// it, without the dot. Lookup ignores case only; unknown extensions are Other.
func (m *Mapper) Categorize(extension string) Category {
	if category, ok := m.extensions[strings.ToLower(extension)]; ok {
		return category
	}
	return Other
}

// Extensions lists the extensions mapped to a category, sorted
func (m *Mapper) Extensions(category Category) []string {
	var exts []string
	for ext, c := range m.extensions {
		if c == category {
			exts = append(exts, ext)
		}
	}
	sort.Strings(exts)
	return exts
}

// normalize cleans an extension key written by hand in a config file
func normalize(extension string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(extension), "."))
}
