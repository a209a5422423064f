package payload

import (
	"encoding/json"
	"log/slog"
	"path"
	"time"
)

// Normalizer decodes loose analyzer JSON into the canonical schema.
type Normalizer struct {
	logger *slog.Logger
}

// Option is a functional option for configuring Normalizer.
type Option func(*Normalizer)

// WithLogger sets the logger used for skipped-record warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(n *Normalizer) {
		n.logger = logger
	}
}

// New creates a normalizer.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{logger: slog.Default()}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize is total: malformed input degrades to an empty payload, single
// malformed records are skipped with a warning, and every known legacy
// field-name variant is mapped onto the canonical schema.
func (n *Normalizer) Normalize(data []byte) *Normalized {
	out := &Normalized{}
	if len(data) == 0 {
		return out
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		n.logger.Warn("payload is not a JSON object, using empty payload", "error", err)
		return out
	}
	return n.NormalizeMap(raw)
}

// NormalizeMap normalizes an already-decoded payload object.
func (n *Normalizer) NormalizeMap(raw map[string]any) *Normalized {
	out := &Normalized{}
	if raw == nil {
		return out
	}

	out.ProjectPath = stringField(raw, "projectPath", "project_path", "path")

	for i, rec := range records(raw, "modules") {
		mod, ok := n.normalizeModule(rec)
		if !ok {
			n.logger.Warn("skipping malformed module record", "index", i)
			continue
		}
		out.Modules = append(out.Modules, mod)
	}

	// Flat file lists appear in older payloads alongside or instead of
	// nested modules; group them by directory.
	if loose := records(raw, "files", "functions"); len(loose) > 0 {
		byDir := make(map[string]*RawModule)
		var order []string
		for i, rec := range loose {
			f, ok := n.normalizeFile(rec)
			if !ok {
				n.logger.Warn("skipping malformed file record", "index", i)
				continue
			}
			dir := path.Dir(f.Path)
			mod, exists := byDir[dir]
			if !exists {
				mod = &RawModule{Name: path.Base(dir), Path: dir}
				byDir[dir] = mod
				order = append(order, dir)
			}
			mod.Files = append(mod.Files, f)
		}
		for _, dir := range order {
			out.Modules = append(out.Modules, *byDir[dir])
		}
	}

	for i, rec := range records(raw, "dependencies", "edges") {
		dep, ok := normalizeDependency(rec)
		if !ok {
			n.logger.Warn("skipping malformed dependency record", "index", i)
			continue
		}
		out.Dependencies = append(out.Dependencies, dep)
	}

	for _, rec := range records(raw, "frameworks") {
		name := stringField(rec, "name")
		if name == "" {
			continue
		}
		out.Frameworks = append(out.Frameworks, RawFramework{
			Name:       name,
			Version:    stringField(rec, "version"),
			Confidence: floatField(rec, "confidence"),
		})
	}

	for _, rec := range records(raw, "techStack", "tech_stack") {
		name := stringField(rec, "name", "library")
		if name == "" {
			continue
		}
		out.TechStack = append(out.TechStack, RawLibrary{
			Name:  name,
			Usage: intField(rec, "usage", "usage_count", "count"),
		})
	}

	for i, rec := range records(raw, "contributors", "authorContributions") {
		c, ok := normalizeContributor(rec)
		if !ok {
			n.logger.Warn("skipping malformed contributor record", "index", i)
			continue
		}
		out.Contributors = append(out.Contributors, c)
	}

	for i, rec := range records(raw, "fileChanges", "fileHotspots") {
		p := stringField(rec, "path", "file", "filename")
		if p == "" {
			n.logger.Warn("skipping malformed file-change record", "index", i)
			continue
		}
		out.FileChanges = append(out.FileChanges, RawFileChange{
			Path:    p,
			Changes: intField(rec, "changeCount", "changes", "change_count", "commits"),
			Authors: stringList(rec, "authors", "contributors"),
		})
	}

	for i, rec := range records(raw, "commits", "commitHistory", "commit_timeline") {
		c, ok := normalizeCommit(rec)
		if !ok {
			n.logger.Warn("skipping malformed commit record", "index", i)
			continue
		}
		out.Commits = append(out.Commits, c)
	}

	return out
}

func (n *Normalizer) normalizeModule(rec map[string]any) (RawModule, bool) {
	name := stringField(rec, "name")
	modPath := stringField(rec, "path", "dir", "directory")
	if name == "" && modPath == "" {
		return RawModule{}, false
	}
	if name == "" {
		name = path.Base(modPath)
	}
	mod := RawModule{Name: name, Path: modPath}
	for _, frec := range records(rec, "files") {
		if f, ok := n.normalizeFile(frec); ok {
			mod.Files = append(mod.Files, f)
		}
	}
	return mod, true
}

func (n *Normalizer) normalizeFile(rec map[string]any) (RawFile, bool) {
	filePath := stringField(rec, "path", "file", "file_path")
	name := stringField(rec, "name")
	if filePath == "" && name == "" {
		return RawFile{}, false
	}
	if name == "" {
		name = path.Base(filePath)
	}
	if filePath == "" {
		filePath = name
	}
	lang := stringField(rec, "language", "lang")
	if lang == "" {
		lang = "Unknown"
	}
	return RawFile{
		Name:                 name,
		Path:                 filePath,
		Language:             lang,
		Cyclomatic:           intField(rec, "cyclomaticComplexity", "cyclomatic_complexity", "complexity"),
		Cognitive:            intField(rec, "cognitiveComplexity", "cognitive_complexity"),
		Lines:                intField(rec, "linesOfCode", "lines_of_code", "lines", "loc"),
		MaintainabilityIndex: floatField(rec, "maintainabilityIndex", "maintainability_index"),
		Functions:            intField(rec, "functions", "function_count"),
		Classes:              intField(rec, "classes", "class_count"),
		Imports:              intField(rec, "imports", "import_count"),
		Author:               stringField(rec, "author", "last_author"),
		LastModified:         timeField(rec, "lastModified", "last_modified", "mtime"),
	}, true
}

func normalizeDependency(rec map[string]any) (RawDependency, bool) {
	source := stringField(rec, "source", "from")
	target := stringField(rec, "target", "to")
	if source == "" || target == "" {
		return RawDependency{}, false
	}
	depType := stringField(rec, "type", "kind")
	if depType == "" {
		depType = "import"
	}
	weight := floatField(rec, "weight", "strength")
	if weight <= 0 {
		weight = 1
	}
	return RawDependency{Source: source, Target: target, Type: depType, Weight: weight}, true
}

func normalizeContributor(rec map[string]any) (RawContributor, bool) {
	name := stringField(rec, "name", "author")
	if name == "" {
		return RawContributor{}, false
	}
	return RawContributor{
		Name:         name,
		Email:        stringField(rec, "email"),
		Commits:      intField(rec, "commits", "commit_count", "commitCount"),
		LinesChanged: intField(rec, "linesChanged", "lines_changed", "churn"),
		Files:        stringList(rec, "files", "touchedFiles", "touched_files"),
	}, true
}

func normalizeCommit(rec map[string]any) (RawCommit, bool) {
	date := timeField(rec, "date", "timestamp", "authoredDate", "authored_date")
	if date.IsZero() {
		return RawCommit{}, false
	}
	return RawCommit{
		Hash:         stringField(rec, "hash", "sha", "id"),
		Author:       stringField(rec, "author", "name"),
		Date:         date,
		FilesChanged: intField(rec, "filesChanged", "files_changed"),
	}, true
}

// records extracts a list of object records from the first present key.
func records(raw map[string]any, keys ...string) []map[string]any {
	for _, key := range keys {
		v, ok := raw[key]
		if !ok {
			continue
		}
		list, ok := v.([]any)
		if !ok {
			continue
		}
		out := make([]map[string]any, 0, len(list))
		for _, item := range list {
			if rec, ok := item.(map[string]any); ok {
				out = append(out, rec)
			}
		}
		return out
	}
	return nil
}

// stringField returns the first present non-empty string among the keys.
func stringField(rec map[string]any, keys ...string) string {
	for _, key := range keys {
		if s, ok := rec[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// intField returns the first present numeric value among the keys.
func intField(rec map[string]any, keys ...string) int {
	for _, key := range keys {
		switch v := rec[key].(type) {
		case float64:
			return int(v)
		case int:
			return v
		case json.Number:
			if i, err := v.Int64(); err == nil {
				return int(i)
			}
		}
	}
	return 0
}

// floatField returns the first present numeric value among the keys.
func floatField(rec map[string]any, keys ...string) float64 {
	for _, key := range keys {
		switch v := rec[key].(type) {
		case float64:
			return v
		case int:
			return float64(v)
		case json.Number:
			if f, err := v.Float64(); err == nil {
				return f
			}
		}
	}
	return 0
}

// timeField parses the first present timestamp among the keys. Accepts
// RFC3339 strings, date-only strings, and unix-epoch numbers.
func timeField(rec map[string]any, keys ...string) time.Time {
	for _, key := range keys {
		switch v := rec[key].(type) {
		case string:
			for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
				if t, err := time.Parse(layout, v); err == nil {
					return t
				}
			}
		case float64:
			if v > 0 {
				return time.Unix(int64(v), 0).UTC()
			}
		}
	}
	return time.Time{}
}

// stringList returns the first present string array among the keys.
func stringList(rec map[string]any, keys ...string) []string {
	for _, key := range keys {
		list, ok := rec[key].([]any)
		if !ok {
			continue
		}
		out := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
