// Package payload normalizes raw analyzer output onto one canonical schema.
// Every historical field-name variant is resolved here and nowhere else; the
// transformation engine only ever sees the canonical shapes below.
package payload

import "time"

// RawFile is a canonical source-file record.
type RawFile struct {
	Name                 string
	Path                 string
	Language             string
	Cyclomatic           int
	Cognitive            int
	Lines                int
	MaintainabilityIndex float64
	Functions            int
	Classes              int
	Imports              int
	Author               string
	LastModified         time.Time
}

// RawModule is a canonical module record with its member files.
type RawModule struct {
	Name  string
	Path  string
	Files []RawFile
}

// RawDependency is a canonical dependency record.
type RawDependency struct {
	Source string
	Target string
	Type   string
	Weight float64
}

// RawContributor is a canonical contributor record from git history.
type RawContributor struct {
	Name         string
	Email        string
	Commits      int
	LinesChanged int
	Files        []string
}

// RawFileChange is a canonical change-frequency record.
type RawFileChange struct {
	Path    string
	Changes int
	Authors []string
}

// RawCommit is a canonical commit record.
type RawCommit struct {
	Hash         string
	Author       string
	Date         time.Time
	FilesChanged int
}

// RawFramework is a detected framework.
type RawFramework struct {
	Name       string
	Version    string
	Confidence float64
}

// RawLibrary is a tech-stack entry with a usage count.
type RawLibrary struct {
	Name  string
	Usage int
}

// Normalized is the canonical payload handed to the transformation engine.
// Any field may be empty; the engine tolerates every subset.
type Normalized struct {
	ProjectPath  string
	Modules      []RawModule
	Dependencies []RawDependency
	Frameworks   []RawFramework
	TechStack    []RawLibrary
	Contributors []RawContributor
	FileChanges  []RawFileChange
	Commits      []RawCommit
}
