package loader

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/OFFIS-RIT/storyboard/backend/pkg/common"
)

// Project is the exported form of a storyboard project: its roster, its
// scenes and the optional free-text story context.
type Project struct {
	Characters   []common.Character `json:"characters"`
	Scenes       []common.Scene     `json:"scenes"`
	StoryContext string             `json:"story_context"`
}

// ProjectFile references an exported project. The content is retrieved via
// the associated ProjectFileLoader.
type ProjectFile struct {
	FilePath string
	Loader   ProjectFileLoader
}

// ProjectFileLoader defines the interface for loading the raw contents of a
// ProjectFile. Implementations may load files from disk or other sources.
type ProjectFileLoader interface {
	GetFileBytes(ctx context.Context, file ProjectFile) ([]byte, error)
}

// CacheKey returns the key loaders use to cache the contents of file.
func CacheKey(file ProjectFile) string {
	return file.FilePath
}

// Load reads and decodes the project.
//
// Example:
//
//	file := loader.ProjectFile{FilePath: "project.json", Loader: io.NewIOProjectFileLoader()}
//	project, err := file.Load(ctx)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(len(project.Scenes))
func (f *ProjectFile) Load(ctx context.Context) (*Project, error) {
	if f.Loader == nil {
		return nil, fmt.Errorf("no loader configured for %s", f.FilePath)
	}
	data, err := f.Loader.GetFileBytes(ctx, *f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", f.FilePath, err)
	}

	var project Project
	if err := json.Unmarshal(data, &project); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", f.FilePath, err)
	}
	return &project, nil
}
