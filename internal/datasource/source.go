// Package datasource loads and validates the issue collection the
// dashboard renders. The core consumes an in-memory []model.Issue and
// never cares where it came from; this package owns the "where": a JSON
// file on disk, or the built-in sample project when no path is given.
//
// Loading normalizes assignees into a shared roster: two issues assigned
// to the same person end up holding the same *model.Assignee, matching
// the ownership model the analytics rely on.
package datasource

import (
	"fmt"
	"os"
	"runtime"
	"sort"

	json "github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"

	"github.com/vanderheijden86/workdeck/pkg/debug"
	"github.com/vanderheijden86/workdeck/pkg/model"
)

// Collection is a loaded issue set with its normalized assignee roster.
type Collection struct {
	Issues []model.Issue
	Roster []*model.Assignee // name-sorted, deduplicated by ID
	Path   string            // source file, "" for the built-in sample
}

// Load reads a collection from path, or returns the built-in sample when
// path is empty.
func Load(path string) (*Collection, error) {
	if path == "" {
		return Sample(), nil
	}
	return LoadFile(path)
}

// LoadFile reads and validates a JSON issue file. The file holds either a
// bare issue array or an object with an "issues" key.
func LoadFile(path string) (*Collection, error) {
	defer debug.LogEnterExit("datasource.LoadFile")()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading issue file: %w", err)
	}

	var issues []model.Issue
	if err := json.Unmarshal(data, &issues); err != nil {
		var wrapper struct {
			Issues []model.Issue `json:"issues"`
		}
		if err2 := json.Unmarshal(data, &wrapper); err2 != nil {
			return nil, fmt.Errorf("parsing issue file %s: %w", path, err)
		}
		issues = wrapper.Issues
	}

	if err := validate(issues); err != nil {
		return nil, err
	}

	c := &Collection{Issues: issues, Path: path}
	c.normalize()
	debug.Log("loaded %d issues from %s", len(issues), path)
	return c, nil
}

// validate checks every issue's structural invariants, fanning the work
// out across CPUs for large collections.
func validate(issues []model.Issue) error {
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))

	const chunk = 256
	for start := 0; start < len(issues); start += chunk {
		end := min(start+chunk, len(issues))
		batch := issues[start:end]
		g.Go(func() error {
			for i := range batch {
				if err := batch[i].Validate(); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return g.Wait()
}

// normalize dedupes assignees by ID and points every issue at the shared
// roster record, then sorts the roster by name.
func (c *Collection) normalize() {
	byID := make(map[string]*model.Assignee)
	for i := range c.Issues {
		a := c.Issues[i].Assignee
		if a == nil || a.ID == "" {
			c.Issues[i].Assignee = nil
			continue
		}
		shared, ok := byID[a.ID]
		if !ok {
			copied := *a
			shared = &copied
			byID[a.ID] = shared
		}
		c.Issues[i].Assignee = shared
	}

	c.Roster = make([]*model.Assignee, 0, len(byID))
	for _, a := range byID {
		c.Roster = append(c.Roster, a)
	}
	sort.Slice(c.Roster, func(a, b int) bool {
		return c.Roster[a].Name < c.Roster[b].Name
	})
}

// Save writes the collection back out as a JSON issue array.
func Save(path string, issues []model.Issue) error {
	data, err := json.MarshalIndent(issues, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding issues: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing issue file: %w", err)
	}
	return nil
}
