package report

import "github.com/erraggy/oasdelta/differ"

// SectionCount counts the members of one section of a diff.
type SectionCount struct {
	New      int `json:"new" yaml:"new"`
	Removed  int `json:"removed" yaml:"removed"`
	Modified int `json:"modified" yaml:"modified"`
}

// Total is New + Removed + Modified.
func (c SectionCount) Total() int { return c.New + c.Removed + c.Modified }

// Summary holds per-section change counts of a DiffResult.
type Summary struct {
	InfoChanges int          `json:"info_changes" yaml:"info_changes"`
	Paths       SectionCount `json:"paths" yaml:"paths"`
	Tags        SectionCount `json:"tags" yaml:"tags"`
	Servers     SectionCount `json:"servers" yaml:"servers"`
	// Components is keyed by category and holds only categories that changed.
	// Renamed schemas are not counted as modified.
	Components map[string]SectionCount `json:"components" yaml:"components"`
	// RenamedSchemas counts the schemas paired by rename detection.
	RenamedSchemas int `json:"renamed_schemas" yaml:"renamed_schemas"`
}

// Total is the number of top-level changes across all sections.
func (s Summary) Total() int {
	n := s.InfoChanges + s.Paths.Total() + s.Tags.Total() + s.Servers.Total() + s.RenamedSchemas
	for _, c := range s.Components {
		n += c.Total()
	}
	return n
}

// Summarize counts the changes in result.
func Summarize(result *differ.DiffResult) Summary {
	s := Summary{
		InfoChanges: len(result.InfoChanges),
		Paths: SectionCount{
			New:      len(result.NewPaths),
			Removed:  len(result.RemovedPaths),
			Modified: len(result.ModifiedPaths),
		},
		Tags:       setCount(result.TagsChanges),
		Servers:    setCount(result.ServersChanges),
		Components: make(map[string]SectionCount),
	}
	for _, category := range differ.ComponentCategories {
		renamed := result.RenamedComponents[category]
		s.RenamedSchemas += len(renamed)
		c := SectionCount{
			New:      len(result.NewComponents[category]),
			Removed:  len(result.RemovedComponents[category]),
			Modified: len(result.ModifiedComponents[category]) - len(renamed),
		}
		if c.Total() > 0 {
			s.Components[category] = c
		}
	}
	return s
}

func setCount(c *differ.SetChange) SectionCount {
	if c == nil {
		return SectionCount{}
	}
	return SectionCount{New: len(c.New), Removed: len(c.Removed), Modified: len(c.Modified)}
}
