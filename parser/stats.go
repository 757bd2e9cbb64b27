package parser

// DocumentStats contains statistical information about a document
type DocumentStats struct {
	PathCount      int `json:"path_count" yaml:"path_count"`           // Number of paths defined
	OperationCount int `json:"operation_count" yaml:"operation_count"` // Total number of operations across all paths
	SchemaCount    int `json:"schema_count" yaml:"schema_count"`       // Number of component schemas (or 2.0 definitions)
}

// Stats counts the paths, operations and schemas of the document. Entries
// of the wrong shape are skipped rather than reported.
func (d Document) Stats() DocumentStats {
	stats := DocumentStats{}

	paths := d.Map("paths")
	stats.PathCount = len(paths)
	for _, item := range paths {
		stats.OperationCount += countPathItemOperations(item)
	}

	if schemas := d.Schemas(); schemas != nil {
		stats.SchemaCount = len(schemas)
	} else {
		stats.SchemaCount = len(d.Map("definitions"))
	}
	return stats
}

// countPathItemOperations counts operations in a single path item
func countPathItemOperations(item any) int {
	m, ok := item.(map[string]any)
	if !ok {
		return 0
	}
	count := 0
	for _, method := range HTTPMethods {
		if _, ok := m[method].(map[string]any); ok {
			count++
		}
	}
	return count
}
