// Package parser loads OpenAPI documents for comparison.
//
// Documents are decoded from YAML or JSON into a generic [Document] tree of
// map[string]any, []any and scalars. No structural validation is performed
// and $ref values are left in place; the differ resolves schema references
// itself when it needs to.
//
// # Quick Start
//
// Parse a file using functional options:
//
//	result, err := parser.ParseWithOptions(
//		parser.WithFilePath("openapi.yaml"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(result.Version, result.Stats.SchemaCount)
//
// Or create a reusable Parser instance:
//
//	p := parser.New()
//	p.Logger = parser.NewSlogAdapter(slog.Default())
//	result1, _ := p.Parse("api-v1.yaml")
//	result2, _ := p.Parse("api-v2.yaml")
//
// # Errors
//
// Read and decode failures are returned as *oaserrors.ParseError, invalid
// option combinations as *oaserrors.ConfigError. Both support errors.Is
// against the oaserrors sentinels.
package parser
