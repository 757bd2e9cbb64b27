/*
Package differ computes a structural, semantic difference between two
versions of an OpenAPI document.

# Overview

The differ compares top-level info, paths and their operations, tags,
servers and every component category (schemas, parameters, responses,
requestBodies, securitySchemes, headers, links, callbacks, examples). The
result is a [DiffResult] whose values are typed diff nodes:

  - [LeafChange]: a scalar or opaque value changed; Old and New are both kept
  - [SetChange]: names added, removed or modified in a named collection
  - [SchemaDiff]: constraints, $ref, properties, items and combinators of a schema
  - [CombinatorChange]: allOf/anyOf/oneOf members without an equal counterpart
  - [ObjectDiff]: the attributes of an operation, parameter, response and so on
  - [PathDiff]: operations added, removed or modified on a path

Consumers type-switch on [Node] to render them. All nodes encode to JSON and
YAML with snake_case keys; empty set members are omitted and leaf changes
always carry both old and new.

# Rename Detection

A schema that was renamed would otherwise show up as one removal plus one
addition. After the structural pass, rename detection pairs removed schemas
with new ones using the $ref changes already found in the diff as evidence,
then walks each resolved pair to find nested renames, repeating until
nothing new is found. A pair whose content is identical (following refs) is
reported with status Rename; otherwise the candidate with the smallest
schema diff is chosen and reported as Modification. Renamed schemas are
listed in DiffResult.RenamedComponents and their full diff is stored under
the old name in DiffResult.ModifiedComponents with [RenameInfo] attached.

Disable it with [WithRenameDetection](false) or Differ.DetectRenames.

# Example

	result, err := differ.DiffWithOptions(
		differ.WithSourceFilePath("api-v1.yaml"),
		differ.WithTargetFilePath("api-v2.yaml"),
	)
	if err != nil {
		log.Fatal(err)
	}
	for old, renamed := range result.RenamedComponents["schemas"] {
		fmt.Printf("%s is now %s\n", old, renamed)
	}

# Malformed Documents

Missing or null sections are treated as empty. A section with the wrong
shape where a mapping or list is required, such as a string under paths,
causes a panic whose message names the location.

# Related Packages

  - [github.com/erraggy/oasdelta/parser] loads documents
  - [github.com/erraggy/oasdelta/report] renders results as text or Markdown
*/
package differ
