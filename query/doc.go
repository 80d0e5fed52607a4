/*
Package query evaluates boolean expressions against Pokémon summaries.

Expressions use the expr language and can reference the summary fields
Name, URL and ID along with the helpers contains, startsWith, endsWith,
lower and upper. String helpers ignore case.

	compiler := query.NewCompiler(query.WithCache(64))
	q, err := compiler.Compile(`ID <= 151 and contains(Name, "saur")`)
	if err != nil {
		var compErr *query.CompilationError
		if errors.As(err, &compErr) {
			// compErr.Position points at the offending column
		}
		return err
	}

	matches, err := q.Filter(ctx, summaries)
*/
package query
