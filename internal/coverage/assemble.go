package coverage

// Assemble runs the four extractors over their report texts and merges the
// results into a Model. It never invokes the analysis tool itself.
func Assemble(r Reports) Model {
	uncovered, dropped := scanUncovered(r.Zeros)

	b := newTreeBuilder()
	eachLine(r.Functional, b.line)

	return Model{
		Overall:    ParseSummary(r.Summary),
		DUT:        ParseDesignUnitSummary(r.DesignUnit),
		Uncovered:  uncovered,
		Functional: b.result(),
		Diagnostics: ModelDiagnostics{
			DuplicateCovergroups: b.duplicates,
			DroppedUncovered:     dropped,
		},
	}
}
