package hardening

// Reconcile left-joins scan findings against the merged template lookup.
// Exactly one output row per input row: the join never fans out and
// never drops, and a finding whose id has no template match is returned
// untouched.
//
// Override policy, per attribute:
//   - Description: template wins only when it supplies a non-empty
//     value (first non-null, template preferred).
//   - Method, MethodArgument: the template value always overwrites the
//     scan value when the template carries the attribute, even when it
//     is empty. This asymmetry with Description is deliberate: the
//     template is the authority on how a control is checked.
//   - Registry path/item and recommended value: the scan value is
//     authoritative; the template only fills gaps the scan left empty.
func Reconcile(findings []Finding, lookup TemplateLookup) []Finding {
	if len(lookup) == 0 {
		return findings
	}

	out := make([]Finding, len(findings))
	for i, f := range findings {
		tr, ok := lookup[f.ID]
		if !ok {
			out[i] = f
			continue
		}

		if tr.Description != nil {
			f.Description = *tr.Description
		}
		if tr.Method != nil {
			f.Method = *tr.Method
		}
		if tr.MethodArgument != nil {
			f.MethodArgument = *tr.MethodArgument
		}
		if f.RegistryPath == nil {
			f.RegistryPath = tr.RegistryPath
		}
		if f.RegistryItem == nil {
			f.RegistryItem = tr.RegistryItem
		}
		if f.RecommendedValue == nil {
			f.RecommendedValue = tr.RecommendedValue
		}

		out[i] = f
	}
	return out
}
