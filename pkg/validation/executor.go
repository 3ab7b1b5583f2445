package validation

import (
	"github.com/goliatone/go-sampleform/pkg/schema"
)

// Validate checks project metadata plus every sample holding at least one
// non-empty value. When no sample holds data the result carries a single
// error at PathDataset and nothing else. Uniqueness is evaluated across the
// samples with data.
func (v *Validator) Validate(project schema.Record, samples []schema.Record) (result Result) {
	defer v.recoverInto(&result)

	active := make([]int, 0, len(samples))
	for idx, sample := range samples {
		if !sample.IsEmpty() {
			active = append(active, idx)
		}
	}
	if len(active) == 0 {
		return singleError(PathDataset, messageNoSamples)
	}

	b := newResultBuilder()
	v.checkEntity(b, v.project, project, nil, func(id string) string { return id })

	index := v.buildUniqueIndex(samples, active)
	for _, idx := range active {
		sampleIdx := idx
		v.checkEntity(b, v.sample, samples[idx], index, func(id string) string { return SamplePath(sampleIdx, id) })
	}
	return b.result()
}

// ValidateProject checks only the project metadata.
func (v *Validator) ValidateProject(project schema.Record) (result Result) {
	defer v.recoverInto(&result)

	b := newResultBuilder()
	v.checkEntity(b, v.project, project, nil, func(id string) string { return id })
	return b.result()
}

// ValidateSamples runs the sample rule set against every supplied sample
// independently and aggregates the messages under samples[idx].field_id.
// Uniqueness is evaluated across all supplied samples.
func (v *Validator) ValidateSamples(samples []schema.Record) (result Result) {
	defer v.recoverInto(&result)

	all := make([]int, len(samples))
	for i := range samples {
		all[i] = i
	}
	index := v.buildUniqueIndex(samples, all)

	b := newResultBuilder()
	for idx, sample := range samples {
		sampleIdx := idx
		v.checkEntity(b, v.sample, sample, index, func(id string) string { return SamplePath(sampleIdx, id) })
	}
	return b.result()
}

// ValidateField returns the messages for a single field of record. Cross-row
// uniqueness is not evaluated since no sibling rows are available.
func (v *Validator) ValidateField(scope schema.Scope, fieldID string, record schema.Record) (messages []string) {
	defer func() {
		if recovered := recover(); recovered != nil {
			messages = []string{messageInternal}
		}
	}()

	fr, ok := v.RuleSet(scope).lookup(fieldID)
	if !ok {
		return nil
	}
	return v.checkField(fr, record, nil)
}

func (v *Validator) checkEntity(b *resultBuilder, set *RuleSet, record schema.Record, index uniqueIndex, path func(string) string) {
	for _, fr := range set.fields {
		b.add(path(fr.field.ID), v.checkField(fr, record, index)...)
	}
}

func (v *Validator) checkField(fr fieldRules, record schema.Record, index uniqueIndex) []string {
	if !v.visibility.ShouldShow(fr.field, record) {
		return nil
	}

	ctx := &checkContext{
		field:   fr.field,
		value:   normaliseValue(record.Get(fr.field.ID)),
		values:  record,
		options: v.options,
		unique:  index,
		catalog: v.catalog,
		now:     v.clock(),
	}
	var messages []string
	for _, rule := range fr.rules {
		if message := rule.check(ctx); message != "" {
			messages = append(messages, message)
		}
	}
	return messages
}

func (v *Validator) buildUniqueIndex(samples []schema.Record, indices []int) uniqueIndex {
	index := make(uniqueIndex)
	for _, fr := range v.sample.fields {
		if !fr.field.Validation.Unique {
			continue
		}
		for _, idx := range indices {
			record := samples[idx]
			if !v.visibility.ShouldShow(fr.field, record) {
				continue
			}
			index.add(fr.field.ID, normaliseValue(record.Get(fr.field.ID)))
		}
	}
	return index
}

func (v *Validator) recoverInto(result *Result) {
	if recovered := recover(); recovered != nil {
		*result = singleError(PathForm, messageInternal)
	}
}
