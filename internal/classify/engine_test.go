package classify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insource-health/tender-triage/internal/model"
	"github.com/insource-health/tender-triage/internal/registry"
)

func testEngine(t *testing.T) *Engine {
	t.Helper()
	reg := registry.New()
	err := reg.Load(context.Background(), &registry.StaticSource{
		ProviderList: []model.Provider{
			{Code: "RGT", Name: "Cambridge University Hospitals NHS Foundation Trust", ParentBodyCode: "QUE", ParentBodyName: "NHS Cambridgeshire and Peterborough Integrated Care Board"},
			{Code: "R1H", Name: "Barts Health NHS Trust", ParentBodyCode: "QMF", ParentBodyName: "NHS North East London Integrated Care Board"},
			{Code: "RR8", Name: "Leeds Teaching Hospitals NHS Trust", ParentBodyCode: "QWO", ParentBodyName: "NHS West Yorkshire Integrated Care Board"},
		},
	})
	require.NoError(t, err)
	return NewEngine(reg)
}

func notice(id, buyer, title, description string, cpv ...string) model.Notice {
	return model.Notice{
		ID:          id,
		Title:       title,
		Description: description,
		Buyer:       model.Buyer{Name: buyer},
		CPVCodes:    cpv,
	}
}

func TestClassify_OpportunityWithProviderMatch(t *testing.T) {
	e := testEngine(t)

	result := e.Classify(notice("n1",
		"Cambridge University Hospitals NHS Foundation Trust",
		"Provision of Locum Doctors for Emergency Department",
		"Locum doctors required to cover emergency department rotas.",
	))

	assert.Equal(t, model.ClassOpportunity, result.Classification)
	assert.Equal(t, confOpportunity, result.Confidence)
	assert.Equal(t, "RGT", result.MatchedProviderCode)
	assert.Equal(t, "Cambridge University Hospitals NHS Foundation Trust", result.MatchedProviderName)
	assert.Equal(t, model.EntityProvider, result.MatchedEntityType)
	assert.False(t, result.IsFramework)
}

func TestClassify_FrameworkShortCircuit(t *testing.T) {
	e := testEngine(t)

	// Stage 1 fires before any insourcing checks even though the notice
	// carries strong staffing keywords.
	result := e.Classify(notice("n2", "",
		"Dynamic Purchasing System for Locum Doctors", "locum doctors"))

	assert.Equal(t, model.ClassFramework, result.Classification)
	assert.Equal(t, confFramework, result.Confidence)
	assert.True(t, result.IsFramework)
	assert.Equal(t, "dynamic purchasing system", result.FrameworkName)
}

func TestClassify_NamedFramework(t *testing.T) {
	e := testEngine(t)

	result := e.Classify(notice("n3", "",
		"NHS Workforce Alliance - Locum Procurement", ""))

	assert.Equal(t, model.ClassFramework, result.Classification)
	assert.Equal(t, "nhs workforce alliance", result.FrameworkName)
}

func TestClassify_ExclusionBeforeRelevance(t *testing.T) {
	e := testEngine(t)

	// Stage 2 must fire before the stage-3 core keyword "locum" is seen.
	result := e.Classify(notice("n4", "Leeds Teaching Hospitals NHS Trust",
		"Grounds Maintenance and Grass Cutting",
		"Grounds maintenance including grass cutting; locum cover mentioned in passing."))

	assert.Equal(t, model.ClassDiscard, result.Classification)
	assert.Equal(t, confNonHealthcare, result.Confidence)
	assert.Contains(t, result.Reason, "grounds and gardens")
	assert.False(t, result.Matched())
}

func TestClassify_NoRelevanceDiscard(t *testing.T) {
	e := testEngine(t)

	result := e.Classify(notice("n5", "Some Council",
		"Office Furniture and Equipment Supply", "", "39000000"))

	assert.Equal(t, model.ClassDiscard, result.Classification)
	assert.Equal(t, confNoRelevance, result.Confidence)
	assert.Contains(t, result.Reason, "keywords")
}

func TestClassify_NoEntityDiscard(t *testing.T) {
	e := testEngine(t)

	result := e.Classify(notice("n6", "Unknown Health Organisation",
		"Locum Doctors Required", "Cover for general medicine."))

	assert.Equal(t, model.ClassDiscard, result.Classification)
	assert.Equal(t, confNoEntity, result.Confidence)
	assert.Contains(t, result.Reason, "entity")
	assert.Empty(t, result.MatchedEntityType)
}

func TestClassify_NonStaffingDiscardRetainsEntity(t *testing.T) {
	e := testEngine(t)

	result := e.Classify(notice("n7",
		"Cambridge University Hospitals NHS Foundation Trust",
		"Endoscopy Equipment Maintenance Contract", ""))

	assert.Equal(t, model.ClassDiscard, result.Classification)
	assert.Equal(t, confNonStaffing, result.Confidence)
	assert.Contains(t, result.Reason, "rental maintenance and support")
	// The stage-4 match is retained for audit even on discard.
	assert.Equal(t, "RGT", result.MatchedProviderCode)
	assert.Equal(t, model.EntityProvider, result.MatchedEntityType)
}

func TestClassify_NoIndicatorDiscard(t *testing.T) {
	e := testEngine(t)

	// Relevant via the medium keyword "waiting list", entity matched, no
	// exclusion category hit, but no positive indicator either.
	result := e.Classify(notice("n8", "Leeds Teaching Hospitals NHS Trust",
		"Waiting List Review", "Independent review of elective waiting list governance."))

	assert.Equal(t, model.ClassDiscard, result.Classification)
	assert.Equal(t, confNoIndicator, result.Confidence)
	assert.Contains(t, result.Reason, "indicator")
	assert.Equal(t, "RR8", result.MatchedProviderCode)
}

func TestClassify_CPVPrefixRelevance(t *testing.T) {
	e := testEngine(t)

	// No keyword relevance; the health-services CPV prefix carries the
	// notice past stage 3 into the entity and indicator stages.
	result := e.Classify(notice("n9", "Barts Health NHS Trust",
		"Gastroenterology Procedures Capacity", "", "85111000"))

	assert.Equal(t, model.ClassOpportunity, result.Classification)
	assert.Equal(t, "R1H", result.MatchedProviderCode)
	assert.Contains(t, result.Reason, "cpv 85111000")
}

func TestClassify_ParentBodyMatch(t *testing.T) {
	e := testEngine(t)

	result := e.Classify(notice("n10", "NHS West Yorkshire Integrated Care Board",
		"Insourcing of Community Dermatology Clinics", ""))

	assert.Equal(t, model.ClassOpportunity, result.Classification)
	assert.Equal(t, "QWO", result.MatchedParentBodyCode)
	assert.Equal(t, "NHS West Yorkshire Integrated Care Board", result.MatchedParentBodyName)
	assert.Equal(t, model.EntityParentBody, result.MatchedEntityType)
	assert.Empty(t, result.MatchedProviderCode)
}

func TestClassify_Idempotent(t *testing.T) {
	e := testEngine(t)
	n := notice("n11", "Cambridge University Hospitals NHS Foundation Trust",
		"Provision of Locum Doctors", "")

	first := e.Classify(n)
	second := e.Classify(n)
	assert.Equal(t, first, second)
}

func TestClassify_AlwaysWellFormed(t *testing.T) {
	e := testEngine(t)

	notices := []model.Notice{
		notice("a", "", "", ""),
		notice("b", "Barts Health NHS Trust", "Locum cover", ""),
		notice("c", "Council", "Street Lighting Upgrade", ""),
		notice("d", "", "Framework Agreement for Agency Staff", ""),
		notice("e", "Leeds Teaching Hospitals NHS Trust", "Supply of Equipment", "", "85100000"),
	}

	valid := map[model.Classification]bool{
		model.ClassOpportunity: true,
		model.ClassFramework:   true,
		model.ClassDiscard:     true,
	}

	for _, n := range notices {
		result := e.Classify(n)
		assert.True(t, valid[result.Classification], "notice %s", n.ID)
		assert.GreaterOrEqual(t, result.Confidence, 0)
		assert.LessOrEqual(t, result.Confidence, 100)
		assert.NotEmpty(t, result.Reason)
		// matched_entity_type present iff a matched code is present.
		assert.Equal(t, result.Matched(), result.MatchedEntityType != "", "notice %s", n.ID)
	}
}

func TestClassifyBatch(t *testing.T) {
	e := testEngine(t)

	results := e.ClassifyBatch([]model.Notice{
		notice("n1", "", "Street Lighting Upgrade", ""),
		notice("n2", "Barts Health NHS Trust", "Provision of Locum Doctors", ""),
		// Duplicate ID: the later notice overwrites the earlier result.
		notice("n1", "", "Dynamic Purchasing System for Agency Staff", ""),
	})

	require.Len(t, results, 2)
	assert.Equal(t, model.ClassFramework, results["n1"].Classification)
	assert.Equal(t, model.ClassOpportunity, results["n2"].Classification)
}
