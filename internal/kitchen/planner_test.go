package kitchen

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testWindow() Window {
	return Window{
		Start: testBase.Add(30 * time.Minute),
		End:   testBase.Add(150 * time.Minute),
	}
}

func TestGeneratePlanRecommendsShortfallOnly(t *testing.T) {
	st := newTestStore()
	planner := NewPrepPlanner(st, DefaultConfig())
	planner.now = frozen()

	result, err := planner.Generate("loc-1", testWindow())
	require.NoError(t, err)
	require.False(t, result.IsError())
	assert.Equal(t, "Prep plan generated", textOf(result))

	payload := payloadOf(result)
	require.NotNil(t, payload)
	// Rolls: forecast 36, on-hand covers 1 -> one line for 35. Nigiri:
	// forecast 18, on-hand covers 80 -> no line.
	assert.Equal(t, 1, payload["lines"])

	planID := payload["plan_id"].(string)
	summary, err := planner.Summarize(planID)
	require.NoError(t, err)
	require.False(t, summary.IsError())

	plan := payloadOf(summary)
	lines := plan["lines"].([]map[string]interface{})
	require.Len(t, lines, 1)
	assert.Equal(t, "mi-roll", lines[0]["menu_item_id"])
	assert.InDelta(t, 35.0, lines[0]["recommended_qty"].(float64), 1e-9)

	rationale := lines[0]["rationale"].(map[string]interface{})
	assert.InDelta(t, 36.0, rationale["expected_qty"].(float64), 1e-9)
	assert.InDelta(t, 1.0, rationale["available_portions"].(float64), 1e-9)
}

func TestGeneratePlanIsIdempotentPerWindow(t *testing.T) {
	st := newTestStore()
	planner := NewPrepPlanner(st, DefaultConfig())
	planner.now = frozen()

	first, err := planner.Generate("loc-1", testWindow())
	require.NoError(t, err)
	second, err := planner.Generate("loc-1", testWindow())
	require.NoError(t, err)

	// Same (location, window start) key: the plan is rewritten, not
	// duplicated.
	firstID := payloadOf(first)["plan_id"].(string)
	secondID := payloadOf(second)["plan_id"].(string)
	assert.Equal(t, firstID, secondID)

	summary, err := planner.Summarize(firstID)
	require.NoError(t, err)
	lines := payloadOf(summary)["lines"].([]map[string]interface{})
	assert.Len(t, lines, 1)
}

func TestGeneratePlanDistinctWindowsMakeDistinctPlans(t *testing.T) {
	st := newTestStore()
	planner := NewPrepPlanner(st, DefaultConfig())
	planner.now = frozen()

	first, err := planner.Generate("loc-1", testWindow())
	require.NoError(t, err)

	later := Window{Start: testBase.Add(90 * time.Minute), End: testBase.Add(150 * time.Minute)}
	second, err := planner.Generate("loc-1", later)
	require.NoError(t, err)

	assert.NotEqual(t, payloadOf(first)["plan_id"], payloadOf(second)["plan_id"])
}

func TestGeneratePlanWindowContainmentExcludesPartialBuckets(t *testing.T) {
	st := newTestStore()
	planner := NewPrepPlanner(st, DefaultConfig())
	planner.now = frozen()

	// Only the first roll bucket fits entirely inside this window; the
	// second bucket and its 12 portions are excluded.
	narrow := Window{Start: testBase.Add(30 * time.Minute), End: testBase.Add(90 * time.Minute)}
	result, err := planner.Generate("loc-1", narrow)
	require.NoError(t, err)

	summary, err := planner.Summarize(payloadOf(result)["plan_id"].(string))
	require.NoError(t, err)
	lines := payloadOf(summary)["lines"].([]map[string]interface{})
	require.Len(t, lines, 1)
	assert.InDelta(t, 23.0, lines[0]["recommended_qty"].(float64), 1e-9)
}

func TestSummarizeUnknownPlanIsErrorEnvelope(t *testing.T) {
	planner := NewPrepPlanner(newTestStore(), DefaultConfig())

	result, err := planner.Summarize("missing")
	require.NoError(t, err)
	assert.True(t, result.IsError())
	assert.Contains(t, textOf(result), "not found")
}

func TestExplainPlanCarriesHighlights(t *testing.T) {
	st := newTestStore()
	planner := NewPrepPlanner(st, DefaultConfig())
	planner.now = frozen()

	generated, err := planner.Generate("loc-1", testWindow())
	require.NoError(t, err)

	result, err := planner.Explain(payloadOf(generated)["plan_id"].(string))
	require.NoError(t, err)
	require.False(t, result.IsError())

	payload := payloadOf(result)
	highlights := payload["highlights"].([]string)
	require.Len(t, highlights, 1)
	assert.Contains(t, highlights[0], "California Roll")
	assert.Contains(t, highlights[0], "35")
}
