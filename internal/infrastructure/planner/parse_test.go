package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"demo-agent/internal/domain/entity"
)

func TestParsePlan_BareArray(t *testing.T) {
	plan, err := ParsePlan(`[{"type": "narration", "content": "Hello."}]`)
	require.NoError(t, err)
	require.Len(t, plan, 1)
	assert.Equal(t, entity.StepNarration, plan[0].Type)
	assert.Equal(t, "Hello.", plan[0].Content)
}

func TestParsePlan_SurroundedByProse(t *testing.T) {
	response := "Here is the plan:\n```json\n" +
		`[{"type": "element_interaction", "action": "click", "element_selector": "#go"}]` +
		"\n```\nLet me know if you need changes."

	plan, err := ParsePlan(response)
	require.NoError(t, err)
	require.Len(t, plan, 1)
	assert.Equal(t, entity.ActionClick, plan[0].Action)
	assert.Equal(t, "#go", plan[0].Selector)
}

func TestParsePlan_NestedArrays(t *testing.T) {
	// the bracket scanner must not stop at an inner closing bracket
	response := `noise [{"type": "narration", "content": "a [b] c"}] trailing`

	plan, err := ParsePlan(response)
	require.NoError(t, err)
	require.Len(t, plan, 1)
	assert.Equal(t, "a [b] c", plan[0].Content)
}

func TestParsePlan_NoArray(t *testing.T) {
	_, err := ParsePlan("I cannot produce a plan for that.")
	assert.Error(t, err)
}

func TestParsePlan_MalformedJSON(t *testing.T) {
	_, err := ParsePlan(`[{"type": "narration",]`)
	assert.Error(t, err)
}

func TestParsePlan_TimingFields(t *testing.T) {
	plan, err := ParsePlan(`[
		{"type": "narration", "content": "x", "timing": "pause", "duration": 1.5},
		{"type": "element_interaction", "action": "type", "element_selector": "#q", "value": "cats", "timing": "after_interaction"}
	]`)
	require.NoError(t, err)
	require.Len(t, plan, 2)
	assert.Equal(t, entity.TimingPause, plan[0].Timing)
	assert.Equal(t, 1.5, plan[0].Duration)
	assert.Equal(t, entity.TimingAfterInteraction, plan[1].Timing)
	assert.Equal(t, "cats", plan[1].Value)
}
