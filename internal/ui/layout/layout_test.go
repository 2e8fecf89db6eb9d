package layout

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"
)

func TestIsTooSmall(t *testing.T) {
	assert.True(t, IsTooSmall(59, 40))
	assert.True(t, IsTooSmall(120, 19))
	assert.False(t, IsTooSmall(MinWidth, MinHeight))
}

func TestRenderBanner_EmptyMessage(t *testing.T) {
	assert.Empty(t, RenderBanner("", 80))
	assert.Contains(t, RenderBanner("offline", 80), "offline")
}

func TestRenderFrame_FillsHeight(t *testing.T) {
	header := RenderHeader("Quiz", 3, 120, 80)
	footer := RenderFooter([]KeyHint{{Key: "q", Description: "quit"}}, "synced", 80)

	out := RenderFrame(header, "body", footer, 80, 24)

	assert.Equal(t, 24, lipgloss.Height(out))
	assert.Contains(t, out, "body")
	assert.True(t, strings.Contains(header, "Lv 3") && strings.Contains(header, "120 XP"))
	assert.Contains(t, footer, "synced")
}
