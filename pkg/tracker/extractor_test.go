package tracker

import (
	"testing"

	"github.com/dhima/activity-logger/pkg/dom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func attr(k, v string) dom.Attribute { return dom.Attribute{Key: k, Val: v} }

func TestExtract_WhenAllAttributesPresent_ThenReturnsThemVerbatim(t *testing.T) {
	// Arrange
	btn := dom.NewElement("button", dom.Flag(AttrLog),
		attr(AttrFeature, "listing"), attr(AttrAction, "view_more"), attr(AttrNotes, "  mls=12345 "))

	// Act
	f, ok := Extract(btn)

	// Assert
	require.True(t, ok)
	require.NotNil(t, f.Feature)
	require.NotNil(t, f.Notes)
	assert.Equal(t, "listing", *f.Feature)
	assert.Equal(t, "view_more", f.Action)
	assert.Equal(t, "  mls=12345 ", *f.Notes)
}

func TestExtract_WhenOnlyMarkerPresent_ThenAppliesDefaults(t *testing.T) {
	// Arrange
	span := dom.NewElement("span", dom.Flag(AttrLog))

	// Act
	f, ok := Extract(span)

	// Assert
	require.True(t, ok)
	assert.Nil(t, f.Feature)
	assert.Nil(t, f.Notes)
	assert.Equal(t, DefaultAction, f.Action)
}

func TestExtract_WhenAttributesEmpty_ThenTreatedAsAbsent(t *testing.T) {
	// Arrange
	n := dom.NewElement("a", dom.Flag(AttrLog), attr(AttrFeature, ""), attr(AttrAction, ""), attr(AttrNotes, ""))

	// Act
	f, ok := Extract(n)

	// Assert
	require.True(t, ok)
	assert.Nil(t, f.Feature)
	assert.Nil(t, f.Notes)
	assert.Equal(t, "click", f.Action)
}

func TestExtract_WhenMarkerOnAncestor_ThenReadsAncestorAttributes(t *testing.T) {
	// Arrange
	card := dom.NewElement("div", dom.Flag(AttrLog), attr(AttrFeature, "card"))
	img := card.AppendChild(dom.NewElement("img", attr(AttrFeature, "ignored")))

	// Act
	f, ok := Extract(img)

	// Assert
	require.True(t, ok)
	require.NotNil(t, f.Feature)
	assert.Equal(t, "card", *f.Feature)
}

func TestExtract_WhenNoMarkerInChain_ThenReturnsNoRecord(t *testing.T) {
	// Arrange
	body := dom.NewElement("body")
	div := body.AppendChild(dom.NewElement("div", attr(AttrFeature, "listing")))

	// Act
	_, ok := Extract(div)

	// Assert
	assert.False(t, ok)
}
