package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocateDeclaration(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		wantName string
		wantOK   bool
	}{
		{"plain declaration", "pub enum OrderEvent {", "OrderEvent", true},
		{"derive on same line is ignored", "    pub enum StateEvent {", "StateEvent", true},
		{"extra spacing", "pub   enum   DownloadEvent{", "DownloadEvent", true},
		{"private enum", "enum Internal {", "", false},
		{"struct declaration", "pub struct OrderEvent {", "", false},
		{"reference in prose", "// pub enum OrderEvent is documented", "OrderEvent", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, ok := locateDeclaration(tt.line)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantName, name)
		})
	}
}

func TestCollectLeadingDoc_OrderPreserved(t *testing.T) {
	lines := []string{
		"use std::fmt;",
		"",
		"/// First line.",
		"/// Second line.",
		"/// Third line.",
		"pub enum OrderEvent {",
	}

	docs := collectLeadingDoc(lines, 5)

	assert.Equal(t, []string{"First line.", "Second line.", "Third line."}, docs)
}

func TestCollectLeadingDoc_SkipsBlanksStopsAtCode(t *testing.T) {
	lines := []string{
		"/// Unrelated doc for something else.",
		"fn helper() {}",
		"/// Attached doc.",
		"",
		"pub enum OrderEvent {",
	}

	docs := collectLeadingDoc(lines, 4)

	assert.Equal(t, []string{"Attached doc."}, docs)
}

func TestCollectLeadingDoc_NoDoc(t *testing.T) {
	lines := []string{
		"fn helper() {}",
		"pub enum OrderEvent {",
	}

	docs := collectLeadingDoc(lines, 1)

	require.NotNil(t, docs)
	assert.Empty(t, docs)
}

func TestCollectBlock_NestedBraces(t *testing.T) {
	source := strings.Split(strings.TrimPrefix(`
pub enum OrderEvent {
    Created(OrderId),
    Cancelled {
        reason: String,
    },
}
fn after() {}`, "\n"), "\n")

	definition, endIndex, err := collectBlock(source, 0)

	require.NoError(t, err)
	assert.Equal(t, 5, endIndex)
	assert.True(t, strings.HasPrefix(definition, "pub enum OrderEvent {"))
	assert.True(t, strings.HasSuffix(definition, "}"))
	assert.NotContains(t, definition, "fn after")
}

func TestCollectBlock_CountingArmsOnFirstBrace(t *testing.T) {
	// The opening brace sits on its own line after the declaration.
	source := []string{
		"pub enum OrderEvent",
		"{",
		"    Created,",
		"}",
	}

	definition, endIndex, err := collectBlock(source, 0)

	require.NoError(t, err)
	assert.Equal(t, 3, endIndex)
	assert.Contains(t, definition, "Created,")
}

func TestCollectBlock_MalformedNeverCloses(t *testing.T) {
	source := []string{
		"pub enum OrderEvent {",
		"    Created(OrderId),",
	}

	definition, endIndex, err := collectBlock(source, 0)

	assert.ErrorIs(t, err, ErrMalformedBlock)
	assert.Equal(t, 1, endIndex)
	assert.Contains(t, definition, "Created(OrderId),")
}
