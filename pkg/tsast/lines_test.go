package tsast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/tsdoclint/pkg/tsast"
)

func TestBuildLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		expected []tsast.LineInfo
	}{
		{
			name:     "empty content",
			content:  "",
			expected: []tsast.LineInfo{},
		},
		{
			name:    "single line no newline",
			content: "let a",
			expected: []tsast.LineInfo{
				{StartOffset: 0, NewlineStart: 5, EndOffset: 5},
			},
		},
		{
			name:    "single line with CRLF",
			content: "let a\r\n",
			expected: []tsast.LineInfo{
				{StartOffset: 0, NewlineStart: 5, EndOffset: 7},
				{StartOffset: 7, NewlineStart: 7, EndOffset: 7},
			},
		},
		{
			name:    "multiple lines LF",
			content: "line1\nline2\nline3",
			expected: []tsast.LineInfo{
				{StartOffset: 0, NewlineStart: 5, EndOffset: 6},
				{StartOffset: 6, NewlineStart: 11, EndOffset: 12},
				{StartOffset: 12, NewlineStart: 17, EndOffset: 17},
			},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.expected, tsast.BuildLines([]byte(testCase.content)))
		})
	}
}

func TestFileSnapshot_LineAt(t *testing.T) {
	t.Parallel()

	snapshot := tsast.NewFileSnapshot("test.ts", []byte("line1\nline2\nline3"))

	tests := []struct {
		name         string
		offset       int
		expectedLine int
		expectedCol  int
	}{
		{"start of file", 0, 1, 1},
		{"newline of line 1", 5, 1, 6},
		{"start of line 2", 6, 2, 1},
		{"start of line 3", 12, 3, 1},
		{"past end of file", 17, 3, 6},
		{"negative offset", -1, 0, 0},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			line, col := snapshot.LineAt(testCase.offset)
			assert.Equal(t, testCase.expectedLine, line)
			assert.Equal(t, testCase.expectedCol, col)
		})
	}
}

func TestLineAtAndOffsetAreInverses(t *testing.T) {
	t.Parallel()

	content := "export const a = 1;\n/** doc */\nexport const b = 2;\n"
	snapshot := tsast.NewFileSnapshot("test.ts", []byte(content))

	for offset := range len(content) {
		line, col := snapshot.LineAt(offset)
		got, ok := snapshot.Offset(line, col)
		if assert.True(t, ok, "offset %d", offset) {
			assert.Equal(t, offset, got)
		}
	}
}

func TestFileSnapshot_LineContent(t *testing.T) {
	t.Parallel()

	snapshot := tsast.NewFileSnapshot("test.ts", []byte("first\r\nsecond\nthird"))

	assert.Equal(t, "first", string(snapshot.LineContent(1)))
	assert.Equal(t, "second", string(snapshot.LineContent(2)))
	assert.Equal(t, "third", string(snapshot.LineContent(3)))
	assert.Nil(t, snapshot.LineContent(0))
	assert.Nil(t, snapshot.LineContent(4))
	assert.Equal(t, 3, snapshot.LineCount())
}
